package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/haguru/folio/internal/app"
	"github.com/haguru/folio/internal/auth"
	"github.com/haguru/folio/pkg/zerolog"

	"github.com/spf13/cobra"
)

func newSetupCmd(opts *options) *cobra.Command {
	var generateKey, reset bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the collections' indexes and the session signing key",
		Long: `Connects to the configured database and creates every index the
service relies on: unique emails, aliases, slugs and hashtag names, the
listing indexes, the rate limit key and the session expiry TTL.

With --reset every collection is dropped first, deleting all accounts,
posts and sessions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(opts.configPath, opts.envPath)
			if err != nil {
				return err
			}

			if generateKey {
				if _, err := os.Stat(cfg.PrivateKeyPath); errors.Is(err, os.ErrNotExist) {
					if _, err := auth.GenerateECDSAPrivateKey(cfg.PrivateKeyPath); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Generated signing key %s\n", cfg.PrivateKeyPath)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Signing key %s already exists\n", cfg.PrivateKeyPath)
				}
			}

			logger := zerolog.NewZerologLogger("folioctl")
			logger.SetLevel(cfg.LogLevel)

			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			store, err := app.OpenStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			if reset {
				if err := store.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Dropped every collection")
			}
			if err := store.EnsureIndices(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Indexes are in place")
			return nil
		},
	}

	cmd.Flags().BoolVar(&generateKey, "generate-key", false, "Create the signing key when it does not exist")
	cmd.Flags().BoolVar(&reset, "reset", false, "Drop every collection before creating the indexes")
	return cmd
}
