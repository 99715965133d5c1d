// Command folioctl prepares the folio database and talks to a running
// folio server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/pkg/client"

	"github.com/spf13/cobra"
)

// options are the global flags shared by every command.
type options struct {
	configPath string
	envPath    string
	serverURL  string
	token      string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "folioctl",
		Short: "Set up, seed and drive a folio blog",
		Long: `folioctl prepares the folio database (indexes, signing key, sample data)
and calls the API of a running folio server with the bootstrap secret or a
session secret obtained by logging in.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.CONFIG_PATH, "Path to the service config")
	rootCmd.PersistentFlags().StringVar(&opts.envPath, "env", config.ENV_PATH, "Path to the .env file")
	rootCmd.PersistentFlags().StringVarP(&opts.serverURL, "server", "s", "http://localhost:8080", "Base URL of the folio server")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bootstrap secret (or set "+client.ENV_BOOTSTRAP_SECRET+")")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(newSetupCmd(opts))
	rootCmd.AddCommand(newSeedCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newRegisterCmd(opts))
	rootCmd.AddCommand(newPostCmd(opts))

	return rootCmd
}

func (o *options) context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, o.timeout)
}

func (o *options) queryManager(secret string) (*client.QueryManager, error) {
	if secret == "" {
		secret = o.token
	}
	return client.New(o.serverURL, secret)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
