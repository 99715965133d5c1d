package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/folio/internal/accountservice"
	"github.com/haguru/folio/internal/app"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/pkg/zerolog"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SampleTitle   = "Getting Started with Faunadb"
	SampleContent = "This is just some dummy content"
	SampleHashtag = "faunadb"
)

var SampleDate = time.Date(2020, time.August, 14, 0, 0, 0, 0, time.UTC)

func newSeedCmd(opts *options) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the site author and the sample post",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(opts.configPath, opts.envPath)
			if err != nil {
				return err
			}
			if author == "" {
				author = cfg.Site.Author
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

			post, created, err := seedSamplePost(ctx, store, author, time.Now().UTC())
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created /posts/%s\n", post.Post.Slug)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "/posts/%s already exists\n", post.Post.Slug)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Name of the author (defaults to the site author)")
	return cmd
}

// seedSamplePost inserts the sample post and its author unless the slug is taken.
func seedSamplePost(ctx context.Context, store *app.Store, author string, now time.Time) (*models.PostWithAuthor, bool, error) {
	if author == "" {
		return nil, false, fmt.Errorf("author cannot be empty")
	}

	slug := queries.Slugify(SampleTitle)
	existing, err := store.Posts.GetPostBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	user, err := store.Users.AddUser(ctx, *models.NewUser(author, "", accountservice.Icons[0], now))
	if err != nil {
		return nil, false, fmt.Errorf("failed to add author: %w", err)
	}

	tags, err := store.Hashtags.FindOrCreate(ctx, []string{SampleHashtag})
	if err != nil {
		return nil, false, fmt.Errorf("failed to add hashtags: %w", err)
	}
	tagIDs := make([]primitive.ObjectID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	post, err := store.Posts.AddPost(ctx, models.Post{
		Title:    SampleTitle,
		Slug:     slug,
		Content:  SampleContent,
		Author:   user.ID,
		Hashtags: tagIDs,
		Created:  SampleDate,
		Updated:  SampleDate,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to add sample post: %w", err)
	}

	full, err := store.Posts.GetPostWithAuthor(ctx, post.ID)
	if err != nil {
		return nil, false, err
	}
	return full, true, nil
}
