package app

import (
	"context"
	"fmt"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/repository/constants"
	mongoRepo "github.com/haguru/folio/internal/repository/mongo"
	"github.com/haguru/folio/pkg/databases/mongo"

	"golang.org/x/sync/errgroup"
)

// Store bundles the database client and every repository on top of it.
type Store struct {
	DB         interfaces.DBClient
	Accounts   interfaces.AccountRepository
	Users      interfaces.UserRepository
	Posts      interfaces.PostRepository
	Hashtags   interfaces.HashtagRepository
	RateLimits interfaces.RateLimitRepository
	Tokens     interfaces.TokenRepository
}

// OpenStore connects to the configured database and builds the repositories.
func OpenStore(ctx context.Context, cfg *config.ServiceConfig, logger interfaces.Logger) (*Store, error) {
	var dbClient interfaces.DBClient
	var err error

	switch cfg.Database.Type {
	case "mongo":
		dbClient, err = mongo.NewMongoDB(&cfg.Database.MongoDB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		if err = dbClient.Connect(ctx, cfg.Database.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	store, err := NewStore(dbClient)
	if err != nil {
		_ = dbClient.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

// NewStore builds the repositories over an already connected client.
func NewStore(dbClient interfaces.DBClient) (*Store, error) {
	s := &Store{DB: dbClient}
	var err error

	if s.Accounts, err = mongoRepo.NewMongoAccountRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize account repository: %w", err)
	}
	if s.Users, err = mongoRepo.NewMongoUserRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize user repository: %w", err)
	}
	if s.Posts, err = mongoRepo.NewMongoPostRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize post repository: %w", err)
	}
	if s.Hashtags, err = mongoRepo.NewMongoHashtagRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize hashtag repository: %w", err)
	}
	if s.RateLimits, err = mongoRepo.NewMongoRateLimitRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize rate limit repository: %w", err)
	}
	if s.Tokens, err = mongoRepo.NewMongoTokenRepository(dbClient); err != nil {
		return nil, fmt.Errorf("failed to initialize token repository: %w", err)
	}
	return s, nil
}

// EnsureIndices creates the indexes of every collection concurrently.
func (s *Store) EnsureIndices(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for name, repo := range map[string]interface {
		EnsureIndices(context.Context) error
	}{
		"accounts":      s.Accounts,
		"users":         s.Users,
		"posts":         s.Posts,
		"hashtags":      s.Hashtags,
		"rate_limiting": s.RateLimits,
		"tokens":        s.Tokens,
	} {
		g.Go(func() error {
			if err := repo.EnsureIndices(ctx); err != nil {
				return fmt.Errorf("failed to ensure %s indices: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reset drops every collection with its documents and indexes. Run
// EnsureIndices afterwards to make the store usable again.
func (s *Store) Reset(ctx context.Context) error {
	for _, collection := range []string{
		constants.AccountsCollection,
		constants.UsersCollection,
		constants.PostsCollection,
		constants.HashtagsCollection,
		constants.RateLimitCollection,
		constants.TokensCollection,
	} {
		if err := s.DB.DropCollection(ctx, collection); err != nil {
			return fmt.Errorf("failed to drop %s: %w", collection, err)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.DB.Disconnect(ctx)
}
