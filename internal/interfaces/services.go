package interfaces

import (
	"context"

	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
)

// AccountService handles registration and sessions.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*models.Session, error)
	RegisterWithUser(ctx context.Context, email, password, name, alias string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, identity models.Identity, all bool) (int64, error)
}

// PostService handles writing and reading posts.
type PostService interface {
	CreatePost(ctx context.Context, identity models.Identity, title, content string, hashtags []string) (*models.PostWithAuthor, error)
	GetPosts(ctx context.Context, page queries.Page) (*models.PostPage, error)
	GetPostsByTag(ctx context.Context, tag string, page queries.Page) (*models.PostPage, error)
	GetPostsByAuthor(ctx context.Context, authorID string, page queries.Page) (*models.PostPage, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error)
	ListSlugs(ctx context.Context) ([]string, error)
}

// RateLimiter applies the per action call limits.
type RateLimiter interface {
	// Allow records a call of identity to action, or returns an error
	// wrapping ratelimit.ErrRateLimited.
	Allow(ctx context.Context, action, identity string) error
	Reset(ctx context.Context, action, identity string) error
}

// SessionResolver maps a bearer secret onto the calling identity.
type SessionResolver interface {
	Resolve(ctx context.Context, secret string) (models.Identity, error)
}
