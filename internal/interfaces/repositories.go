package interfaces

import (
	"context"
	"time"

	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountRepository stores login credentials.
type AccountRepository interface {
	AddAccount(ctx context.Context, account models.Account) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	EnsureIndices(ctx context.Context) error
}

// UserRepository stores public author profiles.
type UserRepository interface {
	AddUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	EnsureIndices(ctx context.Context) error
}

// PostRepository stores posts and reads them joined with their references.
type PostRepository interface {
	AddPost(ctx context.Context, post models.Post) (*models.Post, error)
	GetPostWithAuthor(ctx context.Context, id primitive.ObjectID) (*models.PostWithAuthor, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error)
	ListPosts(ctx context.Context, page queries.Page) (*models.PostPage, error)
	ListPostsByHashtag(ctx context.Context, hashtagID primitive.ObjectID, page queries.Page) (*models.PostPage, error)
	ListPostsByAuthor(ctx context.Context, authorID primitive.ObjectID, page queries.Page) (*models.PostPage, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	ListSlugs(ctx context.Context) ([]string, error)
	EnsureIndices(ctx context.Context) error
}

// HashtagRepository stores hashtags by unique name.
type HashtagRepository interface {
	GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error)
	FindOrCreate(ctx context.Context, names []string) ([]models.Hashtag, error)
	EnsureIndices(ctx context.Context) error
}

// RateLimitRepository keeps the recent calls per action and identity.
type RateLimitRepository interface {
	// Record registers a call at now if the rule still allows one and
	// reports whether it did.
	Record(ctx context.Context, action, identity string, calls int, per time.Duration, now time.Time) (bool, error)
	Reset(ctx context.Context, action, identity string) error
	EnsureIndices(ctx context.Context) error
}

// TokenRepository keeps the issued session secrets so they can be revoked.
type TokenRepository interface {
	AddToken(ctx context.Context, token models.Token) error
	GetToken(ctx context.Context, id string) (*models.Token, error)
	DeleteToken(ctx context.Context, id string) (int64, error)
	DeleteAccountTokens(ctx context.Context, accountID primitive.ObjectID) (int64, error)
	EnsureIndices(ctx context.Context) error
}
