package postservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/internal/repository/constants"
	"github.com/haguru/folio/pkg/helper"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidPost is returned for posts that fail validation.
	ErrInvalidPost = errors.New("invalid post")
	// ErrAuthorRequired is returned when the caller has no user profile to
	// write the post as.
	ErrAuthorRequired = errors.New("a user profile is required to write posts")
)

type PostService struct {
	PostRepo    interfaces.PostRepository
	HashtagRepo interfaces.HashtagRepository
	Logger      interfaces.Logger
	Metrics     interfaces.Metrics

	now func() time.Time
}

// NewPostService creates a new PostService instance.
func NewPostService(postRepo interfaces.PostRepository, hashtagRepo interfaces.HashtagRepository,
	logger interfaces.Logger, m interfaces.Metrics,
) *PostService {
	return &PostService{
		PostRepo:    postRepo,
		HashtagRepo: hashtagRepo,
		Logger:      logger,
		Metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost writes a post as the user of identity. Hashtags are created on
// first use and the slug derived from the title gets a numeric suffix when
// it is taken. The post is returned joined like in listings.
func (s *PostService) CreatePost(ctx context.Context, identity models.Identity, title, content string, hashtags []string) (*models.PostWithAuthor, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "account", identity.AccountID.Hex())
	defer s.Logger.Debug("Exiting function", "func", funcName)

	if identity.UserID.IsZero() {
		return nil, ErrAuthorRequired
	}

	title = strings.TrimSpace(title)
	names := queries.NormalizeHashtags(hashtags)
	if err := validate(title, content, names); err != nil {
		return nil, err
	}

	tags, err := s.HashtagRepo.FindOrCreate(ctx, names)
	if err != nil {
		s.Logger.Error(ErrFailedToResolveTags, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToResolveTags, err)
	}
	tagIDs := make([]primitive.ObjectID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	now := s.now()
	post := models.Post{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Content:  content,
		Author:   identity.UserID,
		Hashtags: tagIDs,
		Views:    0,
		Created:  now,
		Updated:  now,
	}

	created, err := s.insertWithFreeSlug(ctx, post, queries.Slugify(title))
	if err != nil {
		s.Logger.Error(ErrFailedToCreatePost, "func", funcName, "title", title, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToCreatePost, err)
	}

	if s.Metrics != nil {
		s.Metrics.IncCounter(metrics.PostsCreatedTotal)
	}
	s.Logger.Info("Post created", "func", funcName, "slug", created.Slug, "ID", created.ID.Hex())

	joined, err := s.PostRepo.GetPostWithAuthor(ctx, created.ID)
	if err != nil {
		s.Logger.Error(ErrFailedToReadNewPost, "func", funcName, "slug", created.Slug, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToReadNewPost, err)
	}
	return joined, nil
}

// GetPosts lists every post, newest first.
func (s *PostService) GetPosts(ctx context.Context, page queries.Page) (*models.PostPage, error) {
	result, err := s.PostRepo.ListPosts(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToListPosts, err)
	}
	return result, nil
}

// GetPostsByTag lists the posts carrying tag. An unknown tag yields an
// empty page.
func (s *PostService) GetPostsByTag(ctx context.Context, tag string, page queries.Page) (*models.PostPage, error) {
	funcName := helper.GetFuncName()

	name := queries.NormalizeHashtag(tag)
	if name == "" || len(name) > constants.MAXLENGTH_HASHTAG {
		return emptyPage(), nil
	}

	hashtag, err := s.HashtagRepo.GetHashtagByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.Logger.Debug("Unknown hashtag", "func", funcName, "tag", name)
			return emptyPage(), nil
		}
		return nil, fmt.Errorf("%s: %w", ErrFailedToListPosts, err)
	}

	result, err := s.PostRepo.ListPostsByHashtag(ctx, hashtag.ID, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToListPosts, err)
	}
	return result, nil
}

// GetPostsByAuthor lists the posts of the user with the given hex id.
// A malformed id yields an empty page.
func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID string, page queries.Page) (*models.PostPage, error) {
	id, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return emptyPage(), nil
	}

	result, err := s.PostRepo.ListPostsByAuthor(ctx, id, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToListPosts, err)
	}
	return result, nil
}

// GetPostBySlug reads a post and counts the view. A failure to count is
// logged and does not fail the read.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error) {
	funcName := helper.GetFuncName()

	post, err := s.PostRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToGetPost, err)
	}

	if err := s.PostRepo.IncrementViews(ctx, post.Post.ID); err != nil {
		s.Logger.Warn(ErrFailedToCountView, "func", funcName, "slug", slug, "error", err)
		return post, nil
	}
	post.Post.Views++
	if s.Metrics != nil {
		s.Metrics.IncCounter(metrics.PostViewsTotal)
	}
	return post, nil
}

// ListSlugs returns the slug of every post.
func (s *PostService) ListSlugs(ctx context.Context) ([]string, error) {
	slugs, err := s.PostRepo.ListSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToListPosts, err)
	}
	return slugs, nil
}

func (s *PostService) insertWithFreeSlug(ctx context.Context, post models.Post, base string) (*models.Post, error) {
	for attempt := 1; attempt <= constants.MAX_SLUG_ATTEMPTS; attempt++ {
		post.Slug = queries.SlugCandidate(base, attempt)
		created, err := s.PostRepo.AddPost(ctx, post)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s for %q: %w", ErrSlugAttemptsExceeded, base, repository.ErrDuplicate)
}

func validate(title, content string, hashtags []string) error {
	switch {
	case title == "":
		return fmt.Errorf("title cannot be empty: %w", ErrInvalidPost)
	case len(title) > MaxTitleLength:
		return fmt.Errorf("title longer than %d characters: %w", MaxTitleLength, ErrInvalidPost)
	case strings.TrimSpace(content) == "":
		return fmt.Errorf("content cannot be empty: %w", ErrInvalidPost)
	case len(content) > MaxContentLength:
		return fmt.Errorf("content longer than %d characters: %w", MaxContentLength, ErrInvalidPost)
	case len(hashtags) > MaxHashtags:
		return fmt.Errorf("more than %d hashtags: %w", MaxHashtags, ErrInvalidPost)
	}
	for _, tag := range hashtags {
		if len(tag) > constants.MAXLENGTH_HASHTAG {
			return fmt.Errorf("hashtag %q longer than %d characters: %w", tag, constants.MAXLENGTH_HASHTAG, ErrInvalidPost)
		}
	}
	return nil
}

func emptyPage() *models.PostPage {
	return &models.PostPage{Items: []models.PostWithAuthor{}}
}
