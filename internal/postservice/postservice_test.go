package postservice

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/haguru/folio/internal/interfaces/mocks"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService(t *testing.T) (*PostService, *mocks.MockPostRepository, *mocks.MockHashtagRepository) {
	posts := mocks.NewMockPostRepository(t)
	hashtags := mocks.NewMockHashtagRepository(t)
	service := NewPostService(posts, hashtags, zerolog.NewZerologLoggerWithWriter("test", io.Discard), nil)
	service.now = func() time.Time { return time.Date(2020, 8, 14, 12, 0, 0, 0, time.UTC) }
	return service, posts, hashtags
}

func author() models.Identity {
	return models.Identity{
		Role:      models.RoleLoggedIn,
		AccountID: primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
	}
}

func TestCreatePost(t *testing.T) {
	service, posts, hashtags := newTestService(t)
	caller := author()
	tag := models.Hashtag{ID: primitive.NewObjectID(), Name: "faunadb"}

	hashtags.On("FindOrCreate", mock.Anything, []string{"faunadb"}).Return([]models.Hashtag{tag}, nil)

	var inserted models.Post
	posts.On("AddPost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.Slug == "getting-started-with-faunadb"
	})).Return(nil, repository.ErrDuplicate).Once()
	posts.On("AddPost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.Slug == "getting-started-with-faunadb-2"
	})).Return(func(_ context.Context, p models.Post) (*models.Post, error) {
		inserted = p
		return &p, nil
	}).Once()
	posts.On("GetPostWithAuthor", mock.Anything, mock.AnythingOfType("primitive.ObjectID")).
		Return(func(_ context.Context, id primitive.ObjectID) (*models.PostWithAuthor, error) {
			return &models.PostWithAuthor{Post: inserted, Hashtags: []models.Hashtag{tag}}, nil
		})

	got, err := service.CreatePost(context.Background(), caller, "  Getting Started with Faunadb ", "Hello **world**", []string{"#FaunaDB", "faunadb"})
	require.NoError(t, err)

	assert.Equal(t, "getting-started-with-faunadb-2", got.Post.Slug)
	assert.Equal(t, "Getting Started with Faunadb", got.Post.Title)
	assert.Equal(t, caller.UserID, got.Post.Author)
	assert.Equal(t, []primitive.ObjectID{tag.ID}, got.Post.Hashtags)
	assert.Zero(t, got.Post.Views)
	assert.Equal(t, service.now(), got.Post.Created)
	assert.Equal(t, []string{"faunadb"}, got.TagNames())
}

func TestCreatePost_Invalid(t *testing.T) {
	tooManyTags := make([]string, MaxHashtags+1)
	for i := range tooManyTags {
		tooManyTags[i] = strings.Repeat("t", i+1)
	}

	tests := []struct {
		name     string
		caller   models.Identity
		title    string
		content  string
		hashtags []string
		wantErr  error
	}{
		{name: "no user profile", caller: models.Identity{Role: models.RoleAdmin}, title: "t", content: "c", wantErr: ErrAuthorRequired},
		{name: "empty title", caller: author(), title: "   ", content: "c", wantErr: ErrInvalidPost},
		{name: "long title", caller: author(), title: strings.Repeat("x", MaxTitleLength+1), content: "c", wantErr: ErrInvalidPost},
		{name: "empty content", caller: author(), title: "t", content: " ", wantErr: ErrInvalidPost},
		{name: "too many hashtags", caller: author(), title: "t", content: "c", hashtags: tooManyTags, wantErr: ErrInvalidPost},
		{name: "long hashtag", caller: author(), title: "t", content: "c", hashtags: []string{strings.Repeat("h", 41)}, wantErr: ErrInvalidPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)
			_, err := service.CreatePost(context.Background(), tt.caller, tt.title, tt.content, tt.hashtags)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreatePost_RepositoryFailure(t *testing.T) {
	service, posts, hashtags := newTestService(t)
	dbErr := errors.New("connection reset")

	hashtags.On("FindOrCreate", mock.Anything, []string{}).Return([]models.Hashtag{}, nil)
	posts.On("AddPost", mock.Anything, mock.Anything).Return(nil, dbErr).Once()

	_, err := service.CreatePost(context.Background(), author(), "Title", "content", nil)
	assert.ErrorIs(t, err, dbErr)
}

func TestGetPostsByTag(t *testing.T) {
	service, posts, hashtags := newTestService(t)
	tag := models.Hashtag{ID: primitive.NewObjectID(), Name: "go"}
	page := &models.PostPage{Items: []models.PostWithAuthor{{Post: models.Post{Slug: "a"}}}}

	hashtags.On("GetHashtagByName", mock.Anything, "go").Return(&tag, nil)
	hashtags.On("GetHashtagByName", mock.Anything, "unknown").Return(nil, repository.ErrNotFound)
	posts.On("ListPostsByHashtag", mock.Anything, tag.ID, queries.Page{Size: 5}).Return(page, nil)

	got, err := service.GetPostsByTag(context.Background(), "#Go", queries.Page{Size: 5})
	require.NoError(t, err)
	assert.Same(t, page, got)

	got, err = service.GetPostsByTag(context.Background(), "unknown", queries.Page{})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Next)

	got, err = service.GetPostsByTag(context.Background(), "#", queries.Page{})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestGetPostsByAuthor(t *testing.T) {
	service, posts, _ := newTestService(t)
	authorID := primitive.NewObjectID()
	page := &models.PostPage{Items: []models.PostWithAuthor{}}

	posts.On("ListPostsByAuthor", mock.Anything, authorID, queries.Page{}).Return(page, nil)

	got, err := service.GetPostsByAuthor(context.Background(), authorID.Hex(), queries.Page{})
	require.NoError(t, err)
	assert.Same(t, page, got)

	got, err = service.GetPostsByAuthor(context.Background(), "not-an-id", queries.Page{})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestGetPosts_InvalidCursor(t *testing.T) {
	service, posts, _ := newTestService(t)
	posts.On("ListPosts", mock.Anything, queries.Page{After: "bad"}).
		Return(nil, queries.ErrInvalidCursor)

	_, err := service.GetPosts(context.Background(), queries.Page{After: "bad"})
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func TestGetPostBySlug(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("counts the view", func(t *testing.T) {
		service, posts, _ := newTestService(t)
		posts.On("GetPostBySlug", mock.Anything, "hello").Return(&models.PostWithAuthor{Post: models.Post{ID: id, Views: 4}}, nil)
		posts.On("IncrementViews", mock.Anything, id).Return(nil)

		got, err := service.GetPostBySlug(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Post.Views)
	})

	t.Run("view count failure still returns the post", func(t *testing.T) {
		service, posts, _ := newTestService(t)
		posts.On("GetPostBySlug", mock.Anything, "hello").Return(&models.PostWithAuthor{Post: models.Post{ID: id, Views: 4}}, nil)
		posts.On("IncrementViews", mock.Anything, id).Return(errors.New("connection reset"))

		got, err := service.GetPostBySlug(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Post.Views)
	})

	t.Run("not found", func(t *testing.T) {
		service, posts, _ := newTestService(t)
		posts.On("GetPostBySlug", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

		_, err := service.GetPostBySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListSlugs(t *testing.T) {
	service, posts, _ := newTestService(t)
	posts.On("ListSlugs", mock.Anything).Return([]string{"a", "b"}, nil)

	got, err := service.ListSlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}
