package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/interfaces/mocks"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/internal/repository/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
)

var (
	errDuplicate = mongosdk.WriteException{WriteErrors: mongosdk.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	errNoDocs    = fmt.Errorf("MongoDBClient: Failed to find one: %w", mongosdk.ErrNoDocuments)
)

func TestNewRepositories_NilClient(t *testing.T) {
	_, err := NewMongoAccountRepository(nil)
	assert.Error(t, err)
	_, err = NewMongoUserRepository(nil)
	assert.Error(t, err)
	_, err = NewMongoPostRepository(nil)
	assert.Error(t, err)
	_, err = NewMongoHashtagRepository(nil)
	assert.Error(t, err)
	_, err = NewMongoRateLimitRepository(nil)
	assert.Error(t, err)
	_, err = NewMongoTokenRepository(nil)
	assert.Error(t, err)
}

func TestAccountRepository_AddAccount(t *testing.T) {
	tests := []struct {
		name      string
		insertErr error
		wantErr   error
	}{
		{name: "inserted"},
		{name: "email taken", insertErr: errDuplicate, wantErr: repository.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := mocks.NewMockDBClient(t)
			db.On("InsertOne", mock.Anything, constants.AccountsCollection, mock.AnythingOfType("models.Account")).
				Return(primitive.NewObjectID(), tt.insertErr)

			repo, err := NewMongoAccountRepository(db)
			require.NoError(t, err)

			got, err := repo.AddAccount(context.Background(), models.Account{Email: "a@b.co", HashedPassword: "hash"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.False(t, got.ID.IsZero())
			assert.False(t, got.Created.IsZero())
		})
	}
}

func TestAccountRepository_GetAccountByEmail(t *testing.T) {
	id := primitive.NewObjectID()

	db := mocks.NewMockDBClient(t)
	db.On("FindOne", mock.Anything, constants.AccountsCollection, bson.M{"email": "a@b.co"}, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*models.Account) = models.Account{ID: id, Email: "a@b.co"}
		}).Return(nil)
	db.On("FindOne", mock.Anything, constants.AccountsCollection, bson.M{"email": "missing@b.co"}, mock.Anything).
		Return(errNoDocs)

	repo, err := NewMongoAccountRepository(db)
	require.NoError(t, err)

	got, err := repo.GetAccountByEmail(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = repo.GetAccountByEmail(context.Background(), "missing@b.co")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// never reaches the database, so both are plain misses
	_, err = repo.GetAccountByEmail(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetAccountByEmail(context.Background(), strings.Repeat("a", constants.MAXLENGTH_EMAIL)+"@b.co")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_AddUser_DuplicateAlias(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("InsertOne", mock.Anything, constants.UsersCollection, mock.Anything).Return(nil, errDuplicate)

	repo, err := NewMongoUserRepository(db)
	require.NoError(t, err)

	_, err = repo.AddUser(context.Background(), models.User{Name: "Jane", Alias: "jane"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestPostRepository_ListPosts(t *testing.T) {
	base := time.Date(2020, 8, 14, 12, 0, 0, 0, time.UTC)
	rows := make([]models.PostWithAuthor, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, models.PostWithAuthor{Post: models.Post{
			ID:      primitive.NewObjectID(),
			Slug:    fmt.Sprintf("post-%d", i),
			Created: base.Add(-time.Duration(i) * time.Hour),
		}})
	}

	db := mocks.NewMockDBClient(t)
	db.On("Aggregate", mock.Anything, constants.PostsCollection, mock.AnythingOfType("mongo.Pipeline"), mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]models.PostWithAuthor) = rows
		}).Return(nil)

	repo, err := NewMongoPostRepository(db)
	require.NoError(t, err)

	page, err := repo.ListPosts(context.Background(), queries.Page{Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "post-0", page.Items[0].Post.Slug)
	assert.Equal(t, queries.EncodeCursor(rows[1].Post.Created, rows[1].Post.ID), page.Next)

	_, err = repo.ListPosts(context.Background(), queries.Page{After: "%%%", Size: 2})
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func TestPostRepository_GetPostBySlug(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("Aggregate", mock.Anything, constants.PostsCollection, queries.PostBySlugPipeline("missing"), mock.Anything).
		Return(nil)
	db.On("Aggregate", mock.Anything, constants.PostsCollection, queries.PostBySlugPipeline("found"), mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]models.PostWithAuthor) = []models.PostWithAuthor{{Post: models.Post{Slug: "found"}}}
		}).Return(nil)

	repo, err := NewMongoPostRepository(db)
	require.NoError(t, err)

	got, err := repo.GetPostBySlug(context.Background(), "found")
	require.NoError(t, err)
	assert.Equal(t, "found", got.Post.Slug)

	_, err = repo.GetPostBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostRepository_IncrementViews(t *testing.T) {
	id := primitive.NewObjectID()
	db := mocks.NewMockDBClient(t)
	db.On("UpdateOne", mock.Anything, constants.PostsCollection, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}).
		Return(int64(1), nil).Once()
	db.On("UpdateOne", mock.Anything, constants.PostsCollection, bson.M{"_id": id}, mock.Anything).
		Return(int64(0), nil).Once()

	repo, err := NewMongoPostRepository(db)
	require.NoError(t, err)

	assert.NoError(t, repo.IncrementViews(context.Background(), id))
	assert.ErrorIs(t, repo.IncrementViews(context.Background(), id), repository.ErrNotFound)
}

func TestPostRepository_ListSlugs(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("FindMany", mock.Anything, constants.PostsCollection, bson.D{}, mock.AnythingOfType("interfaces.FindOptions"), mock.Anything).
		Run(func(args mock.Arguments) {
			opts := args.Get(3).(interfaces.FindOptions)
			assert.Equal(t, queries.PostSort(), opts.Sort)

			rows := args.Get(4).(*[]struct {
				Slug string `bson:"slug"`
			})
			*rows = append(*rows, struct {
				Slug string `bson:"slug"`
			}{Slug: "getting-started-with-faunadb"})
		}).Return(nil)

	repo, err := NewMongoPostRepository(db)
	require.NoError(t, err)

	slugs, err := repo.ListSlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"getting-started-with-faunadb"}, slugs)
}

func TestPostRepository_EnsureIndices(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("EnsureSchema", mock.Anything, constants.PostsCollection, mock.AnythingOfType("mongo.IndexModel")).
		Return(nil).Times(4)

	repo, err := NewMongoPostRepository(db)
	require.NoError(t, err)
	assert.NoError(t, repo.EnsureIndices(context.Background()))
}

func TestHashtagRepository_FindOrCreate(t *testing.T) {
	existing := models.Hashtag{ID: primitive.NewObjectID(), Name: "go"}
	raced := models.Hashtag{ID: primitive.NewObjectID(), Name: "mongo"}

	db := mocks.NewMockDBClient(t)
	// existing tag
	db.On("FindOne", mock.Anything, constants.HashtagsCollection, bson.M{"name": "go"}, mock.Anything).
		Run(func(args mock.Arguments) { *args.Get(3).(*models.Hashtag) = existing }).Return(nil)
	// new tag
	db.On("FindOne", mock.Anything, constants.HashtagsCollection, bson.M{"name": "faunadb"}, mock.Anything).
		Return(errNoDocs)
	db.On("InsertOne", mock.Anything, constants.HashtagsCollection, mock.MatchedBy(func(h models.Hashtag) bool {
		return h.Name == "faunadb"
	})).Return(primitive.NewObjectID(), nil)
	// tag inserted concurrently by another caller
	db.On("FindOne", mock.Anything, constants.HashtagsCollection, bson.M{"name": "mongo"}, mock.Anything).
		Return(errNoDocs).Once()
	db.On("InsertOne", mock.Anything, constants.HashtagsCollection, mock.MatchedBy(func(h models.Hashtag) bool {
		return h.Name == "mongo"
	})).Return(nil, errDuplicate)
	db.On("FindOne", mock.Anything, constants.HashtagsCollection, bson.M{"name": "mongo"}, mock.Anything).
		Run(func(args mock.Arguments) { *args.Get(3).(*models.Hashtag) = raced }).Return(nil).Once()

	repo, err := NewMongoHashtagRepository(db)
	require.NoError(t, err)

	got, err := repo.FindOrCreate(context.Background(), []string{"go", "faunadb", "mongo"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, existing, got[0])
	assert.Equal(t, "faunadb", got[1].Name)
	assert.False(t, got[1].ID.IsZero())
	assert.Equal(t, raced, got[2])
}

func TestRateLimitRepository_Record(t *testing.T) {
	now := time.Date(2020, 8, 14, 12, 0, 0, 0, time.UTC)
	filter := queries.RateLimitFilter("create_post", "acc", 5, 5*time.Minute, now)
	update := queries.RateLimitUpdate(5, now)
	dbErr := errors.New("connection reset")

	tests := []struct {
		name        string
		results     []error
		wantAllowed bool
		wantErr     bool
	}{
		{name: "first call inserts", results: []error{nil}, wantAllowed: true},
		{name: "lost first insert race then updates", results: []error{errDuplicate, nil}, wantAllowed: true},
		{name: "limit reached", results: []error{errDuplicate, errDuplicate}},
		{name: "database failure", results: []error{dbErr}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := mocks.NewMockDBClient(t)
			for _, result := range tt.results {
				db.On("UpsertOne", mock.Anything, constants.RateLimitCollection, filter, update).
					Return(result == nil, result).Once()
			}

			repo, err := NewMongoRateLimitRepository(db)
			require.NoError(t, err)

			allowed, err := repo.Record(context.Background(), "create_post", "acc", 5, 5*time.Minute, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, dbErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, allowed)
		})
	}
}

func TestRateLimitRepository_Record_InvalidRule(t *testing.T) {
	repo, err := NewMongoRateLimitRepository(mocks.NewMockDBClient(t))
	require.NoError(t, err)

	_, err = repo.Record(context.Background(), "login", "a@b.co", 0, 0, time.Now())
	assert.Error(t, err)
}

func TestRateLimitRepository_Reset(t *testing.T) {
	db := mocks.NewMockDBClient(t)
	db.On("DeleteOne", mock.Anything, constants.RateLimitCollection, queries.RateLimitKeyFilter("login", "a@b.co")).
		Return(int64(1), nil)

	repo, err := NewMongoRateLimitRepository(db)
	require.NoError(t, err)
	assert.NoError(t, repo.Reset(context.Background(), "login", "a@b.co"))
}

func TestTokenRepository(t *testing.T) {
	accountID := primitive.NewObjectID()
	token := models.Token{ID: "jti", AccountID: accountID, Role: "membershiprole_loggedin"}

	db := mocks.NewMockDBClient(t)
	db.On("InsertOne", mock.Anything, constants.TokensCollection, token).Return("jti", nil)
	db.On("FindOne", mock.Anything, constants.TokensCollection, bson.M{"_id": "jti"}, mock.Anything).
		Run(func(args mock.Arguments) { *args.Get(3).(*models.Token) = token }).Return(nil)
	db.On("FindOne", mock.Anything, constants.TokensCollection, bson.M{"_id": "revoked"}, mock.Anything).
		Return(errNoDocs)
	db.On("DeleteOne", mock.Anything, constants.TokensCollection, bson.M{"_id": "jti"}).Return(int64(1), nil)
	db.On("DeleteMany", mock.Anything, constants.TokensCollection, bson.M{"account_id": accountID}).Return(int64(3), nil)

	repo, err := NewMongoTokenRepository(db)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.AddToken(ctx, token))
	assert.Error(t, repo.AddToken(ctx, models.Token{}))

	got, err := repo.GetToken(ctx, "jti")
	require.NoError(t, err)
	assert.Equal(t, accountID, got.AccountID)

	_, err = repo.GetToken(ctx, "revoked")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	n, err := repo.DeleteToken(ctx, "jti")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteAccountTokens(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
