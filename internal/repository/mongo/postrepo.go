package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPostRepository implements PostRepository using the generic DBClient.
type MongoPostRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoPostRepository creates a new post repository instance.
func NewMongoPostRepository(dbClient interfaces.DBClient) (interfaces.PostRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoPostRepository{dbClient: dbClient}, nil
}

// AddPost saves a new post. A taken slug yields repository.ErrDuplicate.
func (r *MongoPostRepository) AddPost(ctx context.Context, post models.Post) (*models.Post, error) {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if post.Created.IsZero() {
		post.Created = now
	}
	if post.Updated.IsZero() {
		post.Updated = post.Created
	}
	if post.Hashtags == nil {
		post.Hashtags = []primitive.ObjectID{}
	}

	if _, err := r.dbClient.InsertOne(ctx, constants.PostsCollection, post); err != nil {
		return nil, translate(err, fmt.Sprintf("failed to add post '%s'", post.Slug))
	}
	return &post, nil
}

// GetPostWithAuthor reads a post by id with its references resolved.
func (r *MongoPostRepository) GetPostWithAuthor(ctx context.Context, id primitive.ObjectID) (*models.PostWithAuthor, error) {
	return r.one(ctx, queries.PostByIDPipeline(id), "failed to get post by id")
}

// GetPostBySlug reads a post by slug with its references resolved.
func (r *MongoPostRepository) GetPostBySlug(ctx context.Context, slug string) (*models.PostWithAuthor, error) {
	if len(slug) == 0 || len(slug) > constants.MAXLENGTH_SLUG {
		return nil, fmt.Errorf("invalid slug: must be between 1 and %d characters: %w", constants.MAXLENGTH_SLUG, repository.ErrNotFound)
	}
	return r.one(ctx, queries.PostBySlugPipeline(slug), "failed to get post by slug")
}

func (r *MongoPostRepository) ListPosts(ctx context.Context, page queries.Page) (*models.PostPage, error) {
	return r.list(ctx, queries.AllPostsFilter(), page)
}

// ListPostsByHashtag lists the posts referencing the hashtag.
func (r *MongoPostRepository) ListPostsByHashtag(ctx context.Context, hashtagID primitive.ObjectID, page queries.Page) (*models.PostPage, error) {
	return r.list(ctx, queries.PostsByHashtagFilter(hashtagID), page)
}

func (r *MongoPostRepository) ListPostsByAuthor(ctx context.Context, authorID primitive.ObjectID, page queries.Page) (*models.PostPage, error) {
	return r.list(ctx, queries.PostsByAuthorFilter(authorID), page)
}

// IncrementViews bumps the view counter of a post.
func (r *MongoPostRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	matched, err := r.dbClient.UpdateOne(ctx, constants.PostsCollection,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return translate(err, "failed to increment views")
	}
	if matched == 0 {
		return fmt.Errorf("post %s: %w", id.Hex(), repository.ErrNotFound)
	}
	return nil
}

// ListSlugs returns every slug, newest post first.
func (r *MongoPostRepository) ListSlugs(ctx context.Context) ([]string, error) {
	var rows []struct {
		Slug string `bson:"slug"`
	}
	opts := interfaces.FindOptions{
		Sort:       queries.PostSort(),
		Projection: bson.D{{Key: "slug", Value: 1}},
	}
	if err := r.dbClient.FindMany(ctx, constants.PostsCollection, bson.D{}, opts, &rows); err != nil {
		return nil, translate(err, "failed to list slugs")
	}

	slugs := make([]string, 0, len(rows))
	for _, row := range rows {
		slugs = append(slugs, row.Slug)
	}
	return slugs, nil
}

// EnsureIndices creates the slug, listing, author and hashtag indexes.
func (r *MongoPostRepository) EnsureIndices(ctx context.Context) error {
	indexModels := []mongosdk.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created", Value: -1}}},
		{Keys: bson.D{{Key: "hashtags", Value: 1}}},
	}
	for _, model := range indexModels {
		if err := r.dbClient.EnsureSchema(ctx, constants.PostsCollection, model); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoPostRepository) one(ctx context.Context, pipeline mongosdk.Pipeline, what string) (*models.PostWithAuthor, error) {
	var rows []models.PostWithAuthor
	if err := r.dbClient.Aggregate(ctx, constants.PostsCollection, pipeline, &rows); err != nil {
		return nil, translate(err, what)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	}
	return &rows[0], nil
}

func (r *MongoPostRepository) list(ctx context.Context, match bson.D, page queries.Page) (*models.PostPage, error) {
	pipeline, err := queries.PostsWithAuthorsPipeline(match, page)
	if err != nil {
		return nil, err
	}

	var rows []models.PostWithAuthor
	if err := r.dbClient.Aggregate(ctx, constants.PostsCollection, pipeline, &rows); err != nil {
		return nil, translate(err, "failed to list posts")
	}

	items, next := queries.SplitPage(rows, page, func(p models.PostWithAuthor) (time.Time, primitive.ObjectID) {
		return p.Post.Created, p.Post.ID
	})
	if items == nil {
		items = []models.PostWithAuthor{}
	}
	return &models.PostPage{Items: items, Next: next}, nil
}
