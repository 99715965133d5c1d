package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHashtagRepository implements HashtagRepository using the generic DBClient.
type MongoHashtagRepository struct {
	dbClient interfaces.DBClient
}

func NewMongoHashtagRepository(dbClient interfaces.DBClient) (interfaces.HashtagRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoHashtagRepository{dbClient: dbClient}, nil
}

// GetHashtagByName looks up a hashtag by its normalised name.
func (r *MongoHashtagRepository) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	if len(name) == 0 || len(name) > constants.MAXLENGTH_HASHTAG {
		return nil, fmt.Errorf("invalid hashtag: must be between 1 and %d characters: %w", constants.MAXLENGTH_HASHTAG, repository.ErrNotFound)
	}

	var hashtag models.Hashtag
	if err := r.dbClient.FindOne(ctx, constants.HashtagsCollection, bson.M{"name": name}, &hashtag); err != nil {
		return nil, translate(err, "failed to get hashtag")
	}
	return &hashtag, nil
}

// FindOrCreate returns the hashtags named by names, in order, creating the
// missing ones. A concurrent insert of the same name is resolved by reading
// the winner back.
func (r *MongoHashtagRepository) FindOrCreate(ctx context.Context, names []string) ([]models.Hashtag, error) {
	hashtags := make([]models.Hashtag, 0, len(names))
	for _, name := range names {
		hashtag, err := r.GetHashtagByName(ctx, name)
		if err == nil {
			hashtags = append(hashtags, *hashtag)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		created := models.Hashtag{ID: primitive.NewObjectID(), Name: name}
		_, err = r.dbClient.InsertOne(ctx, constants.HashtagsCollection, created)
		if err == nil {
			hashtags = append(hashtags, created)
			continue
		}
		if !mongosdk.IsDuplicateKeyError(err) {
			return nil, translate(err, fmt.Sprintf("failed to add hashtag '%s'", name))
		}

		hashtag, err = r.GetHashtagByName(ctx, name)
		if err != nil {
			return nil, err
		}
		hashtags = append(hashtags, *hashtag)
	}
	return hashtags, nil
}

// EnsureIndices creates the unique name index.
func (r *MongoHashtagRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, constants.HashtagsCollection, indexModel)
}
