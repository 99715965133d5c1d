package mongo

import (
	"context"
	"fmt"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTokenRepository implements TokenRepository using the generic DBClient.
type MongoTokenRepository struct {
	dbClient interfaces.DBClient
}

func NewMongoTokenRepository(dbClient interfaces.DBClient) (interfaces.TokenRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoTokenRepository{dbClient: dbClient}, nil
}

func (r *MongoTokenRepository) AddToken(ctx context.Context, token models.Token) error {
	if token.ID == "" {
		return fmt.Errorf("token id cannot be empty")
	}
	if _, err := r.dbClient.InsertOne(ctx, constants.TokensCollection, token); err != nil {
		return translate(err, "failed to add token")
	}
	return nil
}

func (r *MongoTokenRepository) GetToken(ctx context.Context, id string) (*models.Token, error) {
	var token models.Token
	if err := r.dbClient.FindOne(ctx, constants.TokensCollection, bson.M{"_id": id}, &token); err != nil {
		return nil, translate(err, "failed to get token")
	}
	return &token, nil
}

// DeleteToken revokes a single session secret.
func (r *MongoTokenRepository) DeleteToken(ctx context.Context, id string) (int64, error) {
	n, err := r.dbClient.DeleteOne(ctx, constants.TokensCollection, bson.M{"_id": id})
	if err != nil {
		return 0, translate(err, "failed to delete token")
	}
	return n, nil
}

// DeleteAccountTokens revokes every session secret of an account.
func (r *MongoTokenRepository) DeleteAccountTokens(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	n, err := r.dbClient.DeleteMany(ctx, constants.TokensCollection, bson.M{"account_id": accountID})
	if err != nil {
		return 0, translate(err, "failed to delete account tokens")
	}
	return n, nil
}

// EnsureIndices lets the server expire tokens and indexes them by account.
func (r *MongoTokenRepository) EnsureIndices(ctx context.Context) error {
	ttl := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "expires", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if err := r.dbClient.EnsureSchema(ctx, constants.TokensCollection, ttl); err != nil {
		return err
	}

	byAccount := mongosdk.IndexModel{Keys: bson.D{{Key: "account_id", Value: 1}}}
	return r.dbClient.EnsureSchema(ctx, constants.TokensCollection, byAccount)
}
