package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository using the generic DBClient.
type MongoUserRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoUserRepository creates a new MongoDB repository instance.
func NewMongoUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoUserRepository{dbClient: dbClient}, nil
}

// AddUser saves a new user. A taken alias yields repository.ErrDuplicate.
func (r *MongoUserRepository) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Created.IsZero() {
		user.Created = time.Now().UTC()
	}

	if _, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, user); err != nil {
		return nil, translate(err, fmt.Sprintf("failed to add user '%s'", user.Name))
	}
	return &user, nil
}

// GetUserByID retrieves a user from MongoDB via DBClient.
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.dbClient.FindOne(ctx, constants.UsersCollection, bson.M{"_id": id}, &user); err != nil {
		return nil, translate(err, "failed to get user by id")
	}
	return &user, nil
}

// EnsureIndices creates a unique index on alias. It is sparse since the
// alias is optional.
func (r *MongoUserRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "alias", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	return r.dbClient.EnsureSchema(ctx, constants.UsersCollection, indexModel)
}
