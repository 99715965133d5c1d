package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepository implements AccountRepository using the generic DBClient.
type MongoAccountRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoAccountRepository creates a new account repository instance.
func NewMongoAccountRepository(dbClient interfaces.DBClient) (interfaces.AccountRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoAccountRepository{dbClient: dbClient}, nil
}

// AddAccount saves a new account. A taken email yields repository.ErrDuplicate.
func (r *MongoAccountRepository) AddAccount(ctx context.Context, account models.Account) (*models.Account, error) {
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	if account.Created.IsZero() {
		account.Created = time.Now().UTC()
	}

	if _, err := r.dbClient.InsertOne(ctx, constants.AccountsCollection, account); err != nil {
		return nil, translate(err, fmt.Sprintf("failed to add account '%s'", account.Email))
	}
	return &account, nil
}

// GetAccountByEmail looks an account up by its normalised email. An email
// no account could have been stored with is simply not found.
func (r *MongoAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	if len(email) == 0 || len(email) > constants.MAXLENGTH_EMAIL {
		return nil, fmt.Errorf("email must be between 1 and %d characters: %w", constants.MAXLENGTH_EMAIL, repository.ErrNotFound)
	}

	var account models.Account
	err := r.dbClient.FindOne(ctx, constants.AccountsCollection, bson.M{"email": email}, &account)
	if err != nil {
		return nil, translate(err, "failed to get account by email")
	}
	return &account, nil
}

// EnsureIndices creates the unique email index.
func (r *MongoAccountRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, constants.AccountsCollection, indexModel)
}
