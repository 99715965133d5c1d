package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository/constants"

	"go.mongodb.org/mongo-driver/bson"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRateLimitRepository implements RateLimitRepository using the generic DBClient.
type MongoRateLimitRepository struct {
	dbClient interfaces.DBClient
}

func NewMongoRateLimitRepository(dbClient interfaces.DBClient) (interfaces.RateLimitRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoRateLimitRepository{dbClient: dbClient}, nil
}

// Record pushes a call onto the record of identity for action in a single
// upsert. The filter only matches while a call is allowed; otherwise the
// upsert tries to insert a second record for the same key and the unique
// index rejects it. The first duplicate is retried once since two first
// calls may race on the insert.
func (r *MongoRateLimitRepository) Record(ctx context.Context, action, identity string, calls int, per time.Duration, now time.Time) (bool, error) {
	if calls < 1 {
		return false, fmt.Errorf("invalid rate limit for %s: calls must be at least 1", action)
	}

	filter := queries.RateLimitFilter(action, identity, calls, per, now)
	update := queries.RateLimitUpdate(calls, now)

	for attempt := 0; attempt < 2; attempt++ {
		_, err := r.dbClient.UpsertOne(ctx, constants.RateLimitCollection, filter, update)
		if err == nil {
			return true, nil
		}
		if !mongosdk.IsDuplicateKeyError(err) {
			return false, translate(err, "failed to record call")
		}
	}
	return false, nil
}

// Reset clears the calls recorded for identity on action.
func (r *MongoRateLimitRepository) Reset(ctx context.Context, action, identity string) error {
	if _, err := r.dbClient.DeleteOne(ctx, constants.RateLimitCollection, queries.RateLimitKeyFilter(action, identity)); err != nil {
		return translate(err, "failed to reset rate limit")
	}
	return nil
}

// EnsureIndices creates the unique key the atomic upsert relies on.
func (r *MongoRateLimitRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "action", Value: 1}, {Key: "identity", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, constants.RateLimitCollection, indexModel)
}
