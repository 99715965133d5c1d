package queries

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// RateLimitFilter matches the rate limit record of identity for action only
// while another call is allowed: fewer than calls events are recorded, or
// the oldest of the last calls events left the window. per == 0 disables
// the window so only a reset clears the record.
func RateLimitFilter(action, identity string, calls int, per time.Duration, now time.Time) bson.D {
	allowed := bson.A{
		bson.D{{Key: fmt.Sprintf("events.%d", calls-1), Value: bson.D{{Key: "$exists", Value: false}}}},
	}
	if per > 0 {
		allowed = append(allowed, bson.D{{Key: "events.0", Value: bson.D{{Key: "$lte", Value: now.Add(-per)}}}})
	}

	return bson.D{
		{Key: "action", Value: action},
		{Key: "identity", Value: identity},
		{Key: "$or", Value: allowed},
	}
}

// RateLimitUpdate records a call at now, keeping only the last calls events.
func RateLimitUpdate(calls int, now time.Time) bson.D {
	return bson.D{
		{Key: "$push", Value: bson.M{"events": bson.M{
			"$each":  bson.A{now},
			"$slice": -calls,
		}}},
		{Key: "$set", Value: bson.M{"updated": now}},
	}
}

// RateLimitKeyFilter matches the record regardless of its events.
func RateLimitKeyFilter(action, identity string) bson.D {
	return bson.D{
		{Key: "action", Value: action},
		{Key: "identity", Value: identity},
	}
}
