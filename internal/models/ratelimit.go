package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateLimit records the most recent calls of one identity to one action.
type RateLimit struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Action   string             `bson:"action"`
	Identity string             `bson:"identity"`
	Events   []time.Time        `bson:"events"`
	Updated  time.Time          `bson:"updated"`
}
