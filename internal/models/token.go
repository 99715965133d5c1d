package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token is the server side record of an issued session secret.
// ID is the JWT id, so deleting the document revokes the secret.
type Token struct {
	ID        string             `bson:"_id"`
	AccountID primitive.ObjectID `bson:"account_id"`
	Role      string             `bson:"role"`
	Created   time.Time          `bson:"created"`
	Expires   time.Time          `bson:"expires"`
}
