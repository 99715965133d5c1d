package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account holds login credentials. It optionally points at a User.
type Account struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	UserID         primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Created        time.Time          `bson:"created" json:"created"`
}

// NewAccount creates a new Account instance with the given email and password hash.
// Note: No validation is performed here.
func NewAccount(email, hashedPassword string, created time.Time) *Account {
	return &Account{
		Email:          email,
		HashedPassword: hashedPassword,
		Created:        created,
	}
}
