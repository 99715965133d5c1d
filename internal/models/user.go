package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the public profile an account writes posts as.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Alias   string             `bson:"alias,omitempty" json:"alias,omitempty"`
	Icon    string             `bson:"icon" json:"icon"`
	Created time.Time          `bson:"created" json:"created"`
}

// NewUser creates a new User instance with the given name, alias and icon.
// Note: No validation is performed here.
func NewUser(name, alias, icon string, created time.Time) *User {
	return &User{
		Name:    name,
		Alias:   alias,
		Icon:    icon,
		Created: created,
	}
}
