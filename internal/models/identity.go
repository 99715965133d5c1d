package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Identity is the caller a secret resolves to.
type Identity struct {
	Role      string
	AccountID primitive.ObjectID
	UserID    primitive.ObjectID
	TokenID   string
	// RemoteAddr identifies anonymous callers for rate limiting.
	RemoteAddr string
}

// LoggedIn reports whether the identity belongs to an account session.
func (i Identity) LoggedIn() bool {
	return !i.AccountID.IsZero()
}

// Key is the identity used for per caller bookkeeping.
func (i Identity) Key() string {
	if i.LoggedIn() {
		return i.AccountID.Hex()
	}
	if i.RemoteAddr != "" {
		return i.Role + ":" + i.RemoteAddr
	}
	return i.Role
}
