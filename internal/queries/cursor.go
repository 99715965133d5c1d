package queries

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

var ErrInvalidCursor = errors.New("invalid cursor")

// cursor is the sort key of the last item of a page.
type cursor struct {
	Created int64  `json:"c"`
	ID      string `json:"id"`
}

// Page requests the posts that come after the After cursor.
type Page struct {
	After string
	Size  int
}

// Limit clamps Size to [1, MaxPageSize], defaulting to DefaultPageSize.
func (p Page) Limit() int {
	switch {
	case p.Size <= 0:
		return DefaultPageSize
	case p.Size > MaxPageSize:
		return MaxPageSize
	default:
		return p.Size
	}
}

// EncodeCursor returns an opaque, URL safe cursor for a post sort key.
func EncodeCursor(created time.Time, id primitive.ObjectID) string {
	b, _ := json.Marshal(cursor{
		Created: created.UnixMilli(),
		ID:      id.Hex(),
	})
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(s string) (time.Time, primitive.ObjectID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var c cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return time.UnixMilli(c.Created).UTC(), oid, nil
}
