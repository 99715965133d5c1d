package queries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2020, 8, 14, 10, 30, 0, 123000000, time.UTC)
	id := primitive.NewObjectID()

	encoded := EncodeCursor(created, id)
	gotCreated, gotID, err := DecodeCursor(encoded)

	require.NoError(t, err)
	assert.True(t, created.Equal(gotCreated))
	assert.Equal(t, id, gotID)
	assert.NotContains(t, encoded, "=")
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "%%%"},
		{"not json", "bm90LWpzb24"},
		{"bad object id", "eyJjIjoxLCJpZCI6Inh5eiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeCursor(tt.cursor)
			assert.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}

func TestPage_Limit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Page{}.Limit())
	assert.Equal(t, DefaultPageSize, Page{Size: -3}.Limit())
	assert.Equal(t, 7, Page{Size: 7}.Limit())
	assert.Equal(t, MaxPageSize, Page{Size: 500}.Limit())
}
