package mongo

import (
	"errors"
	"fmt"

	"github.com/haguru/folio/internal/repository"

	mongosdk "go.mongodb.org/mongo-driver/mongo"
)

// translate maps driver errors onto the repository sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongosdk.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	case mongosdk.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", what, repository.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
