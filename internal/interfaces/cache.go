package interfaces

import (
	"context"
	"time"
)

// PageCache stores rendered pages and listings by key.
type PageCache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate removes every key that starts with prefix.
	Invalidate(ctx context.Context, prefix string) error
	Close() error
}
