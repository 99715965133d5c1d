package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	// KEY_PREFIX namespaces every cached page.
	KEY_PREFIX   = "folio:page:"
	SCAN_COUNT   = 100
	PING_TIMEOUT = 5 * time.Second
)

// RedisCache stores rendered pages in Redis.
type RedisCache struct {
	client  *redis.Client
	logger  interfaces.Logger
	metrics interfaces.Metrics
}

// NewRedisCache connects to the configured Redis server.
func NewRedisCache(cfg config.CacheConfig, logger interfaces.Logger, m interfaces.Metrics) (*RedisCache, error) {
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})

	ctx, cancel := context.WithTimeout(context.Background(), PING_TIMEOUT)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("Connected to redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return NewRedisCacheWithClient(client, logger, m), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, logger interfaces.Logger, m interfaces.Metrics) *RedisCache {
	return &RedisCache{client: client, logger: logger, metrics: m}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, KEY_PREFIX+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.count(metrics.CacheMissesTotal)
		return nil, false, nil
	case err != nil:
		c.count(metrics.CacheErrorsTotal)
		return nil, false, fmt.Errorf("failed to read %s from cache: %w", key, err)
	}
	c.count(metrics.CacheHitsTotal)
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, KEY_PREFIX+key, value, ttl).Err(); err != nil {
		c.count(metrics.CacheErrorsTotal)
		return fmt.Errorf("failed to write %s to cache: %w", key, err)
	}
	return nil
}

// Invalidate deletes every cached page whose key starts with prefix.
func (c *RedisCache) Invalidate(ctx context.Context, prefix string) error {
	match := KEY_PREFIX + escapeGlob(prefix) + "*"

	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, SCAN_COUNT).Result()
		if err != nil {
			c.count(metrics.CacheErrorsTotal)
			return fmt.Errorf("failed to scan cache: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.count(metrics.CacheErrorsTotal)
				return fmt.Errorf("failed to invalidate cache: %w", err)
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Cache invalidated", "prefix", prefix, "removed", removed)
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) count(name string) {
	if c.metrics != nil {
		c.metrics.IncCounter(name)
	}
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NoopCache is used when caching is disabled. It never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NoopCache) Invalidate(context.Context, string) error                 { return nil }
func (NoopCache) Close() error                                             { return nil }

// New returns a Redis cache when enabled and a NoopCache otherwise.
func New(cfg config.CacheConfig, logger interfaces.Logger, m interfaces.Metrics) (interfaces.PageCache, error) {
	if !cfg.Enabled {
		return NoopCache{}, nil
	}
	return NewRedisCache(cfg, logger, m)
}
