// Package cache provides a Redis-backed cache for product search results.
// A nil *Cache is a valid no-op instance, used when REDIS_URL is not set.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"commerce_agent_backend/internal/catalog/transport"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized search results keyed by a query signature.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a cache from a Redis URL.
func New(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Cache{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

// Get returns the cached result for a key, if present. Cache errors are
// treated as misses; the store remains the source of truth.
func (c *Cache) Get(ctx context.Context, key string) ([]transport.ProductResponse, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var items []transport.ProductResponse
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Set stores a result under a key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, items []transport.ProductResponse) {
	if c == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
