package rediscache

// Package rediscache provides a Redis-backed shared cache for list
// snapshots, so repeated invocations within the TTL skip the network
// round-trip to the backend.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/volops/voladmin/config"
	"github.com/volops/voladmin/internal/ports"
)

var _ ports.CacheRepository = (*Cache)(nil)

// Cache implements ports.CacheRepository over Redis. All keys share a
// prefix so a shared Redis instance stays tidy.
type Cache struct {
	client redis.UniversalClient
	prefix string
}

// New creates a cache with the default "voladmin:" key prefix.
func New(client redis.UniversalClient) *Cache {
	return &Cache{client: client, prefix: "voladmin:"}
}

// NewWithPrefix creates a cache with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// FromConfig dials Redis from the cache configuration. It returns nil
// when caching is disabled (no address configured).
func FromConfig(cfg config.CacheConfig) *Cache {
	if !cfg.Enabled() {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return New(client)
}

// Get returns the cached value, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set stores the value under the key with the given TTL. A non-positive
// TTL stores without expiration.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the key and reports whether it existed.
func (c *Cache) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Del(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
