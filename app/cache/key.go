// Package cache provides the Redis-backed cache of known API keys.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyCachePrefix = "records:key:"

// KeyCache remembers digests of keys that validated successfully. Keys are
// never revoked, so only positive answers are cached and entries simply
// expire after the configured TTL.
type KeyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis using a redis:// URL and verifies the connection.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*KeyCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *KeyCache {
	return &KeyCache{client: client, ttl: ttl}
}

// IsKnown reports whether the digest was cached as a valid key.
func (c *KeyCache) IsKnown(ctx context.Context, keyHash string) (bool, error) {
	n, err := c.client.Exists(ctx, keyCachePrefix+keyHash).Result()
	if err != nil {
		return false, fmt.Errorf("key cache lookup: %w", err)
	}
	return n > 0, nil
}

func (c *KeyCache) Remember(ctx context.Context, keyHash string) error {
	if err := c.client.Set(ctx, keyCachePrefix+keyHash, 1, c.ttl).Err(); err != nil {
		return fmt.Errorf("key cache store: %w", err)
	}
	return nil
}

func (c *KeyCache) Close() error {
	return c.client.Close()
}
