package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kebab-sayank-be/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON encoded values with a time to live.
type Cache interface {
	// GetJSON decodes the value stored under key into dest and reports
	// whether it was found.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

const dialTimeout = 2 * time.Second

// NewClient builds a redis client, or returns nil when addr is empty.
func NewClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: dialTimeout,
		ReadTimeout: dialTimeout,
	})
}

type RedisCache struct {
	rdb  *redis.Client
	name string
}

// NewRedisCache wraps rdb. A nil client yields a cache that always misses.
func NewRedisCache(rdb *redis.Client, name string) *RedisCache {
	return &RedisCache{rdb: rdb, name: name}
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return true, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *RedisCache) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if c.rdb == nil {
		return true, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.rdb.SetNX(ctx, key, data, ttl).Result()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Nop is a Cache that stores nothing.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, any) (bool, error)              { return false, nil }
func (Nop) SetJSON(context.Context, string, any, time.Duration) error       { return nil }
func (Nop) SetNX(context.Context, string, any, time.Duration) (bool, error) { return true, nil }
func (Nop) Del(context.Context, ...string) error                            { return nil }
