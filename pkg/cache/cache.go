// Package cache is a small JSON cache over Redis used for the public menu
// listing.
//
// It degrades to a no-op when Redis is unreachable at startup: the client
// stays nil and every operation reports a miss, so callers fall through to
// the document store without special-casing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
)

var rdb *redis.Client

// Connect dials Redis and verifies it with a ping. On error the package
// stays in no-op mode; the caller decides whether that is fatal.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	rdb = client
	return nil
}

// Get unmarshals the cached value under key into dest.
// Reports true only on a hit that decodes cleanly.
func Get(key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}

	raw, err := rdb.Get(context.Background(), key).Bytes()
	if err == nil && json.Unmarshal(raw, dest) == nil {
		metrics.CacheHits.Inc()
		return true
	}

	metrics.CacheMisses.Inc()
	return false
}

// Set stores value as JSON under key with the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return rdb.Set(context.Background(), key, data, ttl).Err()
}

// Del removes keys. Used by menu writes to invalidate the listing.
func Del(keys ...string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), keys...).Err()
}
