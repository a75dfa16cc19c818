// Package cache wraps an optional Redis client used to memoize expensive
// dashboard aggregates. Every operation degrades to a miss or a no-op when
// Redis is not configured or unreachable; the database stays the source of
// truth.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/CaptnR/football-jersey-store/config"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Initialize connects to Redis when an address is configured.
func Initialize(cfg *config.RedisConfig) {
	if cfg.Addr == "" {
		log.Println("Redis not configured, dashboard caching disabled")
		return
	}
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis ping failed, caching disabled: %v", err)
		client = nil
	}
}

// GetJSON loads a cached value into dest. Returns false on miss or any error.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: Redis GET %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("Warning: corrupt cache entry %s dropped: %v", key, err)
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value with a TTL. Failures are logged, never surfaced.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Warning: could not marshal cache entry %s: %v", key, err)
		return
	}
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("Warning: Redis SET %s failed: %v", key, err)
	}
}

// Invalidate removes keys after a write that makes them stale.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Warning: Redis DEL failed: %v", err)
	}
}

// Close releases the Redis connection.
func Close() {
	if client != nil {
		if err := client.Close(); err != nil {
			log.Printf("Warning: Redis close failed: %v", err)
		}
		client = nil
	}
}
