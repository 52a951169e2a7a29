package api

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Cache key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// listCacheTTL bounds how stale a cached listing may get
const listCacheTTL = 60 * time.Second

// plantsCacheKey is the cache key for a user's plant list
func plantsCacheKey(userID uint) string {
	return "plants:user:" + strconv.Itoa(int(userID))
}

// entriesCacheKey is the cache key for a plant's entry list
func entriesCacheKey(plantID uint) string {
	return "entries:plant:" + strconv.Itoa(int(plantID))
}

// getCache retrieves a value from Redis and unmarshals it into dest. A nil
// client disables caching (used by tests).
func getCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// setCache sets a value in Redis with a specified TTL
func setCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// deleteCache deletes a key from Redis
func deleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}
