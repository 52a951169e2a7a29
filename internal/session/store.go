package session

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel errors
	"strconv" // User id encoding
	"time"    // Session TTL

	"github.com/google/uuid"       // Session identifiers
	"github.com/redis/go-redis/v9" // Redis client
)

// ErrNotFound is returned when a session id has no live record, either
// because it never existed, was logged out, or expired.
var ErrNotFound = errors.New("session: not found")

// Manager tracks live sessions. A session exists from login until logout or
// expiry; deleting the record is what makes logout take effect immediately.
type Manager interface {
	Create(ctx context.Context, userID uint) (string, error)
	UserID(ctx context.Context, id string) (uint, error)
	Delete(ctx context.Context, id string) error
}

// redisManager implements Manager on Redis with a per-session TTL
type redisManager struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Session lifetime
}

// NewRedisManager returns a Manager storing sessions in Redis
func NewRedisManager(rdb *redis.Client, ttl time.Duration) Manager {
	return &redisManager{rdb: rdb, ttl: ttl}
}

// key builds the Redis key for a session id
func key(id string) string {
	return "session:" + id
}

// Create stores a new session record for the user and returns its id
func (m *redisManager) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString() // Random session identifier
	val := strconv.FormatUint(uint64(userID), 10)
	if err := m.rdb.Set(ctx, key(id), val, m.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// UserID resolves a session id to the owning user id
func (m *redisManager) UserID(ctx context.Context, id string) (uint, error) {
	val, err := m.rdb.Get(ctx, key(id)).Result() // Get session record
	if err == redis.Nil {
		return 0, ErrNotFound // Session does not exist
	} else if err != nil {
		return 0, err // Other Redis error
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound // Corrupt record, treat as missing
	}
	return uint(userID), nil
}

// Delete removes a session record, invalidating any token bound to it
func (m *redisManager) Delete(ctx context.Context, id string) error {
	return m.rdb.Del(ctx, key(id)).Err()
}
