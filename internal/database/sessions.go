package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps sessions in Redis keyed by session ID, with the
// TTL matching the token expiry so stale entries clean themselves up.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new RedisSessionStore instance
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Save records a session.
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(sessionID), userID.String(), ttl).Err()
}

// Exists reports whether the session is still live.
func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the session; logging out an unknown session is not an
// error.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
