// Package session provides the Redis-backed session store that maps opaque
// session tokens to user identities.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stockfolio/stockfolio/internal/storage"
	"github.com/stockfolio/stockfolio/internal/types"
)

// ErrNotFound is returned when a token does not resolve to a session.
var ErrNotFound = types.NewServiceError(types.CodeUnauthenticated, "session not found or expired")

// Store resolves session tokens to user IDs. Injected into request handlers
// so tests can substitute an in-memory implementation.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// RedisStore is the production session store.
type RedisStore struct {
	redis *storage.RedisStore
	ttl   time.Duration
}

// NewRedisStore creates a session store with the given TTL.
func NewRedisStore(redis *storage.RedisStore, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create issues a fresh opaque token for the user.
func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()

	if err := s.redis.Set(ctx, sessionKey(token), userID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get resolves a token to its user ID, refreshing the TTL on use.
func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.redis.Get(ctx, sessionKey(token))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	// Sliding expiration: active sessions stay alive.
	if err := s.redis.Expire(ctx, sessionKey(token), s.ttl); err != nil {
		return "", fmt.Errorf("failed to refresh session: %w", err)
	}

	return userID, nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
