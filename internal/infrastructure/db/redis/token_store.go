package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// TokenStore keeps the allowlist of live refresh tokens.
// Key format: refresh:<jti> -> user id, expiring with the token.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Save allows jti to be exchanged once until ttl elapses.
func (s *TokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume removes jti and returns its owner. GETDEL makes concurrent
// exchanges of the same token race-free: only one caller sees the value.
func (s *TokenStore) Consume(ctx context.Context, jti string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return userID, nil
}

func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, s.key(jti)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(jti string) string {
	return "refresh:" + jti
}
