package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fitlog/workout-api/internal/core/domain"
)

func newTestStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStore_SaveConsume(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "jti-1", "user-1", time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if ttl := mr.TTL("refresh:jti-1"); ttl != time.Hour {
		t.Fatalf("expected ttl of 1h, got %v", ttl)
	}

	userID, err := store.Consume(ctx, "jti-1")
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}

	if _, err := store.Consume(ctx, "jti-1"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected second consume to fail with ErrInvalidToken, got %v", err)
	}
}

func TestTokenStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "jti-2", "user-2", time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Consume(ctx, "jti-2"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
}

func TestTokenStore_Revoke(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "jti-3", "user-3", time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Revoke(ctx, "jti-3"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := store.Revoke(ctx, "unknown"); err != nil {
		t.Fatalf("revoking an unknown jti should not fail: %v", err)
	}
	if _, err := store.Consume(ctx, "jti-3"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected revoked token rejected, got %v", err)
	}
}

func TestTokenStore_ConnectionError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Consume(context.Background(), "jti")
	if err == nil || errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected a connection error, got %v", err)
	}
}
