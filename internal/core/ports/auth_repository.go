package ports

import (
	"context"
	"time"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// TokenStore tracks the refresh tokens that are still allowed to be used.
type TokenStore interface {
	// Save registers jti for userID until ttl elapses.
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	// Consume atomically removes jti and returns the user it was issued to.
	// It returns domain.ErrInvalidToken when jti is unknown or already used.
	Consume(ctx context.Context, jti string) (string, error)
	// Revoke removes jti. Revoking an unknown jti is not an error.
	Revoke(ctx context.Context, jti string) error
}
