package ports

import (
	"context"
	"time"

	"github.com/fitlog/workout-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	DateOfBirth *time.Time
	Height      *float64
	Weight      *float64
	Gender      string
	FitnessGoal *string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	// Authenticate validates an access token and returns its caller.
	Authenticate(accessToken string) (domain.Caller, error)
}
