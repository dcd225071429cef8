package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

// AuthService implements registration, login and refresh-token rotation.
type AuthService struct {
	repo   ports.AuthRepository
	store  ports.TokenStore
	tokens *tokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, store ports.TokenStore, cfg TokenConfig, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, store: store, tokens: newTokenIssuer(cfg), logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	verr := &domain.ValidationError{}
	if email == "" {
		verr.Add("email", "This field is required.")
	}
	if strings.TrimSpace(in.Username) == "" {
		verr.Add("username", "This field is required.")
	}
	if in.Password == "" {
		verr.Add("password", "This field is required.")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     strings.TrimSpace(in.Username),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		DateOfBirth:  in.DateOfBirth,
		Height:       in.Height,
		Weight:       in.Weight,
		Gender:       in.Gender,
		FitnessGoal:  in.FitnessGoal,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks the credentials and mints a token pair. Unknown emails and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a live refresh token for a new pair. The presented token
// is consumed and cannot be used again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := s.store.Consume(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if userID != claims.Subject {
		s.logger.Warn().Str("jti", claims.ID).Msg("refresh token subject mismatch")
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return s.issue(ctx, user)
}

// Logout revokes the refresh token. Access tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}
	return s.store.Revoke(ctx, claims.ID)
}

func (s *AuthService) Authenticate(accessToken string) (domain.Caller, error) {
	claims, err := s.tokens.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return domain.Caller{}, err
	}
	return domain.Caller{UserID: claims.Subject, Email: claims.Email}, nil
}

func (s *AuthService) issue(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, jti, err := s.tokens.issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, jti, user.ID, s.tokens.refreshTTL); err != nil {
		return nil, err
	}
	return pair, nil
}
