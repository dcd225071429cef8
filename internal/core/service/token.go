package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fitlog/workout-api/internal/core/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenConfig holds the signing secret and lifetimes of issued tokens.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type tokenClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func newTokenIssuer(cfg TokenConfig) *tokenIssuer {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 24 * time.Hour
	}
	return &tokenIssuer{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// issue mints an access/refresh pair for user and returns the refresh jti.
func (t *tokenIssuer) issue(user *domain.User) (*domain.TokenPair, string, error) {
	access, _, err := t.sign(user, tokenTypeAccess, t.accessTTL)
	if err != nil {
		return nil, "", err
	}
	refresh, jti, err := t.sign(user, tokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return nil, "", err
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, jti, nil
}

func (t *tokenIssuer) sign(user *domain.User, tokenType string, ttl time.Duration) (string, string, error) {
	now := t.now()
	jti := uuid.NewString()
	claims := tokenClaims{
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, jti, nil
}

// parse validates raw and checks it is of the expected type.
func (t *tokenIssuer) parse(raw, tokenType string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != tokenType || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
