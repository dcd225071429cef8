package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

type stubTokenStore struct {
	live map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{live: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, jti, userID string, _ time.Duration) error {
	s.live[jti] = userID
	return nil
}

func (s *stubTokenStore) Consume(_ context.Context, jti string) (string, error) {
	userID, ok := s.live[jti]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.live, jti)
	return userID, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.live, jti)
	return nil
}

func newAuthSvc(repo *stubAuthRepo, store *stubTokenStore) *AuthService {
	return NewAuthService(repo, store, TokenConfig{Secret: "secret", AccessTTL: time.Minute, RefreshTTL: time.Hour}, zerolog.Nop())
}

func registerUser(t *testing.T, svc *AuthService, email, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    email,
		Username: email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "  Alice@Example.com ",
		Username:  "alice",
		Password:  "pass123",
		FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())

	_, err := svc.Register(context.Background(), ports.RegisterInput{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range []string{"email", "username", "password"} {
		if len(verr.Fields[f]) == 0 {
			t.Errorf("expected error on %s", f)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())

	registerUser(t, svc, "bob@example.com", "pass")
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "bob@example.com", Username: "bob2", Password: "pass2",
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubTokenStore()
	svc := newAuthSvc(newStubAuthRepo(), store)
	registered := registerUser(t, svc, "carol@example.com", "s3cret")

	pair, user, err := svc.Login(context.Background(), "Carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(store.live) != 1 {
		t.Fatalf("expected refresh jti stored, got %d", len(store.live))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(pair.Access, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID || claims["email"] != "carol@example.com" || claims["token_type"] != "access" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())
	registerUser(t, svc, "dave@example.com", "goodpass")

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())
	user := registerUser(t, svc, "erin@example.com", "pw")
	pair, _, err := svc.Login(context.Background(), "erin@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	caller, err := svc.Authenticate(pair.Access)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if caller.UserID != user.ID || caller.Email != "erin@example.com" {
		t.Fatalf("unexpected caller: %+v", caller)
	}

	if _, err := svc.Authenticate(pair.Refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected refresh token rejected as access token, got %v", err)
	}
	if _, err := svc.Authenticate("garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo(), newStubTokenStore())
	registerUser(t, svc, "frank@example.com", "pw")
	pair, _, err := svc.Login(context.Background(), "frank@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := svc.Authenticate(pair.Access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
}

func TestAuthService_Refresh_Rotates(t *testing.T) {
	store := newStubTokenStore()
	svc := newAuthSvc(newStubAuthRepo(), store)
	registerUser(t, svc, "gina@example.com", "pw")
	pair, _, err := svc.Login(context.Background(), "gina@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.Refresh == pair.Refresh {
		t.Fatalf("expected a new refresh token")
	}
	if _, err := svc.Refresh(context.Background(), pair.Refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected reused refresh token rejected, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.Access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected access token rejected for refresh, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	store := newStubTokenStore()
	svc := newAuthSvc(newStubAuthRepo(), store)
	registerUser(t, svc, "hank@example.com", "pw")
	pair, _, err := svc.Login(context.Background(), "hank@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.Refresh); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.Refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected revoked token rejected, got %v", err)
	}
}
