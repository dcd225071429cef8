package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error)
	refreshFn  func(ctx context.Context, token string) (*domain.TokenPair, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Authenticate(string) (domain.Caller, error) {
	return domain.Caller{}, domain.ErrInvalidToken
}

// newJSONContext builds an echo context for a JSON request with the validator wired.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields[field]) == 0 {
		t.Fatalf("expected error on %s, got %v", field, verr.Fields)
	}
}

func expectHTTPCode(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected HTTP %d error, got %v", code, err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Username != "alice" || in.DateOfBirth == nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u-1", Email: in.Email, Username: in.Username, PasswordHash: "hash"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","username":"alice","password":"TestPass123!","date_of_birth":"1990-05-01"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user"]["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := resp["user"]["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/register", `{"email":"bob@example.com","username":"bob","password":"longenough"}`)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"short"}`)

	err := NewAuthHandler(stub).Register(c)
	expectFieldError(t, err, "email")
	expectFieldError(t, err, "username")
	expectFieldError(t, err, "password")
}

func TestAuthHandler_Register_OutOfRangeBody(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/register",
		`{"email":"carol@example.com","username":"carol","password":"longenough","height":1000,"weight":1234.5}`)

	err := NewAuthHandler(stub).Register(c)
	expectFieldError(t, err, "height")
	expectFieldError(t, err, "weight")
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{}
	c, _ := newJSONContext(http.MethodPost, "/auth/register", "not-json")

	expectHTTPCode(t, NewAuthHandler(stub).Register(c), http.StatusBadRequest)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.TokenPair, *domain.User, error) {
			if email != "test@example.com" || password != "TestPass123!" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.TokenPair{Access: "a", Refresh: "r"}, &domain.User{ID: "u-1", Email: email}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/auth/login", `{"email":"test@example.com","password":"TestPass123!"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		User   map[string]any    `json:"user"`
		Tokens map[string]string `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Tokens["access"] != "a" || resp.Tokens["refresh"] != "r" {
		t.Fatalf("unexpected tokens: %v", resp.Tokens)
	}
	if resp.User["email"] != "test@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.TokenPair, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/login", `{"email":"test@example.com","password":"WrongPass123!"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.TokenPair, *domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/auth/login", `{}`)

	err := NewAuthHandler(stub).Login(c)
	expectFieldError(t, err, "email")
	expectFieldError(t, err, "password")
}

func TestAuthHandler_Refresh(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, token string) (*domain.TokenPair, error) {
			if token != "old" {
				return nil, domain.ErrInvalidToken
			}
			return &domain.TokenPair{Access: "a2", Refresh: "r2"}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/auth/token/refresh", `{"refresh":"old"}`)
	if err := NewAuthHandler(stub).Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"refresh":"r2"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	c, _ = newJSONContext(http.MethodPost, "/auth/token/refresh", `{"refresh":"stale"}`)
	if err := NewAuthHandler(stub).Refresh(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	revoked := ""
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/auth/logout", `{"refresh":"r1"}`)

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || revoked != "r1" {
		t.Fatalf("expected 204 and r1 revoked, got %d %q", rec.Code, revoked)
	}
}
