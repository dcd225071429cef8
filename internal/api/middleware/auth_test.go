package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/core/domain"
)

type stubAuthenticator struct {
	tokens map[string]domain.Caller
}

func (s stubAuthenticator) Authenticate(token string) (domain.Caller, error) {
	caller, ok := s.tokens[token]
	if !ok {
		return domain.Caller{}, domain.ErrInvalidToken
	}
	return caller, nil
}

var authn = stubAuthenticator{tokens: map[string]domain.Caller{
	"good-token": {UserID: "user-1", Email: "alice@example.com"},
}}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(authn)(func(c echo.Context) error {
		called = true
		caller, ok := CallerFrom(c)
		if !ok {
			t.Fatalf("caller not set")
		}
		if caller.UserID != "user-1" || caller.Email != "alice@example.com" {
			t.Fatalf("unexpected caller: %+v", caller)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token good-token"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth(authn)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestCallerFrom_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := CallerFrom(c); ok {
		t.Fatalf("expected no caller")
	}
}
