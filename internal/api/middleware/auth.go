package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/core/domain"
)

const callerKey = "caller"

// Authenticator resolves an access token to the caller it was issued to.
type Authenticator interface {
	Authenticate(accessToken string) (domain.Caller, error)
}

// Auth validates the bearer access token and injects the caller into context.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			caller, err := authn.Authenticate(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

// CallerFrom returns the caller injected by Auth.
func CallerFrom(c echo.Context) (domain.Caller, bool) {
	caller, ok := c.Get(callerKey).(domain.Caller)
	if !ok || caller.UserID == "" {
		return domain.Caller{}, false
	}
	return caller, true
}
