package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/api/middleware"
	"github.com/fitlog/workout-api/internal/core/domain"
)

// callerFrom extracts the caller injected by the Auth middleware. Its absence
// means the route was registered without authentication; reject with 401.
func callerFrom(c echo.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}
