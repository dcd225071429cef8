package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlog/workout-api/internal/api/metrics"
	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string   `json:"email"         validate:"required,email"`
	Username    string   `json:"username"      validate:"required,max=150"`
	Password    string   `json:"password"      validate:"required,min=8"`
	FirstName   string   `json:"first_name"    validate:"max=150"`
	LastName    string   `json:"last_name"     validate:"max=150"`
	PhoneNumber *string  `json:"phone_number"  validate:"omitempty,max=15"`
	DateOfBirth *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Height      *float64 `json:"height"        validate:"omitempty,gte=0,lte=999.99"`
	Weight      *float64 `json:"weight"        validate:"omitempty,gte=0,lte=999.99"`
	Gender      string   `json:"gender"        validate:"max=20"`
	FitnessGoal *string  `json:"fitness_goal"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

type tokensResponse struct {
	Tokens *domain.TokenPair `json:"tokens"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string][]string
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Height:      req.Height,
		Weight:      req.Weight,
		Gender:      req.Gender,
		FitnessGoal: req.FitnessGoal,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(domain.DateLayout, *req.DateOfBirth)
		if err != nil {
			return dateError("date_of_birth")
		}
		in.DateOfBirth = &dob
	}

	user, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthLoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.AuthLoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.AuthLoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{User: user, Tokens: tokens})
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token stops working.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  tokensResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokensResponse{Tokens: tokens})
}

// Logout revokes a refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Param        body  body  refreshRequest  true  "Refresh token"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), req.Refresh); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
