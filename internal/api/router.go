package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/fitlog/workout-api/internal/api/handler"
	"github.com/fitlog/workout-api/internal/api/middleware"
	"github.com/fitlog/workout-api/internal/core/ports"
	"github.com/fitlog/workout-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	AuthService    ports.AuthService
	WorkoutService ports.WorkoutService
	EventService   ports.EventService
	HealthChecks   []handlers.DependencyCheck
	Logger         zerolog.Logger

	// Registry receives the HTTP metrics. Defaults to the global registry.
	Registry *prometheus.Registry
	// DisableSwagger hides the /swagger UI, e.g. in production.
	DisableSwagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(prometheusConfig(deps.Registry)))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	workoutHandler := handler.NewWorkoutHandler(deps.WorkoutService)
	eventHandler := handler.NewEventHandler(deps.EventService)
	authMiddleware := middleware.Auth(deps.AuthService)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", metricsHandler(deps.Registry))
	if !deps.DisableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/token/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- Workout routes ---
	// Collection actions are registered before /:id so they are not taken as ids.
	workouts := e.Group("/workouts", authMiddleware)
	workouts.GET("", workoutHandler.List)
	workouts.POST("", workoutHandler.Create)
	workouts.GET("/today", workoutHandler.Today)
	workouts.GET("/this_week", workoutHandler.ThisWeek)
	workouts.GET("/summary", workoutHandler.Summary)
	workouts.GET("/:id", workoutHandler.Get)
	workouts.PUT("/:id", workoutHandler.Replace)
	workouts.PATCH("/:id", workoutHandler.Patch)
	workouts.DELETE("/:id", workoutHandler.Delete)
	workouts.POST("/:id/start", workoutHandler.Start)
	workouts.POST("/:id/complete", workoutHandler.Complete)
	workouts.POST("/:id/skip", workoutHandler.Skip)
	workouts.GET("/:id/history", eventHandler.History)

	return e
}

func prometheusConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "workouts",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
