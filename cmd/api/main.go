// @title                       Workout API
// @version                     1.0
// @description                 Workout tracking service: per-user workouts, lifecycle actions and summaries.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/fitlog/workout-api/docs"
	"github.com/fitlog/workout-api/internal/api"
	"github.com/fitlog/workout-api/internal/core/ports"
	"github.com/fitlog/workout-api/internal/core/service"
	mongodb "github.com/fitlog/workout-api/internal/infrastructure/db/mongo"
	"github.com/fitlog/workout-api/internal/infrastructure/db/postgres"
	redisdb "github.com/fitlog/workout-api/internal/infrastructure/db/redis"
	"github.com/fitlog/workout-api/internal/infrastructure/http/handlers"
	"github.com/fitlog/workout-api/internal/infrastructure/messaging/kafka"
	"github.com/fitlog/workout-api/internal/infrastructure/queue"
	"github.com/fitlog/workout-api/internal/pkg/config"
	"github.com/fitlog/workout-api/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "workout-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "workout-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	workoutRepo := postgres.NewWorkoutRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	eventRepo := mongodb.NewEventRepository(mongoDB)
	if err := eventRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Event pipeline ---
	var publisher ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka publishing enabled")
	}

	eventService := service.NewEventService(workoutRepo, eventRepo, publisher, log)
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, eventService, log)
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher.Start(workerCtx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, redisdb.NewTokenStore(rdb), service.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, log)
	workoutService := service.NewWorkoutService(workoutRepo, dispatcher, cfg.Location(), log)

	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		WorkoutService: workoutService,
		EventService:   eventService,
		HealthChecks: []handlers.DependencyCheck{
			handlers.PostgresCheck(pool),
			handlers.MongoCheck(mongoDB),
			handlers.RedisCheck(rdb),
		},
		Logger:         log,
		DisableSwagger: cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		dispatcher.Close()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// Handlers are done; flush the queued audit events before storage closes.
	dispatcher.Close()
	log.Info().Msg("shutdown complete")
	return nil
}
