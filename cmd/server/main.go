package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http"
	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/handler"
	"github.com/Suvojeet-Haldar/expense-manager/internal/adapter/http/middleware"
	postgresRepo "github.com/Suvojeet-Haldar/expense-manager/internal/adapter/repository/postgres"
	redisRepo "github.com/Suvojeet-Haldar/expense-manager/internal/adapter/repository/redis"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/auth"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/config"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/logger"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/metrics"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/postgres"
	"github.com/Suvojeet-Haldar/expense-manager/internal/infrastructure/redis"
	"github.com/Suvojeet-Haldar/expense-manager/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Run migrations when a path is configured
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	retrier := postgresRepo.NewRetrier()
	stateRepo := postgresRepo.NewStateRepository(pool, retrier)
	txlogRepo := postgresRepo.NewTxLogRepository(pool)
	seqRepo := postgresRepo.NewSequenceRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	snapshotCache := redisRepo.NewSnapshotCache(redisClient, cfg.SnapshotTTL)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	stateUC := usecase.NewStateUseCase(
		stateRepo, txlogRepo, seqRepo, snapshotCache, appMetrics,
		cfg.SeedNames, cfg.SeedValues, cfg.SeedRates,
	)
	txlogUC := usecase.NewTxLogUseCase(txlogRepo)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	// Create the live record up front so the first request never races
	// initialization with a mutation.
	if record, err := stateUC.Snapshot(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize state record")
	} else {
		appMetrics.EntryCount.Set(float64(record.Len()))
		log.Info().Int("entries", record.Len()).Time("baseline_at", record.BaselineAt).Msg("state record ready")
	}

	// Authentication is optional; without a secret the API is open.
	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Initialize handlers
	stateHandler := handler.NewStateHandler(stateUC, handler.DisplayHints{
		UpdatesPerSecond: cfg.UpdatesPerSecond,
		Decimals:         cfg.Decimals,
	})
	txlogHandler := handler.NewTxLogHandler(txlogUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var authHandler *handler.AuthHandler
	if jwtManager != nil {
		authHandler = handler.NewAuthHandler(userUC, jwtManager)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		StateHandler:     stateHandler,
		TxLogHandler:     txlogHandler,
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled && jwtManager != nil,
		RateLimiter:      middleware.NewRateLimiter(100, 200),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
