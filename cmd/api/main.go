// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/user-directory/internal/admin"
	"github.com/carterperez-dev/user-directory/internal/config"
	"github.com/carterperez-dev/user-directory/internal/core"
	"github.com/carterperez-dev/user-directory/internal/health"
	"github.com/carterperez-dev/user-directory/internal/middleware"
	"github.com/carterperez-dev/user-directory/internal/server"
	"github.com/carterperez-dev/user-directory/internal/store"
	"github.com/carterperez-dev/user-directory/internal/user"
)

const drainDelay = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Error("failed to init telemetry", "error", err)
		os.Exit(1)
	}

	var rdb *core.Redis
	if cfg.Redis.URL != "" {
		rdb, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		logger.Info("redis connected")
	} else {
		logger.Info("redis not configured, using in-process rate limiting")
	}

	records := store.New(func(u *user.User) string { return u.ID })
	userRepo := user.NewRepository(records)

	if err := user.Seed(ctx, userRepo); err != nil {
		logger.Error("failed to seed users", "error", err)
		os.Exit(1)
	}
	logger.Info("seed users loaded", "count", records.Len())

	validate, err := user.NewValidator(cfg.Directory)
	if err != nil {
		logger.Error("failed to build validator", "error", err)
		os.Exit(1)
	}

	userService := user.NewService(userRepo, cfg.Directory)
	userHandler := user.NewHandler(userService, validate)

	var redisChecker health.Checker
	if rdb != nil {
		redisChecker = rdb
	}
	healthHandler := health.NewHandler(records, redisChecker)

	adminHandler := admin.NewHandler(buildAdminConfig(userService, rdb))

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	registerRoutes(srv.Router(), cfg, rdb, userHandler, healthHandler, adminHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close failed", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func registerRoutes(
	r chi.Router,
	cfg *config.Config,
	rdb *core.Redis,
	userHandler *user.Handler,
	healthHandler *health.Handler,
	adminHandler *admin.Handler,
) {
	var redisClient *redis.Client
	if rdb != nil {
		redisClient = rdb.Client
	}

	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
		),
		FailOpen: true,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(slog.Default()))
	r.Use(limiter.Handler)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(r)

	r.Route("/v1", func(r chi.Router) {
		userHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r)
	})
}

func buildAdminConfig(
	userService *user.Service,
	rdb *core.Redis,
) admin.HandlerConfig {
	cfg := admin.HandlerConfig{
		StoreStats: func(ctx context.Context) admin.StoreStats {
			total, active, err := userService.Counts(ctx)
			if err != nil {
				return admin.StoreStats{}
			}
			return admin.StoreStats{
				TotalRecords:    total,
				ActiveRecords:   active,
				InactiveRecords: total - active,
			}
		},
	}

	if rdb != nil {
		cfg.RedisStats = rdb.PoolStats
		cfg.RedisPing = rdb.Ping
	}

	return cfg
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		"service", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)
}
