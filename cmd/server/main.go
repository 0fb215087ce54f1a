package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-catalog/config"
	"go-gin-catalog/internal/cache"
	"go-gin-catalog/internal/database"
	"go-gin-catalog/internal/handler"
	"go-gin-catalog/internal/metrics"
	"go-gin-catalog/internal/middleware"
	"go-gin-catalog/internal/repository"
	"go-gin-catalog/internal/service"
	"go-gin-catalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L.Fatal("Failed to load config", zap.Error(err))
	}
	if err := logger.Init(cfg.Server.LogLevel); err != nil {
		logger.L.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)
	if err := handler.SetupValidator(); err != nil {
		logger.L.Fatal("Failed to set up validator", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		venueRepo repository.VenueRepository
		eventRepo repository.EventRepository
		checks    []handler.HealthCheck
	)

	switch cfg.Server.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.InitDatabase(ctx, &cfg.Database)
		if err != nil {
			logger.L.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			logger.L.Fatal("Failed to migrate database", zap.Error(err))
		}
		venueRepo = repository.NewVenueRepository(pool)
		eventRepo = repository.NewEventRepository(pool)
		checks = append(checks, handler.HealthCheck{Name: "postgres", Check: pool.Ping})
	default:
		venueRepo = repository.NewMemoryVenueRepository()
		eventRepo = repository.NewMemoryEventRepository()
	}

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb, err = database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			logger.L.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	if cfg.Cache.Enabled {
		venueRepo = cache.NewCachedVenueRepository(venueRepo, rdb, cfg.Cache.TTL)
	}

	var rateLimiter *limiter.Limiter
	if cfg.RateLimit.Enabled {
		rateLimiter, err = middleware.NewRateLimiter(cfg.RateLimit, rdb)
		if err != nil {
			logger.L.Fatal("Failed to initialize rate limiter", zap.Error(err))
		}
	}

	router := handler.NewRouter(handler.RouterConfig{
		Venues:        service.NewVenueService(venueRepo),
		Events:        service.NewEventService(eventRepo, venueRepo),
		ErrorTypeBase: cfg.Server.ErrorTypeBase,
		Metrics:       metrics.New(),
		Limiter:       rateLimiter,
		CORSOrigins:   cfg.Server.CORSOrigins,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		HealthChecks:  checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Server.StorageDriver),
			zap.Bool("rate_limit", rateLimiter != nil),
			zap.Bool("venue_cache", cfg.Cache.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.L.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.L.Info("Server exited")
}
