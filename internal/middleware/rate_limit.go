package middleware

import (
	"errors"
	"fmt"
	"strconv"

	"go-gin-catalog/config"
	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "catalog:ratelimit"

// NewRateLimiter builds a limiter for cfg. The redis store shares counters
// across replicas and needs rdb; the memory store is per process.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", cfg.Rate, err)
	}

	opts := limiter.StoreOptions{
		Prefix:          rateLimitPrefix,
		MaxRetry:        limiter.DefaultMaxRetry,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}

	var store limiter.Store
	switch cfg.Store {
	case "redis":
		if rdb == nil {
			return nil, errors.New("redis rate limit store requires a redis client")
		}
		store, err = sredis.NewStoreWithOptions(rdb, opts)
		if err != nil {
			return nil, fmt.Errorf("create redis limiter store: %w", err)
		}
	default:
		store = memory.NewStoreWithOptions(opts)
	}

	return limiter.New(store, rate), nil
}

// RateLimit limits requests per client IP. Over the limit the request is
// aborted with a RateLimited error for the error handler to render.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		lctx, err := l.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			_ = c.Error(fmt.Errorf("rate limiter: %w", err))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			_ = c.Error(apperrors.RateLimited())
			c.Abort()
			return
		}
		c.Next()
	}
}
