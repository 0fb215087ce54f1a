package handler

import (
	"strings"

	"go-gin-catalog/internal/metrics"
	"go-gin-catalog/internal/middleware"
	"go-gin-catalog/internal/service"
	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type RouterConfig struct {
	Venues        service.VenueService
	Events        service.EventService
	ErrorTypeBase string
	Metrics       *metrics.Metrics
	// Limiter is optional; nil disables rate limiting.
	Limiter      *limiter.Limiter
	CORSOrigins  []string
	MaxBodyBytes int64
	HealthChecks []HealthCheck
}

// NewRouter wires middleware, resource routes and the router-level error
// handlers. SetupValidator must have been called.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	responder := NewProblemResponder(cfg.ErrorTypeBase, cfg.Metrics)

	r.Use(
		middleware.RequestContext(),
		middleware.AccessLog(),
		middleware.Metrics(cfg.Metrics),
		middleware.CORS(cfg.CORSOrigins),
		responder.Middleware(),
		Recovery(),
	)
	if cfg.Limiter != nil {
		r.Use(middleware.RateLimit(cfg.Limiter))
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
	}

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	})
	r.NoMethod(func(c *gin.Context) {
		_ = c.Error(apperrors.MethodNotAllowed(c.Request.Method, allowedMethods(c)))
	})

	NewVenueHandler(cfg.Venues).RegisterRoutes(r)
	NewEventHandler(cfg.Events).RegisterRoutes(r)
	NewHealthHandler(cfg.HealthChecks...).RegisterRoutes(r)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	return r
}

// allowedMethods reads the Allow header gin sets before running the
// NoMethod chain.
func allowedMethods(c *gin.Context) []string {
	var out []string
	for _, m := range strings.Split(c.Writer.Header().Get("Allow"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
