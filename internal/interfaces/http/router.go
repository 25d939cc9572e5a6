// Package http wires the gin route tree and the HTTP server for the scoring
// API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/BrandGuard-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/BrandGuard-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware dependencies of the
// complete route tree.  Nil handlers leave their routes unregistered; nil
// middleware configs fall back to defaults or are skipped.
type RouterConfig struct {
	Mode string // gin mode: "debug" | "release" | "test"

	Listings *handlers.ListingHandler
	Brands   *handlers.BrandHandler
	Admin    *handlers.AdminHandler
	Health   *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.AppMetrics

	// MetricsHandler serves GET /metrics; usually the collector's handler.
	MetricsHandler http.Handler

	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter     middleware.RateLimiter
	RateLimitConfig middleware.RateLimitConfig

	// CORS is optional; nil disables cross-origin handling.
	CORS *middleware.CORSConfig
}

// NewRouter constructs the full route tree as a ready-to-serve handler.
func NewRouter(cfg RouterConfig) *gin.Engine {
	switch cfg.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger, middleware.DefaultLoggingConfig()))
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter, cfg.RateLimitConfig))
	}

	if cfg.Health != nil {
		r.GET("/healthz", cfg.Health.Liveness)
		r.GET("/readyz", cfg.Health.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")

	if cfg.Listings != nil {
		listings := api.Group("/listings")
		listings.POST("/analyze", cfg.Listings.Analyze)
		listings.POST("/batch", cfg.Listings.AnalyzeBatch)
		listings.POST("/submit", cfg.Listings.Submit)
		listings.GET("/high-risk", cfg.Listings.HighRisk)
		listings.GET("/:listingID/history", cfg.Listings.History)
	}

	if cfg.Brands != nil {
		brands := api.Group("/brands")
		brands.GET("", cfg.Brands.List)
		brands.GET("/:name", cfg.Brands.Get)
		brands.POST("/:name/variations", cfg.Brands.AddVariation)
		brands.POST("/:name/patterns", cfg.Brands.AddPattern)
	}

	if cfg.Admin != nil {
		admin := api.Group("/admin")
		admin.GET("/index/status", cfg.Admin.IndexStatus)
		admin.POST("/index/rebuild", cfg.Admin.RebuildIndex)
	}

	return r
}

//Personal.AI order the ending
