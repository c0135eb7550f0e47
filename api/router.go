package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/use-agent/tokensaver/api/handler"
	"github.com/use-agent/tokensaver/api/middleware"
	"github.com/use-agent/tokensaver/cache"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/config"
	"github.com/use-agent/tokensaver/metrics"
)

// Deps bundles what the handlers need. Cache, Metrics and Gatherer may be
// nil.
type Deps struct {
	Config    *config.Config
	HTML      *cleaner.HTMLConverter
	Cache     *cache.Cache
	Metrics   *metrics.Recorder
	Gatherer  prometheus.Gatherer
	StartTime time.Time
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health and metrics are outside auth so monitoring probes always work.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(d.Config.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")

	// Health: no auth required.
	v1.GET("/health", handler.Health(d.Cache, d.StartTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if d.Config.Auth.Enabled {
		protected.Use(middleware.Auth(d.Config.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(d.Config.RateLimit))

	protected.POST("/optimize", handler.Optimize(d.Config.Cleaner, d.HTML, d.Cache, d.Metrics))
	protected.POST("/estimate", handler.Estimate(d.Config.Cleaner, d.Metrics))

	return r
}
