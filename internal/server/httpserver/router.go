package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/hugcis/kvdb-go/internal/core/service"
	"github.com/hugcis/kvdb-go/internal/server/httpserver/handler"
	"github.com/hugcis/kvdb-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// KVService handles key/value operations.
	KVService *service.KVService

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics is the Prometheus registry; nil disables instrumentation.
	Metrics *metric.Registry

	// RateLimit is the per-IP rate limit (requests/second); 0 disables it.
	RateLimit int

	// EnableMetrics exposes GET /metrics.
	EnableMetrics bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.KVService, cfg.Logger, cfg.Metrics)

	// Order: Recover -> RequestID -> RateLimit -> AccessLog -> Instrument
	apiMiddlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
	}
	if cfg.RateLimit > 0 {
		apiMiddlewares = append(apiMiddlewares, RateLimit(cfg.RateLimit))
	}
	apiMiddlewares = append(apiMiddlewares, AccessLog(cfg.Logger))
	if cfg.Metrics != nil {
		apiMiddlewares = append(apiMiddlewares, Instrument(cfg.Metrics))
	}
	apiHandler := Chain(h, apiMiddlewares...)

	mux := http.NewServeMux()

	// Health endpoints skip logging and rate limiting
	healthHandler := Chain(h, Recover(cfg.Logger), RequestID())
	mux.Handle("GET /health", healthHandler)
	mux.Handle("GET /ready", healthHandler)

	if cfg.EnableMetrics && cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(cfg.Logger), RequestID()))
	}

	mux.Handle("/api/", apiHandler)

	return mux
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		RateLimit:     0, // disabled unless configured
		EnableMetrics: true,
	}
}
