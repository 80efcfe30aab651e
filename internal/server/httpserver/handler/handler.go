package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hugcis/kvdb-go/internal/core/domain"
	"github.com/hugcis/kvdb-go/internal/core/service"
	"github.com/hugcis/kvdb-go/internal/telemetry/metric"
)

// MaxBodyBytes caps request bodies at 256 KiB. Oversized bodies are
// rejected before any store mutation.
const MaxBodyBytes int64 = 262_144

// Handler is the main HTTP handler that routes requests to the key/value
// endpoints.
type Handler struct {
	kv      *service.KVService
	logger  *slog.Logger
	metrics *metric.Registry
	mux     *http.ServeMux
}

// New creates a new Handler. metrics may be nil.
func New(kv *service.KVService, logger *slog.Logger, metrics *metric.Registry) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		kv:      kv,
		logger:  logger,
		metrics: metrics,
		mux:     http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Collection endpoints
	h.mux.HandleFunc("GET /api/{$}", h.handleList)
	h.mux.HandleFunc("POST /api/{$}", h.handleBatch)

	// Single-key endpoints
	h.mux.HandleFunc("GET /api/{key}", h.handleFetch)
	h.mux.HandleFunc("POST /api/{key}", h.handleInsert)
	h.mux.HandleFunc("PATCH /api/{key}", h.handleIncrement)
	h.mux.HandleFunc("DELETE /api/{key}", h.handleDelete)
}

// writeText writes a plain-text response body.
func (h *Handler) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// writeJSON writes a pre-serialized JSON response body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// readBody reads the request body subject to the MaxBodyBytes cap.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, domain.ErrPayloadTooLarge.WithCause(err)
		}
		return nil, domain.ErrBadRequest.WithCause(err)
	}

	return data, nil
}
