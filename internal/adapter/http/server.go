package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/domain"
	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxJobPayloadBytes bounds synchronous compute request bodies.
const maxJobPayloadBytes = 4 << 20

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Response is the envelope returned by the compute endpoint.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Server exposes health, readiness, metrics, and synchronous compute
// endpoints.
type Server struct {
	httpServer *http.Server
	cache      *ResultCache
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /v1/corrections routes.
func NewServer(addr string, ready ReadinessChecker, cache *ResultCache, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/corrections", s.handleCompute)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleCompute computes static corrections synchronously. Results are cached
// by job ID so repeated submissions of the same payload skip the computation.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJobPayloadBytes))
	if err != nil {
		s.metrics.HTTPComputeRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusBadRequest, Response{Status: false, Message: "read request body"})
		return
	}

	job, err := domain.ParseJobEvent(domain.RawEvent{Value: body})
	if err != nil {
		s.metrics.HTTPComputeRequests.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, Response{Status: false, Message: err.Error()})
		return
	}

	if cached, ok := s.cache.Get(job.ID); ok {
		s.metrics.ResultCache.WithLabelValues("hit").Inc()
		s.metrics.HTTPComputeRequests.WithLabelValues("success").Inc()
		writeJSON(w, http.StatusOK, Response{Status: true, Message: "corrections computed", Data: cached})
		return
	}
	s.metrics.ResultCache.WithLabelValues("miss").Inc()

	result, err := domain.ComputeCorrections(job)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfRange) {
			s.metrics.HTTPComputeRequests.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, Response{Status: false, Message: err.Error()})
			return
		}
		s.metrics.HTTPComputeRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, Response{Status: false, Message: err.Error()})
		return
	}

	rec := result.ResultRecord()
	s.cache.Put(job.ID, rec)
	s.metrics.HTTPComputeRequests.WithLabelValues("success").Inc()

	s.logger.Debug("compute request served",
		"job_id", job.ID,
		"stations", rec.Stations,
	)
	writeJSON(w, http.StatusOK, Response{Status: true, Message: "corrections computed", Data: rec})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
