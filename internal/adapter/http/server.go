package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/metarflow-service/internal/domain"
	"github.com/couchcryptid/metarflow-service/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName  = "metarflow"
	readyTimeout = 2 * time.Second
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server serves the METAR pages, the JSON API, and the health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	fetcher    domain.ReportFetcher
	ready      ReadinessChecker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server routing every endpoint through chi.
// Page templates must already be loaded with view.LoadTemplates.
func NewServer(addr string, fetcher domain.ReportFetcher, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		fetcher: fetcher,
		ready:   ready,
		metrics: metrics,
		logger:  logger,
	}

	r.Get("/", s.handleIndex)
	r.Get("/privacy", s.handlePrivacy)
	r.Get("/metarflow.svg", s.handleFavicon)
	r.Get("/metar", s.handleMetar)

	r.Route("/api", func(r chi.Router) {
		r.Get("/metar/{icao}", s.handleAPIMetar)
		r.Post("/decode", s.handleAPIDecode)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	return s
}

// Start listens on the configured address. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP routes a single request, letting tests skip the listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type statusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "healthy", Service: serviceName})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{
			Status:  "not ready",
			Service: serviceName,
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ready", Service: serviceName})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Debug("write json response", "error", err)
	}
}
