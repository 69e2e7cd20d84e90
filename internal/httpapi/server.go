// Package httpapi is the net/http front end. It presents the same contract
// as the Fiber handlers over the same core services, plus the Prometheus
// metrics route.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jjenkins/legislators/internal/api"
	"github.com/jjenkins/legislators/internal/model"
	"github.com/jjenkins/legislators/internal/observability"
	"github.com/jjenkins/legislators/internal/service"
)

// Server exposes the legislator directory over plain net/http.
type Server struct {
	httpServer *http.Server
	directory  *service.Directory
	weather    *service.WeatherClient
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the directory, stats, weather,
// health, and metrics routes.
func NewServer(addr string, directory *service.Directory, weather *service.WeatherClient, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		directory: directory,
		weather:   weather,
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("GET /api/legislators", s.handleList)
	mux.HandleFunc("GET /api/legislators/{id}", s.handleGet)
	mux.HandleFunc("PATCH /api/legislators/{id}/notes", s.handleUpdateNotes)
	mux.HandleFunc("GET /api/legislators/{id}/weather", s.handleWeather)
	mux.HandleFunc("GET /api/stats/age", s.handleAgeStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter := model.Filter{
		State: r.URL.Query().Get("state"),
		Party: r.URL.Query().Get("party"),
	}

	legislators, err := s.directory.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewLegislatorViews(legislators))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	legislator, err := s.directory.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewLegislatorView(legislator))
}

func (s *Server) handleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.NotesUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	legislator, err := s.directory.UpdateNotes(r.Context(), id, req.Note)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Notes updated successfully",
		"legislator": api.NewLegislatorView(legislator),
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if !s.weather.Configured() {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Weather API key not configured"})
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	legislator, err := s.directory.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	capital, ok := service.CapitalForState(legislator.State)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("Capital city not found for state: %s", legislator.State),
		})
		return
	}

	report, err := s.weather.Current(r.Context(), capital, legislator.State)
	if err != nil {
		s.metrics.WeatherRequests.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	s.metrics.WeatherRequests.WithLabelValues("success").Inc()

	writeJSON(w, http.StatusOK, api.NewWeatherView(legislator, capital, report))
}

func (s *Server) handleAgeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.directory.AgeStatistics(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewAgeStatsView(stats))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid legislator id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
