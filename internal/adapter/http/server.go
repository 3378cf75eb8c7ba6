// Package http exposes the enrichment API plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
)

// EnrichService handles scrape and batch-geocode requests.
type EnrichService interface {
	ScrapeURL(ctx context.Context, rawURL string) (domain.ScrapedRecord, error)
	GeocodeMissing(ctx context.Context, items []domain.BatchItem) map[string]domain.GeocodeUpdate
	CheckReadiness(ctx context.Context) error
}

// Server exposes the enrichment API over HTTP.
type Server struct {
	httpServer *http.Server
	service    EnrichService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, service EnrichService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("POST /v1/scrape", s.handleScrape)
	mux.HandleFunc("POST /v1/geocode", s.handleGeocode)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
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

type scrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	rec, err := s.service.ScrapeURL(r.Context(), req.URL)
	if err != nil {
		s.writeScrapeError(w, req.URL, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeScrapeError maps scrape failures to status codes: bad input is 400,
// upstream fetch failure is 502, an unusable page is 422.
func (s *Server) writeScrapeError(w http.ResponseWriter, rawURL string, err error) {
	var fetchErr *domain.FetchError
	var extractErr *domain.ExtractionError

	switch {
	case errors.Is(err, domain.ErrUnsupportedScheme):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &extractErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("scrape request failed", "url", rawURL, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type geocodeRequest struct {
	Items []domain.BatchItem `json:"items"`
}

type geocodeResponse struct {
	Updates map[string]domain.GeocodeUpdate `json:"updates"`
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updates := s.service.GeocodeMissing(r.Context(), req.Items)
	if updates == nil {
		updates = map[string]domain.GeocodeUpdate{}
	}
	writeJSON(w, http.StatusOK, geocodeResponse{Updates: updates})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
