// Package chi wires the HTTP API onto a chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/artloci/nearby/internal/domain"
	"github.com/artloci/nearby/internal/domain/hit"
	"github.com/artloci/nearby/internal/domain/query"
	"github.com/artloci/nearby/internal/render"
	healthuc "github.com/artloci/nearby/internal/usecase/health"
)

// NearbyService serves curated product pages.
type NearbyService interface {
	Nearby(ctx context.Context, q query.Query) ([]hit.Hit, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server implements the HTTP API handlers.
type Server struct {
	nearby   NearbyService
	health   HealthService
	renderer *render.Renderer
	logger   *zap.Logger
	limits   query.Limits
}

// NewServer creates an HTTP API server. renderer can be nil to disable the
// HTML view.
func NewServer(nearby NearbyService, health HealthService, renderer *render.Renderer, logger *zap.Logger) *Server {
	return &Server{
		nearby:   nearby,
		health:   health,
		renderer: renderer,
		logger:   logger,
		limits:   query.DefaultLimits(),
	}
}

// WithQueryLimits overrides the defaults and caps applied to request
// parameters.
func (s *Server) WithQueryLimits(lim query.Limits) *Server {
	s.limits = lim
	return s
}

// Mount registers all routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Get("/api/v1/products/nearby", s.NearbyProducts)
	if s.renderer != nil {
		r.Get("/nearby", s.NearbyPage)
	}
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// NearbyProducts handles GET /api/v1/products/nearby.
func (s *Server) NearbyProducts(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hits, err := s.nearby.Nearby(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]productItem, len(hits))
	for i, h := range hits {
		items[i] = productToItem(h)
	}
	writeJSON(w, http.StatusOK, nearbyResponse{Items: items, Count: len(items)})
}

// NearbyPage handles GET /nearby with an HTML product grid.
func (s *Server) NearbyPage(w http.ResponseWriter, r *http.Request) {
	q, err := s.queryFromRequest(r)
	if err != nil {
		http.Error(w, "invalid coordinates", http.StatusBadRequest)
		return
	}

	hits, err := s.nearby.Nearby(r.Context(), q)
	if err != nil {
		s.logger.Error("nearby page failed", zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, render.Page{Hits: hits}); err != nil {
		s.logger.Error("render failed", zap.Error(err))
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// queryFromRequest parses and validates the shared nearby query parameters
// against the configured limits.
func (s *Server) queryFromRequest(r *http.Request) (query.Query, error) {
	vals := r.URL.Query()

	lat, err := parseFloatParam(vals.Get("lat"), "lat")
	if err != nil {
		return query.Query{}, err
	}
	lng, err := parseFloatParam(vals.Get("lng"), "lng")
	if err != nil {
		return query.Query{}, err
	}

	var radiusM float64
	if v := vals.Get("radius_m"); v != "" {
		if radiusM, err = strconv.ParseFloat(v, 64); err != nil {
			return query.Query{}, invalidParam("radius_m", v)
		}
	}

	count, err := parseIntParam(vals.Get("count"), "count")
	if err != nil {
		return query.Query{}, err
	}
	maxPerGroup, err := parseIntParam(vals.Get("max_per_group"), "max_per_group")
	if err != nil {
		return query.Query{}, err
	}

	return query.NewWithLimits(lat, lng, radiusM, count, maxPerGroup, s.limits)
}

func parseFloatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, missingParam(name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalidParam(name, v)
	}
	return f, nil
}

func parseIntParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalidParam(name, v)
	}
	return n, nil
}

func missingParam(name string) error {
	return &paramError{name: name, reason: "is required"}
}

func invalidParam(name, value string) error {
	return &paramError{name: name, reason: "has invalid value " + strconv.Quote(value)}
}

type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string { return "parameter " + e.name + " " + e.reason }
func (e *paramError) Unwrap() error { return domain.ErrInvalidQuery }

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, codeInvalidQuery, safeDomainMessage(err))
	case errors.Is(err, domain.ErrSearchUnavailable):
		s.logger.Warn("search backend unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, codeSearchUnavailable, "search backend unavailable")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// safeDomainMessage exposes validation detail for client errors without
// leaking internals.
func safeDomainMessage(err error) string {
	var pe *paramError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
