// Package chi exposes the search API over HTTP: the basic and advanced
// search endpoints, history aggregations, health, and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sign-company/searchd/internal/domain"
	"github.com/sign-company/searchd/internal/search"
)

const (
	// searchRateLimit caps basic and advanced searches per client per minute.
	searchRateLimit = 30
	// suggestionsRateLimit caps suggestion lookups per client per minute.
	suggestionsRateLimit = 100

	defaultSuggestionsLimit = 5
	defaultHistoryLimit     = 10
)

// HealthChecker reports record-store liveness.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Server handles the HTTP API over the search orchestrator.
type Server struct {
	search  *search.Service
	health  HealthChecker
	metrics http.Handler
	logger  *zap.Logger
	devMode bool
}

// NewServer creates an HTTP API server. devMode controls whether error
// responses carry the underlying error detail.
func NewServer(svc *search.Service, health HealthChecker, logger *zap.Logger, devMode bool) *Server {
	return &Server{
		search:  svc,
		health:  health,
		metrics: promhttp.Handler(),
		logger:  logger,
		devMode: devMode,
	}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Group(func(g chirouter.Router) {
		g.Use(httprate.LimitByIP(searchRateLimit, time.Minute))
		g.Post("/search", s.handleSearch)
		g.Post("/search/advanced", s.handleAdvancedSearch)
	})

	r.Group(func(g chirouter.Router) {
		g.Use(httprate.LimitByIP(suggestionsRateLimit, time.Minute))
		g.Get("/search/suggestions", s.handleSuggestions)
	})

	r.Get("/search/recent", s.handleRecent)
	r.Get("/search/popular", s.handlePopular)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Success   bool            `json:"success"`
	Results   []domain.Result `json:"results"`
	Query     string          `json:"query"`
	Timestamp time.Time       `json:"timestamp"`
}

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	results, err := s.search.Search(r.Context(), ActorFromContext(r.Context()), req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err, "Failed to perform search")
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:   true,
		Results:   nonNil(results),
		Query:     req.Query,
		Timestamp: time.Now().UTC(),
	})
}

type advancedSearchRequest struct {
	Query     string         `json:"query"`
	DataTypes []string       `json:"dataTypes"`
	Filters   domain.Filters `json:"filters"`
	SortBy    string         `json:"sortBy"`
	Limit     int            `json:"limit"`
	Page      int            `json:"page"`
}

type advancedSearchResponse struct {
	Success      bool            `json:"success"`
	Results      []domain.Result `json:"results"`
	TotalResults int             `json:"totalResults"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"totalPages"`
	Query        string          `json:"query"`
	Filters      domain.Filters  `json:"filters"`
	Timestamp    time.Time       `json:"timestamp"`
}

// handleAdvancedSearch handles POST /search/advanced.
func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	page, err := s.search.Advanced(r.Context(), search.AdvancedParams{
		Query:      req.Query,
		Categories: req.DataTypes,
		Tags:       req.Filters.Tags,
		DateRange:  req.Filters.DateRange,
		Location:   req.Filters.Location,
		Sort:       req.SortBy,
		Page:       req.Page,
		Limit:      req.Limit,
	})
	if err != nil {
		s.handleDomainError(w, err, "Failed to perform advanced search")
		return
	}

	writeJSON(w, http.StatusOK, advancedSearchResponse{
		Success:      true,
		Results:      nonNil(page.Results),
		TotalResults: page.Total,
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		Query:        req.Query,
		Filters:      req.Filters,
		Timestamp:    time.Now().UTC(),
	})
}

type suggestionsResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

// handleSuggestions handles GET /search/suggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	limit := queryInt(r, "limit", defaultSuggestionsLimit)

	suggestions, err := s.search.Suggestions(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err, "Failed to get suggestions")
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		Success:     true,
		Suggestions: nonNil(suggestions),
	})
}

type recentSearchesResponse struct {
	Success  bool     `json:"success"`
	Searches []string `json:"searches"`
}

// handleRecent handles GET /search/recent.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)

	searches, err := s.search.Recent(r.Context(), ActorFromContext(r.Context()), limit)
	if err != nil {
		s.handleDomainError(w, err, "Failed to get recent searches")
		return
	}

	writeJSON(w, http.StatusOK, recentSearchesResponse{
		Success:  true,
		Searches: nonNil(searches),
	})
}

type popularSearchesResponse struct {
	Success  bool                `json:"success"`
	Searches []domain.QueryCount `json:"searches"`
}

// handlePopular handles GET /search/popular.
func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)

	searches, err := s.search.Popular(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err, "Failed to get popular searches")
		return
	}

	writeJSON(w, http.StatusOK, popularSearchesResponse{
		Success:  true,
		Searches: nonNil(searches),
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := "ok"
	httpStatus := http.StatusOK

	if err := s.health.PingContext(r.Context()); err != nil {
		s.logger.Warn("health: database ping failed", zap.Error(err))
		checks["database"] = "error"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrQueryTooShort):
		writeError(w, http.StatusBadRequest, caseTitle(domain.ErrQueryTooShort.Error()), "")
	case errors.Is(err, domain.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, caseTitle(domain.ErrInvalidPage.Error()), "")
	default:
		s.logger.Error("internal error", zap.Error(err))
		detail := ""
		if s.devMode {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, msg, detail)
	}
}

// caseTitle upper-cases the first byte of a sentinel message for the
// client-facing envelope.
func caseTitle(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
