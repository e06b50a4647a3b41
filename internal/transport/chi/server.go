// Package chi exposes the HTTP API: question answering, document search,
// analytics endpoints, feedback intake, health and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oic-analytics/adeidex/internal/domain"
	logpkg "github.com/oic-analytics/adeidex/internal/logger"
	comparisonuc "github.com/oic-analytics/adeidex/internal/usecase/comparison"
	geouc "github.com/oic-analytics/adeidex/internal/usecase/geo"
	healthuc "github.com/oic-analytics/adeidex/internal/usecase/health"
	overviewuc "github.com/oic-analytics/adeidex/internal/usecase/overview"
	raguc "github.com/oic-analytics/adeidex/internal/usecase/rag"
)

// ErrorCode identifies an API error category in responses.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeNotFound         ErrorCode = "not_found"
	CodeNoData           ErrorCode = "no_data"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// DatasetLister serves the country and year catalog endpoints.
type DatasetLister interface {
	Countries(ctx context.Context) ([]string, error)
	Years(ctx context.Context) ([]int, error)
}

// Server routes HTTP requests to the use case services.
type Server struct {
	rag           *raguc.Service
	comparison    *comparisonuc.Service
	geo           *geouc.Service
	overview      *overviewuc.Service
	health        *healthuc.Service
	catalog       DatasetLister
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	rag *raguc.Service,
	comparison *comparisonuc.Service,
	geo *geouc.Service,
	overview *overviewuc.Service,
	health *healthuc.Service,
	catalog DatasetLister,
	logger *zap.Logger,
) *Server {
	s := &Server{
		rag:        rag,
		comparison: comparison,
		geo:        geo,
		overview:   overview,
		health:     health,
		catalog:    catalog,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidFeedback, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrTooManyCountries, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrCountryNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrYearNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrNoRegion, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrNoData, http.StatusServiceUnavailable, CodeNoData),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", s.Ask)
		r.Get("/search", s.Search)
		r.Post("/feedback", s.SubmitFeedback)
		r.Get("/overview", s.Overview)
		r.Get("/compare", s.Compare)
		r.Get("/regions", s.Regions)
		r.Get("/map", s.MapData)
		r.Get("/neighbors/{country}", s.Neighbors)
		r.Get("/countries", s.Countries)
		r.Get("/years", s.Years)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// AskRequest is the POST /v1/ask body.
type AskRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

// Ask handles POST /v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.rag.Ask(r.Context(), req.Question, req.K)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	k, err := intParam(r, "k", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	docs, err := s.rag.Sources(r.Context(), query, k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":     query,
		"documents": docs,
		"total":     len(docs),
	})
}

// FeedbackRequest is the POST /v1/feedback body.
type FeedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// SubmitFeedback handles POST /v1/feedback.
func (s *Server) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	fb := domain.Feedback{
		Question: req.Question,
		Answer:   req.Answer,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.rag.SaveFeedback(r.Context(), fb); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Overview handles GET /v1/overview.
func (s *Server) Overview(w http.ResponseWriter, r *http.Request) {
	report, err := s.overview.Summarize(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Compare handles GET /v1/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("countries")
	if raw == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "countries parameter is required")
		return
	}
	var countries []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			countries = append(countries, c)
		}
	}

	from, err := intParam(r, "from", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	to, err := intParam(r, "to", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	result, err := s.comparison.Compare(r.Context(), countries, from, to)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Regions handles GET /v1/regions.
func (s *Server) Regions(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	report, err := s.geo.Regional(r.Context(), year)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// MapData handles GET /v1/map.
func (s *Server) MapData(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	rows, resolvedYear, err := s.geo.MapData(r.Context(), year)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":      resolvedYear,
		"countries": rows,
	})
}

// Neighbors handles GET /v1/neighbors/{country}.
func (s *Server) Neighbors(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	year, err := intParam(r, "year", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	report, err := s.geo.Neighbors(r.Context(), country, year)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Countries handles GET /v1/countries.
func (s *Server) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.catalog.Countries(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"countries": countries})
}

// Years handles GET /v1/years.
func (s *Server) Years(w http.ResponseWriter, r *http.Request) {
	years, err := s.catalog.Years(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"years": years})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNoData,
		domain.ErrCountryNotFound,
		domain.ErrYearNotFound,
		domain.ErrInvalidQuery,
		domain.ErrInvalidFeedback,
		domain.ErrTooManyCountries,
		domain.ErrNoRegion,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// requestLogger prefers the request-scoped logger (carrying request_id)
// planted by the wide-event middleware, falling back to the server's own.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := s.requestLogger(r)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
