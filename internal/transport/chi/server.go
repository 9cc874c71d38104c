// Package chi is the HTTP transport: routing, wire DTOs, token-based caller
// identity, and the mapping from domain errors to HTTP statuses.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/savora-cloud/savora/internal/domain"
	"github.com/savora-cloud/savora/internal/domain/page"
	"github.com/savora-cloud/savora/internal/domain/search"
	healthuc "github.com/savora-cloud/savora/internal/usecase/health"
	restaurantuc "github.com/savora-cloud/savora/internal/usecase/restaurant"
	reviewuc "github.com/savora-cloud/savora/internal/usecase/review"
)

// Error response codes.
const (
	codeBadRequest         = "bad_request"
	codeUnauthorized       = "unauthorized"
	codeValidationFailed   = "validation_failed"
	codeRestaurantNotFound = "restaurant_not_found"
	codeReviewNotFound     = "review_not_found"
	codeReviewNotAllowed   = "review_not_allowed"
	codeGeocodeUnavailable = "geocode_unavailable"
	codeInternalError      = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server hosts the restaurant and review HTTP API.
type Server struct {
	restaurants   *restaurantuc.Service
	reviews       *reviewuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler

	defaultPageSize int
	maxPageSize     int
}

// NewServer creates an HTTP API server.
func NewServer(
	restaurants *restaurantuc.Service,
	reviews *reviewuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		restaurants:     restaurants,
		reviews:         reviews,
		health:          health,
		logger:          logger,
		defaultPageSize: page.DefaultLimit,
		maxPageSize:     100,
	}
	s.errorHandlers = []errorHandler{
		reviewNotAllowedHandler,
		sentinelHandler(domain.ErrRestaurantNotFound, http.StatusNotFound, codeRestaurantNotFound),
		sentinelHandler(domain.ErrReviewNotFound, http.StatusNotFound, codeReviewNotFound),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrGeocodeUnavailable, http.StatusBadGateway, codeGeocodeUnavailable),
	}
	return s
}

// WithPagination overrides the default and maximum page sizes.
func (s *Server) WithPagination(defaultSize, maxSize int) *Server {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// RegisterRoutes mounts the API on the given router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metrics)

	r.Route("/api/restaurants", func(r chi.Router) {
		r.Post("/", s.createRestaurant)
		r.Get("/", s.searchRestaurants)

		r.Route("/{restaurantID}", func(r chi.Router) {
			r.Get("/", s.getRestaurant)
			r.Put("/", s.updateRestaurant)
			r.Delete("/", s.deleteRestaurant)

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", s.createReview)
				r.Get("/", s.listReviews)
				r.Get("/{reviewID}", s.getReview)
				r.Put("/{reviewID}", s.updateReview)
				r.Delete("/{reviewID}", s.deleteReview)
			})
		})
	})
}

// createRestaurant handles POST /api/restaurants.
func (s *Server) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rest, err := s.restaurants.Create(r.Context(), restaurantInputFromRequest(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, restaurantToResponse(rest))
}

// searchRestaurants handles GET /api/restaurants.
func (s *Server) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minRating, err := parseFloatParam(q.Get("minRating"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "minRating must be a number")
		return
	}
	latitude, err := parseFloatParam(q.Get("latitude"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "latitude must be a number")
		return
	}
	longitude, err := parseFloatParam(q.Get("longitude"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "longitude must be a number")
		return
	}
	radius, err := parseFloatParam(q.Get("radius"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "radius must be a number")
		return
	}

	pageNum, size := s.parsePageParams(r)
	req := search.Request{
		Query:     q.Get("q"),
		MinRating: minRating,
		Latitude:  latitude,
		Longitude: longitude,
		Radius:    radius,
		Page:      pageRequest(pageNum, size),
	}

	result, err := s.restaurants.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]restaurantResponse, len(result.Items))
	for i, rest := range result.Items {
		items[i] = restaurantToResponse(rest)
	}

	writeJSON(w, http.StatusOK, pageResponse[restaurantResponse]{
		Items: items,
		Total: result.Total,
		Page:  pageNum,
		Size:  size,
	})
}

// getRestaurant handles GET /api/restaurants/{restaurantID}.
func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := s.restaurants.Get(r.Context(), chi.URLParam(r, "restaurantID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(rest))
}

// updateRestaurant handles PUT /api/restaurants/{restaurantID}.
func (s *Server) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rest, err := s.restaurants.Update(
		r.Context(), chi.URLParam(r, "restaurantID"), restaurantInputFromRequest(req),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(rest))
}

// deleteRestaurant handles DELETE /api/restaurants/{restaurantID}.
func (s *Server) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.restaurants.Delete(r.Context(), chi.URLParam(r, "restaurantID")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createReview handles POST /api/restaurants/{restaurantID}/reviews.
func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	author, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rev, err := s.reviews.Create(
		r.Context(), author, chi.URLParam(r, "restaurantID"), reviewInputFromRequest(req),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reviewToResponse(rev))
}

// listReviews handles GET /api/restaurants/{restaurantID}/reviews.
func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	sort, err := parseSortParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	pageNum, size := s.parsePageParams(r)
	result, err := s.reviews.List(
		r.Context(), chi.URLParam(r, "restaurantID"), pageRequest(pageNum, size), sort,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]reviewResponse, len(result.Items))
	for i := range result.Items {
		items[i] = reviewToResponse(result.Items[i])
	}

	writeJSON(w, http.StatusOK, pageResponse[reviewResponse]{
		Items: items,
		Total: result.Total,
		Page:  pageNum,
		Size:  size,
	})
}

// getReview handles GET /api/restaurants/{restaurantID}/reviews/{reviewID}.
func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	rev, err := s.reviews.Get(
		r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "reviewID"),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewToResponse(rev))
}

// updateReview handles PUT /api/restaurants/{restaurantID}/reviews/{reviewID}.
func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	author, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rev, err := s.reviews.Update(
		r.Context(), author,
		chi.URLParam(r, "restaurantID"), chi.URLParam(r, "reviewID"),
		reviewInputFromRequest(req),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewToResponse(rev))
}

// deleteReview handles DELETE /api/restaurants/{restaurantID}/reviews/{reviewID}.
func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	err := s.reviews.Delete(
		r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "reviewID"),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
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

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func restaurantInputFromRequest(req restaurantRequest) restaurantuc.Input {
	return restaurantuc.Input{
		Details:   detailsFromRequest(req),
		PhotoRefs: req.Photos,
	}
}

func reviewInputFromRequest(req reviewRequest) reviewuc.Input {
	return reviewuc.Input{
		Content:   req.Content,
		Rating:    req.Rating,
		PhotoRefs: req.Photos,
	}
}

// parsePageParams reads the 1-based page and size query parameters. Values
// below 1 are clamped rather than rejected; size is capped at the configured
// maximum.
func (s *Server) parsePageParams(r *http.Request) (pageNum, size int) {
	q := r.URL.Query()

	pageNum = 1
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			pageNum = n
		}
	}

	size = s.defaultPageSize
	if v := q.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}

	return pageNum, size
}

// pageRequest converts a 1-based page number into a 0-based offset window.
func pageRequest(pageNum, size int) page.Request {
	return page.Request{Offset: (pageNum - 1) * size, Limit: size}
}

// parseSortParams reads the review list sort and direction parameters.
func parseSortParams(r *http.Request) (reviewuc.Sort, error) {
	q := r.URL.Query()
	sort := reviewuc.DefaultSort()

	if v := q.Get("sort"); v != "" {
		switch v {
		case reviewuc.SortFieldDatePosted, reviewuc.SortFieldRating:
			sort.Field = v
		default:
			return reviewuc.Sort{}, errors.New("sort must be datePosted or rating")
		}
	}

	if v := q.Get("direction"); v != "" {
		switch strings.ToLower(v) {
		case "asc":
			sort.Ascending = true
		case "desc":
			sort.Ascending = false
		default:
			return reviewuc.Sort{}, errors.New("direction must be asc or desc")
		}
	}

	return sort, nil
}

func parseFloatParam(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns an error message safe for the client without
// exposing internals. Validation and policy messages are domain-authored,
// so their detail passes through.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrReviewNotAllowed) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrRestaurantNotFound,
		domain.ErrReviewNotFound,
		domain.ErrGeocodeUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// reviewNotAllowedHandler handles policy rejections, attaching the violated
// rule so clients can distinguish ownership from edit-window failures.
func reviewNotAllowedHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrReviewNotAllowed) {
		return false
	}
	resp := errorResponse{Code: codeReviewNotAllowed, Message: msg}
	if reason, ok := domain.PolicyReason(err); ok {
		resp.Reason = string(reason)
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
