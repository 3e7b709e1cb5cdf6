package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	catalog *service.ReviewCatalog
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(catalog *service.ReviewCatalog, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// SubmitReviewRequest is the JSON request body for submitting a review.
type SubmitReviewRequest struct {
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title       string `json:"title" validate:"required,max=100"`
	Body        string `json:"body" validate:"required,min=10,max=1000"`
	AuthorName  string `json:"author_name" validate:"required,max=50"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email"`
	Recommends  bool   `json:"recommends"`
}

// List handles GET /api/v1/pages/{pageID}/reviews?filter=
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")

	page, err := h.catalog.List(r.Context(), pageID, r.URL.Query().Get("filter"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Submit handles POST /api/v1/pages/{pageID}/reviews
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	pageID := chi.URLParam(r, "pageID")

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.catalog.Submit(r.Context(), sessionID, pageID, service.SubmitReviewInput{
		Rating:      req.Rating,
		Title:       req.Title,
		Body:        req.Body,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Recommends:  req.Recommends,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// Summary handles GET /api/v1/pages/{pageID}/reviews/summary
func (h *ReviewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")

	summary, err := h.catalog.Summary(r.Context(), pageID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// MarkHelpful handles POST /api/v1/pages/{pageID}/reviews/{reviewID}/helpful
func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	pageID := chi.URLParam(r, "pageID")

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "reviewID must be an integer"},
		})
		return
	}

	review, err := h.catalog.MarkHelpful(r.Context(), sessionID, pageID, reviewID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// Report handles POST /api/v1/pages/{pageID}/reviews/{reviewID}/report
func (h *ReviewHandler) Report(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	pageID := chi.URLParam(r, "pageID")

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "reviewID must be an integer"},
		})
		return
	}

	if err := h.catalog.Report(r.Context(), sessionID, pageID, reviewID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "reported"}})
}
