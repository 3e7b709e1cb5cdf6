package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// FeedbackHandler handles HTTP requests for feedback endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
	logger  *slog.Logger
}

// NewFeedbackHandler creates a new feedback HTTP handler.
func NewFeedbackHandler(svc *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitFeedbackRequest is the JSON request body for submitting feedback.
type SubmitFeedbackRequest struct {
	Type    string `json:"type" validate:"required,oneof=bug feature improvement general"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
	Email   string `json:"email" validate:"omitempty,email"`
	PageURL string `json:"page_url" validate:"omitempty,max=500"`
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req SubmitFeedbackRequest
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

	fb, err := h.service.Submit(r.Context(), sessionID, service.SubmitFeedbackInput{
		Type:    req.Type,
		Message: req.Message,
		Email:   req.Email,
		PageURL: req.PageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: fb})
}

// List handles GET /api/v1/feedback?limit=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "limit must be an integer"},
			})
			return
		}
		limit = n
	}

	entries, err := h.service.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}
