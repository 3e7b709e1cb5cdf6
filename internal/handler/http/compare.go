package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CompareHandler handles HTTP requests for the compare tray.
type CompareHandler struct {
	service *service.CompareService
	logger  *slog.Logger
}

// NewCompareHandler creates a new compare HTTP handler.
func NewCompareHandler(svc *service.CompareService, logger *slog.Logger) *CompareHandler {
	return &CompareHandler{
		service: svc,
		logger:  logger,
	}
}

// ToggleItemRequest is the JSON request body for toggling a compare item.
type ToggleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Get handles GET /api/v1/compare
func (h *CompareHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	view, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// Status handles GET /api/v1/compare/status
func (h *CompareHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	status, err := h.service.Status(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: status})
}

// Toggle handles POST /api/v1/compare/items
func (h *CompareHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req ToggleItemRequest
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

	set, err := h.service.Toggle(r.Context(), sessionID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: set})
}

// Remove handles DELETE /api/v1/compare/items/{productID}
func (h *CompareHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	set, err := h.service.Remove(r.Context(), sessionID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: set})
}

// Clear handles DELETE /api/v1/compare
func (h *CompareHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	if err := h.service.Clear(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
