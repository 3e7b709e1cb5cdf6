package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/pkg/httputil"
)

// NoticeHandler handles HTTP requests for shopper notices.
type NoticeHandler struct {
	queue  *notice.Queue
	logger *slog.Logger
}

// NewNoticeHandler creates a new notice HTTP handler.
func NewNoticeHandler(queue *notice.Queue, logger *slog.Logger) *NoticeHandler {
	return &NoticeHandler{
		queue:  queue,
		logger: logger,
	}
}

// List handles GET /api/v1/notices
func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.queue.Active(sessionID)})
}

// Dismiss handles DELETE /api/v1/notices/{noticeID}
func (h *NoticeHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	noticeID := chi.URLParam(r, "noticeID")

	if !h.queue.Dismiss(sessionID, noticeID) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "notice not found or already expired"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "dismissed"}})
}
