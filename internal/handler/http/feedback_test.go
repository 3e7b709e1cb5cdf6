package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/internal/service"
)

func setupFeedbackRouter(repo *mockFeedbackRepository, notices *notice.Queue) *chi.Mux {
	svc := service.NewFeedbackService(repo, testEventProducer(), notices, testLogger())
	handler := NewFeedbackHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/feedback", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Post("/", handler.Submit)
		r.Get("/", handler.List)
	})
	return r
}

func TestFeedbackHandler_Submit(t *testing.T) {
	repo := new(mockFeedbackRepository)
	notices := notice.NewQueue()
	router := setupFeedbackRouter(repo, notices)

	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Type:    domain.FeedbackTypeImprovement,
		Message: "The filter panel would be easier with price presets.",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var fb domain.Feedback
	decodeData(t, rec, &fb)
	assert.NotEmpty(t, fb.ID)
	assert.Equal(t, domain.FeedbackTypeImprovement, fb.Type)

	assert.Len(t, notices.Active("sess-1"), 1)
	repo.AssertExpectations(t)
}

func TestFeedbackHandler_Submit_Validation(t *testing.T) {
	repo := new(mockFeedbackRepository)
	router := setupFeedbackRouter(repo, notice.NewQueue())

	body, _ := json.Marshal(SubmitFeedbackRequest{Type: "rant", Message: "no"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
	repo.AssertNotCalled(t, "Append")
}

func TestFeedbackHandler_Submit_WrongContentType(t *testing.T) {
	repo := new(mockFeedbackRepository)
	router := setupFeedbackRouter(repo, notice.NewQueue())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", bytes.NewReader([]byte("type=bug")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestFeedbackHandler_List(t *testing.T) {
	repo := new(mockFeedbackRepository)
	router := setupFeedbackRouter(repo, notice.NewQueue())

	entries := []domain.Feedback{{ID: "fb-2"}, {ID: "fb-1"}}
	repo.On("List", mock.Anything, 10).Return(entries, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback?limit=10", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Feedback
	decodeData(t, rec, &got)
	assert.Len(t, got, 2)
}

func TestFeedbackHandler_List_BadLimit(t *testing.T) {
	repo := new(mockFeedbackRepository)
	router := setupFeedbackRouter(repo, notice.NewQueue())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback?limit=ten", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
