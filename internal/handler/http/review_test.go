package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/moderation"
	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Load(ctx context.Context, pageID string) ([]domain.Review, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Save(ctx context.Context, pageID string, reviews []domain.Review) error {
	args := m.Called(ctx, pageID, reviews)
	return args.Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockCompareRepository struct {
	mock.Mock
}

func (m *mockCompareRepository) Get(ctx context.Context, sessionID string) (*domain.CompareSet, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareSet), args.Error(1)
}

func (m *mockCompareRepository) Save(ctx context.Context, sessionID string, set *domain.CompareSet) error {
	args := m.Called(ctx, sessionID, set)
	return args.Error(0)
}

func (m *mockCompareRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) Append(ctx context.Context, fb *domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *mockFeedbackRepository) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func testModerator() *moderation.Client {
	logger := testLogger()
	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("moderation-test"),
		logger,
	)
	return moderation.NewClient("", cb, logger)
}

func testReviewCatalog(repo *mockReviewRepository, notices *notice.Queue) *service.ReviewCatalog {
	logger := testLogger()
	producer := testEventProducer()
	announcer := event.NewAnnouncer(producer, time.Minute, logger)
	return service.NewReviewCatalog(repo, producer, announcer, testModerator(), notices, logger)
}

// setupReviewRouter mirrors the production route layout, including the
// session and content-type middleware.
func setupReviewRouter(handler *ReviewHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/pages/{pageID}/reviews", handler.List)
		r.Get("/pages/{pageID}/reviews/summary", handler.Summary)

		r.Group(func(r chi.Router) {
			r.Use(SessionFromHeader)
			r.Post("/pages/{pageID}/reviews", handler.Submit)
			r.Post("/pages/{pageID}/reviews/{reviewID}/helpful", handler.MarkHelpful)
			r.Post("/pages/{pageID}/reviews/{reviewID}/report", handler.Report)
		})
	})
	return r
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

// ============================================================================
// List / Summary
// ============================================================================

func TestReviewHandler_List(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	stored := []domain.Review{
		{ID: 2, Rating: 5, Body: "newest review here", AuthorName: "a"},
		{ID: 1, Rating: 3, Body: "older review here", AuthorName: "b"},
	}
	repo.On("Load", mock.Anything, "page-1").Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/page-1/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var page service.ReviewPage
	decodeData(t, rec, &page)
	require.Len(t, page.Reviews, 2)
	assert.Equal(t, int64(2), page.Reviews[0].ID)
	assert.Equal(t, 2, page.Summary.Count)
	assert.Equal(t, 4.0, page.Summary.Mean)
}

func TestReviewHandler_List_StarFilter(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	stored := []domain.Review{
		{ID: 2, Rating: 5, Body: "newest review here", AuthorName: "a"},
		{ID: 1, Rating: 3, Body: "older review here", AuthorName: "b"},
	}
	repo.On("Load", mock.Anything, "page-1").Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/page-1/reviews?filter=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var page service.ReviewPage
	decodeData(t, rec, &page)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, int64(2), page.Reviews[0].ID)
	assert.Equal(t, 2, page.Summary.Count, "summary ignores the filter")
}

func TestReviewHandler_List_BadFilter(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	repo.On("Load", mock.Anything, "page-1").Return([]domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/page-1/reviews?filter=banana", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_Summary(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	repo.On("Load", mock.Anything, "page-1").Return([]domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/page-1/reviews/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.RatingSummary
	decodeData(t, rec, &summary)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 0.0, summary.Mean)
	assert.Len(t, summary.Histogram, 5, "all five buckets even when empty")
}

// ============================================================================
// Submit
// ============================================================================

func TestReviewHandler_Submit(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	repo.On("Load", mock.Anything, "page-1").Return([]domain.Review{}, nil)
	repo.On("Save", mock.Anything, "page-1", mock.Anything).Return(nil)

	body, _ := json.Marshal(SubmitReviewRequest{
		Rating:     5,
		Title:      "Great bag",
		Body:       "The canvas feels sturdy and the stitching is clean.",
		AuthorName: "Dana",
		Recommends: true,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var review domain.Review
	decodeData(t, rec, &review)
	assert.NotZero(t, review.ID)
	assert.Equal(t, "Dana", review.AuthorName)

	repo.AssertExpectations(t)
}

func TestReviewHandler_Submit_MissingSession(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeErrorCode(t, rec))
	repo.AssertNotCalled(t, "Load")
}

func TestReviewHandler_Submit_ValidationErrors(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	body, _ := json.Marshal(SubmitReviewRequest{Rating: 9, Body: "x", AuthorName: ""})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestReviewHandler_Submit_MissingTitle(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	body, _ := json.Marshal(SubmitReviewRequest{
		Rating:     5,
		Body:       "The canvas feels sturdy and the stitching is clean.",
		AuthorName: "Dana",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
	repo.AssertNotCalled(t, "Save")
}

func TestReviewHandler_Submit_MalformedBody(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews", bytes.NewReader([]byte(`{broken`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// MarkHelpful / Report
// ============================================================================

func TestReviewHandler_MarkHelpful(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	stored := []domain.Review{{ID: 42, Rating: 5, Body: "helpful review body", AuthorName: "a"}}
	repo.On("Load", mock.Anything, "page-1").Return(stored, nil)
	repo.On("Save", mock.Anything, "page-1", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews/42/helpful", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var review domain.Review
	decodeData(t, rec, &review)
	assert.Equal(t, 1, review.HelpfulCount)
}

func TestReviewHandler_MarkHelpful_NotFound(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	repo.On("Load", mock.Anything, "page-1").Return([]domain.Review{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews/99/helpful", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}

func TestReviewHandler_MarkHelpful_BadID(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews/abc/helpful", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_Report(t *testing.T) {
	repo := new(mockReviewRepository)
	notices := notice.NewQueue()
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notices), testLogger()))

	stored := []domain.Review{{ID: 42, Rating: 1, Body: "spammy review body", AuthorName: "bot"}}
	repo.On("Load", mock.Anything, "page-1").Return(stored, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pages/page-1/reviews/42/report", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, notices.Active("sess-1"), 1)
}

// Load failures surface as a service-unavailable persistence error.
func TestReviewHandler_List_PersistenceError(t *testing.T) {
	repo := new(mockReviewRepository)
	router := setupReviewRouter(NewReviewHandler(testReviewCatalog(repo, notice.NewQueue()), testLogger()))

	repo.On("Load", mock.Anything, "page-1").Return(nil, apperrors.Persistence(assert.AnError))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/page-1/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
