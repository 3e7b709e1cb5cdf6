package moderation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("moderation-test"),
		testLogger(),
	)
	return NewClient(endpoint, cb, testLogger())
}

func samplePayload() ReportPayload {
	return ReportPayload{
		PageID:     "page-1",
		ReviewID:   1700000000001,
		Rating:     1,
		Title:      "Spam",
		Body:       "buy cheap watches",
		AuthorName: "bot",
		ReportedAt: time.Now().UTC(),
	}
}

func TestClient_Report_PostsPayload(t *testing.T) {
	var received ReportPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.Report(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000001), received.ReviewID)
	assert.Equal(t, "page-1", received.PageID)
}

func TestClient_Report_DisabledIsNoop(t *testing.T) {
	c := newTestClient(t, "")

	assert.False(t, c.Enabled())
	assert.NoError(t, c.Report(context.Background(), samplePayload()))
}

func TestClient_Report_RejectedByWebhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.Report(context.Background(), samplePayload())
	assert.Error(t, err)
}
