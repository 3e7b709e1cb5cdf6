// Package moderation forwards reported reviews to an external
// moderation webhook.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/storefront/pkg/httpclient"
)

// ReportPayload is the body posted to the moderation webhook when a
// shopper flags a review.
type ReportPayload struct {
	PageID     string    `json:"page_id"`
	ReviewID   int64     `json:"review_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorName string    `json:"author_name"`
	ReportedAt time.Time `json:"reported_at"`
}

// Client posts review reports to the moderation webhook through a
// circuit breaker. A client with no endpoint configured is a no-op.
type Client struct {
	endpoint string
	http     *httpclient.CircuitBreakerClient
	log      *slog.Logger
}

// NewClient creates a moderation client. An empty endpoint disables it.
func NewClient(endpoint string, http *httpclient.CircuitBreakerClient, log *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		http:     http,
		log:      log,
	}
}

// Enabled reports whether a moderation endpoint is configured.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

// Report posts a flagged review to the moderation webhook. When the
// client is disabled it returns nil without making a request.
func (c *Client) Report(ctx context.Context, payload ReportPayload) error {
	if !c.Enabled() {
		c.log.DebugContext(ctx, "moderation disabled, dropping report",
			slog.Int64("review_id", payload.ReviewID),
		)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("post review report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("moderation webhook returned %d", resp.StatusCode)
	}

	c.log.InfoContext(ctx, "review report forwarded to moderation",
		slog.Int64("review_id", payload.ReviewID),
		slog.String("page_id", payload.PageID),
	)

	return nil
}
