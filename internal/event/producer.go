package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// Kafka topic constants for storefront engagement events.
const (
	TopicReviewSubmitted      = "storefront.review.submitted"
	TopicReviewReported       = "storefront.review.reported"
	TopicReviewSummaryUpdated = "storefront.review.summary_updated"
	TopicFeedbackSubmitted    = "storefront.feedback.submitted"
	TopicCompareUpdated       = "storefront.compare.updated"
)

// Aggregate type constants.
const (
	AggregateTypePage    = "page"
	AggregateTypeSession = "session"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-service"

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	PageID     string `json:"page_id"`
	ReviewID   int64  `json:"review_id"`
	Rating     int    `json:"rating"`
	Recommends bool   `json:"recommends"`
}

// ReviewReportedData is the payload for a review.reported event.
type ReviewReportedData struct {
	PageID   string `json:"page_id"`
	ReviewID int64  `json:"review_id"`
}

// SummaryUpdatedData is the payload for a review.summary_updated event.
type SummaryUpdatedData struct {
	PageID    string      `json:"page_id"`
	Count     int         `json:"count"`
	Mean      float64     `json:"mean"`
	Histogram map[int]int `json:"histogram"`
}

// FeedbackSubmittedData is the payload for a feedback.submitted event.
type FeedbackSubmittedData struct {
	FeedbackID string `json:"feedback_id"`
	SessionID  string `json:"session_id"`
	Type       string `json:"type"`
}

// CompareUpdatedData is the payload for a compare.updated event.
type CompareUpdatedData struct {
	SessionID  string   `json:"session_id"`
	ProductIDs []string `json:"product_ids"`
	CanCompare bool     `json:"can_compare"`
}

// Producer publishes storefront engagement events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, pageID string, review *domain.Review) error {
	data := ReviewSubmittedData{
		PageID:     pageID,
		ReviewID:   review.ID,
		Rating:     review.Rating,
		Recommends: review.Recommends,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, pageID, AggregateTypePage, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	return nil
}

// PublishReviewReported publishes a review.reported event.
func (p *Producer) PublishReviewReported(ctx context.Context, pageID string, reviewID int64) error {
	data := ReviewReportedData{
		PageID:   pageID,
		ReviewID: reviewID,
	}

	event, err := pkgkafka.NewEvent(TopicReviewReported, pageID, AggregateTypePage, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.reported event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewReported, event); err != nil {
		return fmt.Errorf("publish review.reported event: %w", err)
	}

	return nil
}

// PublishSummaryUpdated publishes a review.summary_updated event.
func (p *Producer) PublishSummaryUpdated(ctx context.Context, pageID string, summary domain.RatingSummary) error {
	data := SummaryUpdatedData{
		PageID:    pageID,
		Count:     summary.Count,
		Mean:      summary.Mean,
		Histogram: summary.Histogram,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSummaryUpdated, pageID, AggregateTypePage, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.summary_updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSummaryUpdated, event); err != nil {
		return fmt.Errorf("publish review.summary_updated event: %w", err)
	}

	return nil
}

// PublishFeedbackSubmitted publishes a feedback.submitted event.
func (p *Producer) PublishFeedbackSubmitted(ctx context.Context, fb *domain.Feedback) error {
	data := FeedbackSubmittedData{
		FeedbackID: fb.ID,
		SessionID:  fb.SessionID,
		Type:       fb.Type,
	}

	event, err := pkgkafka.NewEvent(TopicFeedbackSubmitted, fb.SessionID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create feedback.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicFeedbackSubmitted, event); err != nil {
		return fmt.Errorf("publish feedback.submitted event: %w", err)
	}

	return nil
}

// PublishCompareUpdated publishes a compare.updated event.
func (p *Producer) PublishCompareUpdated(ctx context.Context, sessionID string, set *domain.CompareSet) error {
	data := CompareUpdatedData{
		SessionID:  sessionID,
		ProductIDs: set.ProductIDs,
		CanCompare: set.CanCompare(),
	}

	event, err := pkgkafka.NewEvent(TopicCompareUpdated, sessionID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create compare.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCompareUpdated, event); err != nil {
		return fmt.Errorf("publish compare.updated event: %w", err)
	}

	return nil
}

// Announcer coalesces summary updates per page so a burst of review
// activity publishes one review.summary_updated event, carrying the
// final state, after the burst quiets down.
type Announcer struct {
	producer SummaryPublisher
	delay    time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingSummary
}

// SummaryPublisher is the slice of Producer the Announcer needs.
type SummaryPublisher interface {
	PublishSummaryUpdated(ctx context.Context, pageID string, summary domain.RatingSummary) error
}

type pendingSummary struct {
	timer   *time.Timer
	summary domain.RatingSummary
}

// DefaultAnnounceDelay is how long the announcer waits for further
// updates to the same page before publishing.
const DefaultAnnounceDelay = 300 * time.Millisecond

// NewAnnouncer creates a summary announcer. A non-positive delay falls
// back to the default.
func NewAnnouncer(producer SummaryPublisher, delay time.Duration, logger *slog.Logger) *Announcer {
	if delay <= 0 {
		delay = DefaultAnnounceDelay
	}
	return &Announcer{
		producer: producer,
		delay:    delay,
		logger:   logger,
		pending:  make(map[string]*pendingSummary),
	}
}

// Announce schedules a summary_updated publish for the page. A newer
// announcement for the same page replaces the pending one, so only the
// last summary in a burst goes out.
func (a *Announcer) Announce(pageID string, summary domain.RatingSummary) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[pageID]; ok {
		p.summary = summary
		p.timer.Reset(a.delay)
		return
	}

	p := &pendingSummary{summary: summary}
	p.timer = time.AfterFunc(a.delay, func() {
		a.fire(pageID)
	})
	a.pending[pageID] = p
}

func (a *Announcer) fire(pageID string) {
	a.mu.Lock()
	p, ok := a.pending[pageID]
	if ok {
		delete(a.pending, pageID)
	}
	a.mu.Unlock()

	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.producer.PublishSummaryUpdated(ctx, pageID, p.summary); err != nil {
		a.logger.Error("publish coalesced summary update",
			slog.String("page_id", pageID),
			slog.String("error", err.Error()),
		)
	}
}

// Flush publishes every pending summary immediately. Called during
// shutdown so buffered announcements are not lost.
func (a *Announcer) Flush(ctx context.Context) {
	a.mu.Lock()
	pending := a.pending
	a.pending = make(map[string]*pendingSummary)
	a.mu.Unlock()

	for pageID, p := range pending {
		p.timer.Stop()
		if err := a.producer.PublishSummaryUpdated(ctx, pageID, p.summary); err != nil {
			a.logger.Error("flush summary update",
				slog.String("page_id", pageID),
				slog.String("error", err.Error()),
			)
		}
	}
}
