package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
)

const feedbackKey = "feedback:log"

// FeedbackRepository implements repository.FeedbackRepository using a
// Redis list. New entries are pushed to the head so recent feedback
// reads cheaply.
type FeedbackRepository struct {
	client *redis.Client
	log    *slog.Logger
}

// NewFeedbackRepository creates a new Redis-backed feedback repository.
func NewFeedbackRepository(client *redis.Client, log *slog.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		client: client,
		log:    log,
	}
}

// Append adds a feedback entry to the head of the log.
func (r *FeedbackRepository) Append(ctx context.Context, fb *domain.Feedback) error {
	data, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	if err := r.client.LPush(ctx, feedbackKey, data).Err(); err != nil {
		return fmt.Errorf("redis lpush feedback: %w", err)
	}

	return nil
}

// List returns up to limit feedback entries, newest first. Entries
// that no longer parse are skipped.
func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		return []domain.Feedback{}, nil
	}

	raw, err := r.client.LRange(ctx, feedbackKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange feedback: %w", err)
	}

	entries := make([]domain.Feedback, 0, len(raw))
	for _, item := range raw {
		var fb domain.Feedback
		if err := json.Unmarshal([]byte(item), &fb); err != nil {
			r.log.WarnContext(ctx, "skipping malformed feedback entry",
				slog.String("error", err.Error()),
			)
			continue
		}
		entries = append(entries, fb)
	}

	return entries, nil
}
