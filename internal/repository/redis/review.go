package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
)

const reviewKeyPrefix = "reviews:"

// ReviewRepository implements repository.ReviewRepository using Redis.
// Each page's review collection is stored as a single JSON blob.
type ReviewRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewReviewRepository creates a new Redis-backed review repository.
func NewReviewRepository(client *redis.Client, ttl time.Duration, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Load retrieves the review collection for a page. A missing key or a
// blob that no longer parses both yield an empty collection: stored
// reviews are a cache of shopper input, and unreadable data is treated
// as absent rather than fatal.
func (r *ReviewRepository) Load(ctx context.Context, pageID string) ([]domain.Review, error) {
	key := reviewKeyPrefix + pageID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []domain.Review{}, nil
		}
		return nil, fmt.Errorf("redis get reviews: %w", err)
	}

	var reviews []domain.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		r.log.WarnContext(ctx, "discarding malformed review collection",
			slog.String("page_id", pageID),
			slog.String("error", err.Error()),
		)
		return []domain.Review{}, nil
	}

	return reviews, nil
}

// Save persists the full review collection for a page with the
// configured TTL.
func (r *ReviewRepository) Save(ctx context.Context, pageID string, reviews []domain.Review) error {
	key := reviewKeyPrefix + pageID

	data, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("marshal reviews: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set reviews: %w", err)
	}

	return nil
}
