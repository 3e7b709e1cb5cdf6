package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const compareKeyPrefix = "compare:"

// CompareRepository implements repository.CompareRepository using Redis.
type CompareRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCompareRepository creates a new Redis-backed compare repository.
func NewCompareRepository(client *redis.Client, ttl time.Duration) *CompareRepository {
	return &CompareRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the compare set for a session from Redis.
func (r *CompareRepository) Get(ctx context.Context, sessionID string) (*domain.CompareSet, error) {
	key := compareKeyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("compare set", sessionID)
		}
		return nil, fmt.Errorf("redis get compare set: %w", err)
	}

	var set domain.CompareSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("unmarshal compare set: %w", err)
	}

	return &set, nil
}

// Save persists the compare set for a session with the configured TTL.
func (r *CompareRepository) Save(ctx context.Context, sessionID string, set *domain.CompareSet) error {
	key := compareKeyPrefix + sessionID

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal compare set: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set compare set: %w", err)
	}

	return nil
}

// Delete removes the compare set for a session from Redis.
func (r *CompareRepository) Delete(ctx context.Context, sessionID string) error {
	key := compareKeyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del compare set: %w", err)
	}

	return nil
}
