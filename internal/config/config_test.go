package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 720, cfg.ReviewTTL)
	assert.Equal(t, 168, cfg.CompareTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 20, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Empty(t, cfg.ModerationURL)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9191")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("MODERATION_WEBHOOK_URL", "https://moderation.example.com/hooks/reviews")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "https://moderation.example.com/hooks/reviews", cfg.ModerationURL)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("REVIEW_TTL_HOURS", "-1")

	_, err := Load()
	assert.Error(t, err)
}
