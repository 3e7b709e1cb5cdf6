package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submittedData struct {
	PageID string `json:"page_id"`
	Rating int    `json:"rating"`
}

func TestNewEvent_Envelope(t *testing.T) {
	event, err := NewEvent("review.submitted", "page-1", "review", "storefront", submittedData{
		PageID: "page-1",
		Rating: 5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "review.submitted", event.EventType)
	assert.Equal(t, "page-1", event.AggregateID)
	assert.Equal(t, "review", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "storefront", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("feedback.submitted", "sess-1", "feedback", "storefront", submittedData{
		PageID: "page-9",
		Rating: 3,
	})
	require.NoError(t, err)
	event.WithCorrelationID("corr-7")

	raw, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-7", decoded.CorrelationID)

	var data submittedData
	require.NoError(t, decoded.UnmarshalData(&data))
	assert.Equal(t, "page-9", data.PageID)
	assert.Equal(t, 3, data.Rating)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.review.submitted", Topic("review", "submitted"))
}

func TestDefaultProducerConfig(t *testing.T) {
	cfg := DefaultProducerConfig([]string{"localhost:9092"})
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.False(t, cfg.Async)
}
