package domain

import "time"

// Feedback type constants.
const (
	FeedbackTypeBug         = "bug"
	FeedbackTypeFeature     = "feature"
	FeedbackTypeImprovement = "improvement"
	FeedbackTypeGeneral     = "general"
)

// Feedback field limits.
const (
	MaxFeedbackMessageLen = 2000
	MinFeedbackMessageLen = 10
)

// ValidFeedbackTypes lists the accepted feedback categories.
var ValidFeedbackTypes = []string{
	FeedbackTypeBug,
	FeedbackTypeFeature,
	FeedbackTypeImprovement,
	FeedbackTypeGeneral,
}

// IsValidFeedbackType reports whether t is an accepted feedback category.
func IsValidFeedbackType(t string) bool {
	for _, v := range ValidFeedbackTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Feedback is a free-form message a shopper leaves about the storefront.
type Feedback struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Email     string    `json:"email,omitempty"`
	PageURL   string    `json:"page_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
