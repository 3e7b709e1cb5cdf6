package domain

import "time"

// Notice severity constants.
const (
	NoticeSeverityInfo    = "info"
	NoticeSeveritySuccess = "success"
	NoticeSeverityWarning = "warning"
	NoticeSeverityError   = "error"
)

// DefaultNoticeDuration is how long a notice stays active when the
// caller does not ask for a specific lifetime.
const DefaultNoticeDuration = 5 * time.Second

// Notice is a short-lived message surfaced to a shopper, such as an
// acknowledgement after submitting a review or a warning that the
// compare tray is full.
type Notice struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Severity  string        `json:"severity"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}
