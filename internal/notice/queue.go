// Package notice holds the short-lived shopper notices surfaced after
// storefront actions. Notices expire on their own; the queue never
// needs explicit cleanup.
package notice

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/utafrali/storefront/internal/domain"
)

const cleanupInterval = time.Minute

// Queue is an in-process store of active notices with per-notice
// expiry. Keys are namespaced by session so one shopper's notices
// never leak into another's view.
type Queue struct {
	cache *gocache.Cache
}

// NewQueue creates an empty notice queue.
func NewQueue() *Queue {
	return &Queue{
		cache: gocache.New(domain.DefaultNoticeDuration, cleanupInterval),
	}
}

// Push adds a notice for a session and returns it with its identity
// and timestamps filled in. A non-positive duration falls back to the
// default lifetime.
func (q *Queue) Push(sessionID, severity, message string, duration time.Duration) domain.Notice {
	if duration <= 0 {
		duration = domain.DefaultNoticeDuration
	}

	now := time.Now().UTC()
	n := domain.Notice{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Severity:  severity,
		Message:   message,
		Duration:  duration,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}

	q.cache.Set(key(sessionID, n.ID), n, duration)
	return n
}

// Active returns the session's unexpired notices, oldest first.
func (q *Queue) Active(sessionID string) []domain.Notice {
	prefix := key(sessionID, "")

	notices := make([]domain.Notice, 0)
	for k, item := range q.cache.Items() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if n, ok := item.Object.(domain.Notice); ok {
			notices = append(notices, n)
		}
	}

	sort.Slice(notices, func(i, j int) bool {
		return notices[i].CreatedAt.Before(notices[j].CreatedAt)
	})

	return notices
}

// Dismiss removes a notice before its natural expiry, reporting
// whether it was still active.
func (q *Queue) Dismiss(sessionID, noticeID string) bool {
	k := key(sessionID, noticeID)
	if _, found := q.cache.Get(k); !found {
		return false
	}
	q.cache.Delete(k)
	return true
}

func key(sessionID, noticeID string) string {
	return "session:" + sessionID + ":" + noticeID
}
