package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// client tracks a rate limiter per caller.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientStore manages per-caller rate limiters with automatic cleanup
// of stale entries.
type clientStore struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     int
	burst   int
	ttl     time.Duration
	nowFunc func() time.Time // injectable clock for testing
}

// newClientStore creates a store with the given rate parameters and TTL.
// It starts a background cleanup goroutine that runs every ttl interval.
func newClientStore(rps, burst int, ttl time.Duration) *clientStore {
	s := &clientStore{
		clients: make(map[string]*client),
		rps:     rps,
		burst:   burst,
		ttl:     ttl,
		nowFunc: time.Now,
	}
	go s.cleanupLoop()
	return s
}

// getLimiter returns (or creates) a rate limiter for the given caller key.
// It updates lastSeen on every call.
func (s *clientStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.clients[key]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
		s.clients[key] = &client{limiter: limiter, lastSeen: s.nowFunc()}
		return limiter
	}
	c.lastSeen = s.nowFunc()
	return c.limiter
}

// cleanupLoop runs a ticker that evicts clients not seen within the TTL.
func (s *clientStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

// cleanup evicts all clients whose lastSeen is older than the TTL.
func (s *clientStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	for key, c := range s.clients {
		if now.Sub(c.lastSeen) > s.ttl {
			delete(s.clients, key)
		}
	}
}

// len returns the number of tracked clients (used in tests).
func (s *clientStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RateLimit returns middleware that enforces per-caller token bucket rate
// limiting. Callers are keyed by their X-Session-ID header when present,
// otherwise by client IP, so anonymous shoppers behind a shared NAT are
// still told apart once they hold a session. Returns HTTP 429 when the
// limit is exceeded.
func RateLimit(rps, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	const cleanupInterval = 3 * time.Minute
	store := newClientStore(rps, burst, cleanupInterval)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := callerKey(r)
			limiter := store.getLimiter(key)

			if !limiter.Allow() {
				logger.Warn("rate limit exceeded",
					slog.String("caller", key),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"RATE_LIMITED","message":"too many requests"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// callerKey identifies the caller for rate limiting purposes.
func callerKey(r *http.Request) string {
	if session := r.Header.Get("X-Session-ID"); session != "" {
		return "session:" + session
	}
	return "ip:" + clientIP(r)
}

// clientIP extracts the client IP address from the request. It checks
// X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first valid IP in the proxy chain.
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip.String()
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
