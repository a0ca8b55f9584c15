package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
)

// RateLimitMiddleware limits requests per client IP across the API
// surface. The counter lives in the shared cache so the limit holds
// across instances; without a cache it degrades to an in-process map.
type RateLimitMiddleware struct {
	cache  providers.CacheProvider
	limit  int
	window time.Duration

	mu     sync.Mutex
	states map[string]*rateState
}

type rateState struct {
	count   int
	resetAt time.Time
}

type rateCounter struct {
	Count int `json:"count"`
}

// NewRateLimitMiddleware creates a rate limit middleware
func NewRateLimitMiddleware(cache providers.CacheProvider, limit int, window time.Duration) *RateLimitMiddleware {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimitMiddleware{
		cache:  cache,
		limit:  limit,
		window: window,
		states: make(map[string]*rateState),
	}
}

// Middleware wraps a handler with the per-IP limit
func (m *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Health checks are never limited
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, retryAfter := m.allow(r.Context(), "ratelimit:"+requestIP(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) allow(ctx context.Context, key string) (bool, time.Duration) {
	if m.cache != nil {
		counter := rateCounter{}
		if data, err := m.cache.Get(ctx, key); err == nil {
			_ = json.Unmarshal(data, &counter)
		}

		if counter.Count >= m.limit {
			return false, m.window
		}

		counter.Count++
		data, _ := json.Marshal(counter)
		if err := m.cache.Set(ctx, key, data, int(m.window.Seconds())); err == nil {
			return true, m.window
		}
		// Cache write failed, fall through to the local limiter
	}

	return m.allowLocal(key)
}

func (m *RateLimitMiddleware) allowLocal(key string) (bool, time.Duration) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[key]
	if !ok || now.After(state.resetAt) {
		state = &rateState{count: 0, resetAt: now.Add(m.window)}
		m.states[key] = state
	}

	if state.count >= m.limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = m.window
		}
		return false, retryAfter
	}

	state.count++
	return true, m.window
}

func requestIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
