package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/bistro/pkg/response"
)

// limiter is a fixed-window per-client request counter. Each RateLimit
// middleware owns its own limiter, so separate route chains can carry
// separate budgets.
type limiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	windows map[string]*clientWindow
}

type clientWindow struct {
	count int
	until time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	l := &limiter{
		max:     max,
		window:  window,
		windows: map[string]*clientWindow{},
	}
	go l.evict()
	return l
}

func (l *limiter) allow(client string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[client]
	if w == nil || now.After(w.until) {
		w = &clientWindow{until: now.Add(l.window)}
		l.windows[client] = w
	}
	w.count++
	return w.count <= l.max
}

// evict drops expired windows once a minute so memory stays bounded on
// long-running servers.
func (l *limiter) evict() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()

	for range tick.C {
		now := time.Now()
		l.mu.Lock()
		for client, w := range l.windows {
			if now.After(w.until) {
				delete(l.windows, client)
			}
		}
		l.mu.Unlock()
	}
}

func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}

// RateLimit caps each client IP at max requests per window.
// Example: middleware.RateLimit(300, time.Minute)
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, window)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				response.Message(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
