package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateWindow struct {
	hits    int
	resetAt time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	limit   int
	window  time.Duration
}

// RateLimit limits requests per client IP and route within a fixed window.
// Counters live in process memory, so the limit applies per instance.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	rl := &rateLimiter{
		windows: make(map[string]*rateWindow),
		limit:   limit,
		window:  window,
	}
	go rl.sweep()

	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	hits, resetAt := rl.record(c.ClientIP() + "|" + c.FullPath())

	remaining := rl.limit - hits
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(int(time.Until(resetAt).Seconds())))

	if hits > rl.limit {
		c.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	c.Next()
}

func (rl *rateLimiter) record(key string) (int, time.Time) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.windows[key]
	if w == nil || now.After(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(rl.window)}
		rl.windows[key] = w
	}
	w.hits++
	return w.hits, w.resetAt
}

// sweep drops expired windows so the map does not grow without bound.
func (rl *rateLimiter) sweep() {
	for now := range time.Tick(rl.window) {
		rl.mu.Lock()
		for key, w := range rl.windows {
			if now.After(w.resetAt) {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}
