package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	start time.Time
	count int
}

// InMemoryRateLimiter caps requests per key over a rolling window. It keeps a
// counter per window instead of individual timestamps, so memory stays bounded
// by the number of active keys regardless of the limit.
type InMemoryRateLimiter struct {
	mu      sync.Mutex
	keys    map[string]*window
	limit   int
	period  time.Duration
	stopped chan struct{}
}

func NewInMemoryRateLimiter(limit int, period time.Duration) *InMemoryRateLimiter {
	l := &InMemoryRateLimiter{
		keys:    make(map[string]*window),
		limit:   limit,
		period:  period,
		stopped: make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *InMemoryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	w, ok := l.keys[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.keys[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// sweep drops keys whose window has long expired.
func (l *InMemoryRateLimiter) sweep() {
	tick := time.NewTicker(l.period)
	defer tick.Stop()
	for {
		select {
		case <-l.stopped:
			return
		case <-tick.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-2 * l.period)
			for k, w := range l.keys {
				if w.start.Before(cutoff) {
					delete(l.keys, k)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *InMemoryRateLimiter) Stop() {
	close(l.stopped)
}

// RateLimit rejects requests over the limit, keyed by client IP.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
