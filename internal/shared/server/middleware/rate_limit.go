package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"okr-backend/internal/shared/metrics"
)

// SlidingWindow counts recent request timestamps per caller and rejects
// requests once the quota is exceeded within the moving window. Instances are
// constructed explicitly and injected so tests can run in isolation.
type SlidingWindow struct {
	mu        sync.Mutex
	window    time.Duration
	limit     int
	hits      map[string][]time.Time
	now       func() time.Time
	lastSweep time.Time
}

// NewSlidingWindow constructs a limiter with the given window and quota.
// A nil now func defaults to time.Now.
func NewSlidingWindow(window time.Duration, limit int, now func() time.Time) *SlidingWindow {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = time.Minute
	}
	return &SlidingWindow{
		window: window,
		limit:  limit,
		hits:   make(map[string][]time.Time),
		now:    now,
	}
}

// Allow records a hit for key and reports whether it is within quota. When the
// quota is exhausted it returns the duration until the oldest counted hit
// falls out of the window.
func (l *SlidingWindow) Allow(key string) (bool, time.Duration) {
	if l == nil || l.limit <= 0 {
		return true, 0
	}
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	recent := pruneBefore(l.hits[key], cutoff)
	if len(recent) >= l.limit {
		l.hits[key] = recent
		retryAfter := recent[0].Add(l.window).Sub(now)
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		return false, retryAfter
	}
	l.hits[key] = append(recent, now)
	return true, 0
}

// Len reports the number of tracked callers, for tests and introspection.
func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// sweepLocked drops callers whose every hit has aged out. Runs at most once
// per window to keep Allow cheap.
func (l *SlidingWindow) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-l.window)
	for key, stamps := range l.hits {
		recent := pruneBefore(stamps, cutoff)
		if len(recent) == 0 {
			delete(l.hits, key)
			continue
		}
		l.hits[key] = recent
	}
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(stamps) && !stamps[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return stamps
	}
	return append([]time.Time(nil), stamps[idx:]...)
}

// RateLimit rejects callers over quota with HTTP 429 and a retryAfter hint.
// Callers are keyed by client IP.
func RateLimit(limiter *SlidingWindow) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.ClientIP())
		if key == "" {
			key = "unknown"
		}
		allowed, retryAfter := limiter.Allow(key)
		if allowed {
			c.Next()
			return
		}
		metrics.IncRateLimited()
		retryAfterSeconds := int(math.Ceil(retryAfter.Seconds()))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "rate_limited",
			"retryAfter": retryAfterSeconds,
		})
		c.Abort()
	}
}
