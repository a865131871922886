package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSlidingWindowQuota(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindow(time.Minute, 3, clock.Now)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4")
		if !allowed {
			t.Fatalf("request %d should be within quota", i+1)
		}
	}
	allowed, retryAfter := limiter.Allow("1.2.3.4")
	if allowed {
		t.Fatalf("request over quota should be rejected")
	}
	if retryAfter != time.Minute {
		t.Fatalf("expected retryAfter of the full window, got %v", retryAfter)
	}

	// Other callers have their own quota.
	if allowed, _ := limiter.Allow("5.6.7.8"); !allowed {
		t.Fatalf("a distinct caller must not share quota")
	}
}

func TestSlidingWindowExpiryReAllows(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindow(time.Minute, 2, clock.Now)

	limiter.Allow("caller")
	clock.Advance(30 * time.Second)
	limiter.Allow("caller")

	allowed, retryAfter := limiter.Allow("caller")
	if allowed {
		t.Fatalf("third request inside the window should be rejected")
	}
	if retryAfter != 30*time.Second {
		t.Fatalf("expected 30s until the oldest hit expires, got %v", retryAfter)
	}

	// After the oldest hit leaves the window the caller gets a slot back.
	clock.Advance(31 * time.Second)
	if allowed, _ := limiter.Allow("caller"); !allowed {
		t.Fatalf("request after window expiry should be allowed")
	}
}

func TestSlidingWindowSweepDropsIdleCallers(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindow(time.Minute, 5, clock.Now)

	limiter.Allow("idle")
	limiter.Allow("active")
	if got := limiter.Len(); got != 2 {
		t.Fatalf("expected 2 tracked callers, got %d", got)
	}

	clock.Advance(2 * time.Minute)
	limiter.Allow("active")
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected idle caller swept after the window, got %d tracked", got)
	}
}

func TestSlidingWindowZeroLimitDisables(t *testing.T) {
	limiter := NewSlidingWindow(time.Minute, 0, nil)
	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("caller"); !allowed {
			t.Fatalf("zero limit must disable rate limiting")
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindow(time.Minute, 2, clock.Now)

	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "1.2.3.4:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := do(); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := do()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}
	if !strings.Contains(w.Body.String(), `"rate_limited"`) || !strings.Contains(w.Body.String(), `"retryAfter":60`) {
		t.Fatalf("unexpected 429 body: %s", w.Body.String())
	}
}
