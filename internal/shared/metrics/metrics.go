package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	suggestionRequestsTotal  atomic.Uint64
	suggestionCompletedTotal atomic.Uint64
	suggestionFailedTotal    atomic.Uint64
	suggestionRejectedTotal  atomic.Uint64
	generationFailedTotal    atomic.Uint64
	unusableOutputTotal      atomic.Uint64
	rateLimitedTotal         atomic.Uint64

	suggestionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSuggestionRequested increments the received counter.
func IncSuggestionRequested() {
	suggestionRequestsTotal.Add(1)
}

// IncSuggestionCompleted increments the completed counter.
func IncSuggestionCompleted() {
	suggestionCompletedTotal.Add(1)
}

// IncSuggestionFailed increments the failed counter.
func IncSuggestionFailed() {
	suggestionFailedTotal.Add(1)
}

// IncSuggestionRejected increments the validation-rejected counter.
func IncSuggestionRejected() {
	suggestionRejectedTotal.Add(1)
}

// IncGenerationFailed increments the remote-generation failure counter.
func IncGenerationFailed() {
	generationFailedTotal.Add(1)
}

// IncUnusableOutput increments the unparseable-model-output counter.
func IncUnusableOutput() {
	unusableOutputTotal.Add(1)
}

// IncRateLimited increments the rate-limited counter.
func IncRateLimited() {
	rateLimitedTotal.Add(1)
}

// ObserveSuggestionDurationMs records a pipeline duration in milliseconds.
func ObserveSuggestionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	suggestionDuration.Observe(value)
}

// Snapshot returns current counter values for JSON pass-through reporting.
func Snapshot() map[string]any {
	requested := suggestionRequestsTotal.Load()
	completed := suggestionCompletedTotal.Load()
	failed := suggestionFailedTotal.Load()
	out := map[string]any{
		"requestsTotal":         requested,
		"completedTotal":        completed,
		"failedTotal":           failed,
		"rejectedTotal":         suggestionRejectedTotal.Load(),
		"generationFailedTotal": generationFailedTotal.Load(),
		"unusableOutputTotal":   unusableOutputTotal.Load(),
		"rateLimitedTotal":      rateLimitedTotal.Load(),
	}
	if requested > 0 {
		out["successRate"] = float64(completed) / float64(requested)
		out["errorRate"] = float64(failed) / float64(requested)
	} else {
		out["successRate"] = 0.0
		out["errorRate"] = 0.0
	}
	return out
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "suggestion_requests_total", "Total suggestion requests received", suggestionRequestsTotal.Load())
	writeCounter(&buf, "suggestion_completed_total", "Total suggestion requests completed", suggestionCompletedTotal.Load())
	writeCounter(&buf, "suggestion_failed_total", "Total suggestion requests failed", suggestionFailedTotal.Load())
	writeCounter(&buf, "suggestion_rejected_total", "Total suggestion requests rejected by validation", suggestionRejectedTotal.Load())
	writeCounter(&buf, "generation_failed_total", "Total remote generation call failures", generationFailedTotal.Load())
	writeCounter(&buf, "unusable_output_total", "Total unusable model outputs", unusableOutputTotal.Load())
	writeCounter(&buf, "rate_limited_total", "Total rate limited requests", rateLimitedTotal.Load())
	writeHistogram(&buf, "suggestion_duration_ms", "Suggestion pipeline duration in milliseconds", suggestionDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
