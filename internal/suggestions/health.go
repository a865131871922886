package suggestions

import (
	"context"
	"strings"
	"sync"
	"time"

	"okr-backend/internal/llm"
)

const healthPrompt = `Reply with the single word OK.`

// CheckResult is the outcome of one health sub-check.
type CheckResult struct {
	OK        bool    `json:"ok"`
	LatencyMs float64 `json:"latencyMs"`
	Error     string  `json:"error,omitempty"`
}

// HealthReport aggregates the two sub-checks. Healthy is the logical AND.
type HealthReport struct {
	Healthy    bool        `json:"healthy"`
	Generation CheckResult `json:"generation"`
	Database   CheckResult `json:"database"`
	CheckedAt  time.Time   `json:"checkedAt"`
}

// HealthChecker probes the generation client and the data store.
type HealthChecker struct {
	LLM     llm.Client
	Repo    ReferenceRepo
	Timeout time.Duration
}

// Check runs both sub-checks concurrently with no shared state and waits for
// both; one failing never short-circuits the other.
func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg         sync.WaitGroup
		generation CheckResult
		database   CheckResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		generation = h.checkGeneration(checkCtx)
	}()
	go func() {
		defer wg.Done()
		database = h.checkDatabase(checkCtx)
	}()
	wg.Wait()

	return HealthReport{
		Healthy:    generation.OK && database.OK,
		Generation: generation,
		Database:   database,
		CheckedAt:  time.Now().UTC(),
	}
}

func (h *HealthChecker) checkGeneration(ctx context.Context) CheckResult {
	start := time.Now()
	reply, err := h.LLM.Complete(ctx, healthPrompt)
	latency := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return CheckResult{LatencyMs: latency, Error: err.Error()}
	}
	if !strings.Contains(strings.ToUpper(reply), "OK") {
		return CheckResult{LatencyMs: latency, Error: "unexpected acknowledgement: " + reply}
	}
	return CheckResult{OK: true, LatencyMs: latency}
}

func (h *HealthChecker) checkDatabase(ctx context.Context) CheckResult {
	start := time.Now()
	err := h.Repo.Ping(ctx)
	latency := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return CheckResult{LatencyMs: latency, Error: err.Error()}
	}
	return CheckResult{OK: true, LatencyMs: latency}
}
