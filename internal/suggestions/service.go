package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"okr-backend/internal/llm"
	"okr-backend/internal/runs"
	"okr-backend/internal/shared/metrics"
	"okr-backend/internal/shared/telemetry"
)

const defaultGenerationTimeout = 60 * time.Second

// Service runs the suggestion pipeline: gather reference context, compose the
// prompt, call the model once, extract the JSON array, reconcile. No state is
// held across requests.
type Service struct {
	Repo ReferenceRepo
	LLM  llm.Client
	// Runs receives a best-effort record of each completed batch; nil disables
	// persistence.
	Runs              runs.Store
	GenerationTimeout time.Duration
	SampleLimit       int
}

// Generate produces reconciled suggestions for a validated request.
// Generation-call failures and unusable model output propagate as distinct
// error conditions; partial reference-data failures do not fail the request.
func (s *Service) Generate(ctx context.Context, req SuggestionRequest, requestID string) (Result, error) {
	start := time.Now()

	ref := GatherContext(ctx, s.Repo, req.Industry, s.SampleLimit, requestID)
	prompt := ComposePrompt(req, ref)

	timeout := s.GenerationTimeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.LLM.Complete(genCtx, prompt)
	if err != nil {
		metrics.IncGenerationFailed()
		metrics.IncSuggestionFailed()
		return Result{}, fmt.Errorf("generate suggestions: %w", err)
	}

	items, err := ExtractJSONArray(raw)
	if err != nil {
		metrics.IncUnusableOutput()
		metrics.IncSuggestionFailed()
		return Result{}, fmt.Errorf("generate suggestions: %w", err)
	}

	reconciled := Reconcile(items, ref, requestID)
	result := Result{
		Suggestions:  reconciled.Suggestions,
		Confidence:   reconciled.Confidence,
		Industry:     req.Industry,
		BrandContext: brandContext(req),
		GeneratedAt:  time.Now().UTC(),
	}

	s.persistRun(ctx, req, requestID, result)

	metrics.IncSuggestionCompleted()
	metrics.ObserveSuggestionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("suggestions.generated", map[string]any{
		"request_id":  requestID,
		"tenant_id":   req.TenantID,
		"industry":    req.Industry,
		"count":       len(result.Suggestions),
		"skipped":     reconciled.Skipped,
		"confidence":  result.Confidence,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})

	return result, nil
}

// persistRun is an explicit external write after the pipeline completes;
// failures are logged and never fail the request.
func (s *Service) persistRun(ctx context.Context, req SuggestionRequest, requestID string, result Result) {
	if s.Runs == nil {
		return
	}
	payload, err := json.Marshal(result.Suggestions)
	if err != nil {
		telemetry.Warn("run.persist_failed", map[string]any{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return
	}
	run := runs.Run{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		TenantID:    req.TenantID,
		Industry:    req.Industry,
		BrandName:   req.BrandName,
		Count:       len(result.Suggestions),
		Confidence:  result.Confidence,
		Suggestions: payload,
		CreatedAt:   result.GeneratedAt,
	}
	if err := s.Runs.Save(ctx, run); err != nil {
		telemetry.Warn("run.persist_failed", map[string]any{
			"request_id": requestID,
			"run_id":     run.ID,
			"error":      err.Error(),
		})
	}
}

func brandContext(req SuggestionRequest) string {
	name := strings.TrimSpace(req.BrandName)
	if product := strings.TrimSpace(req.KeyProduct); product != "" {
		return fmt.Sprintf("%s (%s)", name, product)
	}
	return name
}
