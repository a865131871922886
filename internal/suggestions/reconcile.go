package suggestions

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"

	"okr-backend/internal/shared/telemetry"
)

// ReconcileResult is the outcome of reconciling one raw batch.
type ReconcileResult struct {
	Suggestions []Suggestion
	Confidence  float64
	Skipped     int
}

// Reconcile cross-references each raw generated item against the taxonomy,
// clamps out-of-range scores, and assigns a fresh identifier to every
// surviving item. Order is preserved. A malformed item is skipped with a
// logged warning and never aborts the rest of the batch.
func Reconcile(items []json.RawMessage, ref ReferenceContext, requestID string) ReconcileResult {
	result := ReconcileResult{}

	for idx, item := range items {
		var raw RawSuggestion
		if err := json.Unmarshal(item, &raw); err != nil {
			result.Skipped++
			telemetry.Warn("suggestion.skipped", map[string]any{
				"request_id": requestID,
				"index":      idx,
				"reason":     "unmarshal: " + err.Error(),
			})
			continue
		}
		if strings.TrimSpace(raw.Title) == "" {
			result.Skipped++
			telemetry.Warn("suggestion.skipped", map[string]any{
				"request_id": requestID,
				"index":      idx,
				"reason":     "missing title",
			})
			continue
		}

		result.Suggestions = append(result.Suggestions, Suggestion{
			ID:                   uuid.NewString(),
			Title:                raw.Title,
			Description:          raw.Description,
			Category:             raw.Category,
			Priority:             clampPriority(raw.Priority),
			SuggestedTargetValue: raw.SuggestedTargetValue,
			SuggestedTimeframe:   raw.SuggestedTimeframe,
			MetricType:           resolveMetric(raw.MetricTypeID, raw.Title, ref.MetricTypes),
			Platforms:            resolvePlatforms(raw.PlatformNames, ref.Platforms),
			ConfidenceScore:      clampConfidence(raw.ConfidenceScore),
			Reasoning:            raw.Reasoning,
		})
	}

	result.Confidence = batchConfidence(result.Suggestions)
	return result
}

// resolveMetric maps a free-text metric hint to a taxonomy entry. Fallback
// order: exact case-insensitive code match, then description containing the
// first whitespace-delimited token of the title, then the taxonomy's first
// entry. Returns nil only when the taxonomy is empty.
func resolveMetric(hint, title string, metrics []MetricType) *MetricType {
	if len(metrics) == 0 {
		return nil
	}

	if trimmed := strings.TrimSpace(hint); trimmed != "" {
		for i := range metrics {
			if strings.EqualFold(metrics[i].Code, trimmed) {
				m := metrics[i]
				return &m
			}
		}
	}

	if tokens := strings.Fields(title); len(tokens) > 0 {
		token := strings.ToLower(tokens[0])
		for i := range metrics {
			if strings.Contains(strings.ToLower(metrics[i].Description), token) {
				m := metrics[i]
				return &m
			}
		}
	}

	first := metrics[0]
	return &first
}

// resolvePlatforms maps free-text platform hints to taxonomy entries via
// case-insensitive substring match on name or display name. Unmatched hints
// are dropped silently; the result may be empty.
func resolvePlatforms(hints []string, platforms []Platform) []Platform {
	var out []Platform
	seen := make(map[string]struct{})
	for _, hint := range hints {
		needle := strings.ToLower(strings.TrimSpace(hint))
		if needle == "" {
			continue
		}
		for _, p := range platforms {
			name := strings.ToLower(p.Name)
			display := strings.ToLower(p.DisplayName)
			if strings.Contains(name, needle) || strings.Contains(needle, name) ||
				strings.Contains(display, needle) || strings.Contains(needle, display) {
				if _, dup := seen[p.ID]; dup {
					break
				}
				seen[p.ID] = struct{}{}
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func clampPriority(v float64) int {
	p := int(v)
	if p < 1 {
		return 1
	}
	if p > 3 {
		return 3
	}
	return p
}

func clampConfidence(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// batchConfidence is the mean of the surviving clamped confidences rounded
// to two decimals, 0 for an empty batch.
func batchConfidence(suggestions []Suggestion) float64 {
	if len(suggestions) == 0 {
		return 0
	}
	var sum float64
	for _, s := range suggestions {
		sum += s.ConfidenceScore
	}
	return math.Round(sum/float64(len(suggestions))*100) / 100
}
