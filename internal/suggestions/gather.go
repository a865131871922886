package suggestions

import (
	"context"
	"sync"

	"okr-backend/internal/shared/telemetry"
)

// GatherContext issues the four reference reads concurrently and returns
// once all four complete. A failed read degrades to an empty collection for
// that category with a logged warning; it never aborts the gather and no
// retry is performed here.
func GatherContext(ctx context.Context, repo ReferenceRepo, industry string, sampleLimit int, requestID string) ReferenceContext {
	var (
		wg  sync.WaitGroup
		ref ReferenceContext
	)

	warn := func(category string, err error) {
		telemetry.Warn("reference.fetch_failed", map[string]any{
			"request_id": requestID,
			"category":   category,
			"industry":   industry,
			"error":      err.Error(),
		})
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		templates, err := repo.IndustryTemplates(ctx, industry)
		if err != nil {
			warn("industry_templates", err)
			return
		}
		ref.Templates = templates
	}()
	go func() {
		defer wg.Done()
		metrics, err := repo.MetricTypes(ctx)
		if err != nil {
			warn("metric_types", err)
			return
		}
		ref.MetricTypes = metrics
	}()
	go func() {
		defer wg.Done()
		platforms, err := repo.Platforms(ctx)
		if err != nil {
			warn("platforms", err)
			return
		}
		ref.Platforms = platforms
	}()
	go func() {
		defer wg.Done()
		samples, err := repo.PerformanceSamples(ctx, industry, sampleLimit)
		if err != nil {
			warn("performance_samples", err)
			return
		}
		ref.Samples = samples
	}()
	wg.Wait()

	return ref
}
