package suggestions

import "context"

// ReferenceRepo reads the taxonomy and historical reference data. Every query
// uses a fixed deterministic ordering so prompt rendering is reproducible.
type ReferenceRepo interface {
	IndustryTemplates(ctx context.Context, industry string) ([]IndustryTemplate, error)
	MetricTypes(ctx context.Context) ([]MetricType, error)
	Platforms(ctx context.Context) ([]Platform, error)
	PerformanceSamples(ctx context.Context, industry string, limit int) ([]PerformanceSample, error)
	Ping(ctx context.Context) error
}
