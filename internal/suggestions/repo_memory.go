package suggestions

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo serves reference data from memory and is safe for concurrent
// use. It backs dev environments without a database and tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	templates []IndustryTemplate
	metrics   []MetricType
	platforms []Platform
	samples   map[string][]PerformanceSample
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{samples: make(map[string][]PerformanceSample)}
}

// NewSeededMemoryRepo constructs a MemoryRepo preloaded with the default
// taxonomies, mirroring the seed migration.
func NewSeededMemoryRepo() *MemoryRepo {
	r := NewMemoryRepo()
	r.SetMetricTypes([]MetricType{
		{ID: "5f0a3a1e-0000-4000-8000-000000000001", Code: "CLICK_THROUGH_RATE", Description: "Clicks divided by impressions", Unit: "percent", Category: "conversion"},
		{ID: "5f0a3a1e-0000-4000-8000-000000000002", Code: "CONVERSION_RATE", Description: "Share of visitors completing a target action", Unit: "percent", Category: "conversion"},
		{ID: "5f0a3a1e-0000-4000-8000-000000000003", Code: "ENGAGEMENT_RATE", Description: "Audience engagement rate across published content", Unit: "percent", Category: "engagement"},
		{ID: "5f0a3a1e-0000-4000-8000-000000000004", Code: "FOLLOWER_GROWTH", Description: "Net follower growth over the reporting period", Unit: "count", Category: "growth"},
		{ID: "5f0a3a1e-0000-4000-8000-000000000005", Code: "IMPRESSIONS", Description: "Total impressions across published content", Unit: "count", Category: "awareness"},
		{ID: "5f0a3a1e-0000-4000-8000-000000000006", Code: "REACH", Description: "Unique accounts reached by published content", Unit: "count", Category: "awareness"},
		{ID: "5f0a3a1e-0000-4000-8000-000000000007", Code: "REVENUE", Description: "Revenue attributed to marketing campaigns", Unit: "currency", Category: "revenue"},
	})
	r.SetPlatforms([]Platform{
		{ID: "7c1b2d3e-0000-4000-8000-000000000001", Name: "facebook", DisplayName: "Facebook", Category: "social"},
		{ID: "7c1b2d3e-0000-4000-8000-000000000002", Name: "google_ads", DisplayName: "Google Ads", Category: "paid"},
		{ID: "7c1b2d3e-0000-4000-8000-000000000003", Name: "instagram", DisplayName: "Instagram", Category: "social"},
		{ID: "7c1b2d3e-0000-4000-8000-000000000004", Name: "linkedin", DisplayName: "LinkedIn", Category: "professional"},
		{ID: "7c1b2d3e-0000-4000-8000-000000000005", Name: "tiktok", DisplayName: "TikTok", Category: "social"},
		{ID: "7c1b2d3e-0000-4000-8000-000000000006", Name: "x", DisplayName: "X (Twitter)", Category: "social"},
		{ID: "7c1b2d3e-0000-4000-8000-000000000007", Name: "youtube", DisplayName: "YouTube", Category: "video"},
	})
	return r
}

// SetTemplates replaces the template collection.
func (r *MemoryRepo) SetTemplates(templates []IndustryTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = append([]IndustryTemplate(nil), templates...)
}

// SetMetricTypes replaces the metric taxonomy.
func (r *MemoryRepo) SetMetricTypes(metrics []MetricType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append([]MetricType(nil), metrics...)
}

// SetPlatforms replaces the platform taxonomy.
func (r *MemoryRepo) SetPlatforms(platforms []Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platforms = append([]Platform(nil), platforms...)
}

// SetSamples replaces the performance samples for an industry.
func (r *MemoryRepo) SetSamples(industry string, samples []PerformanceSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[industry] = append([]PerformanceSample(nil), samples...)
}

// IndustryTemplates returns templates for an industry in the same order the
// Postgres repo uses.
func (r *MemoryRepo) IndustryTemplates(ctx context.Context, industry string) ([]IndustryTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []IndustryTemplate
	for _, t := range r.templates {
		if strings.EqualFold(t.Industry, industry) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// MetricTypes returns the metric taxonomy ordered by code.
func (r *MemoryRepo) MetricTypes(ctx context.Context) ([]MetricType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]MetricType(nil), r.metrics...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Platforms returns the platform taxonomy ordered by name.
func (r *MemoryRepo) Platforms(ctx context.Context) ([]Platform, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]Platform(nil), r.platforms...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// PerformanceSamples returns up to limit samples for an industry.
func (r *MemoryRepo) PerformanceSamples(ctx context.Context, industry string, limit int) ([]PerformanceSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]PerformanceSample(nil), r.samples[industry]...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Ping always succeeds for the in-memory repo.
func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ ReferenceRepo = (*MemoryRepo)(nil)
