package suggestions

import (
	"context"
	"database/sql"
)

// PGRepo implements ReferenceRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// IndustryTemplates returns objective templates for an industry, priority
// ascending then category ascending.
func (r *PGRepo) IndustryTemplates(ctx context.Context, industry string) ([]IndustryTemplate, error) {
	const query = `
SELECT id, industry, title, description, category, priority, timeframe
FROM industry_templates
WHERE industry = $1
ORDER BY priority ASC, category ASC, title ASC`
	rows, err := r.DB.QueryContext(ctx, query, industry)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IndustryTemplate
	for rows.Next() {
		var t IndustryTemplate
		if err := rows.Scan(&t.ID, &t.Industry, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Timeframe); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MetricTypes returns the full metric taxonomy ordered by code.
func (r *PGRepo) MetricTypes(ctx context.Context) ([]MetricType, error) {
	const query = `
SELECT id, code, description, unit, category
FROM metric_types
ORDER BY code ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricType
	for rows.Next() {
		var m MetricType
		if err := rows.Scan(&m.ID, &m.Code, &m.Description, &m.Unit, &m.Category); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Platforms returns the full platform taxonomy ordered by name.
func (r *PGRepo) Platforms(ctx context.Context) ([]Platform, error) {
	const query = `
SELECT id, name, display_name, category
FROM platforms
ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Platform
	for rows.Next() {
		var p Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Category); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PerformanceSamples returns the most recent objective-performance samples
// for an industry, newest first.
func (r *PGRepo) PerformanceSamples(ctx context.Context, industry string, limit int) ([]PerformanceSample, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT category, title, completion_pct, timeframe
FROM objective_performance
WHERE industry = $1
ORDER BY recorded_at DESC, id ASC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, industry, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PerformanceSample
	for rows.Next() {
		var s PerformanceSample
		if err := rows.Scan(&s.Category, &s.Title, &s.CompletionPct, &s.Timeframe); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Ping verifies database connectivity with a trivial round-trip.
func (r *PGRepo) Ping(ctx context.Context) error {
	var one int
	return r.DB.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

var _ ReferenceRepo = (*PGRepo)(nil)
