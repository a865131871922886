package runs

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGStore implements Store using Postgres.
type PGStore struct {
	DB *sql.DB
}

// Save inserts a run record.
func (s *PGStore) Save(ctx context.Context, run Run) error {
	const query = `
INSERT INTO suggestion_runs (id, request_id, tenant_id, industry, brand_name, count, confidence, suggestions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var payload any
	if len(run.Suggestions) > 0 {
		payload = string(run.Suggestions)
	}
	_, err := s.DB.ExecContext(ctx, query,
		run.ID,
		run.RequestID,
		run.TenantID,
		run.Industry,
		run.BrandName,
		run.Count,
		run.Confidence,
		payload,
		run.CreatedAt,
	)
	return err
}

// ListByTenant returns the most recent runs for a tenant, newest first.
func (s *PGStore) ListByTenant(ctx context.Context, tenantID string, limit int) ([]Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `
SELECT id, request_id, tenant_id, industry, brand_name, count, confidence, suggestions, created_at
FROM suggestion_runs
WHERE tenant_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var payload sql.NullString
		if err := rows.Scan(&r.ID, &r.RequestID, &r.TenantID, &r.Industry, &r.BrandName, &r.Count, &r.Confidence, &payload, &r.CreatedAt); err != nil {
			return nil, err
		}
		if payload.Valid {
			r.Suggestions = json.RawMessage(payload.String)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ Store = (*PGStore)(nil)
