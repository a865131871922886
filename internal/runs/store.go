package runs

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no run matches a lookup.
var ErrNotFound = errors.New("not found")

// Store persists completed suggestion runs.
type Store interface {
	Save(ctx context.Context, run Run) error
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]Run, error)
}
