package runs

import (
	"context"
	"sync"
)

// MemoryStore keeps runs in memory and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	byTenant map[string][]Run
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byTenant: make(map[string][]Run)}
}

// Save stores the run.
func (s *MemoryStore) Save(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTenant[run.TenantID] = append(s.byTenant[run.TenantID], run)
	return nil
}

// ListByTenant returns runs for a tenant, newest first.
func (s *MemoryStore) ListByTenant(ctx context.Context, tenantID string, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.byTenant[tenantID]
	out := make([]Run, 0, len(stored))
	for i := len(stored) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
