package runs

import (
	"encoding/json"
	"time"
)

// Run is the persisted record of one completed suggestion batch. Persistence
// happens after the pipeline finishes and is best-effort; the core pipeline
// never depends on it.
type Run struct {
	ID          string          `json:"id"`
	RequestID   string          `json:"requestId"`
	TenantID    string          `json:"tenantId"`
	Industry    string          `json:"industry"`
	BrandName   string          `json:"brandName"`
	Count       int             `json:"count"`
	Confidence  float64         `json:"confidence"`
	Suggestions json.RawMessage `json:"suggestions,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
