package suggestions

import (
	"strings"

	"github.com/google/uuid"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidateRequest checks required fields before any external call is made.
// It returns one entry per invalid field, or nil when the request is valid.
func ValidateRequest(req SuggestionRequest) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(req.Industry) == "" {
		errs = append(errs, FieldError{Field: "industry", Message: "industry is required", Code: "required"})
	}
	if strings.TrimSpace(req.BrandName) == "" {
		errs = append(errs, FieldError{Field: "brandName", Message: "brandName is required", Code: "required"})
	}
	tenantID := strings.TrimSpace(req.TenantID)
	if tenantID == "" {
		errs = append(errs, FieldError{Field: "tenantId", Message: "tenantId is required", Code: "required"})
	} else if _, err := uuid.Parse(tenantID); err != nil {
		errs = append(errs, FieldError{Field: "tenantId", Message: "tenantId must be a valid UUID", Code: "invalid_uuid"})
	}
	return errs
}
