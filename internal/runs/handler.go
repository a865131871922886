package runs

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"okr-backend/internal/shared/server/respond"
)

// Handler exposes read access to persisted suggestion runs.
type Handler struct {
	Store Store
}

// NewHandler constructs a Handler.
func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches run routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/runs", h.listRuns)
}

func (h *Handler) listRuns(c *gin.Context) {
	tenantID := strings.TrimSpace(c.Query("tenantId"))
	if tenantID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tenantId query parameter is required", []respond.FieldError{
			{Field: "tenantId", Message: "tenantId is required", Code: "required"},
		})
		return
	}
	if _, err := uuid.Parse(tenantID); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tenantId must be a valid UUID", []respond.FieldError{
			{Field: "tenantId", Message: "tenantId must be a valid UUID", Code: "invalid_uuid"},
		})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	stored, err := h.Store.ListByTenant(c.Request.Context(), tenantID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list runs", nil)
		return
	}

	respond.OK(c, gin.H{"runs": stored})
}
