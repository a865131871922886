package suggestions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"okr-backend/internal/llm"
	"okr-backend/internal/shared/metrics"
	"okr-backend/internal/shared/server/middleware"
	"okr-backend/internal/shared/server/respond"
	"okr-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the suggestion service.
type Handler struct {
	Svc    *Service
	Health *HealthChecker
	// DevDetail exposes internal error messages in non-production environments.
	DevDetail bool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, health *HealthChecker, devDetail bool) *Handler {
	return &Handler{Svc: svc, Health: health, DevDetail: devDetail}
}

// RegisterRoutes attaches suggestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suggestions", h.generateSuggestions)
	rg.GET("/suggestions/health", h.healthCheck)
	rg.GET("/suggestions/metrics", h.metricsSnapshot)
}

func (h *Handler) generateSuggestions(c *gin.Context) {
	metrics.IncSuggestionRequested()
	requestID := middleware.RequestIDFromContext(c)

	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncSuggestionRejected()
		respond.Error(c, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	if fieldErrs := ValidateRequest(req); len(fieldErrs) > 0 {
		metrics.IncSuggestionRejected()
		respond.Error(c, http.StatusBadRequest, "validation_error", "request validation failed", fieldErrs)
		return
	}
	c.Set("tenantId", req.TenantID)

	result, err := h.Svc.Generate(c.Request.Context(), req, requestID)
	if err != nil {
		h.writeGenerateError(c, requestID, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"suggestions": result.Suggestions,
			"metadata": gin.H{
				"industry":     result.Industry,
				"brandContext": result.BrandContext,
				"generatedAt":  result.GeneratedAt.Format(time.RFC3339),
				"confidence":   result.Confidence,
			},
		},
		"requestId": requestID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeGenerateError maps pipeline failures onto distinct error codes so
// operators can tell "the model didn't answer" from "the model answered
// garbage". Detail is hidden outside dev-like environments.
func (h *Handler) writeGenerateError(c *gin.Context, requestID string, err error) {
	telemetry.Error("suggestions.failed", map[string]any{
		"request_id": requestID,
		"error":      err.Error(),
	})

	code := "internal_error"
	message := "failed to generate suggestions"
	switch {
	case IsUnusableOutput(err):
		code = "unusable_output"
		message = "AI response could not be parsed"
	case errors.Is(err, llm.ErrGenerationFailed):
		code = "generation_failed"
		message = "AI generation failed"
	}

	var details any
	if h.DevDetail {
		details = err.Error()
	}
	respond.Error(c, http.StatusInternalServerError, code, message, details)
}

func (h *Handler) healthCheck(c *gin.Context) {
	report := h.Health.Check(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(c, status, report)
}

func (h *Handler) metricsSnapshot(c *gin.Context) {
	respond.OK(c, metrics.Snapshot())
}
