package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"okr-backend/internal/runs"
	"okr-backend/internal/shared/config"
	"okr-backend/internal/shared/metrics"
	"okr-backend/internal/shared/server/middleware"
	"okr-backend/internal/shared/server/respond"
	"okr-backend/internal/suggestions"
)

// RouterDeps carries the dependencies the router wires together.
type RouterDeps struct {
	Config            config.Config
	SuggestionHandler *suggestions.Handler
	RunsHandler       *runs.Handler
	Limiter           *middleware.SlidingWindow
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(deps.Limiter),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.SuggestionHandler.RegisterRoutes(api)
	if deps.RunsHandler != nil {
		deps.RunsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
