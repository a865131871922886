package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"okr-backend/internal/llm"
	"okr-backend/internal/llm/openai"
	"okr-backend/internal/runs"
	"okr-backend/internal/shared/config"
	"okr-backend/internal/shared/server"
	"okr-backend/internal/shared/server/middleware"
	"okr-backend/internal/shared/storage/db"
	"okr-backend/internal/suggestions"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	ReferenceRepo     suggestions.ReferenceRepo
	RunStore          runs.Store
	LLM               llm.Client
	SuggestionService *suggestions.Service
	HealthChecker     *suggestions.HealthChecker
	SuggestionHandler *suggestions.Handler
	RunsHandler       *runs.Handler
	Limiter           *middleware.SlidingWindow
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	var refRepo suggestions.ReferenceRepo
	var runStore runs.Store
	if sqlDB != nil {
		refRepo = &suggestions.PGRepo{DB: sqlDB}
		runStore = &runs.PGStore{DB: sqlDB}
	} else {
		refRepo = suggestions.NewSeededMemoryRepo()
		runStore = runs.NewMemoryStore()
	}

	svc := &suggestions.Service{
		Repo:              refRepo,
		LLM:               llmClient,
		Runs:              runStore,
		GenerationTimeout: cfg.GenerationTimeout,
		SampleLimit:       cfg.SampleLimit,
	}
	health := &suggestions.HealthChecker{
		LLM:  llmClient,
		Repo: refRepo,
	}

	app := &App{
		Config:            cfg,
		DB:                sqlDB,
		ReferenceRepo:     refRepo,
		RunStore:          runStore,
		LLM:               llmClient,
		SuggestionService: svc,
		HealthChecker:     health,
		SuggestionHandler: suggestions.NewHandler(svc, health, cfg.IsDevLike()),
		RunsHandler:       runs.NewHandler(runStore),
		Limiter:           middleware.NewSlidingWindow(cfg.RateLimitWindow, cfg.RateLimitMax, nil),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		SuggestionHandler: app.SuggestionHandler,
		RunsHandler:       app.RunsHandler,
		Limiter:           app.Limiter,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory reference data")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory reference data: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			if cfg.IsDevLike() {
				log.Printf("bootstrap: openai client unavailable; using placeholder: %v", err)
				return llm.PlaceholderClient{}, nil
			}
			return nil, err
		}
		return client, nil
	}
	return llm.PlaceholderClient{}, nil
}
