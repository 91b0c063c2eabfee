package bootstrap

import (
	"context"
	"fmt"

	"github.com/agrischeme/backend/internal/config"
	"github.com/agrischeme/backend/internal/core/normalize"
	"github.com/agrischeme/backend/internal/core/ports"
	"github.com/agrischeme/backend/internal/core/usecase"
	"github.com/agrischeme/backend/internal/infrastructure/extractor/schemefile"
	"github.com/agrischeme/backend/internal/infrastructure/llm/gemini"
	"github.com/agrischeme/backend/internal/infrastructure/market"
	"github.com/agrischeme/backend/internal/infrastructure/queue/nats"
	"github.com/agrischeme/backend/internal/infrastructure/repository/postgres"
	"github.com/agrischeme/backend/internal/infrastructure/resilience"
	"github.com/agrischeme/backend/internal/infrastructure/storage/localfs"
	"github.com/agrischeme/backend/internal/infrastructure/weather/openmeteo"
)

type App struct {
	Config config.Config

	Queue      ports.MessageQueue
	SchemeRepo ports.SchemeStore
	ImportRepo ports.ImportJobRepository

	EligibilityUC ports.EligibilityService
	IngestUC      *usecase.SchemeIngestUseCase
	ProcessUC     ports.ImportProcessor
	AdvisoryUC    ports.Advisor
	Weather       ports.WeatherProvider
	Market        ports.MarketDataProvider

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	schemeRepo := postgres.NewSchemeRepository(db)
	importRepo := postgres.NewImportJobRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	rules, err := normalize.LoadRules(cfg.NormalizationRulesPath)
	if err != nil {
		return nil, fmt.Errorf("load normalization rules: %w", err)
	}
	normalizer := normalize.New(rules)

	extractor := schemefile.NewExtractor(storage)
	advisor := gemini.New(cfg.GeminiURL, cfg.GeminiModel, cfg.GeminiKey, executor)

	eligibilityUC := usecase.NewEligibilityUseCase(schemeRepo)
	ingestUC := usecase.NewSchemeIngestUseCase(schemeRepo, importRepo, storage, queue, normalizer)
	processUC := usecase.NewImportSchemesUseCase(importRepo, schemeRepo, extractor, normalizer)
	advisoryUC := usecase.NewAdvisoryUseCase(advisor)

	return &App{
		Config: cfg,

		Queue:      queue,
		SchemeRepo: schemeRepo,
		ImportRepo: importRepo,

		EligibilityUC: eligibilityUC,
		IngestUC:      ingestUC,
		ProcessUC:     processUC,
		AdvisoryUC:    advisoryUC,
		Weather:       openmeteo.New(cfg.OpenMeteoURL),
		Market:        market.NewSimulator(),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
