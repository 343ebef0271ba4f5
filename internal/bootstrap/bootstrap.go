package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haiminh/plant-disease-assistant/internal/config"
	"github.com/haiminh/plant-disease-assistant/internal/core/ports"
	"github.com/haiminh/plant-disease-assistant/internal/core/usecase"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/chunking"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/classifier/mlserver"
	neo4jstore "github.com/haiminh/plant-disease-assistant/internal/infrastructure/graph/neo4j"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/llm/gemini"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/queue/nats"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/repository/postgres"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/resilience"
	"github.com/haiminh/plant-disease-assistant/internal/infrastructure/translate"
	"github.com/haiminh/plant-disease-assistant/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Metrics       *metrics.PipelineMetrics
	WorkerMetrics *metrics.WorkerMetrics

	Queue   ports.MessageQueue
	Cases   ports.CaseStore
	History ports.HistoryStore

	QueryUC    ports.DiseaseQueryService
	LookupUC   ports.CaseLookupService
	DiagnoseUC ports.LeafDiagnoser
	EmbedUC    ports.CaseEmbedProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	history := postgres.NewHistoryRepository(db)
	if err := history.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	graph, err := neo4jstore.NewStore(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		return nil, fmt.Errorf("open neo4j: %w", err)
	}
	if err := graph.Verify(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	pipelineMetrics := metrics.NewPipelineMetrics("plant-disease-assistant")

	// External calls go through the breaker only; failed calls surface
	// immediately instead of being retried.
	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: 1,
		BreakerEnabled:   true,
	})

	window := time.Duration(cfg.EmbedRateWindowSeconds) * time.Second
	geminiClient := gemini.New(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiGenModel, cfg.GeminiEmbedModel, gemini.Options{
		Executor: executor,
		Limiter:  gemini.DefaultLimiter(cfg.EmbedRateCalls, window),
	})
	classifier := gemini.NewClassifier(geminiClient)
	embedder := gemini.NewEmbedder(geminiClient, pipelineMetrics)

	searcher := neo4jstore.NewSearcher(graph, embedder, pipelineMetrics, logger)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	translator, err := loadTranslator(cfg.TranslationTablePath)
	if err != nil {
		return nil, err
	}
	leafClassifier := mlserver.New(cfg.MLServerURL, 0)

	queryUC := usecase.NewQueryPipeline(classifier, searcher, history, pipelineMetrics, logger, cfg.SearchTopK)
	lookupUC := usecase.NewCaseLookupUseCase(graph, history, logger)
	diagnoseUC := usecase.NewDiagnoseUseCase(leafClassifier, translator, lookupUC, logger)
	embedUC := usecase.NewCaseEmbedUseCase(graph, embedder, chunker, cfg.EmbedMaxChars)

	return &App{
		Config: cfg,
		Logger: logger,

		Metrics:       pipelineMetrics,
		WorkerMetrics: metrics.NewWorkerMetrics("plant-disease-assistant"),

		Queue:   queue,
		Cases:   graph,
		History: history,

		QueryUC:    queryUC,
		LookupUC:   lookupUC,
		DiagnoseUC: diagnoseUC,
		EmbedUC:    embedUC,

		closeFn: func() {
			queue.Close()
			_ = graph.Close(context.Background())
			_ = db.Close()
		},
	}, nil
}

func loadTranslator(path string) (*translate.Translator, error) {
	if path == "" {
		return translate.New(translate.Default()), nil
	}
	translator, err := translate.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load translation table: %w", err)
	}
	return translator, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
