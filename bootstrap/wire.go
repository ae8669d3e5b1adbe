package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/consumer"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/handler"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/metrics"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/orchestrator"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/retry"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/service"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/tokenizer"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config          *config.Config
	DBPool          *pgxpool.Pool
	Runner          *orchestrator.PipelineRunner
	Metrics         *metrics.Collector
	HealthChecker   service.HealthCheckerService
	HealthHandler   handler.HealthHandler
	PipelineHandler *handler.PipelineHandler
	RedirectHandler *handler.RedirectHandler
	Scheduler       handler.JobScheduler
	RedisConsumer   *consumer.Consumer
	Logger          *slog.Logger
}

// BuildDependencies constructs all application dependencies.
// Returns a cleanup function that should be deferred.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Dependencies, func(), error) {
	dbPool, err := driver.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	fail := func(err error) (*Dependencies, func(), error) {
		dbPool.Close()
		return nil, nil, err
	}

	pipeline, err := BuildPipeline(cfg, dbPool, log)
	if err != nil {
		return fail(err)
	}

	healthChecker := service.NewHealthCheckerService(
		func(ctx context.Context) error { return driver.Ping(ctx, dbPool) },
		pipeline.LLM,
		pipeline.Mailer,
		log,
	)

	redirectHandler, err := handler.NewRedirectHandler(pipeline.Threads, cfg.Cache.RedirectCacheSize, log)
	if err != nil {
		return fail(err)
	}

	scheduler := handler.NewJobScheduler(log)
	if err := handler.SchedulePipelineJobs(scheduler, pipeline.Runner, cfg.Schedule); err != nil {
		return fail(fmt.Errorf("failed to schedule pipeline jobs: %w", err))
	}

	redisConsumer, err := consumer.NewConsumer(consumer.ConfigFrom(cfg.Redis), consumer.NewTriggerEventHandler(pipeline.Runner, log), log)
	if err != nil {
		return fail(fmt.Errorf("failed to create redis consumer: %w", err))
	}

	cleanup := func() {
		dbPool.Close()
	}

	return &Dependencies{
		Config:          cfg,
		DBPool:          dbPool,
		Runner:          pipeline.Runner,
		Metrics:         pipeline.Metrics,
		HealthChecker:   healthChecker,
		HealthHandler:   handler.NewHealthHandler(healthChecker, log),
		PipelineHandler: handler.NewPipelineHandler(pipeline.Runner, log),
		RedirectHandler: redirectHandler,
		Scheduler:       scheduler,
		RedisConsumer:   redisConsumer,
		Logger:          log,
	}, cleanup, nil
}

// Pipeline is the runner plus the pieces the HTTP layer shares with it.
type Pipeline struct {
	Runner  *orchestrator.PipelineRunner
	Metrics *metrics.Collector
	Threads repository.MailThreadRepository
	LLM     repository.SummarizerAPIRepository
	Mailer  repository.MailerRepository
}

// BuildPipeline wires repositories, clients and services into a pipeline runner.
// The CLI uses it directly for one-shot runs.
func BuildPipeline(cfg *config.Config, db driver.PgxIface, log *slog.Logger) (*Pipeline, error) {
	collector := metrics.NewCollector()
	clients := utils.NewHTTPClientManager(cfg.HTTP)
	fetchRetrier := retry.NewRetrier(retry.FromConfig(cfg.Retry), driver.IsRetryableFetchError, log)
	llmRetrier := retry.NewRetrier(retry.FromConfig(cfg.Retry), driver.IsRetryableLLMError, log)

	// repositories
	threads := repository.NewMailThreadRepository(db, log)
	summaries := repository.NewWeeklySummaryRepository(db, log)
	processingLogs := repository.NewProcessingLogRepository(db, log)
	commitfest := repository.NewCommitfestRepository(db, log)
	subscribers := repository.NewSubscriberRepository(db, log)

	archiveClient := driver.NewArchiveClient(clients.GetArchiveClient(), driver.ArchiveClientOptions{
		UserAgent:     cfg.HTTP.UserAgent,
		Interval:      cfg.Archive.FetchDelay,
		RespectRobots: cfg.HTTP.RespectRobots,
	}, fetchRetrier, log)
	archive := repository.NewArchiveRepository(archiveClient, cfg.Archive.BaseURL, cfg.Archive.ListName, log)

	// commitfest pages are paced by the sync service itself
	commitfestPages := driver.NewArchiveClient(clients.GetArchiveClient(), driver.ArchiveClientOptions{
		UserAgent:     cfg.HTTP.UserAgent,
		RespectRobots: cfg.HTTP.RespectRobots,
	}, fetchRetrier, log)
	commitfestSource := repository.NewCommitfestSourceRepository(
		driver.NewCommitfestClient(clients.GetAPIClient(), cfg.Commitfest.FixtureURL, cfg.HTTP.UserAgent, log),
		commitfestPages,
		cfg.Commitfest.BaseURL,
		log,
	)

	llm := repository.NewSummarizerAPIRepository(openAIConfig(cfg.LLM), clients.GetLLMClient(), llmRetrier, log)
	mailer := repository.NewMailerRepository(clients.GetAPIClient(), cfg.Delivery.ResendAPIKey, cfg.Delivery.ResendBaseURL, log)

	tok, err := tokenizer.New(cfg.LLM.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	// services
	aggregator, err := service.NewDiscussionAggregatorService(threads, commitfest, cfg.Cache.TagCacheSize, log)
	if err != nil {
		return nil, err
	}

	services := orchestrator.Services{
		Scraper: service.NewThreadScraperService(archive, threads, collector, log),
		Extractor: service.NewContentExtractorService(archive, threads, service.ExtractorOptions{
			DefaultBatchSize: cfg.Extractor.DefaultBatchSize,
			MinBatchSize:     cfg.Extractor.MinBatchSize,
			MaxBatchSize:     cfg.Extractor.MaxBatchSize,
			Delay:            cfg.Extractor.Delay,
		}, collector, log),
		Summarizer: service.NewDigestSummarizerService(
			aggregator,
			commitfest,
			summaries,
			llm,
			service.NewPromptBuilder(tok, cfg.LLM.TokenCeiling),
			service.NewDigestRenderer(cfg.Delivery.PublicBaseURL),
			service.SummarizerOptions{MaxTokens: cfg.LLM.MaxTokens, Temperature: cfg.LLM.Temperature},
			collector,
			log,
		),
		Sender:     service.NewSummarySenderService(summaries, subscribers, mailer, processingLogs, cfg.Delivery.From, collector, log),
		Commitfest: service.NewCommitfestSyncService(commitfestSource, commitfest, cfg.Commitfest.MaxPatches, cfg.Commitfest.Delay, collector, log),
	}

	runner := orchestrator.NewPipelineRunner(services, processingLogs, orchestrator.PipelineOptions{
		FetchDays:    cfg.Archive.WindowDays,
		SummaryDays:  cfg.Pipeline.SummaryDays,
		BatchSize:    cfg.Pipeline.ContentBatchSize,
		MaxAttempts:  cfg.Pipeline.MaxAttempts,
		AttemptDelay: cfg.Pipeline.AttemptDelay,
	}, collector, log)

	return &Pipeline{
		Runner:  runner,
		Metrics: collector,
		Threads: threads,
		LLM:     llm,
		Mailer:  mailer,
	}, nil
}

func openAIConfig(cfg config.LLMConfig) driver.OpenAIClientConfig {
	return driver.OpenAIClientConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
}
