package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/service"
)

const (
	defaultMaxAttempts  = 3
	defaultAttemptDelay = 500 * time.Millisecond
	defaultDays         = 7
)

const tracerName = "github.com/haritabh1992/postgres-mailing-list-summary-sender/orchestrator"

// Services are the stage implementations a runner drives.
type Services struct {
	Scraper    service.ThreadScraperService
	Extractor  service.ContentExtractorService
	Summarizer service.DigestSummarizerService
	Sender     service.SummarySenderService
	Commitfest service.CommitfestSyncService
}

// PipelineOptions are the defaults applied when a trigger leaves a knob unset.
type PipelineOptions struct {
	FetchDays    int
	SummaryDays  int
	BatchSize    int
	MaxAttempts  int
	AttemptDelay time.Duration
}

// PipelineRunner executes stages sequentially and records every stage in the audit log.
type PipelineRunner struct {
	services Services
	logs     repository.ProcessingLogRepository
	metrics  service.MetricsRecorder
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
	opts     PipelineOptions
	wg       sync.WaitGroup
}

// NewPipelineRunner creates a runner; a nil metrics recorder disables stage metrics.
func NewPipelineRunner(services Services, logs repository.ProcessingLogRepository, opts PipelineOptions, metrics service.MetricsRecorder, logger *slog.Logger) *PipelineRunner {
	if opts.FetchDays <= 0 {
		opts.FetchDays = defaultDays
	}
	if opts.SummaryDays <= 0 {
		opts.SummaryDays = defaultDays
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.AttemptDelay == 0 {
		opts.AttemptDelay = defaultAttemptDelay
	}
	return &PipelineRunner{
		services: services,
		logs:     logs,
		metrics:  metrics,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
		opts:     opts,
	}
}

// Start runs stage in the background and returns its run id immediately.
// The run outlives ctx's cancellation.
func (r *PipelineRunner) Start(ctx context.Context, stage domain.PipelineStage, params domain.RunParams) string {
	runID := uuid.NewString()
	bg := context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.ErrorContext(bg, "panic in pipeline run", "run_id", runID, "stage", stage, "panic", rec)
			}
		}()
		r.execute(bg, runID, stage, params)
	}()

	r.logger.InfoContext(ctx, "pipeline run started", "run_id", runID, "stage", stage)
	return runID
}

// Run executes stage synchronously.
func (r *PipelineRunner) Run(ctx context.Context, stage domain.PipelineStage, params domain.RunParams) *domain.RunResult {
	return r.execute(ctx, uuid.NewString(), stage, params)
}

// Wait blocks until every background run has finished.
func (r *PipelineRunner) Wait() {
	r.wg.Wait()
}

func (r *PipelineRunner) execute(ctx context.Context, runID string, stage domain.PipelineStage, params domain.RunParams) *domain.RunResult {
	ctx, runSpan := r.tracer.Start(ctx, "pipeline."+string(stage), trace.WithAttributes(
		attribute.String("pipeline.run_id", runID),
		attribute.String("pipeline.stage", string(stage)),
	))
	defer runSpan.End()

	result := &domain.RunResult{RunID: runID, Stage: stage, State: domain.RunCompleted}
	plan := r.plan(stage, params)

	for _, step := range stage.Steps() {
		started := r.now()
		r.audit(ctx, runID, step.ProcessType(), domain.LogStatusInProgress, fmt.Sprintf("%s started", step), started, nil)

		stepCtx, span := r.tracer.Start(ctx, "stage."+string(step))
		out, err := r.runStage(stepCtx, step, plan)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "stage failed")
		}
		span.End()
		completed := r.now()
		r.recordStage(step, err == nil, completed.Sub(started))

		stageResult := &domain.StageResult{Stage: step, Result: out}
		result.Stages = append(result.Stages, stageResult)

		if err != nil {
			stageResult.Err = err
			stageResult.Error = err.Error()
			r.audit(ctx, runID, step.ProcessType(), domain.LogStatusError, fmt.Sprintf("%s failed: %v", step, err), started, &completed)
			r.logger.ErrorContext(ctx, "pipeline stage failed", "run_id", runID, "stage", step, "error", err)
			result.State = domain.RunFailed
			runSpan.SetStatus(codes.Error, string(step)+" failed")
			break
		}

		r.audit(ctx, runID, step.ProcessType(), domain.LogStatusSuccess, fmt.Sprintf("%s completed: %s", step, summarize(out)), started, &completed)
		r.logger.InfoContext(ctx, "pipeline stage completed", "run_id", runID, "stage", step)
	}

	status := domain.LogStatusSuccess
	if result.State == domain.RunFailed {
		status = domain.LogStatusError
	}
	finished := r.now()
	r.audit(ctx, runID, domain.ProcessPipelineRun, status, fmt.Sprintf("run %s %s", stage, result.State), finished, &finished)

	return result
}

// runPlan fixes the windows for a whole run, so a weekly digest sends what it generated.
type runPlan struct {
	params        domain.RunParams
	fetchWindow   domain.DateWindow
	summaryWindow domain.DateWindow
	sendWindow    *domain.DateWindow
}

func (r *PipelineRunner) plan(stage domain.PipelineStage, params domain.RunParams) runPlan {
	now := r.now()
	p := runPlan{
		params:        params,
		fetchWindow:   domain.LastDays(now, r.opts.FetchDays),
		summaryWindow: domain.LastDays(now, r.opts.SummaryDays).DateOnly(),
	}
	if params.Window != nil {
		p.fetchWindow = *params.Window
		p.summaryWindow = params.Window.DateOnly()
		w := p.summaryWindow
		p.sendWindow = &w
	}

	for _, step := range stage.Steps() {
		if step == domain.StageGenerateSummary && p.sendWindow == nil {
			w := p.summaryWindow
			p.sendWindow = &w
		}
	}
	return p
}

func (r *PipelineRunner) runStage(ctx context.Context, stage domain.PipelineStage, p runPlan) (any, error) {
	switch stage {
	case domain.StageFetchThreads:
		return r.services.Scraper.FetchThreads(ctx, p.fetchWindow)
	case domain.StageFetchContent:
		return r.runContentLoop(ctx, p.params)
	case domain.StageGenerateSummary:
		return r.services.Summarizer.GenerateSummary(ctx, p.summaryWindow)
	case domain.StageSendSummary:
		return r.services.Sender.SendSummary(ctx, p.sendWindow)
	case domain.StageCommitfestTags:
		return r.services.Commitfest.SyncTags(ctx)
	case domain.StageCommitfestData:
		return r.services.Commitfest.SyncPatches(ctx)
	default:
		return nil, fmt.Errorf("%w: %q is not a single stage", domain.ErrInvalidStage, stage)
	}
}

// runContentLoop calls the extractor until nothing remains or the attempt cap is hit.
func (r *PipelineRunner) runContentLoop(ctx context.Context, params domain.RunParams) (*domain.ContentLoopResult, error) {
	maxAttempts := params.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = r.opts.MaxAttempts
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = r.opts.BatchSize
	}

	loop := &domain.ContentLoopResult{}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		batch, err := r.services.Extractor.ProcessBatch(ctx, batchSize)
		loop.Attempts = attempt
		if err != nil {
			return loop, err
		}

		loop.Batches = append(loop.Batches, batch)
		loop.TotalProcessed += batch.TotalProcessed
		loop.TotalErrors += batch.ErrorCount
		loop.RemainingCount = batch.RemainingCount

		if batch.RemainingCount == 0 || batch.BatchSize == 0 {
			break
		}
		if attempt == maxAttempts {
			r.logger.WarnContext(ctx, "content loop reached attempt cap", "attempts", attempt, "remaining", batch.RemainingCount)
			break
		}

		select {
		case <-ctx.Done():
			return loop, ctx.Err()
		case <-time.After(r.opts.AttemptDelay):
		}
	}
	return loop, nil
}

// Status derives a run's state from its audit rows.
func (r *PipelineRunner) Status(ctx context.Context, runID string) (*domain.RunStatus, error) {
	logs, err := r.logs.ListByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &domain.RunStatus{RunID: runID, State: DeriveState(logs), Logs: logs}, nil
}

// DeriveState folds audit rows, oldest first, into a run state.
// A run with no rows yet is not-started.
func DeriveState(logs []*domain.ProcessingLog) domain.RunState {
	state := domain.RunNotStarted
	for _, entry := range logs {
		if entry.Status == domain.LogStatusError {
			return domain.RunFailed
		}
		if entry.ProcessType == domain.ProcessPipelineRun {
			if entry.Status == domain.LogStatusSuccess {
				state = domain.RunCompleted
			}
			continue
		}
		state = processState(entry.ProcessType)
	}
	return state
}

func processState(processType string) domain.RunState {
	switch processType {
	case domain.ProcessThreadFetch:
		return domain.RunFetching
	case domain.ProcessContentFetch:
		return domain.RunContentFetching
	case domain.ProcessSummaryGeneration:
		return domain.RunSummarizing
	case domain.ProcessEmailSend:
		return domain.RunSending
	case domain.ProcessCommitfestSync:
		return domain.RunSyncing
	default:
		return domain.RunNotStarted
	}
}

func (r *PipelineRunner) audit(ctx context.Context, runID, processType, status, message string, started time.Time, completed *time.Time) {
	if r.logs == nil {
		return
	}
	entry := &domain.ProcessingLog{
		RunID:       &runID,
		ProcessType: processType,
		Status:      status,
		Message:     message,
		StartedAt:   &started,
		CompletedAt: completed,
	}
	if err := r.logs.Append(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "failed to write processing log", "run_id", runID, "status", status, "error", err)
	}
}

func (r *PipelineRunner) recordStage(stage domain.PipelineStage, ok bool, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordStage(string(stage), ok, d)
	}
}

func summarize(out any) string {
	b, err := json.Marshal(out)
	if err != nil {
		return "{}"
	}
	return string(b)
}
