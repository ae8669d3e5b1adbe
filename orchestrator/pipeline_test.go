package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/test/mocks"
)

// memoryLogs is an in-memory ProcessingLogRepository.
type memoryLogs struct {
	mu      sync.Mutex
	entries []*domain.ProcessingLog
}

func (m *memoryLogs) Append(_ context.Context, entry *domain.ProcessingLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryLogs) ListByRunID(_ context.Context, runID string) ([]*domain.ProcessingLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ProcessingLog
	for _, e := range m.entries {
		if e.RunID != nil && *e.RunID == runID {
			out = append(out, e)
		}
	}
	return out, nil
}

type pipelineMocks struct {
	scraper    *mocks.MockThreadScraperService
	extractor  *mocks.MockContentExtractorService
	summarizer *mocks.MockDigestSummarizerService
	sender     *mocks.MockSummarySenderService
	commitfest *mocks.MockCommitfestSyncService
	logs       *memoryLogs
}

func newTestRunner(t *testing.T, opts PipelineOptions) (*PipelineRunner, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		scraper:    mocks.NewMockThreadScraperService(ctrl),
		extractor:  mocks.NewMockContentExtractorService(ctrl),
		summarizer: mocks.NewMockDigestSummarizerService(ctrl),
		sender:     mocks.NewMockSummarySenderService(ctrl),
		commitfest: mocks.NewMockCommitfestSyncService(ctrl),
		logs:       &memoryLogs{},
	}
	if opts.AttemptDelay == 0 {
		opts.AttemptDelay = time.Millisecond
	}
	runner := NewPipelineRunner(Services{
		Scraper:    m.scraper,
		Extractor:  m.extractor,
		Summarizer: m.summarizer,
		Sender:     m.sender,
		Commitfest: m.commitfest,
	}, m.logs, opts, nil, testLogger())
	runner.now = func() time.Time { return time.Date(2025, 3, 8, 10, 30, 0, 0, time.UTC) }
	return runner, m
}

func TestPipelineRunner_ContentLoop(t *testing.T) {
	t.Run("should stop once nothing remains", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{BatchSize: 200})
		// 450 threads with batch 200 drain in ceil(450/200) = 3 calls
		gomock.InOrder(
			m.extractor.EXPECT().ProcessBatch(gomock.Any(), 200).Return(&domain.ContentBatchResult{BatchSize: 200, TotalProcessed: 200, RemainingCount: 250}, nil),
			m.extractor.EXPECT().ProcessBatch(gomock.Any(), 200).Return(&domain.ContentBatchResult{BatchSize: 200, TotalProcessed: 200, RemainingCount: 50}, nil),
			m.extractor.EXPECT().ProcessBatch(gomock.Any(), 200).Return(&domain.ContentBatchResult{BatchSize: 50, TotalProcessed: 50, RemainingCount: 0}, nil),
		)

		loop, err := runner.runContentLoop(context.Background(), domain.RunParams{MaxAttempts: 5})

		require.NoError(t, err)
		assert.Equal(t, 3, loop.Attempts)
		assert.Equal(t, 450, loop.TotalProcessed)
		assert.Zero(t, loop.RemainingCount)
	})

	t.Run("should respect the attempt cap", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{})
		m.extractor.EXPECT().ProcessBatch(gomock.Any(), 25).
			Return(&domain.ContentBatchResult{BatchSize: 25, TotalProcessed: 25, RemainingCount: 1000}, nil).
			Times(3)

		loop, err := runner.runContentLoop(context.Background(), domain.RunParams{BatchSize: 25})

		require.NoError(t, err)
		assert.Equal(t, 3, loop.Attempts)
		assert.Equal(t, 1000, loop.RemainingCount)
	})
}

func TestPipelineRunner_Run(t *testing.T) {
	t.Run("should run the full pipeline in order and audit every stage", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{})
		summaryWindow := domain.LastDays(runner.now(), 7).DateOnly()

		gomock.InOrder(
			m.scraper.EXPECT().FetchThreads(gomock.Any(), domain.LastDays(runner.now(), 7)).Return(&domain.FetchThreadsResult{}, nil),
			m.extractor.EXPECT().ProcessBatch(gomock.Any(), gomock.Any()).Return(&domain.ContentBatchResult{}, nil),
			m.summarizer.EXPECT().GenerateSummary(gomock.Any(), summaryWindow).Return(&domain.GenerateSummaryResult{SummaryID: "s1"}, nil),
			m.sender.EXPECT().SendSummary(gomock.Any(), &summaryWindow).Return(&domain.SendSummaryResult{SentCount: 2}, nil),
		)

		result := runner.Run(context.Background(), domain.StageFull, domain.RunParams{})

		assert.Equal(t, domain.RunCompleted, result.State)
		require.Len(t, result.Stages, 4)

		logs, err := m.logs.ListByRunID(context.Background(), result.RunID)
		require.NoError(t, err)
		require.Len(t, logs, 9)
		assert.Equal(t, domain.ProcessThreadFetch, logs[0].ProcessType)
		assert.Equal(t, domain.LogStatusInProgress, logs[0].Status)
		assert.Equal(t, domain.LogStatusSuccess, logs[1].Status)
		assert.Equal(t, domain.ProcessPipelineRun, logs[8].ProcessType)
		assert.Equal(t, domain.RunCompleted, DeriveState(logs))
	})

	t.Run("should stop at the first failing stage", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{})
		m.summarizer.EXPECT().GenerateSummary(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNoThreadsInWindow)

		result := runner.Run(context.Background(), domain.StageWeeklyDigest, domain.RunParams{})

		assert.Equal(t, domain.RunFailed, result.State)
		require.Len(t, result.Stages, 1)
		assert.Contains(t, result.Stages[0].Error, "no mail threads")
		assert.ErrorIs(t, result.Err(), domain.ErrNoThreadsInWindow)

		status, err := runner.Status(context.Background(), result.RunID)
		require.NoError(t, err)
		assert.Equal(t, domain.RunFailed, status.State)
	})

	t.Run("should pass an explicit window to every stage", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{})
		window := domain.DateWindow{
			Start: time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 7, 18, 0, 0, 0, time.UTC),
		}
		dateOnly := window.DateOnly()

		m.summarizer.EXPECT().GenerateSummary(gomock.Any(), dateOnly).Return(&domain.GenerateSummaryResult{}, nil)
		m.sender.EXPECT().SendSummary(gomock.Any(), &dateOnly).Return(&domain.SendSummaryResult{}, nil)

		result := runner.Run(context.Background(), domain.StageWeeklyDigest, domain.RunParams{Window: &window})

		assert.Equal(t, domain.RunCompleted, result.State)
	})

	t.Run("should send the latest summary when send-summary runs alone", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{})
		m.sender.EXPECT().SendSummary(gomock.Any(), (*domain.DateWindow)(nil)).Return(&domain.SendSummaryResult{}, nil)

		result := runner.Run(context.Background(), domain.StageSendSummary, domain.RunParams{})

		assert.Equal(t, domain.RunCompleted, result.State)
	})
}

func TestPipelineRunner_Start(t *testing.T) {
	t.Run("should return a run id and keep running after the caller cancels", func(t *testing.T) {
		runner, m := newTestRunner(t, PipelineOptions{})
		release := make(chan struct{})
		m.commitfest.EXPECT().SyncTags(gomock.Any()).DoAndReturn(
			func(ctx context.Context) (*domain.TagSyncResult, error) {
				<-release
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return &domain.TagSyncResult{TagsProcessed: 3}, nil
			})

		ctx, cancel := context.WithCancel(context.Background())
		runID := runner.Start(ctx, domain.StageCommitfestTags, domain.RunParams{})
		require.NotEmpty(t, runID)
		cancel()

		assert.Eventually(t, func() bool {
			status, err := runner.Status(context.Background(), runID)
			return err == nil && status.State == domain.RunSyncing
		}, time.Second, 5*time.Millisecond)

		close(release)
		runner.Wait()

		status, err := runner.Status(context.Background(), runID)
		require.NoError(t, err)
		assert.Equal(t, domain.RunCompleted, status.State)
	})
}

func TestDeriveState(t *testing.T) {
	entry := func(processType, status string) *domain.ProcessingLog {
		return &domain.ProcessingLog{ProcessType: processType, Status: status}
	}

	tests := map[string]struct {
		logs     []*domain.ProcessingLog
		expected domain.RunState
	}{
		"should be not-started without rows": {
			expected: domain.RunNotStarted,
		},
		"should follow the active stage": {
			logs: []*domain.ProcessingLog{
				entry(domain.ProcessThreadFetch, domain.LogStatusInProgress),
				entry(domain.ProcessThreadFetch, domain.LogStatusSuccess),
				entry(domain.ProcessContentFetch, domain.LogStatusInProgress),
			},
			expected: domain.RunContentFetching,
		},
		"should be failed after any error": {
			logs: []*domain.ProcessingLog{
				entry(domain.ProcessSummaryGeneration, domain.LogStatusInProgress),
				entry(domain.ProcessSummaryGeneration, domain.LogStatusError),
			},
			expected: domain.RunFailed,
		},
		"should be completed after the run row": {
			logs: []*domain.ProcessingLog{
				entry(domain.ProcessEmailSend, domain.LogStatusSuccess),
				entry(domain.ProcessPipelineRun, domain.LogStatusSuccess),
			},
			expected: domain.RunCompleted,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveState(tc.logs))
		})
	}
}

func TestPipelineRunner_InvalidStage(t *testing.T) {
	runner, _ := newTestRunner(t, PipelineOptions{})
	_, err := runner.runStage(context.Background(), domain.StageFull, runPlan{})
	assert.True(t, errors.Is(err, domain.ErrInvalidStage))
}

func TestPipelineRunner_Spans(t *testing.T) {
	t.Run("should trace the run and mark the failing stage", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		runner, m := newTestRunner(t, PipelineOptions{})
		runner.tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer(tracerName)

		m.summarizer.EXPECT().GenerateSummary(gomock.Any(), gomock.Any()).Return(&domain.GenerateSummaryResult{}, nil)
		m.sender.EXPECT().SendSummary(gomock.Any(), gomock.Any()).Return(nil, domain.ErrSummaryNotFound)

		runner.Run(context.Background(), domain.StageWeeklyDigest, domain.RunParams{})

		spans := recorder.Ended()
		require.Len(t, spans, 3)
		assert.Equal(t, "stage.generate-summary", spans[0].Name())
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
		assert.Equal(t, "stage.send-summary", spans[1].Name())
		assert.Equal(t, codes.Error, spans[1].Status().Code)
		assert.Equal(t, "pipeline.weekly-digest", spans[2].Name())
		assert.Equal(t, codes.Error, spans[2].Status().Code)
		assert.Equal(t, spans[2].SpanContext().SpanID(), spans[1].Parent().SpanID())
	})
}
