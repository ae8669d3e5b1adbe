package service

import (
	"context"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/service_mocks.go -package=mocks

// ThreadScraperService scrapes monthly archive indexes into mail threads.
type ThreadScraperService interface {
	FetchThreads(ctx context.Context, window domain.DateWindow) (*domain.FetchThreadsResult, error)
}

// ContentExtractorService fetches and stores message content for unprocessed threads.
type ContentExtractorService interface {
	ProcessBatch(ctx context.Context, batchSize int) (*domain.ContentBatchResult, error)
}

// DiscussionAggregatorService groups and ranks the threads of a window.
type DiscussionAggregatorService interface {
	Aggregate(ctx context.Context, window domain.DateWindow) (*domain.AggregationResult, error)
}

// DigestSummarizerService builds and stores the digest of a window.
type DigestSummarizerService interface {
	GenerateSummary(ctx context.Context, window domain.DateWindow) (*domain.GenerateSummaryResult, error)
}

// SummarySenderService mails a stored digest to subscribers.
type SummarySenderService interface {
	SendSummary(ctx context.Context, window *domain.DateWindow) (*domain.SendSummaryResult, error)
}

// CommitfestSyncService refreshes commitfest reference data.
type CommitfestSyncService interface {
	SyncTags(ctx context.Context) (*domain.TagSyncResult, error)
	SyncPatches(ctx context.Context) (*domain.PatchSyncResult, error)
}

// HealthCheckerService reports on the service's dependencies.
type HealthCheckerService interface {
	CheckDatabase(ctx context.Context) error
	CheckDependencies(ctx context.Context) map[string]string
	WaitForDatabase(ctx context.Context) error
}

// MetricsRecorder receives pipeline counters. A nil recorder disables recording.
type MetricsRecorder interface {
	RecordStage(stage string, ok bool, duration time.Duration)
	PageFetched(kind string, ok bool)
	LLMCall(ok bool, promptTokens, completionTokens int)
	TranscriptTruncated(dropped int)
	EmailSent(ok bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordStage(string, bool, time.Duration) {}
func (noopRecorder) PageFetched(string, bool)                {}
func (noopRecorder) LLMCall(bool, int, int)                  {}
func (noopRecorder) TranscriptTruncated(int)                 {}
func (noopRecorder) EmailSent(bool)                          {}

func recorderOrNoop(r MetricsRecorder) MetricsRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
