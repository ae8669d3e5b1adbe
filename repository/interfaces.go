package repository

import (
	"context"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/html_parser"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/repository_mocks.go -package=mocks

// MailThreadRepository handles mail thread and content persistence.
type MailThreadRepository interface {
	Upsert(ctx context.Context, thread *domain.MailThread) (bool, error)
	ListUnprocessed(ctx context.Context, limit int) ([]*domain.MailThread, error)
	CountUnprocessed(ctx context.Context) (int, error)
	MarkProcessed(ctx context.Context, threadID string) error
	SaveContent(ctx context.Context, content *domain.MailThreadContent) error
	CompleteExtraction(ctx context.Context, threadID string, subject, authorName, authorEmail *string) error
	ListInWindow(ctx context.Context, window domain.DateWindow) ([]*domain.MailThread, error)
	FindURLBySlug(ctx context.Context, slug string) (string, error)
}

// WeeklySummaryRepository handles digest persistence.
type WeeklySummaryRepository interface {
	Upsert(ctx context.Context, summary *domain.WeeklySummary) error
	Get(ctx context.Context, window domain.DateWindow) (*domain.WeeklySummary, error)
	GetLatest(ctx context.Context) (*domain.WeeklySummary, error)
}

// ProcessingLogRepository handles the append-only audit trail.
type ProcessingLogRepository interface {
	Append(ctx context.Context, entry *domain.ProcessingLog) error
	ListByRunID(ctx context.Context, runID string) ([]*domain.ProcessingLog, error)
}

// CommitfestRepository handles commitfest reference data.
type CommitfestRepository interface {
	FindTagsBySubject(ctx context.Context, normalizedSubject string) ([]domain.Tag, error)
	ListTagNames(ctx context.Context) ([]string, error)
	UpsertTag(ctx context.Context, tag domain.CommitfestTag) error
	UpsertPatch(ctx context.Context, patch *domain.CommitfestPatch) (int, error)
}

// SubscriberRepository reads digest recipients.
type SubscriberRepository interface {
	ListActive(ctx context.Context) ([]domain.Subscriber, error)
}

// ArchiveRepository fetches pages from the mailing-list mirror.
type ArchiveRepository interface {
	FetchMonthIndex(ctx context.Context, month domain.YearMonth) (string, error)
	FetchMessagePage(ctx context.Context, url string) (string, error)
	IndexBaseURL() string
}

// CommitfestSourceRepository reads the commitfest app and its fixture.
type CommitfestSourceRepository interface {
	FetchTags(ctx context.Context) ([]domain.CommitfestTag, error)
	FetchOpenPatchLinks(ctx context.Context) ([]html_parser.PatchLink, error)
	FetchPatch(ctx context.Context, link html_parser.PatchLink) (*domain.CommitfestPatch, error)
}

// SummarizerAPIRepository handles LLM calls.
type SummarizerAPIRepository interface {
	CheckConfigured() error
	Complete(ctx context.Context, req driver.ChatRequest) (*driver.ChatResponse, error)
}

// MailerRepository handles outbound email.
type MailerRepository interface {
	CheckConfigured() error
	Send(ctx context.Context, msg driver.EmailMessage) (string, error)
}
