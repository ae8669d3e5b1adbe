package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

// MailThreadRepository implementation.
type mailThreadRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewMailThreadRepository creates a new mail thread repository.
func NewMailThreadRepository(db driver.PgxIface, logger *slog.Logger) MailThreadRepository {
	return &mailThreadRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores a scraped thread keyed by URL. It reports whether a new row was created.
func (r *mailThreadRepository) Upsert(ctx context.Context, thread *domain.MailThread) (bool, error) {
	if thread == nil {
		return false, fmt.Errorf("thread cannot be nil")
	}
	if thread.ThreadURL == "" {
		return false, fmt.Errorf("thread URL cannot be empty")
	}

	inserted, err := driver.UpsertMailThread(ctx, r.db, thread)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to upsert mail thread", "error", err, "url", thread.ThreadURL)
		return false, domain.Wrap(domain.ErrPersistence, "fetch-threads", "upsert thread", thread.ThreadURL, err)
	}

	return inserted, nil
}

func (r *mailThreadRepository) ListUnprocessed(ctx context.Context, limit int) ([]*domain.MailThread, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	threads, err := driver.ListUnprocessedThreads(ctx, r.db, limit)
	if err != nil {
		return nil, domain.Wrap(domain.ErrPersistence, "fetch-content", "list unprocessed", "", err)
	}
	return threads, nil
}

func (r *mailThreadRepository) CountUnprocessed(ctx context.Context) (int, error) {
	count, err := driver.CountUnprocessedThreads(ctx, r.db)
	if err != nil {
		return 0, domain.Wrap(domain.ErrPersistence, "fetch-content", "count unprocessed", "", err)
	}
	return count, nil
}

func (r *mailThreadRepository) MarkProcessed(ctx context.Context, threadID string) error {
	if threadID == "" {
		return fmt.Errorf("thread ID cannot be empty")
	}

	if err := driver.MarkThreadProcessed(ctx, r.db, threadID); err != nil {
		return domain.Wrap(domain.ErrPersistence, "fetch-content", "mark processed", threadID, err)
	}
	return nil
}

func (r *mailThreadRepository) SaveContent(ctx context.Context, content *domain.MailThreadContent) error {
	if content == nil || content.ThreadRef == "" {
		return fmt.Errorf("content must reference a thread")
	}

	if err := driver.InsertThreadContent(ctx, r.db, content); err != nil {
		return domain.Wrap(domain.ErrPersistence, "fetch-content", "insert content", content.ThreadRef, err)
	}
	return nil
}

// CompleteExtraction records the extracted metadata and flags the thread processed.
// A nil subject keeps the scraped one.
func (r *mailThreadRepository) CompleteExtraction(ctx context.Context, threadID string, subject, authorName, authorEmail *string) error {
	if threadID == "" {
		return fmt.Errorf("thread ID cannot be empty")
	}

	if err := driver.UpdateThreadAfterExtraction(ctx, r.db, threadID, subject, authorName, authorEmail); err != nil {
		return domain.Wrap(domain.ErrPersistence, "fetch-content", "update thread", threadID, err)
	}
	return nil
}

func (r *mailThreadRepository) ListInWindow(ctx context.Context, window domain.DateWindow) ([]*domain.MailThread, error) {
	threads, err := driver.ListThreadsInWindow(ctx, r.db, window.Start, window.End)
	if err != nil {
		return nil, domain.Wrap(domain.ErrPersistence, "generate-summary", "list threads", "", err)
	}

	r.logger.DebugContext(ctx, "threads loaded for window",
		"start", window.Start,
		"end", window.End,
		"count", len(threads))

	return threads, nil
}

func (r *mailThreadRepository) FindURLBySlug(ctx context.Context, slug string) (string, error) {
	if !domain.ValidSlug(slug) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSlug, slug)
	}
	return driver.FindThreadURLBySlug(ctx, r.db, slug)
}
