package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

// WeeklySummaryRepository implementation.
type weeklySummaryRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewWeeklySummaryRepository creates a new weekly summary repository.
func NewWeeklySummaryRepository(db driver.PgxIface, logger *slog.Logger) WeeklySummaryRepository {
	return &weeklySummaryRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert replaces the digest stored for the summary's date range.
func (r *weeklySummaryRepository) Upsert(ctx context.Context, summary *domain.WeeklySummary) error {
	if summary == nil {
		r.logger.ErrorContext(ctx, "summary cannot be nil")
		return fmt.Errorf("summary cannot be nil")
	}
	if summary.WeekStartDate.After(summary.WeekEndDate) {
		return fmt.Errorf("%w: week start after week end", domain.ErrInvalidDateRange)
	}

	r.logger.InfoContext(ctx, "upserting weekly summary",
		"week_start", summary.WeekStartDate.Format(domain.DateLayout),
		"week_end", summary.WeekEndDate.Format(domain.DateLayout))

	if err := driver.UpsertWeeklySummary(ctx, r.db, summary); err != nil {
		r.logger.ErrorContext(ctx, "failed to upsert weekly summary", "error", err)
		return domain.Wrap(domain.ErrPersistence, "generate-summary", "upsert summary", "", err)
	}

	r.logger.InfoContext(ctx, "weekly summary stored", "summary_id", summary.ID)
	return nil
}

func (r *weeklySummaryRepository) Get(ctx context.Context, window domain.DateWindow) (*domain.WeeklySummary, error) {
	summary, err := driver.GetWeeklySummary(ctx, r.db, window.Start, window.End)
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			return nil, err
		}
		return nil, domain.Wrap(domain.ErrPersistence, "send-summary", "get summary", "", err)
	}
	return summary, nil
}

func (r *weeklySummaryRepository) GetLatest(ctx context.Context) (*domain.WeeklySummary, error) {
	summary, err := driver.GetLatestWeeklySummary(ctx, r.db)
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			return nil, err
		}
		return nil, domain.Wrap(domain.ErrPersistence, "send-summary", "get latest summary", "", err)
	}
	return summary, nil
}
