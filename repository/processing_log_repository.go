package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

type processingLogRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewProcessingLogRepository creates a new audit log repository.
func NewProcessingLogRepository(db driver.PgxIface, logger *slog.Logger) ProcessingLogRepository {
	return &processingLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *processingLogRepository) Append(ctx context.Context, entry *domain.ProcessingLog) error {
	if entry == nil {
		return fmt.Errorf("log entry cannot be nil")
	}
	switch entry.Status {
	case domain.LogStatusInProgress, domain.LogStatusSuccess, domain.LogStatusError:
	default:
		return fmt.Errorf("%w: unknown log status %q", domain.ErrValidation, entry.Status)
	}

	if err := driver.InsertProcessingLog(ctx, r.db, entry); err != nil {
		return domain.Wrap(domain.ErrPersistence, "", "append processing log", entry.ProcessType, err)
	}
	return nil
}

func (r *processingLogRepository) ListByRunID(ctx context.Context, runID string) ([]*domain.ProcessingLog, error) {
	if runID == "" {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	entries, err := driver.ListProcessingLogsByRunID(ctx, r.db, runID)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list processing logs", "error", err, "run_id", runID)
		return nil, domain.Wrap(domain.ErrPersistence, "", "list processing logs", runID, err)
	}
	return entries, nil
}
