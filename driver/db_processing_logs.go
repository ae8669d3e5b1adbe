package driver

import (
	"context"
	"fmt"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// InsertProcessingLog appends an audit row. Rows are never updated.
func InsertProcessingLog(ctx context.Context, db PgxIface, entry *domain.ProcessingLog) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO processing_logs (run_id, process_type, status, message, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := retryDBOperation(ctx, func() error {
		return db.QueryRow(ctx, query,
			entry.RunID,
			entry.ProcessType,
			entry.Status,
			entry.Message,
			entry.StartedAt,
			entry.CompletedAt,
		).Scan(&entry.ID, &entry.CreatedAt)
	}, "InsertProcessingLog")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to insert processing log",
			"error", err,
			"process_type", entry.ProcessType,
			"status", entry.Status)
		return fmt.Errorf("failed to insert processing log: %w", err)
	}

	return nil
}

// ListProcessingLogsByRunID returns the audit trail of one run in write order.
func ListProcessingLogsByRunID(ctx context.Context, db PgxIface, runID string) ([]*domain.ProcessingLog, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, run_id, process_type, status, message, started_at, completed_at, created_at
		FROM   processing_logs
		WHERE  run_id = $1
		ORDER  BY created_at ASC, id ASC
	`

	var entries []*domain.ProcessingLog
	err := retryDBOperation(ctx, func() error {
		rows, err := db.Query(ctx, query, runID)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries = nil
		for rows.Next() {
			var entry domain.ProcessingLog
			if err := rows.Scan(
				&entry.ID, &entry.RunID, &entry.ProcessType, &entry.Status, &entry.Message,
				&entry.StartedAt, &entry.CompletedAt, &entry.CreatedAt,
			); err != nil {
				return err
			}
			entries = append(entries, &entry)
		}
		return rows.Err()
	}, "ListProcessingLogsByRunID")
	if err != nil {
		return nil, fmt.Errorf("failed to list processing logs for run %s: %w", runID, err)
	}

	return entries, nil
}
