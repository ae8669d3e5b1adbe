package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

const weeklySummaryColumns = `id, week_start_date, week_end_date, summary_content, top_discussions,
		       total_posts, total_participants, created_at, updated_at`

// UpsertWeeklySummary writes the digest for its date range, replacing any previous row.
func UpsertWeeklySummary(ctx context.Context, db PgxIface, summary *domain.WeeklySummary) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	topDiscussions, err := json.Marshal(summary.TopDiscussions)
	if err != nil {
		return fmt.Errorf("failed to encode top discussions: %w", err)
	}

	query := `
		INSERT INTO weekly_summaries (
			week_start_date, week_end_date, summary_content, top_discussions,
			total_posts, total_participants
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (week_start_date, week_end_date) DO UPDATE SET
			summary_content = EXCLUDED.summary_content,
			top_discussions = EXCLUDED.top_discussions,
			total_posts = EXCLUDED.total_posts,
			total_participants = EXCLUDED.total_participants,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	logger.Logger.InfoContext(ctx, "Upserting weekly summary",
		"week_start", summary.WeekStartDate.Format(domain.DateLayout),
		"week_end", summary.WeekEndDate.Format(domain.DateLayout))

	err = retryDBOperation(ctx, func() error {
		return db.QueryRow(ctx, query,
			summary.WeekStartDate,
			summary.WeekEndDate,
			summary.SummaryContent,
			topDiscussions,
			summary.TotalPosts,
			summary.TotalParticipants,
		).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)
	}, "UpsertWeeklySummary")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to upsert weekly summary", "error", err)
		return fmt.Errorf("failed to upsert weekly summary: %w", err)
	}

	return nil
}

// GetWeeklySummary loads the summary keyed by exactly [start, end].
func GetWeeklySummary(ctx context.Context, db PgxIface, start, end time.Time) (*domain.WeeklySummary, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT ` + weeklySummaryColumns + `
		FROM   weekly_summaries
		WHERE  week_start_date = $1 AND week_end_date = $2
	`

	return scanWeeklySummary(db.QueryRow(ctx, query, start, end))
}

// GetLatestWeeklySummary loads the summary with the most recent end date.
func GetLatestWeeklySummary(ctx context.Context, db PgxIface) (*domain.WeeklySummary, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT ` + weeklySummaryColumns + `
		FROM   weekly_summaries
		ORDER  BY week_end_date DESC, updated_at DESC
		LIMIT  1
	`

	return scanWeeklySummary(db.QueryRow(ctx, query))
}

func scanWeeklySummary(row pgx.Row) (*domain.WeeklySummary, error) {
	var (
		summary        domain.WeeklySummary
		topDiscussions []byte
	)

	err := row.Scan(
		&summary.ID, &summary.WeekStartDate, &summary.WeekEndDate, &summary.SummaryContent,
		&topDiscussions, &summary.TotalPosts, &summary.TotalParticipants,
		&summary.CreatedAt, &summary.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to load weekly summary: %w", err)
	}

	if len(topDiscussions) > 0 {
		if err := json.Unmarshal(topDiscussions, &summary.TopDiscussions); err != nil {
			return nil, fmt.Errorf("failed to decode top discussions: %w", err)
		}
	}

	return &summary, nil
}
