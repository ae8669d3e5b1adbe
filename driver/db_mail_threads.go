package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

const mailThreadColumns = `t.id, t.thread_url, t.subject, t.post_date, t.thread_id, t.message_count,
		       t.redirect_slug, t.is_processed, t.author_name, t.author_email,
		       t.first_message_url, t.last_activity, t.created_at, t.updated_at`

// UpsertMailThread inserts a thread or refreshes subject, post_date and
// last_activity of the existing row. is_processed and the redirect slug are
// never touched on conflict. Reports whether the row was newly inserted.
func UpsertMailThread(ctx context.Context, db PgxIface, thread *domain.MailThread) (bool, error) {
	if db == nil {
		return false, fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO mail_threads (
			thread_url, subject, post_date, thread_id, message_count,
			redirect_slug, first_message_url, last_activity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (thread_url) DO UPDATE SET
			subject = EXCLUDED.subject,
			post_date = EXCLUDED.post_date,
			last_activity = EXCLUDED.last_activity,
			updated_at = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`

	var inserted bool
	err := retryDBOperation(ctx, func() error {
		return db.QueryRow(ctx, query,
			thread.ThreadURL,
			thread.Subject,
			thread.PostDate,
			thread.ThreadID,
			thread.MessageCount,
			thread.RedirectSlug,
			thread.FirstMessageURL,
			thread.LastActivity,
		).Scan(&thread.ID, &inserted)
	}, "UpsertMailThread")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to upsert mail thread", "error", err, "thread_url", thread.ThreadURL)
		return false, fmt.Errorf("failed to upsert mail thread %s: %w", thread.ThreadURL, err)
	}

	return inserted, nil
}

// ListUnprocessedThreads returns up to limit threads awaiting content extraction, newest first.
func ListUnprocessedThreads(ctx context.Context, db PgxIface, limit int) ([]*domain.MailThread, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT ` + mailThreadColumns + `
		FROM   mail_threads t
		WHERE  t.is_processed = FALSE
		ORDER  BY t.post_date DESC
		LIMIT  $1
	`

	var threads []*domain.MailThread
	err := retryDBOperation(ctx, func() error {
		rows, err := db.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		threads = nil
		for rows.Next() {
			thread, err := scanMailThread(rows)
			if err != nil {
				return err
			}
			threads = append(threads, thread)
		}
		return rows.Err()
	}, "ListUnprocessedThreads")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to list unprocessed threads", "error", err)
		return nil, fmt.Errorf("failed to list unprocessed threads: %w", err)
	}

	return threads, nil
}

// CountUnprocessedThreads counts threads that still need content extraction.
func CountUnprocessedThreads(ctx context.Context, db PgxIface) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	var count int
	err := retryDBOperation(ctx, func() error {
		return db.QueryRow(ctx, `SELECT COUNT(*) FROM mail_threads WHERE is_processed = FALSE`).Scan(&count)
	}, "CountUnprocessedThreads")
	if err != nil {
		return 0, fmt.Errorf("failed to count unprocessed threads: %w", err)
	}

	return count, nil
}

// MarkThreadProcessed flags a thread whose extraction failed so it is not retried forever.
func MarkThreadProcessed(ctx context.Context, db PgxIface, threadID string) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `UPDATE mail_threads SET is_processed = TRUE, updated_at = NOW() WHERE id = $1`
	if _, err := db.Exec(ctx, query, threadID); err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to mark thread processed", "error", err, "thread_id", threadID)
		return fmt.Errorf("failed to mark thread %s processed: %w", threadID, err)
	}

	return nil
}

// UpdateThreadAfterExtraction records author details and marks the thread processed.
// A nil subject keeps the scraped one.
func UpdateThreadAfterExtraction(ctx context.Context, db PgxIface, threadID string, subject, authorName, authorEmail *string) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `
		UPDATE mail_threads SET
			subject = COALESCE($2, subject),
			author_name = $3,
			author_email = $4,
			is_processed = TRUE,
			updated_at = NOW()
		WHERE id = $1
	`

	if _, err := db.Exec(ctx, query, threadID, subject, authorName, authorEmail); err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to update thread after extraction", "error", err, "thread_id", threadID)
		return fmt.Errorf("failed to update thread %s: %w", threadID, err)
	}

	return nil
}

// ListThreadsInWindow loads every thread posted within [start, end] along with
// its extracted content, oldest first.
func ListThreadsInWindow(ctx context.Context, db PgxIface, start, end time.Time) ([]*domain.MailThread, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT ` + mailThreadColumns + `,
		       c.message_id, c.subject, c.author_email, c.body, c.posted_at
		FROM   mail_threads t
		LEFT   JOIN mail_thread_contents c ON c.thread_ref = t.id
		WHERE  t.post_date >= $1 AND t.post_date <= $2
		ORDER  BY t.post_date ASC
	`

	var threads []*domain.MailThread
	err := retryDBOperation(ctx, func() error {
		rows, err := db.Query(ctx, query, start, end)
		if err != nil {
			return err
		}
		defer rows.Close()

		threads = nil
		for rows.Next() {
			var (
				thread                    domain.MailThread
				messageID, contentSubject *string
				contentEmail, body        *string
				postedAt                  *time.Time
			)
			err := rows.Scan(
				&thread.ID, &thread.ThreadURL, &thread.Subject, &thread.PostDate, &thread.ThreadID,
				&thread.MessageCount, &thread.RedirectSlug, &thread.IsProcessed, &thread.AuthorName,
				&thread.AuthorEmail, &thread.FirstMessageURL, &thread.LastActivity, &thread.CreatedAt,
				&thread.UpdatedAt,
				&messageID, &contentSubject, &contentEmail, &body, &postedAt,
			)
			if err != nil {
				return err
			}
			if messageID != nil {
				thread.Content = &domain.MailThreadContent{
					ThreadRef:   thread.ID,
					MessageID:   *messageID,
					Subject:     derefString(contentSubject),
					AuthorEmail: contentEmail,
					Body:        derefString(body),
				}
				if postedAt != nil {
					thread.Content.PostedAt = *postedAt
				}
			}
			threads = append(threads, &thread)
		}
		return rows.Err()
	}, "ListThreadsInWindow")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to list threads in window", "error", err)
		return nil, fmt.Errorf("failed to list threads in window: %w", err)
	}

	logger.Logger.InfoContext(ctx, "Loaded threads in window",
		"count", len(threads),
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339))
	return threads, nil
}

// FindThreadURLBySlug resolves a redirect slug. Returns domain.ErrNotFound for unknown slugs.
func FindThreadURLBySlug(ctx context.Context, db PgxIface, slug string) (string, error) {
	if db == nil {
		return "", fmt.Errorf("database connection is nil")
	}

	var threadURL string
	err := db.QueryRow(ctx, `SELECT thread_url FROM mail_threads WHERE redirect_slug = $1`, slug).Scan(&threadURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("redirect slug %q: %w", slug, domain.ErrNotFound)
		}
		return "", fmt.Errorf("failed to resolve redirect slug: %w", err)
	}

	return threadURL, nil
}

func scanMailThread(row pgx.Row) (*domain.MailThread, error) {
	var thread domain.MailThread
	err := row.Scan(
		&thread.ID, &thread.ThreadURL, &thread.Subject, &thread.PostDate, &thread.ThreadID,
		&thread.MessageCount, &thread.RedirectSlug, &thread.IsProcessed, &thread.AuthorName,
		&thread.AuthorEmail, &thread.FirstMessageURL, &thread.LastActivity, &thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
