package driver

import (
	"context"
	"fmt"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// InsertThreadContent stores the extracted message for a thread. Content is
// immutable: a second insert for the same thread is a no-op.
func InsertThreadContent(ctx context.Context, db PgxIface, content *domain.MailThreadContent) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO mail_thread_contents (thread_ref, message_id, subject, author_email, body, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (thread_ref) DO NOTHING
	`

	err := retryDBOperation(ctx, func() error {
		_, err := db.Exec(ctx, query,
			content.ThreadRef,
			content.MessageID,
			content.Subject,
			content.AuthorEmail,
			content.Body,
			content.PostedAt,
		)
		return err
	}, "InsertThreadContent")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to insert thread content", "error", err, "thread_id", content.ThreadRef)
		return fmt.Errorf("failed to insert content for thread %s: %w", content.ThreadRef, err)
	}

	return nil
}
