package driver

import (
	"context"
	"fmt"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// UpsertCommitfestTag writes one tag from the commitfest fixture, keyed by its pk.
func UpsertCommitfestTag(ctx context.Context, db PgxIface, tag domain.CommitfestTag) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `
		INSERT INTO commitfest_tags (id, name, color, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			description = EXCLUDED.description,
			updated_at = NOW()
	`

	err := retryDBOperation(ctx, func() error {
		_, err := db.Exec(ctx, query, tag.ID, tag.Name, tag.Color, tag.Description)
		return err
	}, "UpsertCommitfestTag")
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to upsert commitfest tag", "error", err, "tag", tag.Name)
		return fmt.Errorf("failed to upsert commitfest tag %q: %w", tag.Name, err)
	}

	return nil
}

// UpsertCommitfestPatch stores a patch, replaces its tag set and links its mail
// threads, all in one transaction. Returns the number of threads linked.
func UpsertCommitfestPatch(ctx context.Context, db PgxIface, patch *domain.CommitfestPatch) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO commitfest_patches (id, patch_url, title, status, author, created_at, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			patch_url = EXCLUDED.patch_url,
			title = EXCLUDED.title,
			status = EXCLUDED.status,
			author = EXCLUDED.author,
			created_at = EXCLUDED.created_at,
			last_modified = EXCLUDED.last_modified,
			synced_at = NOW()
	`, patch.ID, patch.URL, patch.Title, patch.Status, patch.Author, patch.CreatedAt, patch.LastModified)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert patch %d: %w", patch.ID, err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM commitfest_patch_tags WHERE patch_id = $1`, patch.ID); err != nil {
		return 0, fmt.Errorf("failed to clear tags of patch %d: %w", patch.ID, err)
	}
	for _, tag := range patch.Tags {
		_, err = tx.Exec(ctx, `
			INSERT INTO commitfest_patch_tags (patch_id, tag_name)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, patch.ID, tag)
		if err != nil {
			return 0, fmt.Errorf("failed to tag patch %d with %q: %w", patch.ID, tag, err)
		}
	}

	linked := 0
	for _, thread := range patch.MailThreads {
		var threadID string
		err = tx.QueryRow(ctx, `
			INSERT INTO commitfest_mail_threads (mail_thread_url, subject, subject_normalized)
			VALUES ($1, $2, $3)
			ON CONFLICT (mail_thread_url) DO UPDATE SET
				subject = EXCLUDED.subject,
				subject_normalized = EXCLUDED.subject_normalized,
				updated_at = NOW()
			RETURNING id
		`, thread.URL, thread.Subject, thread.SubjectNormalized).Scan(&threadID)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert mail thread %s: %w", thread.URL, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO commitfest_patch_mail_threads (patch_id, mail_thread_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, patch.ID, threadID)
		if err != nil {
			return 0, fmt.Errorf("failed to link patch %d to thread %s: %w", patch.ID, thread.URL, err)
		}
		linked++
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return 0, fmt.Errorf("failed to commit patch %d: %w", patch.ID, err)
	}

	return linked, nil
}

// FindTagsBySubject returns the commitfest tags of every patch whose mail
// thread has the given normalized subject.
func FindTagsBySubject(ctx context.Context, db PgxIface, normalizedSubject string) ([]domain.Tag, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT DISTINCT pt.tag_name, ct.color
		FROM   commitfest_mail_threads mt
		JOIN   commitfest_patch_mail_threads pmt ON pmt.mail_thread_id = mt.id
		JOIN   commitfest_patch_tags pt ON pt.patch_id = pmt.patch_id
		LEFT   JOIN commitfest_tags ct ON ct.name = pt.tag_name
		WHERE  mt.subject_normalized = $1
		ORDER  BY pt.tag_name
	`

	rows, err := db.Query(ctx, query, normalizedSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tags by subject: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		tag := domain.Tag{Source: domain.TagSourceCommitfest}
		if err := rows.Scan(&tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}

// ListCommitfestTagNames returns every known tag name, the whitelist for model-assigned tags.
func ListCommitfestTagNames(ctx context.Context, db PgxIface) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var names []string
	err := retryDBOperation(ctx, func() error {
		rows, err := db.Query(ctx, `SELECT name FROM commitfest_tags ORDER BY name`)
		if err != nil {
			return err
		}
		defer rows.Close()

		names = nil
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return rows.Err()
	}, "ListCommitfestTagNames")
	if err != nil {
		return nil, fmt.Errorf("failed to list commitfest tag names: %w", err)
	}

	return names, nil
}
