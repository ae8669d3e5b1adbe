package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

type commitfestRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewCommitfestRepository creates a repository over the commitfest tables.
func NewCommitfestRepository(db driver.PgxIface, logger *slog.Logger) CommitfestRepository {
	return &commitfestRepository{
		db:     db,
		logger: logger,
	}
}

func (r *commitfestRepository) FindTagsBySubject(ctx context.Context, normalizedSubject string) ([]domain.Tag, error) {
	if normalizedSubject == "" {
		return nil, nil
	}
	return driver.FindTagsBySubject(ctx, r.db, normalizedSubject)
}

func (r *commitfestRepository) ListTagNames(ctx context.Context) ([]string, error) {
	return driver.ListCommitfestTagNames(ctx, r.db)
}

func (r *commitfestRepository) UpsertTag(ctx context.Context, tag domain.CommitfestTag) error {
	if tag.Name == "" {
		return fmt.Errorf("%w: tag %d has no name", domain.ErrValidation, tag.ID)
	}
	if err := driver.UpsertCommitfestTag(ctx, r.db, tag); err != nil {
		return domain.Wrap(domain.ErrPersistence, "commitfest-tags", "upsert tag", tag.Name, err)
	}
	return nil
}

// UpsertPatch stores a patch with its tags and thread links. Returns the linked thread count.
func (r *commitfestRepository) UpsertPatch(ctx context.Context, patch *domain.CommitfestPatch) (int, error) {
	if patch == nil {
		return 0, fmt.Errorf("patch cannot be nil")
	}

	linked, err := driver.UpsertCommitfestPatch(ctx, r.db, patch)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to upsert commitfest patch", "error", err, "patch_id", patch.ID)
		return 0, domain.Wrap(domain.ErrPersistence, "commitfest-data", "upsert patch", fmt.Sprint(patch.ID), err)
	}
	return linked, nil
}
