package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
)

// CommitfestSyncService implementation.
type commitfestSyncService struct {
	source     repository.CommitfestSourceRepository
	commitfest repository.CommitfestRepository
	metrics    MetricsRecorder
	limiter    *rate.Limiter
	logger     *slog.Logger
	maxPatches int
}

// NewCommitfestSyncService creates a commitfest syncer. maxPatches <= 0 means no cap.
func NewCommitfestSyncService(
	source repository.CommitfestSourceRepository,
	commitfest repository.CommitfestRepository,
	maxPatches int,
	delay time.Duration,
	metrics MetricsRecorder,
	logger *slog.Logger,
) CommitfestSyncService {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &commitfestSyncService{
		source:     source,
		commitfest: commitfest,
		metrics:    recorderOrNoop(metrics),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
		maxPatches: maxPatches,
	}
}

func (s *commitfestSyncService) SyncTags(ctx context.Context) (*domain.TagSyncResult, error) {
	tags, err := s.source.FetchTags(ctx)
	s.metrics.PageFetched("commitfest_fixture", err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commitfest tags: %w", err)
	}

	result := &domain.TagSyncResult{}
	for _, tag := range tags {
		if tag.Name == "" {
			result.TagsSkipped++
			s.logger.WarnContext(ctx, "skipping commitfest tag without name", "tag_id", tag.ID)
			continue
		}
		if err := s.commitfest.UpsertTag(ctx, tag); err != nil {
			result.Errors++
			s.logger.ErrorContext(ctx, "failed to upsert commitfest tag", "tag", tag.Name, "error", err)
			continue
		}
		result.TagsProcessed++
	}

	s.logger.InfoContext(ctx, "commitfest tags synced",
		"tags_processed", result.TagsProcessed,
		"tags_skipped", result.TagsSkipped,
		"errors", result.Errors)
	return result, nil
}

func (s *commitfestSyncService) SyncPatches(ctx context.Context) (*domain.PatchSyncResult, error) {
	links, err := s.source.FetchOpenPatchLinks(ctx)
	s.metrics.PageFetched("commitfest", err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list open patches: %w", err)
	}
	if s.maxPatches > 0 && len(links) > s.maxPatches {
		s.logger.InfoContext(ctx, "capping commitfest patches", "found", len(links), "max", s.maxPatches)
		links = links[:s.maxPatches]
	}

	result := &domain.PatchSyncResult{}
	for _, link := range links {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.WarnContext(ctx, "patch sync interrupted", "error", err)
			break
		}

		patch, err := s.source.FetchPatch(ctx, link)
		s.metrics.PageFetched("commitfest", err == nil)
		if err != nil {
			result.Errors++
			s.logger.WarnContext(ctx, "failed to fetch commitfest patch", "patch_id", link.ID, "error", err)
			continue
		}

		linked, err := s.commitfest.UpsertPatch(ctx, patch)
		if err != nil {
			result.Errors++
			continue
		}
		result.PatchesProcessed++
		result.ThreadsProcessed += linked
	}

	s.logger.InfoContext(ctx, "commitfest patches synced",
		"patches_processed", result.PatchesProcessed,
		"threads_processed", result.ThreadsProcessed,
		"errors", result.Errors)
	return result, nil
}
