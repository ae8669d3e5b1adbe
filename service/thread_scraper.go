package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/html_parser"
)

// ThreadScraperService implementation.
type threadScraperService struct {
	archive repository.ArchiveRepository
	threads repository.MailThreadRepository
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewThreadScraperService creates a new archive scraper.
func NewThreadScraperService(
	archive repository.ArchiveRepository,
	threads repository.MailThreadRepository,
	metrics MetricsRecorder,
	logger *slog.Logger,
) ThreadScraperService {
	return &threadScraperService{
		archive: archive,
		threads: threads,
		metrics: recorderOrNoop(metrics),
		logger:  logger,
	}
}

// FetchThreads scrapes every month touched by window. A month that cannot be
// fetched is recorded in MonthErrors and skipped.
func (s *threadScraperService) FetchThreads(ctx context.Context, window domain.DateWindow) (*domain.FetchThreadsResult, error) {
	months := domain.MonthsInRange(window)
	s.logger.InfoContext(ctx, "starting thread fetch",
		"start", window.Start,
		"end", window.End,
		"months", len(months))

	result := &domain.FetchThreadsResult{Window: window}
	var persistErr error

	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.archive.FetchMonthIndex(ctx, month)
		s.metrics.PageFetched("index", err == nil)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to fetch archive month", "month", month.String(), "error", err)
			result.MonthErrors = append(result.MonthErrors, domain.MonthError{Month: month.String(), Error: err.Error()})
			continue
		}

		threads := html_parser.ParseArchiveIndex(page, month, window, s.archive.IndexBaseURL())
		result.ThreadsFound += len(threads)
		s.logger.InfoContext(ctx, "archive month parsed", "month", month.String(), "threads", len(threads))

		for _, thread := range threads {
			slug := domain.RedirectSlug(thread.ThreadURL)
			thread.RedirectSlug = &slug

			inserted, err := s.threads.Upsert(ctx, thread)
			if err != nil {
				result.Errors++
				persistErr = err
				continue
			}
			if inserted {
				result.ThreadsStored++
			} else {
				result.ThreadsUpdated++
			}
		}
	}

	s.logger.InfoContext(ctx, "thread fetch completed",
		"threads_found", result.ThreadsFound,
		"threads_stored", result.ThreadsStored,
		"threads_updated", result.ThreadsUpdated,
		"month_errors", len(result.MonthErrors),
		"errors", result.Errors)

	// nothing reached the store: treat as a stage failure
	if result.ThreadsFound > 0 && result.ThreadsStored+result.ThreadsUpdated == 0 && persistErr != nil {
		return result, fmt.Errorf("failed to store any thread: %w", persistErr)
	}

	return result, nil
}
