package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/html_parser"
)

// ExtractorOptions bounds batch sizes and paces message fetches.
type ExtractorOptions struct {
	DefaultBatchSize int
	MinBatchSize     int
	MaxBatchSize     int
	Delay            time.Duration
}

// ClampBatchSize applies the default for 0 and keeps n within [min, max].
func (o ExtractorOptions) ClampBatchSize(n int) int {
	if n <= 0 {
		n = o.DefaultBatchSize
	}
	if o.MinBatchSize > 0 && n < o.MinBatchSize {
		n = o.MinBatchSize
	}
	if o.MaxBatchSize > 0 && n > o.MaxBatchSize {
		n = o.MaxBatchSize
	}
	return n
}

// ContentExtractorService implementation.
type contentExtractorService struct {
	archive repository.ArchiveRepository
	threads repository.MailThreadRepository
	metrics MetricsRecorder
	limiter *rate.Limiter
	logger  *slog.Logger
	now     func() time.Time
	opts    ExtractorOptions
}

// NewContentExtractorService creates a new content extractor.
func NewContentExtractorService(
	archive repository.ArchiveRepository,
	threads repository.MailThreadRepository,
	opts ExtractorOptions,
	metrics MetricsRecorder,
	logger *slog.Logger,
) ContentExtractorService {
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	return &contentExtractorService{
		archive: archive,
		threads: threads,
		metrics: recorderOrNoop(metrics),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		now:     time.Now,
		opts:    opts,
	}
}

// ProcessBatch extracts content for up to batchSize unprocessed threads, newest first.
// Every selected thread ends up processed, whether extraction worked or not.
func (s *contentExtractorService) ProcessBatch(ctx context.Context, batchSize int) (*domain.ContentBatchResult, error) {
	size := s.opts.ClampBatchSize(batchSize)
	s.logger.InfoContext(ctx, "starting content batch", "batch_size", size)

	before, err := s.threads.CountUnprocessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unprocessed threads: %w", err)
	}

	threads, err := s.threads.ListUnprocessed(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed threads: %w", err)
	}

	result := &domain.ContentBatchResult{BatchSize: len(threads)}
	if len(threads) == 0 {
		result.RemainingCount = before
		s.logger.InfoContext(ctx, "no unprocessed threads", "remaining", before)
		return result, nil
	}

	for _, thread := range threads {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.WarnContext(ctx, "content batch interrupted", "error", err)
			break
		}

		if err := s.processThread(ctx, thread); err != nil {
			result.ErrorCount++
			s.logger.WarnContext(ctx, "thread extraction failed",
				"thread_id", thread.ID,
				"url", thread.ThreadURL,
				"error", err)
			continue
		}
		result.ProcessedCount++
	}

	remaining, err := s.threads.CountUnprocessed(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to count remaining threads: %w", err)
	}
	result.RemainingCount = remaining
	result.TotalProcessed = before - remaining

	s.logger.InfoContext(ctx, "content batch completed",
		"processed_count", result.ProcessedCount,
		"error_count", result.ErrorCount,
		"remaining_count", result.RemainingCount)

	return result, nil
}

func (s *contentExtractorService) processThread(ctx context.Context, thread *domain.MailThread) error {
	page, err := s.archive.FetchMessagePage(ctx, thread.ThreadURL)
	s.metrics.PageFetched("message", err == nil)
	if err != nil {
		return s.giveUp(ctx, thread, err)
	}

	msg, err := html_parser.ParseMessage(page, thread.ThreadURL, s.now())
	if err != nil {
		return s.giveUp(ctx, thread, err)
	}
	if msg.IsEmpty() {
		return s.giveUp(ctx, thread, domain.Wrap(domain.ErrParseDegraded, string(domain.StageFetchContent), "extract", "no strategy matched", nil))
	}
	if len(msg.Degraded) > 0 {
		s.logger.WarnContext(ctx, "message extraction degraded",
			"thread_id", thread.ID,
			"fields", msg.Degraded,
			"error", domain.ErrParseDegraded)
	}

	if err := s.threads.SaveContent(ctx, &domain.MailThreadContent{
		ThreadRef:   thread.ID,
		MessageID:   msg.MessageID,
		Subject:     msg.Subject,
		AuthorEmail: msg.AuthorEmail,
		Body:        msg.Body,
		PostedAt:    msg.PostedAt,
	}); err != nil {
		return s.giveUp(ctx, thread, fmt.Errorf("save content: %w", err))
	}

	var subject *string
	if msg.Subject != domain.UnknownSubject {
		subject = &msg.Subject
	}
	if err := s.threads.CompleteExtraction(ctx, thread.ID, subject, msg.AuthorName, msg.AuthorEmail); err != nil {
		return s.giveUp(ctx, thread, fmt.Errorf("complete extraction: %w", err))
	}
	return nil
}

// giveUp marks a thread processed so it is not retried forever, and returns cause.
func (s *contentExtractorService) giveUp(ctx context.Context, thread *domain.MailThread, cause error) error {
	if err := s.threads.MarkProcessed(ctx, thread.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark thread processed", "thread_id", thread.ID, "error", err)
	}
	return cause
}
