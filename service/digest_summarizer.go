package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
)

// MaxAITags caps the validated model tags per discussion.
const MaxAITags = 3

const summarySchemaName = "discussion_summary"

// SummarizerOptions are the completion knobs for each discussion.
type SummarizerOptions struct {
	MaxTokens   int
	Temperature float64
}

// DigestSummarizerService implementation.
type digestSummarizerService struct {
	aggregator DiscussionAggregatorService
	commitfest repository.CommitfestRepository
	summaries  repository.WeeklySummaryRepository
	llm        repository.SummarizerAPIRepository
	prompts    *PromptBuilder
	renderer   *DigestRenderer
	metrics    MetricsRecorder
	logger     *slog.Logger
	schema     any
	opts       SummarizerOptions
}

// NewDigestSummarizerService creates a new summarizer.
func NewDigestSummarizerService(
	aggregator DiscussionAggregatorService,
	commitfest repository.CommitfestRepository,
	summaries repository.WeeklySummaryRepository,
	llm repository.SummarizerAPIRepository,
	prompts *PromptBuilder,
	renderer *DigestRenderer,
	opts SummarizerOptions,
	metrics MetricsRecorder,
	logger *slog.Logger,
) DigestSummarizerService {
	return &digestSummarizerService{
		aggregator: aggregator,
		commitfest: commitfest,
		summaries:  summaries,
		llm:        llm,
		prompts:    prompts,
		renderer:   renderer,
		metrics:    recorderOrNoop(metrics),
		logger:     logger,
		schema:     driver.GenerateSchema[DiscussionSummaryOutput](),
		opts:       opts,
	}
}

// GenerateSummary summarizes the top discussions of window and upserts the digest
// keyed by the window's dates.
func (s *digestSummarizerService) GenerateSummary(ctx context.Context, window domain.DateWindow) (*domain.GenerateSummaryResult, error) {
	if err := s.llm.CheckConfigured(); err != nil {
		return nil, err
	}

	key := window.DateOnly()
	agg, err := s.aggregator.Aggregate(ctx, key.EndOfDay())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate discussions: %w", err)
	}
	if len(agg.Discussions) == 0 {
		return nil, domain.Wrap(domain.ErrNoThreadsInWindow, string(domain.StageGenerateSummary), "aggregate",
			fmt.Sprintf("%s to %s", key.Start.Format(domain.DateLayout), key.End.Format(domain.DateLayout)), nil)
	}

	allowed, err := s.commitfest.ListTagNames(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "tag whitelist unavailable; AI tags disabled", "error", err)
		allowed = nil
	}

	result := &domain.GenerateSummaryResult{
		Window:            key,
		DiscussionCount:   len(agg.Discussions),
		TotalPosts:        agg.TotalPosts,
		TotalParticipants: agg.TotalParticipants,
	}

	sections := make([]DigestSection, 0, len(agg.Discussions))
	for i, d := range agg.Discussions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prompt := s.prompts.Build(d, allowed)
		if prompt.Truncation.Truncated {
			result.TruncatedCount++
			s.metrics.TranscriptTruncated(prompt.Truncation.OriginalTokens - len(prompt.Truncation.Tokens))
			s.logger.InfoContext(ctx, "transcript truncated",
				"subject", d.Subject,
				"original_tokens", prompt.Truncation.OriginalTokens,
				"kept_tokens", len(prompt.Truncation.Tokens))
		}

		summary, err := s.summarize(ctx, prompt, allowed)
		if err != nil {
			if domain.IsFatal(err) {
				return nil, err
			}
			result.ErrorCount++
			s.logger.ErrorContext(ctx, "discussion summary failed",
				"index", i+1,
				"subject", d.Subject,
				"error", err)
		}
		d.AITags = summary.Tags
		sections = append(sections, DigestSection{Discussion: d, Narrative: summary.Summary})
	}

	// a digest of empty sections must not replace a good one for the same week
	if result.ErrorCount == len(agg.Discussions) {
		return nil, domain.Wrap(domain.ErrFetch, string(domain.StageGenerateSummary), "llm",
			fmt.Sprintf("all %d discussion summaries failed", result.ErrorCount), nil)
	}

	content := s.renderer.Render(key, agg.TotalPosts, agg.TotalParticipants, sections)

	weekly := &domain.WeeklySummary{
		WeekStartDate:     key.Start,
		WeekEndDate:       key.End,
		SummaryContent:    content,
		TopDiscussions:    agg.Discussions,
		TotalPosts:        agg.TotalPosts,
		TotalParticipants: agg.TotalParticipants,
	}
	if err := s.summaries.Upsert(ctx, weekly); err != nil {
		return nil, err
	}
	result.SummaryID = weekly.ID

	s.logger.InfoContext(ctx, "weekly summary generated",
		"summary_id", weekly.ID,
		"discussions", result.DiscussionCount,
		"error_count", result.ErrorCount,
		"truncated_count", result.TruncatedCount)

	return result, nil
}

// summarize always returns a usable summary; the error only reports a failed call.
func (s *digestSummarizerService) summarize(ctx context.Context, prompt Prompt, allowed []string) (domain.DiscussionSummary, error) {
	temperature := s.opts.Temperature
	resp, err := s.llm.Complete(ctx, driver.ChatRequest{
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.User,
		SchemaName:   summarySchemaName,
		Schema:       s.schema,
		MaxTokens:    s.opts.MaxTokens,
		Temperature:  &temperature,
	})
	if err != nil {
		s.metrics.LLMCall(false, 0, 0)
		return domain.DiscussionSummary{Tags: []string{}}, err
	}
	s.metrics.LLMCall(true, resp.PromptTokens, resp.CompletionTokens)

	out := ParseSummaryOutput(resp.Content)
	if out.Tags == nil {
		s.logger.WarnContext(ctx, "model output was not valid JSON; using raw text",
			"error", domain.ErrValidation)
	}
	out.Tags = ValidateTags(ctx, s.logger, out.Tags, allowed)
	return out, nil
}

// ParseSummaryOutput decodes the model's JSON answer. Anything else becomes the
// summary verbatim with no tags; Tags is nil only in that case.
func ParseSummaryOutput(content string) domain.DiscussionSummary {
	var raw struct {
		Summary *string  `json:"summary"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil || raw.Summary == nil {
		return domain.DiscussionSummary{Summary: content}
	}
	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.DiscussionSummary{Summary: *raw.Summary, Tags: tags}
}

// ValidateTags keeps whitelisted tags in order, at most MaxAITags of them.
func ValidateTags(ctx context.Context, logger *slog.Logger, tags, whitelist []string) []string {
	allowed := make(map[string]struct{}, len(whitelist))
	for _, name := range whitelist {
		allowed[strings.TrimSpace(name)] = struct{}{}
	}

	valid := make([]string, 0, MaxAITags)
	var dropped []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if _, ok := allowed[tag]; !ok {
			dropped = append(dropped, tag)
			continue
		}
		if len(valid) < MaxAITags {
			valid = append(valid, tag)
		}
	}

	if len(dropped) > 0 && logger != nil {
		err := domain.Wrap(domain.ErrValidation, string(domain.StageGenerateSummary), "validate_tags",
			"tags outside whitelist", errors.New(strings.Join(dropped, ", ")))
		logger.WarnContext(ctx, "dropped model tags", "dropped", dropped, "error", err)
	}
	return valid
}
