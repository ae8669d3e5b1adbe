package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils"
)

var (
	boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
	spanPattern = regexp.MustCompile(`<span [^>]*>[^<]*</span>`)
)

// SummarySenderService implementation.
type summarySenderService struct {
	summaries   repository.WeeklySummaryRepository
	subscribers repository.SubscriberRepository
	mailer      repository.MailerRepository
	audit       repository.ProcessingLogRepository
	sanitizer   *utils.Sanitizer
	metrics     MetricsRecorder
	logger      *slog.Logger
	from        string
}

// NewSummarySenderService creates a sender. audit may be nil to skip per-recipient rows.
func NewSummarySenderService(
	summaries repository.WeeklySummaryRepository,
	subscribers repository.SubscriberRepository,
	mailer repository.MailerRepository,
	audit repository.ProcessingLogRepository,
	from string,
	metrics MetricsRecorder,
	logger *slog.Logger,
) SummarySenderService {
	return &summarySenderService{
		summaries:   summaries,
		subscribers: subscribers,
		mailer:      mailer,
		audit:       audit,
		sanitizer:   utils.NewSanitizer(),
		metrics:     recorderOrNoop(metrics),
		logger:      logger,
		from:        from,
	}
}

// SendSummary mails the digest for window, or the latest digest when window is nil.
func (s *summarySenderService) SendSummary(ctx context.Context, window *domain.DateWindow) (*domain.SendSummaryResult, error) {
	if err := s.mailer.CheckConfigured(); err != nil {
		return nil, err
	}

	var (
		summary *domain.WeeklySummary
		err     error
	)
	if window != nil {
		summary, err = s.summaries.Get(ctx, window.DateOnly())
	} else {
		summary, err = s.summaries.GetLatest(ctx)
	}
	if err != nil {
		return nil, err
	}

	recipients, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.SendSummaryResult{SummaryID: summary.ID, Recipients: len(recipients)}
	if len(recipients) == 0 {
		s.logger.InfoContext(ctx, "no active subscribers", "summary_id", summary.ID)
		return result, nil
	}

	msg := driver.EmailMessage{
		From: s.from,
		Subject: fmt.Sprintf("PostgreSQL Weekly Summary - %s to %s",
			summary.WeekStartDate.UTC().Format(headerDateLayout),
			summary.WeekEndDate.UTC().Format(headerDateLayout)),
		HTML: s.sanitizer.SanitizeHTMLAndTrim(DigestHTML(summary.SummaryContent)),
		Text: summary.SummaryContent,
	}

	for _, sub := range recipients {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		started := time.Now()
		msg.To = []string{sub.Email}
		id, err := s.mailer.Send(ctx, msg)
		s.metrics.EmailSent(err == nil)
		if err != nil {
			if domain.IsFatal(err) {
				return result, err
			}
			result.FailedCount++
			s.logger.ErrorContext(ctx, "failed to send summary", "subscriber_id", sub.ID, "error", err)
			s.record(ctx, started, domain.LogStatusError, fmt.Sprintf("subscriber %s: %v", sub.ID, err))
			continue
		}
		result.SentCount++
		s.logger.InfoContext(ctx, "summary sent", "subscriber_id", sub.ID, "email_id", id)
		s.record(ctx, started, domain.LogStatusSuccess, fmt.Sprintf("subscriber %s: email %s", sub.ID, id))
	}

	s.logger.InfoContext(ctx, "summary delivery completed",
		"summary_id", summary.ID,
		"sent_count", result.SentCount,
		"failed_count", result.FailedCount)
	return result, nil
}

func (s *summarySenderService) record(ctx context.Context, started time.Time, status, message string) {
	if s.audit == nil {
		return
	}
	completed := time.Now()
	entry := &domain.ProcessingLog{
		ProcessType: domain.ProcessEmailSend,
		Status:      status,
		Message:     message,
		StartedAt:   &started,
		CompletedAt: &completed,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record email send", "error", err)
	}
}

// DigestHTML renders the digest markdown as simple HTML: headings, bullet lists,
// bold, links and paragraphs. Tag spans pass through for the sanitizer to vet.
func DigestHTML(markdown string) string {
	var b strings.Builder
	inList := false
	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			closeList()
		case strings.HasPrefix(trimmed, "### "):
			closeList()
			fmt.Fprintf(&b, "<h3>%s</h3>\n", inlineHTML(trimmed[4:]))
		case strings.HasPrefix(trimmed, "## "):
			closeList()
			fmt.Fprintf(&b, "<h2>%s</h2>\n", inlineHTML(trimmed[3:]))
		case strings.HasPrefix(trimmed, "# "):
			closeList()
			fmt.Fprintf(&b, "<h1>%s</h1>\n", inlineHTML(trimmed[2:]))
		case strings.HasPrefix(trimmed, "- "):
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			fmt.Fprintf(&b, "<li>%s</li>\n", inlineHTML(trimmed[2:]))
		default:
			closeList()
			fmt.Fprintf(&b, "<p>%s</p>\n", inlineHTML(trimmed))
		}
	}
	closeList()
	return b.String()
}

// inlineHTML escapes text outside tag spans, then applies bold and link markup.
func inlineHTML(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range spanPattern.FindAllStringIndex(text, -1) {
		b.WriteString(escapeInline(text[last:loc[0]]))
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(escapeInline(text[last:]))
	return b.String()
}

func escapeInline(text string) string {
	// narratives arrive with < and > already escaped; only unescape entities once
	escaped := html.EscapeString(html.UnescapeString(text))
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	return linkPattern.ReplaceAllString(escaped, `<a href="$2">$1</a>`)
}
