package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

const (
	headerDateLayout   = "Jan 2, 2006"
	durationDateLayout = "1/2/2006"
	defaultTagColor    = "#336791"
	aiTagColor         = "#6b7280"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

	// protected spans, in the order they are captured
	protectPatterns = []*regexp.Regexp{
		regexp.MustCompile("(?s)```.*?```"),
		regexp.MustCompile("`[^`\n]+`"),
		regexp.MustCompile(`\[[^\]\n]*\]\([^)\s]*\)`),
		regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`),
	}
	placeholderPattern = regexp.MustCompile("\x00(\\d+)\x00")
)

// DigestSection is one rendered discussion.
type DigestSection struct {
	Discussion *domain.Discussion
	Narrative  string
}

// DigestRenderer composes the weekly markdown document.
type DigestRenderer struct {
	publicBaseURL string
}

func NewDigestRenderer(publicBaseURL string) *DigestRenderer {
	return &DigestRenderer{publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Render builds the digest for window from the aggregation totals and sections.
func (r *DigestRenderer) Render(window domain.DateWindow, totalPosts, totalParticipants int, sections []DigestSection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PostgreSQL Weekly Summary - %s to %s\n\n",
		window.Start.UTC().Format(headerDateLayout),
		window.End.UTC().Format(headerDateLayout))
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "This week saw %d posts from %d participants in the PostgreSQL mailing list, covering a range of important topics and technical discussions.\n\n",
		totalPosts, totalParticipants)
	b.WriteString("## Top Discussions\n\n")

	for i, section := range sections {
		d := section.Discussion
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, d.Subject)
		fmt.Fprintf(&b, "- **Posts**: %d\n", d.PostCount)
		fmt.Fprintf(&b, "- **Participants**: %d\n", d.ParticipantCount)
		fmt.Fprintf(&b, "- **Duration**: %s - %s\n",
			d.FirstPostAt.UTC().Format(durationDateLayout),
			d.LastPostAt.UTC().Format(durationDateLayout))
		if ref := r.ReferenceURL(d); ref != "" {
			fmt.Fprintf(&b, "- **Reference Link**: [View Thread](%s)\n", ref)
		}
		if tags := r.TagSpans(d); tags != "" {
			fmt.Fprintf(&b, "- **Tags**: %s\n", tags)
		}
		fmt.Fprintf(&b, "\n%s\n\n", EscapeNarrative(section.Narrative))
	}

	return b.String()
}

// ReferenceURL prefers the short redirect of the latest thread over its raw URL.
func (r *DigestRenderer) ReferenceURL(d *domain.Discussion) string {
	latest := d.LatestThread()
	if latest == nil {
		return ""
	}
	if latest.RedirectSlug != nil && *latest.RedirectSlug != "" && r.publicBaseURL != "" {
		return r.publicBaseURL + "/thread-redirect/" + *latest.RedirectSlug
	}
	return latest.ThreadURL
}

// TagSpans renders commitfest tags first, then AI tags.
func (r *DigestRenderer) TagSpans(d *domain.Discussion) string {
	spans := make([]string, 0, len(d.CommitfestTags)+len(d.AITags))
	for _, tag := range d.CommitfestTags {
		color := defaultTagColor
		if tag.Color != nil && hexColorPattern.MatchString(*tag.Color) {
			color = *tag.Color
		}
		spans = append(spans, tagSpan(tag.Name, domain.TagSourceCommitfest, "solid", color))
	}
	for _, name := range d.AITags {
		spans = append(spans, tagSpan(name, domain.TagSourceAI, "dashed", aiTagColor))
	}
	return strings.Join(spans, " ")
}

func tagSpan(name string, source domain.TagSource, border, color string) string {
	return fmt.Sprintf(
		`<span data-tag-source="%s" style="display:inline-block;padding:2px 8px;margin:2px;border:1px %s %s;border-radius:12px;color:%s;font-size:12px;">%s</span>`,
		source, border, color, color, html.EscapeString(name))
}

// EscapeNarrative neutralizes tag-like text while leaving markdown links, code
// spans and existing entities untouched.
func EscapeNarrative(text string) string {
	var saved []string
	for _, pattern := range protectPatterns {
		text = pattern.ReplaceAllStringFunc(text, func(m string) string {
			saved = append(saved, m)
			return fmt.Sprintf("\x00%d\x00", len(saved)-1)
		})
	}

	text = strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(text)

	// placeholders may nest (a link captured after a code span), so restore until stable
	for range len(saved) + 1 {
		restored := placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
			var idx int
			if _, err := fmt.Sscanf(strings.Trim(m, "\x00"), "%d", &idx); err != nil || idx >= len(saved) {
				return m
			}
			return saved[idx]
		})
		if restored == text {
			break
		}
		text = restored
	}
	return text
}
