package service

import (
	"fmt"
	"strings"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/tokenizer"
)

// DefaultTokenCeiling bounds the transcript part of a prompt.
const DefaultTokenCeiling = 12000

const (
	promptDateLayout     = "1/2/2006"
	promptDateTimeLayout = "1/2/2006, 3:04:05 PM"
	noContent            = "[No content available]"
)

const systemInstruction = `You are an expert PostgreSQL core developer who creates detailed summaries of individual mailing list discussions. Write a comprehensive summary that includes specific technical details, exact function names, data structures, algorithms, performance metrics, and implementation approaches discussed. Focus on concrete technical decisions, code changes, and PostgreSQL internals mentioned. Avoid high-level descriptions and include specific technical information that would be valuable to PostgreSQL developers working on the codebase. Your summary should be approximately 200 words. Respond with a JSON object containing "summary" and "tags".`

// DiscussionSummaryOutput is the structured response requested from the model.
type DiscussionSummaryOutput struct {
	Summary string   `json:"summary" jsonschema:"description=Technical summary of the discussion, about 200 words"`
	Tags    []string `json:"tags" jsonschema:"description=Up to three tags copied verbatim from the allowed tag list"`
}

// Prompt is one ready-to-send request for a discussion.
type Prompt struct {
	System     string
	User       string
	Truncation tokenizer.Truncation
}

// PromptBuilder renders discussions into token-bounded prompts.
type PromptBuilder struct {
	tokenizer *tokenizer.Tokenizer
	ceiling   int
}

func NewPromptBuilder(tok *tokenizer.Tokenizer, ceiling int) *PromptBuilder {
	if ceiling <= 0 {
		ceiling = DefaultTokenCeiling
	}
	return &PromptBuilder{tokenizer: tok, ceiling: ceiling}
}

// Transcript lists every message of d in chronological order.
func Transcript(d *domain.Discussion) string {
	var b strings.Builder
	for i, t := range d.Threads {
		author := domain.UnknownAuthor
		if t.AuthorName != nil && *t.AuthorName != "" {
			author = *t.AuthorName
		}
		body := noContent
		if t.Content != nil && strings.TrimSpace(t.Content.Body) != "" {
			body = t.Content.Body
		}

		fmt.Fprintf(&b, "\n**Email %d** (%s):\n", i+1, t.PostDate.UTC().Format(promptDateTimeLayout))
		fmt.Fprintf(&b, "From: %s\n", author)
		fmt.Fprintf(&b, "Subject: %s\n\n", t.Subject)
		fmt.Fprintf(&b, "Content: %s\n", body)
		b.WriteString("---\n")
	}
	return b.String()
}

// Build assembles the system and user prompts. Only the transcript is truncated,
// keeping its most recent tokens.
func (p *PromptBuilder) Build(d *domain.Discussion, allowedTags []string) Prompt {
	truncation := p.tokenizer.TruncateTail(Transcript(d), p.ceiling)

	var b strings.Builder
	b.WriteString("Analyze this PostgreSQL mailing list discussion and create a detailed summary:\n\n")
	fmt.Fprintf(&b, "## Discussion: %s\n", d.Subject)
	fmt.Fprintf(&b, "- Posts: %d\n", d.PostCount)
	fmt.Fprintf(&b, "- Participants: %d\n", d.ParticipantCount)
	fmt.Fprintf(&b, "- Duration: %s - %s\n",
		d.FirstPostAt.UTC().Format(promptDateLayout),
		d.LastPostAt.UTC().Format(promptDateLayout))

	b.WriteString("\n### Email Content:\n")
	if truncation.Truncated {
		b.WriteString("[Earlier messages truncated]\n")
	}
	b.WriteString(truncation.Text)

	b.WriteString("\n\nAllowed tags: ")
	if len(allowedTags) == 0 {
		b.WriteString("(none, return an empty list)")
	} else {
		b.WriteString(strings.Join(allowedTags, ", "))
	}

	b.WriteString(`

Please create a comprehensive summary that:
1. Explains the main technical topic or problem being discussed
2. Includes specific technical details, code changes, algorithms, or implementation approaches mentioned
3. Mentions exact function names, data structures, performance metrics, or configuration changes discussed
4. Highlights specific technical decisions, trade-offs, or implementation choices made
5. Identifies any consensus reached or ongoing debates with technical reasoning
6. Is approximately 200 words and written for PostgreSQL core developers
7. Does not include any links

Return a JSON object {"summary": string, "tags": string[]} where tags holds at most three entries copied exactly from the allowed tags.`)

	return Prompt{
		System:     systemInstruction,
		User:       b.String(),
		Truncation: truncation,
	}
}
