package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

func TestEscapeNarrative(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"should escape tag-like text": {
			input:    "Use <b>bold</b> carefully",
			expected: "Use &lt;b&gt;bold&lt;/b&gt; carefully",
		},
		"should leave markdown links alone": {
			input:    "See [patch](https://example.com/?a=<1>) now",
			expected: "See [patch](https://example.com/?a=<1>) now",
		},
		"should leave inline code alone": {
			input:    "Call `heap_insert(<rel>)` here <x>",
			expected: "Call `heap_insert(<rel>)` here &lt;x&gt;",
		},
		"should leave fenced code alone": {
			input:    "```\nif (a < b) {}\n```\nthen <y>",
			expected: "```\nif (a < b) {}\n```\nthen &lt;y&gt;",
		},
		"should not double-escape entities": {
			input:    "a &lt; b and c < d",
			expected: "a &lt; b and c &lt; d",
		},
		"should escape every inline tag and address without an allow-list": {
			input:    `a<br>b <em>x</em> <span data-tag-source="ai">A</span> from <tgl@sss.pgh.pa.us>`,
			expected: `a&lt;br&gt;b &lt;em&gt;x&lt;/em&gt; &lt;span data-tag-source="ai"&gt;A&lt;/span&gt; from &lt;tgl@sss.pgh.pa.us&gt;`,
		},
		"should keep plain text unchanged": {
			input:    "Nothing to do",
			expected: "Nothing to do",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EscapeNarrative(tc.input))
		})
	}
}

func TestDigestRenderer_Render(t *testing.T) {
	window := domain.DateWindow{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
	}

	t.Run("should render header, overview and discussion sections", func(t *testing.T) {
		d := testDiscussion()
		d.Threads[1].RedirectSlug = strPtr("abc123xyz0")
		d.CommitfestTags = []domain.Tag{{Name: "Performance", Color: strPtr("#ff0000"), Source: domain.TagSourceCommitfest}}
		d.AITags = []string{"Bug Fix"}

		out := NewDigestRenderer("https://digest.example.com/").Render(window, 12, 4,
			[]DigestSection{{Discussion: d, Narrative: "Discusses <COPY> speed."}})

		assert.True(t, strings.HasPrefix(out, "# PostgreSQL Weekly Summary - Mar 1, 2025 to Mar 7, 2025\n\n## Overview\n"))
		assert.Contains(t, out, "This week saw 12 posts from 4 participants in the PostgreSQL mailing list")
		assert.Contains(t, out, "## Top Discussions\n\n### 1. Faster COPY\n\n- **Posts**: 2\n- **Participants**: 2\n- **Duration**: 3/3/2025 - 3/4/2025\n")
		assert.Contains(t, out, "- **Reference Link**: [View Thread](https://digest.example.com/thread-redirect/abc123xyz0)\n")
		assert.Contains(t, out, `data-tag-source="commitfest" style="display:inline-block;padding:2px 8px;margin:2px;border:1px solid #ff0000;`)
		assert.Contains(t, out, `data-tag-source="ai" style="display:inline-block;padding:2px 8px;margin:2px;border:1px dashed #6b7280;`)
		assert.Contains(t, out, "Discusses &lt;COPY&gt; speed.")
	})

	t.Run("should fall back to the raw URL without a slug", func(t *testing.T) {
		d := testDiscussion()

		assert.Equal(t, d.Threads[1].ThreadURL, NewDigestRenderer("https://digest.example.com").ReferenceURL(d))
	})

	t.Run("should omit tags line and use default color for invalid colors", func(t *testing.T) {
		r := NewDigestRenderer("")
		d := testDiscussion()
		assert.Empty(t, r.TagSpans(d))

		d.CommitfestTags = []domain.Tag{{Name: "<x>", Color: strPtr("red;background:url(x)")}}
		spans := r.TagSpans(d)
		assert.Contains(t, spans, "border:1px solid #336791")
		assert.Contains(t, spans, "&lt;x&gt;")
	})
}
