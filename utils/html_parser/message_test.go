package html_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

const messageURL = "https://www.postgrespro.com/list/id/CAB123@mail.gmail.com"

var fixedNow = time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC)

func TestParseMessage_StructuredPage(t *testing.T) {
	page := `<html><head><title>Re: Page title subject</title></head><body>
<table class="headers">
<tr><th>From:</th><td>"Tom Lane" &lt;tgl@sss.pgh.pa.us&gt;</td></tr>
<tr><th>Subject:</th><td>Re: Table subject</td></tr>
<tr><th>Date:</th><td>Mon, 15 Sep 2025 14:05:33 -0400</td></tr>
</table>
<pre>not the body</pre>
<div class="message"><pre>Hello` + "\r\n" + `world &lt;b&gt;</pre></div>
</body></html>`

	msg, err := ParseMessage(page, messageURL, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "CAB123@mail.gmail.com", msg.MessageID)
	assert.Equal(t, "Re: Table subject", msg.Subject)
	require.NotNil(t, msg.AuthorName)
	require.NotNil(t, msg.AuthorEmail)
	assert.Equal(t, "Tom Lane", *msg.AuthorName)
	assert.Equal(t, "tgl@sss.pgh.pa.us", *msg.AuthorEmail)
	assert.Equal(t, time.Date(2025, 9, 15, 18, 5, 33, 0, time.UTC), msg.PostedAt)
	assert.Equal(t, "Hello\nworld <b>", msg.Body)
	assert.Empty(t, msg.Degraded)
	assert.False(t, msg.IsEmpty())
}

func TestParseMessage_SubjectStrategies(t *testing.T) {
	tests := map[string]struct {
		page     string
		want     string
		degraded bool
	}{
		"title when no table": {
			page: `<html><head><title>Logical decoding</title></head><body><h1>Heading</h1></body></html>`,
			want: "Logical decoding",
		},
		"heading when no title": {
			page: `<html><body><h2>  Heading   subject </h2></body></html>`,
			want: "Heading subject",
		},
		"unknown subject as last resort": {
			page:     `<html><body><p>nothing</p></body></html>`,
			want:     domain.UnknownSubject,
			degraded: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			msg, err := ParseMessage(tc.page, messageURL, fixedNow)
			require.NoError(t, err)

			assert.Equal(t, tc.want, msg.Subject)
			if tc.degraded {
				assert.Contains(t, msg.Degraded, "subject")
			} else {
				assert.NotContains(t, msg.Degraded, "subject")
			}
		})
	}
}

func TestParseMessage_BodyFallsBackToFirstPre(t *testing.T) {
	page := `<html><body><pre>first block</pre><pre>second block</pre></body></html>`

	msg, err := ParseMessage(page, messageURL, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "first block", msg.Body)
}

func TestParseMessage_DateFallsBackToNow(t *testing.T) {
	t.Run("should use now when the Date row is missing", func(t *testing.T) {
		msg, err := ParseMessage(`<html><body><pre>x</pre></body></html>`, messageURL, fixedNow)
		require.NoError(t, err)

		assert.Equal(t, fixedNow, msg.PostedAt)
		assert.Contains(t, msg.Degraded, "posted_at")
	})

	t.Run("should use now when the Date row does not parse", func(t *testing.T) {
		page := `<table><tr><td>Date</td><td>sometime last week</td></tr></table>`
		msg, err := ParseMessage(page, messageURL, fixedNow)
		require.NoError(t, err)

		assert.Equal(t, fixedNow, msg.PostedAt)
	})
}

func TestSplitAuthor(t *testing.T) {
	tests := map[string]struct {
		in        string
		wantName  *string
		wantEmail *string
	}{
		"name and address": {
			in:        `Andres Freund <andres@anarazel.de>`,
			wantName:  ptr("Andres Freund"),
			wantEmail: ptr("andres@anarazel.de"),
		},
		"address only": {
			in:        `<andres@anarazel.de>`,
			wantEmail: ptr("andres@anarazel.de"),
		},
		"no address keeps raw text": {
			in:       `Some Person`,
			wantName: ptr("Some Person"),
		},
		"empty": {
			in: "   ",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			gotName, gotEmail := SplitAuthor(tc.in)
			assert.Equal(t, tc.wantName, gotName)
			assert.Equal(t, tc.wantEmail, gotEmail)
		})
	}
}

func TestCleanBody(t *testing.T) {
	in := "line1\r\nline2\rline3\x00\x07\tindent\x7f\n"
	assert.Equal(t, "line1\nline2\nline3\tindent", CleanBody(in))
}

func TestParseMailDate(t *testing.T) {
	tests := map[string]time.Time{
		"Mon, 15 Sep 2025 14:05:33 -0400":       time.Date(2025, 9, 15, 18, 5, 33, 0, time.UTC),
		"Mon, 15 Sep 2025 14:05:33 +0000 (UTC)": time.Date(2025, 9, 15, 14, 5, 33, 0, time.UTC),
		"2025-09-15 14:05:33":                   time.Date(2025, 9, 15, 14, 5, 33, 0, time.UTC),
		"2025-09-15":                            time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, ok := ParseMailDate(in)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}

	_, ok := ParseMailDate("not a date")
	assert.False(t, ok)
}

func TestMessageIDFromURL(t *testing.T) {
	assert.Equal(t, "CAB123@mail.gmail.com", MessageIDFromURL(messageURL, fixedNow))
	assert.Equal(t, "extracted-1758355200000000000", MessageIDFromURL("https://example.org/other/", fixedNow))
}

func ptr(s string) *string { return &s }
