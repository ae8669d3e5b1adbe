package html_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commitfestListing = `<html><body>
<table class="table"><thead><tr><th>Patch</th><th>Status</th></tr></thead><tbody>
<tr><td><a href="/patch/4821/">Add pg_stat_io</a></td><td>Needs review</td></tr>
<tr><td><a href="/patch/4822/">Vacuum   tweaks</a></td><td>Ready</td></tr>
<tr><td><a href="/patch/4821/">duplicate row</a></td><td>Needs review</td></tr>
<tr><td><a href="/other/1/">not a patch</a></td><td></td></tr>
</tbody></table></body></html>`

const commitfestPatchPage = `<html><body>
<h1>Add pg_stat_io</h1>
<table class="table">
<tr><th>Status</th><td>Needs review</td></tr>
<tr><th>Tags</th><td><a href="/?tag=3">Performance</a> <a href="/?tag=7">Monitoring</a></td></tr>
<tr><th>Authors</th><td>Jane Doe</td></tr>
<tr><th>Created</th><td>2025-01-02 10:00:00</td></tr>
<tr><th>Last modified</th><td>yesterday</td></tr>
<tr><th>Emails</th><td><dl><dt><a href="https://www.postgresql.org/message-id/flat/abc%40x">Re: Add   pg_stat_io</a></dt></dl></td></tr>
</table>
<a href="https://www.postgresql.org/message-id/flat/outside">Outside the emails row</a>
</body></html>`

func TestParsePatchLinks(t *testing.T) {
	links, err := ParsePatchLinks(commitfestListing, "https://commitfest.postgresql.org/")
	require.NoError(t, err)

	require.Len(t, links, 2)
	assert.Equal(t, PatchLink{ID: 4821, URL: "https://commitfest.postgresql.org/patch/4821/", Title: "Add pg_stat_io"}, links[0])
	assert.Equal(t, "Vacuum tweaks", links[1].Title)
}

func TestParsePatchPage(t *testing.T) {
	link := PatchLink{ID: 4821, URL: "https://commitfest.postgresql.org/patch/4821/", Title: "fallback"}

	patch, err := ParsePatchPage(commitfestPatchPage, link)
	require.NoError(t, err)

	assert.Equal(t, 4821, patch.ID)
	assert.Equal(t, "Add pg_stat_io", patch.Title)
	assert.Equal(t, "Needs review", patch.Status)
	assert.Equal(t, "Jane Doe", patch.Author)
	assert.Equal(t, []string{"Performance", "Monitoring"}, patch.Tags)
	require.NotNil(t, patch.CreatedAt)
	assert.Equal(t, time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC), *patch.CreatedAt)
	assert.Nil(t, patch.LastModified)

	require.Len(t, patch.MailThreads, 1, "links outside the Emails row are ignored when the row exists")
	assert.Equal(t, "Re: Add pg_stat_io", patch.MailThreads[0].Subject)
	assert.Equal(t, "add pg_stat_io", patch.MailThreads[0].SubjectNormalized)
}

func TestParsePatchPage_TagFallbacks(t *testing.T) {
	t.Run("should read span tags", func(t *testing.T) {
		page := `<table><tr><th>Tags</th><td><span class="badge">Bug Fix</span><span class="badge">Docs</span></td></tr></table>`
		patch, err := ParsePatchPage(page, PatchLink{ID: 1, Title: "t"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Bug Fix", "Docs"}, patch.Tags)
		assert.Equal(t, "t", patch.Title)
	})

	t.Run("should split plain words", func(t *testing.T) {
		page := `<table><tr><th>Tags</th><td>Performance &nbsp; - Replication</td></tr></table>`
		patch, err := ParsePatchPage(page, PatchLink{ID: 1})
		require.NoError(t, err)

		assert.Equal(t, []string{"Performance", "Replication"}, patch.Tags)
	})
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Hello world", CleanText("<p>Hello <b>world</b></p>"))
}
