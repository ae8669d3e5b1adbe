package html_parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

const mailThreadPrefix = "https://www.postgresql.org/message-id/flat/"

var patchHrefPattern = regexp.MustCompile(`^/patch/(\d+)/?$`)

// PatchLink is a patch row on the commitfest listing page.
type PatchLink struct {
	URL   string
	Title string
	ID    int
}

// ParsePatchLinks collects /patch/<id>/ links, deduplicated by id, in page order.
func ParsePatchLinks(page, baseURL string) ([]PatchLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(baseURL, "/")
	seen := make(map[int]struct{})
	var links []PatchLink

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := patchHrefPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		links = append(links, PatchLink{
			ID:    id,
			URL:   base + href,
			Title: normalizeWhitespace(a.Text()),
		})
	})

	return links, nil
}

// ParsePatchPage reads the detail table of one commitfest patch.
func ParsePatchPage(page string, link PatchLink) (*domain.CommitfestPatch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	patch := &domain.CommitfestPatch{
		ID:    link.ID,
		URL:   link.URL,
		Title: normalizeWhitespace(doc.Find("h1").First().Text()),
	}
	if patch.Title == "" {
		patch.Title = link.Title
	}

	if status, ok := labeledText(doc, "Status"); ok {
		patch.Status = normalizeWhitespace(status)
	}
	if author, ok := labeledText(doc, "Authors", "Author"); ok {
		patch.Author = normalizeWhitespace(author)
	}
	if raw, ok := labeledText(doc, "Created"); ok {
		patch.CreatedAt = parsePatchDate(raw)
	}
	if raw, ok := labeledText(doc, "Last modified"); ok {
		patch.LastModified = parsePatchDate(raw)
	}

	if cell, ok := labeledCell(doc, "Tags"); ok {
		patch.Tags = tagsFromCell(cell)
	}

	scope := doc.Selection
	if cell, ok := labeledCell(doc, "Emails"); ok {
		scope = cell
	}
	patch.MailThreads = mailThreadsIn(scope)

	return patch, nil
}

// tagsFromCell prefers linked tags, then span-like elements, then bare words.
func tagsFromCell(cell *goquery.Selection) []string {
	for _, query := range []string{"a", "span, strong, em, div"} {
		var tags []string
		cell.Find(query).Each(func(_ int, s *goquery.Selection) {
			if t := normalizeWhitespace(s.Text()); t != "" {
				tags = append(tags, t)
			}
		})
		if len(tags) > 0 {
			return tags
		}
	}

	var tags []string
	for _, word := range strings.Fields(selectionText(cell)) {
		if len(word) > 1 && strings.IndexFunc(word, isWordRune) >= 0 {
			tags = append(tags, word)
		}
	}
	return tags
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func mailThreadsIn(scope *goquery.Selection) []domain.CommitfestMailThread {
	var threads []domain.CommitfestMailThread
	scope.Find(`a[href^="` + mailThreadPrefix + `"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		subject := normalizeWhitespace(a.Text())
		if subject == "" {
			return
		}
		threads = append(threads, domain.CommitfestMailThread{
			URL:               href,
			Subject:           subject,
			SubjectNormalized: domain.NormalizeSubject(subject),
		})
	})
	return threads
}

func parsePatchDate(raw string) *time.Time {
	if t, ok := ParseMailDate(raw); ok {
		return &t
	}
	return nil
}
