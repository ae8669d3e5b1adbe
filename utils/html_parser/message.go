package html_parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

// fieldExtractor returns a value and whether it found one.
type fieldExtractor func(doc *goquery.Document) (string, bool)

var (
	emailPattern       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	messageIDPattern   = regexp.MustCompile(`/list/id/([^/]+)$`)
	trailingZoneName   = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	bodyContainerQuery = "div.message pre, div.content pre, #message pre, .msg-body pre"
)

var mailDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func firstMatch(doc *goquery.Document, extractors ...fieldExtractor) (string, bool) {
	for _, extract := range extractors {
		if v, ok := extract(doc); ok {
			return v, true
		}
	}
	return "", false
}

func subjectFromTable(doc *goquery.Document) (string, bool) {
	return labeledText(doc, "Subject")
}

func subjectFromTitle(doc *goquery.Document) (string, bool) {
	title := normalizeWhitespace(doc.Find("title").First().Text())
	return title, title != ""
}

func subjectFromHeading(doc *goquery.Document) (string, bool) {
	heading := normalizeWhitespace(doc.Find("h1, h2").First().Text())
	return heading, heading != ""
}

func bodyFromContainer(doc *goquery.Document) (string, bool) {
	text := selectionText(doc.Find(bodyContainerQuery).First())
	return text, strings.TrimSpace(text) != ""
}

func bodyFromFirstPre(doc *goquery.Document) (string, bool) {
	text := selectionText(doc.Find("pre").First())
	return text, strings.TrimSpace(text) != ""
}

func bodyFromReadability(doc *goquery.Document) (string, bool) {
	page, err := doc.Html()
	if err != nil {
		return "", false
	}
	text := ExtractReadableBody(page)
	return text, text != ""
}

// ParseMessage extracts one archived message from its detail page.
// now is used as posted-at when no Date row parses.
func ParseMessage(page, pageURL string, now time.Time) (*domain.ExtractedMessage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message page: %w", err)
	}

	msg := &domain.ExtractedMessage{MessageID: MessageIDFromURL(pageURL, now)}

	if subject, ok := firstMatch(doc, subjectFromTable, subjectFromTitle, subjectFromHeading); ok {
		msg.Subject = subject
	} else {
		msg.Subject = domain.UnknownSubject
		msg.Degraded = append(msg.Degraded, "subject")
	}

	if from, ok := labeledText(doc, "From"); ok {
		msg.AuthorName, msg.AuthorEmail = SplitAuthor(from)
	} else {
		msg.Degraded = append(msg.Degraded, "author")
	}

	if body, ok := firstMatch(doc, bodyFromContainer, bodyFromFirstPre, bodyFromReadability); ok {
		msg.Body = CleanBody(body)
	} else {
		msg.Degraded = append(msg.Degraded, "body")
	}

	msg.PostedAt = now
	if raw, ok := labeledText(doc, "Date"); ok {
		if t, ok := ParseMailDate(raw); ok {
			msg.PostedAt = t
		} else {
			msg.Degraded = append(msg.Degraded, "posted_at")
		}
	} else {
		msg.Degraded = append(msg.Degraded, "posted_at")
	}

	return msg, nil
}

// SplitAuthor separates a From value into display name and address.
// Without an address the raw text is kept as the name.
func SplitAuthor(from string) (name, email *string) {
	from = normalizeWhitespace(from)
	if from == "" {
		return nil, nil
	}

	loc := emailPattern.FindStringIndex(from)
	if loc == nil {
		return &from, nil
	}

	addr := from[loc[0]:loc[1]]
	display := strings.Trim(from[:loc[0]], " \"'<>")
	if display == "" {
		return nil, &addr
	}
	return &display, &addr
}

// CleanBody normalizes line endings and strips control characters other than newline and tab.
func CleanBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	body = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, body)
	return strings.TrimSpace(body)
}

// ParseMailDate tries the common mail header layouts.
func ParseMailDate(raw string) (time.Time, bool) {
	raw = trailingZoneName.ReplaceAllString(strings.TrimSpace(raw), "")
	for _, layout := range mailDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// MessageIDFromURL returns the last path segment of a /list/id/ URL,
// or a synthetic id derived from now.
func MessageIDFromURL(pageURL string, now time.Time) string {
	if m := messageIDPattern.FindStringSubmatch(pageURL); m != nil {
		return m[1]
	}
	return fmt.Sprintf("extracted-%d", now.UnixNano())
}
