package html_parser

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips every tag from raw and collapses whitespace.
func CleanText(raw string) string {
	return normalizeWhitespace(strictPolicy.Sanitize(raw))
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExtractReadableBody runs readability over a full page and returns its plain text.
// Used only when a message page carries no preformatted body.
func ExtractReadableBody(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err == nil {
		doc.Find("script, style, noscript, nav, header, footer, aside, form").Remove()
		if cleaned, err := doc.Html(); err == nil && cleaned != "" {
			page = cleaned
		}
	}

	article, err := readability.FromReader(strings.NewReader(page), nil)
	if err != nil {
		return ""
	}

	var buf strings.Builder
	if err := article.RenderText(&buf); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// selectionText flattens a selection to text, turning <br> into newlines
// and skipping script and style content.
func selectionText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(&b, n)
	}
	return b.String()
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteByte('\n')
			return
		case "script", "style":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(b, c)
	}
}

// labeledCell finds the value cell of a table row whose label cell reads label.
// Matching ignores case and a trailing colon.
func labeledCell(doc *goquery.Document, labels ...string) (*goquery.Selection, bool) {
	var found *goquery.Selection
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Children().Filter("th, td")
		if cells.Length() < 2 {
			return true
		}
		key := strings.TrimSuffix(strings.TrimSpace(cells.First().Text()), ":")
		for _, label := range labels {
			if strings.EqualFold(key, label) {
				found = cells.Eq(1)
				return false
			}
		}
		return true
	})
	return found, found != nil
}

func labeledText(doc *goquery.Document, labels ...string) (string, bool) {
	cell, ok := labeledCell(doc, labels...)
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(selectionText(cell))
	return text, text != ""
}
