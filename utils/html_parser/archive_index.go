package html_parser

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

const (
	contextBefore = 150
	contextAfter  = 300
	defaultClock  = "12:00"
)

var (
	messageLinkPattern = regexp.MustCompile(`<a[^>]+href="(/list/id/[^"]+)"[^>]*>([^<]+)</a>`)
	dayMarkerPattern   = regexp.MustCompile(`(?i)(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December)`)
	clockPattern       = regexp.MustCompile(`\d{2}:\d{2}`)
)

type dayMarker struct {
	day    int
	offset int
}

// ExtractMessageLinks returns every message anchor on an index page with its byte offset.
func ExtractMessageLinks(page string) []domain.RawMessageLink {
	matches := messageLinkPattern.FindAllStringSubmatchIndex(page, -1)
	links := make([]domain.RawMessageLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, domain.RawMessageLink{
			URL:         stdhtml.UnescapeString(page[m[2]:m[3]]),
			SubjectText: strings.TrimSpace(stdhtml.UnescapeString(page[m[4]:m[5]])),
			Offset:      m[0],
		})
	}
	return links
}

func extractDayMarkers(page string) []dayMarker {
	matches := dayMarkerPattern.FindAllStringSubmatchIndex(page, -1)
	markers := make([]dayMarker, 0, len(matches))
	for _, m := range matches {
		day, err := strconv.Atoi(page[m[2]:m[3]])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		markers = append(markers, dayMarker{day: day, offset: m[0]})
	}
	return markers
}

// dayForOffset picks the nearest marker strictly before offset.
// Links that precede every marker fall back to day 1.
func dayForOffset(markers []dayMarker, offset int) int {
	for i := len(markers) - 1; i >= 0; i-- {
		if markers[i].offset < offset {
			return markers[i].day
		}
	}
	return 1
}

// clockNear returns the last HH:MM token in the window around offset.
func clockNear(page string, offset int) (hour, minute int, raw string) {
	start := max(0, offset-contextBefore)
	end := min(len(page), offset+contextAfter)

	raw = defaultClock
	if tokens := clockPattern.FindAllString(page[start:end], -1); len(tokens) > 0 {
		raw = tokens[len(tokens)-1]
	}
	hour, _ = strconv.Atoi(raw[:2])
	minute, _ = strconv.Atoi(raw[3:])
	return hour, minute, raw
}

// ParseArchiveIndex turns a monthly index page into mail threads whose synthesized
// timestamp lies inside window. baseURL is prefixed to the relative message links.
func ParseArchiveIndex(page string, ym domain.YearMonth, window domain.DateWindow, baseURL string) []*domain.MailThread {
	links := ExtractMessageLinks(page)
	markers := extractDayMarkers(page)
	base := strings.TrimRight(baseURL, "/")

	threads := make([]*domain.MailThread, 0, len(links))
	for _, link := range links {
		day := dayForOffset(markers, link.Offset)
		hour, minute, clock := clockNear(page, link.Offset)

		postedAt := time.Date(ym.Year, ym.Month, day, hour, minute, 0, 0, time.UTC)
		if !window.Contains(postedAt) {
			continue
		}

		url := base + link.URL
		subject := link.SubjectText
		if subject == "" {
			subject = domain.UnknownSubject
		}

		threads = append(threads, &domain.MailThread{
			ThreadURL:       url,
			FirstMessageURL: url,
			Subject:         subject,
			PostDate:        postedAt,
			LastActivity:    postedAt,
			ThreadID: fmt.Sprintf("%04d-%02d-%02d-%s-%d",
				ym.Year, int(ym.Month), day, strings.Replace(clock, ":", "", 1), len(threads)),
			MessageCount: 1,
		})
	}
	return threads
}
