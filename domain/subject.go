package domain

import (
	"regexp"
	"strings"
)

var (
	replyPrefixPattern = regexp.MustCompile(`(?i)^(re|fwd):\s*`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// NormalizeSubject builds the join key between mail subjects and commitfest threads.
// Only a single leading "re:" or "fwd:" is stripped.
func NormalizeSubject(subject string) string {
	s := strings.TrimSpace(strings.ToLower(subject))
	s = replyPrefixPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
