package utils

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

// Sanitizer cleans digest HTML before it is mailed.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer allows user-generated-content markup plus the styled tag spans
// the digest renders.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowDataAttributes()
	p.AllowStyles("display", "padding", "margin", "border-radius", "font-size").OnElements("span")
	p.AllowStyles("color").MatchingHandler(tagColorPattern.MatchString).OnElements("span")
	p.AllowStyles("border").MatchingHandler(validBorder).OnElements("span")

	return &Sanitizer{
		policy: p,
	}
}

// validBorder accepts "1px solid|dashed #hex".
func validBorder(value string) bool {
	parts := strings.Fields(value)
	if len(parts) != 3 || parts[0] != "1px" {
		return false
	}
	if parts[1] != "solid" && parts[1] != "dashed" {
		return false
	}
	return tagColorPattern.MatchString(parts[2])
}

// SanitizeHTML sanitizes the given HTML string.
func (s *Sanitizer) SanitizeHTML(html string) string {
	return s.policy.Sanitize(html)
}

// SanitizeHTMLAndTrim sanitizes the HTML and trims surrounding whitespace.
func (s *Sanitizer) SanitizeHTMLAndTrim(html string) string {
	sanitized := s.SanitizeHTML(html)
	return strings.TrimSpace(sanitized)
}
