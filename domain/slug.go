package domain

import (
	"crypto/sha256"
	"math/big"
	"regexp"
	"strings"
)

// RedirectSlugLength is the number of base36 characters in a redirect slug.
const RedirectSlugLength = 10

var slugPattern = regexp.MustCompile(`^[a-z0-9]{1,64}$`)

// RedirectSlug derives a stable short slug from a thread URL.
func RedirectSlug(threadURL string) string {
	sum := sha256.Sum256([]byte(threadURL))
	encoded := new(big.Int).SetBytes(sum[:]).Text(36)
	if len(encoded) < RedirectSlugLength {
		encoded = strings.Repeat("0", RedirectSlugLength-len(encoded)) + encoded
	}
	return encoded[:RedirectSlugLength]
}

// ValidSlug reports whether s could be a redirect slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
