// ABOUTME: Domain-level sentinel errors for the digest pipeline
// ABOUTME: Markers are checked with errors.Is() after being wrapped with stage context
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Pipeline error taxonomy
var (
	// ErrFetch indicates a network or non-2xx HTTP failure while fetching a page.
	// Retryable and non-fatal to the batch it occurs in.
	ErrFetch = errors.New("fetch error")

	// ErrParseDegraded indicates an extraction strategy fell through to its default.
	// Only ever logged.
	ErrParseDegraded = errors.New("parse degraded")

	// ErrValidation indicates malformed LLM output or tags outside the whitelist.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration indicates a missing credential; aborts the run.
	ErrConfiguration = errors.New("configuration error")

	// ErrPersistence indicates an upsert or insert failed.
	ErrPersistence = errors.New("persistence error")
)

// Lookup errors
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrSummaryNotFound indicates no weekly summary exists for the range
	ErrSummaryNotFound = errors.New("weekly summary not found")

	// ErrNoThreadsInWindow indicates the summary window holds no mail threads
	ErrNoThreadsInWindow = errors.New("no mail threads found in window")
)

// Request errors
var (
	// ErrInvalidStage indicates an unknown pipeline stage name
	ErrInvalidStage = errors.New("invalid pipeline stage")

	// ErrInvalidDateRange indicates start is after end or a date failed to parse
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidSlug indicates a malformed redirect slug
	ErrInvalidSlug = errors.New("invalid redirect slug")
)

// Wrap tags err with marker and prefixes it with stage/operation context.
// A nil marker is treated as ErrFetch, the only transient class.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFetch
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort the whole run rather than one item.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
