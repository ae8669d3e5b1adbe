// ABOUTME: Error classifier for retry decisions on outbound calls
// ABOUTME: Treats timeouts, dropped connections and retryable HTTP statuses as transient
package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
)

// IsRetryable reports whether a failed archive, LLM or mail call is worth repeating.
// Cancellation is never retried; anything unrecognised is treated as permanent.
func IsRetryable(err error) bool {
	var (
		statusErr *HTTPStatusError
		appErr    *AppContextError
		netErr    net.Error
	)

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT):
		return true
	case errors.As(err, &statusErr):
		return IsRetryableHTTPStatus(statusErr.StatusCode)
	case errors.As(err, &appErr):
		return appErr.IsRetryable()
	case errors.As(err, &netErr):
		return netErr.Timeout()
	}
	return false
}

// IsRetryableHTTPStatus reports whether an upstream status is worth retrying:
// any 5xx, 408 and 429.
func IsRetryableHTTPStatus(status int) bool {
	return status >= 500 && status <= 599 ||
		status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests
}

// HTTPStatusError records a non-2xx response from an upstream service.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
