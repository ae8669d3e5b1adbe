// ABOUTME: Structured error type used at the HTTP edge
// ABOUTME: Maps domain error markers to codes, HTTP statuses and non-leaking client messages
package errors

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

// Error codes
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeExternalAPI   = "EXTERNAL_API_ERROR"
	CodeDatabase      = "DATABASE_ERROR"
	CodeTimeout       = "TIMEOUT_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppContextError represents an error with layer, component and operation context.
type AppContextError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Layer     string         `json:"layer,omitempty"`
	Component string         `json:"component,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Cause     error          `json:"-"`
	Context   map[string]any `json:"context,omitempty"`
	ErrorID   string         `json:"-"` // log correlation only
}

func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode maps error codes to HTTP status codes
func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeExternalAPI:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether the client may retry the same request.
func (e *AppContextError) IsRetryable() bool {
	return e.Code == CodeExternalAPI || e.Code == CodeTimeout
}

var safeMessages = map[string]string{
	CodeConfiguration: "The service is not fully configured.",
	CodeDatabase:      "A temporary service error occurred. Please try again later.",
	CodeExternalAPI:   "Unable to reach an upstream service. Please try again.",
	CodeTimeout:       "The request took too long. Please try again.",
	CodeInternal:      "An unexpected error occurred. Please try again later.",
}

// SafeMessage returns a message that does not leak internal details.
// Validation and not-found messages are written for clients and pass through.
func (e *AppContextError) SafeMessage() string {
	if e.Code == CodeValidation || e.Code == CodeNotFound {
		return e.Message
	}
	if msg, ok := safeMessages[e.Code]; ok {
		return msg
	}
	return "An error occurred."
}

// SecureHTTPResponse is the JSON body returned for every API error.
type SecureHTTPResponse struct {
	Error SecureErrorDetail `json:"error"`
}

type SecureErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ErrorID   string `json:"error_id,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e *AppContextError) ToSecureHTTPResponse() SecureHTTPResponse {
	return SecureHTTPResponse{
		Error: SecureErrorDetail{
			Code:      e.Code,
			Message:   e.SafeMessage(),
			ErrorID:   e.ErrorID,
			Retryable: e.IsRetryable(),
		},
	}
}

func generateErrorID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}

// NewAppContextError creates a new AppContextError with full context
func NewAppContextError(code, message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
		ErrorID:   generateErrorID(),
	}
}

func NewValidationContextError(message, layer, component, operation string, context map[string]any) *AppContextError {
	return NewAppContextError(CodeValidation, message, layer, component, operation, nil, context)
}

func NewNotFoundContextError(message, layer, component, operation string, context map[string]any) *AppContextError {
	return NewAppContextError(CodeNotFound, message, layer, component, operation, nil, context)
}

func NewInternalContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return NewAppContextError(CodeInternal, message, layer, component, operation, cause, context)
}

// FromDomainError classifies err by the domain marker it carries.
// An *AppContextError already in the chain is returned unchanged.
func FromDomainError(err error, layer, component, operation string) *AppContextError {
	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr
	}

	code := CodeInternal
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidSlug):
		code = CodeValidation
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrSummaryNotFound),
		errors.Is(err, domain.ErrNoThreadsInWindow):
		code = CodeNotFound
	case errors.Is(err, domain.ErrConfiguration):
		code = CodeConfiguration
	case errors.Is(err, domain.ErrFetch):
		code = CodeExternalAPI
	case errors.Is(err, domain.ErrPersistence):
		code = CodeDatabase
	case errors.Is(err, context.DeadlineExceeded):
		code = CodeTimeout
	}

	return NewAppContextError(code, err.Error(), layer, component, operation, err, nil)
}
