// ABOUTME: Centralized error handling middleware for Echo framework
// ABOUTME: Converts AppContextError and domain errors to secure HTTP responses, hides internal details
package middleware

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

// CustomHTTPErrorHandler creates the centralized HTTP error handler for Echo.
// It converts various error types to consistent, secure HTTP responses.
//
// Error handling priority:
// 1. AppContextError - uses ToSecureHTTPResponse() for consistent format
// 2. echo.HTTPError - preserves Echo's error format for routing errors
// 3. Anything else - classified by its domain marker, 500 when it carries none
func CustomHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		// Don't write to already committed responses
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		requestID := logger.RequestIDFromContext(ctx)

		var (
			response apperrors.SecureHTTPResponse
			status   int
			appErr   *apperrors.AppContextError
			httpErr  *echo.HTTPError
		)

		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			msg := "An error occurred"
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			}

			// For 5xx errors, hide the actual message
			safeMsg := msg
			if status >= 500 {
				safeMsg = "An unexpected error occurred. Please try again later."
			}

			response = apperrors.SecureHTTPResponse{
				Error: apperrors.SecureErrorDetail{
					Code:      "HTTP_ERROR",
					Message:   safeMsg,
					Retryable: apperrors.IsRetryableHTTPStatus(status),
				},
			}

			log.WarnContext(ctx, "HTTP error",
				"request_id", requestID,
				"status", status,
				"message", msg,
			)

		default:
			if !errors.As(err, &appErr) {
				appErr = apperrors.FromDomainError(err, "http", c.Path(), c.Request().Method)
			}
			status = appErr.HTTPStatusCode()
			response = appErr.ToSecureHTTPResponse()

			// Log full error details for internal debugging
			logFn := log.ErrorContext
			if status < 500 {
				logFn = log.WarnContext
			}
			logFn(ctx, "application error",
				"request_id", requestID,
				"error_id", appErr.ErrorID,
				"code", appErr.Code,
				"message", appErr.Message,
				"layer", appErr.Layer,
				"component", appErr.Component,
				"operation", appErr.Operation,
				"cause", appErr.Cause,
				"context", appErr.Context,
			)
		}

		// Send JSON response
		if err := c.JSON(status, response); err != nil {
			log.ErrorContext(ctx, "failed to send error response",
				"request_id", requestID,
				"error", err,
			)
		}
	}
}
