package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, apperrors.SecureHTTPResponse) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/pipeline/full", nil), rec)
	e.HTTPErrorHandler(err, c)

	var body apperrors.SecureHTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestCustomHTTPErrorHandler(t *testing.T) {
	tests := map[string]struct {
		err     error
		status  int
		code    string
		message string
	}{
		"should pass a validation message through": {
			err:     apperrors.NewValidationContextError("run_id must be a UUID", "handler", "PipelineHandler", "RunStatus", nil),
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "run_id must be a UUID",
		},
		"should unwrap a wrapped app error": {
			err:     fmt.Errorf("status: %w", apperrors.NewNotFoundContextError("no such run", "handler", "PipelineHandler", "RunStatus", nil)),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND_ERROR",
			message: "no such run",
		},
		"should map an unknown stage to 400": {
			err:    fmt.Errorf("%w: %q", domain.ErrInvalidStage, "bogus"),
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		"should map a bad slug to 400": {
			err:    fmt.Errorf("%w: %q", domain.ErrInvalidSlug, "A!"),
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		"should map a missing digest to 404": {
			err:    domain.ErrSummaryNotFound,
			status: http.StatusNotFound,
			code:   "NOT_FOUND_ERROR",
		},
		"should map a missing credential to 500": {
			err:    domain.Wrap(domain.ErrConfiguration, "send-summary", "mailer", "RESEND_API_KEY is not set", nil),
			status: http.StatusInternalServerError,
			code:   "CONFIGURATION_ERROR",
		},
		"should map an archive outage to 502": {
			err:    domain.Wrap(domain.ErrFetch, "fetch-threads", "index", "503", nil),
			status: http.StatusBadGateway,
			code:   "EXTERNAL_API_ERROR",
		},
		"should map a deadline to 504": {
			err:    context.DeadlineExceeded,
			status: http.StatusGatewayTimeout,
			code:   "TIMEOUT_ERROR",
		},
		"should keep the status of an echo error": {
			err:     echo.NewHTTPError(http.StatusUnauthorized, "invalid pipeline secret"),
			status:  http.StatusUnauthorized,
			code:    "HTTP_ERROR",
			message: "invalid pipeline secret",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec, body := serveError(t, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, body.Error.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Error.Message)
			}
		})
	}
}

func TestCustomHTTPErrorHandler_HidesInternals(t *testing.T) {
	t.Run("should not leak an internal app error", func(t *testing.T) {
		rec, body := serveError(t, apperrors.NewInternalContextError("panic: nil pointer", "handler", "PipelineHandler", "Trigger", errors.New("segfault"), nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotEqual(t, "panic: nil pointer", body.Error.Message)
		assert.NotEmpty(t, body.Error.Message)
	})

	t.Run("should not leak a bare error and should hand out an error id", func(t *testing.T) {
		rec, body := serveError(t, errors.New("pool exhausted"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotEqual(t, "pool exhausted", body.Error.Message)
		assert.NotEmpty(t, body.Error.ErrorID)
	})

	t.Run("should hide the message of an echo 5xx", func(t *testing.T) {
		_, body := serveError(t, echo.NewHTTPError(http.StatusInternalServerError, "template exploded"))
		assert.NotEqual(t, "template exploded", body.Error.Message)
	})
}

func TestCustomHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Response().WriteHeader(http.StatusOK)

	e.HTTPErrorHandler(domain.ErrSummaryNotFound, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
