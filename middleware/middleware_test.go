package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

func TestPipelineSecret(t *testing.T) {
	tests := map[string]struct {
		secret       string
		header       string
		query        string
		expectedCode int
	}{
		"should pass everything when no secret is configured": {
			expectedCode: http.StatusOK,
		},
		"should accept the header": {
			secret:       "s3cret",
			header:       "s3cret",
			expectedCode: http.StatusOK,
		},
		"should accept the query parameter": {
			secret:       "s3cret",
			query:        "?secret=s3cret",
			expectedCode: http.StatusOK,
		},
		"should reject a wrong secret": {
			secret:       "s3cret",
			header:       "guess",
			expectedCode: http.StatusUnauthorized,
		},
		"should reject a missing secret": {
			secret:       "s3cret",
			expectedCode: http.StatusUnauthorized,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			e.POST("/pipeline", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, PipelineSecret(tc.secret))

			req := httptest.NewRequest(http.MethodPost, "/pipeline"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set(PipelineSecretHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c echo.Context) error {
		seen = logger.RequestIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	t.Run("should propagate an incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "req-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("should generate an id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("should replace an id with control characters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "req 1\tforged")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.NotEqual(t, "req 1\tforged", seen)
		assert.Len(t, seen, 36)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	contextLogger := logger.NewContextLogger(&buf, &logger.Config{Level: "info", ServiceName: "test"}, false)

	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler(contextLogger.Logger())
	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(contextLogger, "/health"))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	t.Run("should skip configured paths", func(t *testing.T) {
		buf.Reset()
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Zero(t, buf.Len())
	})

	t.Run("should log the status written by the error handler", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)

		var access map[string]any
		for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
			var entry map[string]any
			require.NoError(t, json.Unmarshal(line, &entry))
			if entry["log_type"] == "access" {
				access = entry
			}
		}
		require.NotNil(t, access)
		assert.EqualValues(t, http.StatusNotFound, access["status_code"])
		assert.Equal(t, "/missing", access["path"])
	})
}
