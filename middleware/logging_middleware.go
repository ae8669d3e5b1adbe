// ABOUTME: This file provides HTTP request/response logging middleware
// ABOUTME: Writes one access log line per request with timing and context information
package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// LoggingMiddleware logs completed requests. Paths in skip are not logged.
func LoggingMiddleware(contextLogger *logger.ContextLogger, skip ...string) echo.MiddlewareFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if _, ok := skipped[req.URL.Path]; ok {
				return next(c)
			}

			start := time.Now()

			ctx := logger.WithOperation(req.Context(), req.Method+" "+c.Path())
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				// let the error handler write the status before logging it
				c.Error(err)
			}

			res := c.Response()
			contextLogger.WithContext(ctx).Info("request completed",
				"log_type", "access",
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", res.Status,
				"response_size", res.Size,
				"ip_address", c.RealIP(),
				"user_agent", req.UserAgent(),
				"fields.duration_ms", time.Since(start).Milliseconds(),
			)

			return nil
		}
	}
}
