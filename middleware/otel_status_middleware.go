// ABOUTME: This file provides OpenTelemetry span status middleware
// ABOUTME: Sets span status from HTTP response codes and tags pipeline trigger spans with their stage
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelStatusMiddleware sets span status and HTTP attributes based on response.
// Only 5xx responses mark the span as an error; client errors stay Unset.
//
// This middleware should be used AFTER otelecho.Middleware which creates the span.
func OTelStatusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.SpanContext().IsValid() {
				return err
			}

			status := c.Response().Status
			if err != nil {
				// the error handler has not run yet
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if stage := c.Param("stage"); stage != "" {
				span.SetAttributes(attribute.String("pipeline.stage", stage))
			}

			if status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(status))
				if err != nil {
					span.RecordError(err)
				}
			}

			return err
		}
	}
}
