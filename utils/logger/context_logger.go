// ABOUTME: This file provides context-aware structured logging
// ABOUTME: Propagates request, trace, operation and pipeline run ids into log records
package logger

import (
	"context"
	"io"
	"log/slog"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	TraceIDKey   ContextKey = "trace_id"
	OperationKey ContextKey = "operation"
	RunIDKey     ContextKey = "run_id"
)

type ContextLogger struct {
	unified *UnifiedLogger
}

// NewContextLogger builds a ContextLogger from configuration.
func NewContextLogger(output io.Writer, config *Config, enableOTel bool) *ContextLogger {
	return &ContextLogger{
		unified: NewUnifiedLogger(output, config.ServiceName, config.Level, enableOTel),
	}
}

// Logger returns the base logger without context fields.
func (cl *ContextLogger) Logger() *slog.Logger {
	return cl.unified.Logger()
}

func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	return cl.unified.WithContext(ctx)
}

// Context helper functions
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// RunIDFromContext returns the pipeline run id stored in ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}
