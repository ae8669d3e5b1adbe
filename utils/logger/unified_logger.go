// ABOUTME: This file provides the slog-based unified logger used by every component
// ABOUTME: Emits JSON with lowercase levels and service/version attributes, optionally bridged to OTel
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const serviceVersion = "1.0.0"

// UnifiedLogger wraps a JSON slog logger pre-configured with service attributes.
type UnifiedLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewUnifiedLogger creates a UnifiedLogger writing JSON to output.
// When enableOTel is set, records are also sent through the otelslog bridge.
func NewUnifiedLogger(output io.Writer, serviceName, level string, enableOTel bool) *UnifiedLogger {
	slogLevel := ParseLevel(level)

	options := &slog.HandlerOptions{
		Level:       slogLevel,
		AddSource:   false,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler = traceHandler{next: slog.NewJSONHandler(output, options)}
	if enableOTel {
		handler = withOTelBridge(handler, serviceName)
	}

	logger := slog.New(handler).With("service", serviceName, "version", serviceVersion)

	return &UnifiedLogger{
		logger:      logger,
		serviceName: serviceName,
	}
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		// log shippers match on lowercase levels
		if level, ok := a.Value.Any().(slog.Level); ok {
			return slog.Attr{Key: "level", Value: slog.StringValue(strings.ToLower(level.String()))}
		}
	}
	return a
}

// Logger returns the underlying slog logger.
func (ul *UnifiedLogger) Logger() *slog.Logger {
	return ul.logger
}

// WithContext creates a logger carrying the request, trace, operation and run ids found in ctx.
func (ul *UnifiedLogger) WithContext(ctx context.Context) *slog.Logger {
	fields := contextFields(ctx)
	if len(fields) > 0 {
		return ul.logger.With(fields...)
	}
	return ul.logger
}

// With returns a logger with additional attributes
func (ul *UnifiedLogger) With(args ...any) *UnifiedLogger {
	return &UnifiedLogger{
		logger:      ul.logger.With(args...),
		serviceName: ul.serviceName,
	}
}

func contextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range []ContextKey{RequestIDKey, TraceIDKey, OperationKey, RunIDKey} {
		if v := ctx.Value(key); v != nil {
			fields = append(fields, string(key), v)
		}
	}
	return fields
}
