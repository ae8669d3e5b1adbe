// ABOUTME: This file tests the unified slog-based logger
// ABOUTME: Ensures lowercase levels, service attributes and context field propagation
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestUnifiedLogger_Format(t *testing.T) {
	tests := map[string]struct {
		log      func(*slog.Logger)
		expected map[string]any
	}{
		"info level with attributes": {
			log: func(l *slog.Logger) { l.Info("threads stored", "month", "2025-01", "count", 12) },
			expected: map[string]any{
				"level":   "info",
				"msg":     "threads stored",
				"month":   "2025-01",
				"count":   float64(12),
				"service": "pgsql-digest",
				"version": "1.0.0",
			},
		},
		"error level": {
			log: func(l *slog.Logger) { l.Error("fetch failed", "error", "timeout") },
			expected: map[string]any{
				"level": "error",
				"msg":   "fetch failed",
				"error": "timeout",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			ul := NewUnifiedLogger(&buf, "pgsql-digest", "debug", false)

			tc.log(ul.Logger())

			entry := decodeLine(t, &buf)
			for key, want := range tc.expected {
				assert.Equal(t, want, entry[key], key)
			}
			assert.Contains(t, entry, "time")
		})
	}
}

func TestUnifiedLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	ul := NewUnifiedLogger(&buf, "pgsql-digest", "warn", false)

	ul.Logger().Info("dropped")
	assert.Zero(t, buf.Len())

	ul.Logger().Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestContextLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(&buf, &Config{Level: "info", ServiceName: "pgsql-digest"}, false)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithOperation(ctx, "fetch-threads")
	ctx = WithRunID(ctx, "run-42")

	cl.WithContext(ctx).InfoContext(ctx, "stage started")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "fetch-threads", entry["operation"])
	assert.Equal(t, "run-42", entry["run_id"])
	assert.NotContains(t, entry, "trace_id")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "run-42", RunIDFromContext(ctx))
	assert.Empty(t, RunIDFromContext(context.Background()))
}

func TestTraceHandler(t *testing.T) {
	var buf bytes.Buffer
	ul := NewUnifiedLogger(&buf, "pgsql-digest", "info", false)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	ul.Logger().InfoContext(ctx, "traced")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
}

func TestTeeHandler(t *testing.T) {
	var all, errorsOnly bytes.Buffer
	tee := teeHandler{
		slog.NewJSONHandler(&all, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorsOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	log := slog.New(tee).With("stage", "fetch-content")

	log.Info("content stored")
	assert.Contains(t, all.String(), `"stage":"fetch-content"`)
	assert.Zero(t, errorsOnly.Len())

	log.Error("content fetch failed")
	assert.Contains(t, errorsOnly.String(), "content fetch failed")
	assert.True(t, tee.Enabled(context.Background(), slog.LevelDebug))
}
