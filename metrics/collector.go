// Package metrics provides Prometheus metrics for the digest pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "digest"

// Collector owns a registry so tests and multiple servers do not share global state.
type Collector struct {
	registry *prometheus.Registry

	// StageRuns counts pipeline stage executions.
	StageRuns *prometheus.CounterVec
	// StageDuration measures stage duration.
	StageDuration *prometheus.HistogramVec
	// PagesFetched counts archive and commitfest page fetches.
	PagesFetched *prometheus.CounterVec
	// LLMCalls counts chat completions by outcome.
	LLMCalls *prometheus.CounterVec
	// LLMTokens counts prompt and completion tokens.
	LLMTokens *prometheus.CounterVec
	// TokensTruncated counts transcript tokens dropped by the ceiling.
	TokensTruncated prometheus.Counter
	// EmailsSent counts delivery attempts by outcome.
	EmailsSent *prometheus.CounterVec
}

// NewCollector registers every pipeline metric plus the Go and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		StageRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_runs_total",
				Help:      "Total number of pipeline stage runs",
			},
			[]string{"stage", "status"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages in seconds",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
			},
			[]string{"stage"},
		),
		PagesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_fetched_total",
				Help:      "Total number of fetched pages",
			},
			[]string{"kind", "status"},
		),
		LLMCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Total number of LLM chat completions",
			},
			[]string{"status"},
		),
		LLMTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_tokens_total",
				Help:      "Tokens sent to and received from the LLM",
			},
			[]string{"direction"},
		),
		TokensTruncated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transcript_tokens_truncated_total",
				Help:      "Transcript tokens dropped to fit the prompt ceiling",
			},
		),
		EmailsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_sent_total",
				Help:      "Digest emails by delivery outcome",
			},
			[]string{"status"},
		),
	}
}

func statusLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// RecordStage records one stage execution.
func (c *Collector) RecordStage(stage string, ok bool, duration time.Duration) {
	c.StageRuns.WithLabelValues(stage, statusLabel(ok)).Inc()
	c.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// PageFetched records one page fetch of the given kind (index, message, commitfest).
func (c *Collector) PageFetched(kind string, ok bool) {
	c.PagesFetched.WithLabelValues(kind, statusLabel(ok)).Inc()
}

// LLMCall records one chat completion.
func (c *Collector) LLMCall(ok bool, promptTokens, completionTokens int) {
	c.LLMCalls.WithLabelValues(statusLabel(ok)).Inc()
	c.LLMTokens.WithLabelValues("prompt").Add(float64(promptTokens))
	c.LLMTokens.WithLabelValues("completion").Add(float64(completionTokens))
}

// TranscriptTruncated records tokens dropped from one transcript.
func (c *Collector) TranscriptTruncated(dropped int) {
	if dropped > 0 {
		c.TokensTruncated.Add(float64(dropped))
	}
}

// EmailSent records one delivery attempt.
func (c *Collector) EmailSent(ok bool) {
	c.EmailsSent.WithLabelValues(statusLabel(ok)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
