// ABOUTME: This file implements exponential backoff retry mechanism with jitter
// ABOUTME: Wraps archive fetches and LLM calls that may fail transiently
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

type RetryConfig struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// FromConfig converts the loaded retry block.
func FromConfig(cfg config.RetryConfig) RetryConfig {
	return RetryConfig{
		MaxAttempts:   cfg.MaxAttempts,
		BaseDelay:     cfg.BaseDelay,
		MaxDelay:      cfg.MaxDelay,
		BackoffFactor: cfg.BackoffFactor,
		JitterFactor:  cfg.JitterFactor,
	}
}

// ErrorClassifier reports whether err is worth another attempt.
type ErrorClassifier func(error) bool

type Retrier struct {
	config      RetryConfig
	isRetryable ErrorClassifier
	logger      *slog.Logger
}

// NewRetrier builds a Retrier. A nil classifier retries nothing.
func NewRetrier(config RetryConfig, classifier ErrorClassifier, logger *slog.Logger) *Retrier {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrier{
		config:      config,
		isRetryable: classifier,
		logger:      logger,
	}
}

// Do runs operation until it succeeds, returns a non-retryable error,
// exhausts MaxAttempts or ctx is done.
func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	start := time.Now()
	var waited time.Duration

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			if attempt > 1 {
				r.logger.InfoContext(ctx, "recovered after retry",
					"attempt", attempt,
					"waited_ms", waited.Milliseconds())
			}
			return nil
		}

		retryable := r.isRetryable != nil && r.isRetryable(err)
		r.logger.WarnContext(ctx, "attempt failed",
			"attempt", attempt,
			"max_attempts", r.config.MaxAttempts,
			"retryable", retryable,
			"error", err)

		if !retryable {
			return fmt.Errorf("non-retryable error on attempt %d: %w", attempt, err)
		}
		if attempt >= r.config.MaxAttempts {
			r.logger.ErrorContext(ctx, "giving up",
				"attempts", attempt,
				"elapsed_ms", time.Since(start).Milliseconds(),
				"error", err)
			return fmt.Errorf("failed after %d attempts (waited %dms): %w", attempt, waited.Milliseconds(), err)
		}

		delay := r.calculateDelay(attempt)
		if werr := sleep(ctx, delay); werr != nil {
			return fmt.Errorf("retry cancelled after %d attempts: %w", attempt, werr)
		}
		waited += delay
	}
}

// calculateDelay is BaseDelay * BackoffFactor^(attempt-1), capped at
// MaxDelay and spread by ±JitterFactor/2.
func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := math.Min(
		float64(r.config.BaseDelay)*math.Pow(r.config.BackoffFactor, float64(attempt-1)),
		float64(r.config.MaxDelay),
	)
	delay *= 1 + (rand.Float64()-0.5)*r.config.JitterFactor
	return time.Duration(delay)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
