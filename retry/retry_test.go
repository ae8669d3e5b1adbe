package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

var (
	errArchive503 = errors.New("archive returned 503")
	errBadRequest = errors.New("llm rejected the prompt")
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func onlyArchive503(err error) bool { return errors.Is(err, errArchive503) }

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:   attempts,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2,
		JitterFactor:  0.1,
	}
}

// failTimes returns an operation that fails with err n times and then succeeds.
func failTimes(n int, err error, calls *int) func() error {
	return func() error {
		*calls++
		if *calls <= n {
			return err
		}
		return nil
	}
}

func TestRetrier_Do(t *testing.T) {
	tests := map[string]struct {
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		"should return at once on success": {
			wantCalls: 1,
		},
		"should retry a transient failure": {
			failures:  2,
			err:       errArchive503,
			wantCalls: 3,
		},
		"should give up after max attempts": {
			failures:  10,
			err:       errArchive503,
			wantCalls: 3,
			wantErr:   true,
		},
		"should not retry a permanent failure": {
			failures:  10,
			err:       errBadRequest,
			wantCalls: 1,
			wantErr:   true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			calls := 0
			r := NewRetrier(fastConfig(3), onlyArchive503, testLogger())

			err := r.Do(context.Background(), failTimes(tc.failures, tc.err, &calls))

			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRetrier_Do_Context(t *testing.T) {
	slow := RetryConfig{
		MaxAttempts:   10,
		BaseDelay:     time.Second,
		MaxDelay:      time.Second,
		BackoffFactor: 1,
	}

	t.Run("should stop waiting when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)

		calls := 0
		start := time.Now()
		err := NewRetrier(slow, onlyArchive503, testLogger()).Do(ctx, failTimes(10, errArchive503, &calls))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("should surface a deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		calls := 0
		err := NewRetrier(slow, onlyArchive503, testLogger()).Do(ctx, failTimes(10, errArchive503, &calls))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "retry cancelled")
	})
}

func TestRetrier_CalculateDelay(t *testing.T) {
	r := NewRetrier(RetryConfig{
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2,
		JitterFactor:  0.2,
	}, nil, testLogger())

	tests := map[string]struct {
		attempt int
		base    time.Duration
	}{
		"should start at the base delay": {attempt: 1, base: 100 * time.Millisecond},
		"should double each attempt":     {attempt: 3, base: 400 * time.Millisecond},
		"should cap at the max delay":    {attempt: 12, base: time.Second},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := r.calculateDelay(tc.attempt)
			assert.InDelta(t, float64(tc.base), float64(got), float64(tc.base)/10)
		})
	}
}

func TestNewRetrier(t *testing.T) {
	t.Run("should run at least once with an empty config", func(t *testing.T) {
		calls := 0
		err := NewRetrier(RetryConfig{}, nil, nil).Do(context.Background(), failTimes(5, errArchive503, &calls))

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should treat a nil classifier as never retry", func(t *testing.T) {
		calls := 0
		err := NewRetrier(fastConfig(5), nil, testLogger()).Do(context.Background(), failTimes(5, errArchive503, &calls))

		assert.ErrorIs(t, err, errArchive503)
		assert.Contains(t, err.Error(), "non-retryable")
		assert.Equal(t, 1, calls)
	})
}

func TestFromConfig(t *testing.T) {
	got := FromConfig(config.RetryConfig{
		MaxAttempts:   5,
		BaseDelay:     2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 1.5,
		JitterFactor:  0.2,
	})

	assert.Equal(t, RetryConfig{
		MaxAttempts:   5,
		BaseDelay:     2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 1.5,
		JitterFactor:  0.2,
	}, got)
}
