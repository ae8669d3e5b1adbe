package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	t.Run("should accept every known stage", func(t *testing.T) {
		for _, name := range []string{
			"fetch-threads", "fetch-content", "generate-summary", "send-summary",
			"commitfest-tags", "commitfest-data", "hourly-fetch", "weekly-digest", "full",
		} {
			stage, err := ParseStage(name)
			require.NoError(t, err, name)
			assert.Equal(t, PipelineStage(name), stage)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := ParseStage("Fetch-Threads")
		assert.ErrorIs(t, err, ErrInvalidStage)
	})
}

func TestPipelineStage_Steps(t *testing.T) {
	assert.Equal(t, []PipelineStage{StageFetchThreads, StageFetchContent}, StageHourlyFetch.Steps())
	assert.Equal(t, []PipelineStage{StageGenerateSummary, StageSendSummary}, StageWeeklyDigest.Steps())
	assert.Len(t, StageFull.Steps(), 4)
	assert.Equal(t, []PipelineStage{StageCommitfestData}, StageCommitfestData.Steps())
	assert.Equal(t, ProcessCommitfestSync, StageCommitfestTags.ProcessType())
	assert.Equal(t, RunSending, StageSendSummary.ActiveState())
}

func TestParseRunParams(t *testing.T) {
	tests := map[string]struct {
		start, end  string
		batch       int
		attempts    int
		wantErr     error
		wantWindow  *DateWindow
		wantBatch   int
		wantAttempt int
	}{
		"should pass knobs through without dates": {
			batch:       50,
			attempts:    2,
			wantBatch:   50,
			wantAttempt: 2,
		},
		"should make the end date inclusive": {
			start: "2025-03-01",
			end:   "2025-03-07",
			wantWindow: &DateWindow{
				Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 3, 7, 23, 59, 59, 999999999, time.UTC),
			},
		},
		"should require both bounds": {
			end:     "2025-03-07",
			wantErr: ErrInvalidDateRange,
		},
		"should reject a reversed range": {
			start:   "2025-03-08",
			end:     "2025-03-07",
			wantErr: ErrInvalidDateRange,
		},
		"should reject a bad layout": {
			start:   "2025/03/01",
			end:     "2025-03-07",
			wantErr: ErrInvalidDateRange,
		},
		"should reject negative attempts": {
			attempts: -3,
			wantErr:  ErrValidation,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			params, err := ParseRunParams(tc.start, tc.end, tc.batch, tc.attempts)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantWindow, params.Window)
			assert.Equal(t, tc.wantBatch, params.BatchSize)
			assert.Equal(t, tc.wantAttempt, params.MaxAttempts)
		})
	}
}
