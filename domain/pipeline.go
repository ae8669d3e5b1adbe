package domain

import (
	"fmt"
	"strings"
	"time"
)

// PipelineStage names a unit of pipeline work that can be triggered on its own.
type PipelineStage string

const (
	StageFetchThreads    PipelineStage = "fetch-threads"
	StageFetchContent    PipelineStage = "fetch-content"
	StageGenerateSummary PipelineStage = "generate-summary"
	StageSendSummary     PipelineStage = "send-summary"
	StageCommitfestTags  PipelineStage = "commitfest-tags"
	StageCommitfestData  PipelineStage = "commitfest-data"
	StageHourlyFetch     PipelineStage = "hourly-fetch"
	StageWeeklyDigest    PipelineStage = "weekly-digest"
	StageFull            PipelineStage = "full"
)

// ParseStage validates a stage name from a request.
func ParseStage(name string) (PipelineStage, error) {
	switch s := PipelineStage(name); s {
	case StageFetchThreads, StageFetchContent, StageGenerateSummary, StageSendSummary,
		StageCommitfestTags, StageCommitfestData, StageHourlyFetch, StageWeeklyDigest, StageFull:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, name)
	}
}

// ParseRunParams validates trigger knobs. A date range needs both bounds in
// DateLayout; the end date is inclusive.
func ParseRunParams(startDate, endDate string, batchSize, maxAttempts int) (RunParams, error) {
	if batchSize < 0 || maxAttempts < 0 {
		return RunParams{}, fmt.Errorf("%w: batch_size and max_attempts must not be negative", ErrValidation)
	}
	params := RunParams{BatchSize: batchSize, MaxAttempts: maxAttempts}

	start := strings.TrimSpace(startDate)
	end := strings.TrimSpace(endDate)
	if start == "" && end == "" {
		return params, nil
	}
	if start == "" || end == "" {
		return RunParams{}, fmt.Errorf("%w: start_date and end_date must be given together", ErrInvalidDateRange)
	}

	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return RunParams{}, fmt.Errorf("%w: start_date %q", ErrInvalidDateRange, start)
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return RunParams{}, fmt.Errorf("%w: end_date %q", ErrInvalidDateRange, end)
	}

	window, err := NewDateWindow(from, to)
	if err != nil {
		return RunParams{}, err
	}
	window = window.EndOfDay()
	params.Window = &window
	return params, nil
}

// Steps expands composite stages into the ordered single stages they run.
func (s PipelineStage) Steps() []PipelineStage {
	switch s {
	case StageHourlyFetch:
		return []PipelineStage{StageFetchThreads, StageFetchContent}
	case StageWeeklyDigest:
		return []PipelineStage{StageGenerateSummary, StageSendSummary}
	case StageFull:
		return []PipelineStage{StageFetchThreads, StageFetchContent, StageGenerateSummary, StageSendSummary}
	default:
		return []PipelineStage{s}
	}
}

// RunState is the observable state of a pipeline run.
type RunState string

const (
	RunNotStarted      RunState = "not-started"
	RunFetching        RunState = "fetching"
	RunContentFetching RunState = "content-fetching"
	RunSummarizing     RunState = "summarizing"
	RunSending         RunState = "sending"
	RunSyncing         RunState = "syncing"
	RunCompleted       RunState = "completed"
	RunFailed          RunState = "failed"
)

// ActiveState maps a stage to the state a run is in while executing it.
func (s PipelineStage) ActiveState() RunState {
	switch s {
	case StageFetchThreads:
		return RunFetching
	case StageFetchContent:
		return RunContentFetching
	case StageGenerateSummary:
		return RunSummarizing
	case StageSendSummary:
		return RunSending
	case StageCommitfestTags, StageCommitfestData:
		return RunSyncing
	default:
		return RunNotStarted
	}
}

// ProcessType is the audit-log category written for a stage.
func (s PipelineStage) ProcessType() string {
	switch s {
	case StageFetchThreads:
		return ProcessThreadFetch
	case StageFetchContent:
		return ProcessContentFetch
	case StageGenerateSummary:
		return ProcessSummaryGeneration
	case StageSendSummary:
		return ProcessEmailSend
	case StageCommitfestTags, StageCommitfestData:
		return ProcessCommitfestSync
	default:
		return ProcessPipelineRun
	}
}

// Audit log process types
const (
	ProcessThreadFetch       = "thread_fetch"
	ProcessContentFetch      = "content_fetch"
	ProcessSummaryGeneration = "summary_generation"
	ProcessEmailSend         = "email_send"
	ProcessCommitfestSync    = "commitfest_sync"
	ProcessPipelineRun       = "pipeline_run"
)

// Audit log statuses
const (
	LogStatusInProgress = "in_progress"
	LogStatusSuccess    = "success"
	LogStatusError      = "error"
)

// ProcessingLog is one append-only audit row.
type ProcessingLog struct {
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	RunID       *string    `db:"run_id" json:"run_id,omitempty"`
	ID          string     `db:"id" json:"id"`
	ProcessType string     `db:"process_type" json:"process_type"`
	Status      string     `db:"status" json:"status"`
	Message     string     `db:"message" json:"message"`
}
