package domain

// MonthError records a monthly index page that could not be scraped.
type MonthError struct {
	Month string `json:"month"`
	Error string `json:"error"`
}

// FetchThreadsResult reports one fetch-threads run.
type FetchThreadsResult struct {
	Window         DateWindow   `json:"window"`
	MonthErrors    []MonthError `json:"month_errors,omitempty"`
	ThreadsFound   int          `json:"threads_found"`
	ThreadsStored  int          `json:"threads_stored"`
	ThreadsUpdated int          `json:"threads_updated"`
	Errors         int          `json:"errors"`
}

// ContentBatchResult reports one content extraction batch.
type ContentBatchResult struct {
	ProcessedCount int `json:"processed_count"`
	ErrorCount     int `json:"error_count"`
	BatchSize      int `json:"batch_size"`
	RemainingCount int `json:"remaining_count"`
	TotalProcessed int `json:"total_processed"`
}

// ContentLoopResult aggregates the batches run by one fetch-content stage.
type ContentLoopResult struct {
	Batches        []*ContentBatchResult `json:"batches"`
	Attempts       int                   `json:"attempts"`
	TotalProcessed int                   `json:"total_processed"`
	TotalErrors    int                   `json:"total_errors"`
	RemainingCount int                   `json:"remaining_count"`
}

// GenerateSummaryResult reports one summary generation.
type GenerateSummaryResult struct {
	Window            DateWindow `json:"window"`
	SummaryID         string     `json:"summary_id"`
	DiscussionCount   int        `json:"discussion_count"`
	TotalPosts        int        `json:"total_posts"`
	TotalParticipants int        `json:"total_participants"`
	ErrorCount        int        `json:"error_count"`
	TruncatedCount    int        `json:"truncated_count"`
}

// SendSummaryResult reports one delivery run.
type SendSummaryResult struct {
	SummaryID   string `json:"summary_id"`
	Recipients  int    `json:"recipients"`
	SentCount   int    `json:"sent_count"`
	FailedCount int    `json:"failed_count"`
}

// TagSyncResult reports a commitfest tag sync.
type TagSyncResult struct {
	TagsProcessed int `json:"tags_processed"`
	TagsSkipped   int `json:"tags_skipped"`
	Errors        int `json:"errors"`
}

// PatchSyncResult reports a commitfest patch sync.
type PatchSyncResult struct {
	PatchesProcessed int `json:"patches_processed"`
	ThreadsProcessed int `json:"threads_processed"`
	Errors           int `json:"errors"`
}

// RunParams are the optional knobs accepted by a pipeline trigger.
type RunParams struct {
	Window      *DateWindow `json:"window,omitempty"`
	BatchSize   int         `json:"batch_size,omitempty"`
	MaxAttempts int         `json:"max_attempts,omitempty"`
}

// StageResult is the outcome of one stage inside a run.
type StageResult struct {
	Result any           `json:"result,omitempty"`
	Err    error         `json:"-"`
	Stage  PipelineStage `json:"stage"`
	Error  string        `json:"error,omitempty"`
}

// RunResult is the outcome of a whole pipeline run.
type RunResult struct {
	RunID  string         `json:"run_id"`
	Stage  PipelineStage  `json:"stage"`
	State  RunState       `json:"state"`
	Stages []*StageResult `json:"stages"`
}

// Err returns the error of the stage that failed the run, if any.
func (r *RunResult) Err() error {
	for _, s := range r.Stages {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}

// RunStatus is the state of a run as derived from its audit rows.
type RunStatus struct {
	RunID string           `json:"run_id"`
	State RunState         `json:"state"`
	Logs  []*ProcessingLog `json:"logs"`
}
