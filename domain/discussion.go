package domain

import "time"

// TagSource marks where a digest tag came from.
type TagSource int

const (
	// TagSourceCommitfest tags come from the commitfest patch tracker.
	TagSourceCommitfest TagSource = iota
	// TagSourceAI tags were assigned by the model and validated against the whitelist.
	TagSourceAI
)

func (s TagSource) String() string {
	switch s {
	case TagSourceCommitfest:
		return "commitfest"
	case TagSourceAI:
		return "ai"
	default:
		return "unknown"
	}
}

// Tag is a named label attached to a discussion.
type Tag struct {
	Color  *string   `json:"color,omitempty"`
	Name   string    `json:"name"`
	Source TagSource `json:"-"`
}

// Discussion is a cluster of mail threads sharing an exact subject within a window.
type Discussion struct {
	FirstPostAt      time.Time     `json:"first_post_at"`
	LastPostAt       time.Time     `json:"last_post_at"`
	Subject          string        `json:"subject"`
	ThreadID         string        `json:"thread_id"`
	ThreadIDs        []string      `json:"thread_ids"`
	CommitfestTags   []Tag         `json:"commitfest_tags"`
	AITags           []string      `json:"ai_tags"`
	Threads          []*MailThread `json:"-"`
	PostCount        int           `json:"post_count"`
	ParticipantCount int           `json:"participants"`
}

// LatestThread returns the most recent constituent thread, or nil.
func (d *Discussion) LatestThread() *MailThread {
	if len(d.Threads) == 0 {
		return nil
	}
	return d.Threads[len(d.Threads)-1]
}

// AggregationResult is the ranked candidate set plus window totals.
type AggregationResult struct {
	Window            DateWindow
	Discussions       []*Discussion
	TotalPosts        int
	TotalParticipants int
}
