package domain

import "time"

// WeeklySummary is the persisted digest for a date range; one live row per range.
type WeeklySummary struct {
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
	WeekStartDate     time.Time     `db:"week_start_date" json:"week_start_date"`
	WeekEndDate       time.Time     `db:"week_end_date" json:"week_end_date"`
	ID                string        `db:"id" json:"id"`
	SummaryContent    string        `db:"summary_content" json:"summary_content"`
	TopDiscussions    []*Discussion `db:"top_discussions" json:"top_discussions"`
	TotalPosts        int           `db:"total_posts" json:"total_posts"`
	TotalParticipants int           `db:"total_participants" json:"total_participants"`
}

// DiscussionSummary is the validated model output for one discussion.
type DiscussionSummary struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Subscriber is a digest recipient. The subscription workflow lives elsewhere.
type Subscriber struct {
	ID    string `db:"id"`
	Email string `db:"email"`
}
