package domain

import "time"

// CommitfestTag is a category label from the commitfest patch tracker.
type CommitfestTag struct {
	Color       *string `db:"color" json:"color,omitempty"`
	Description *string `db:"description" json:"description,omitempty"`
	Name        string  `db:"name" json:"name"`
	ID          int     `db:"id" json:"id"`
}

// CommitfestPatch is one patch entry scraped from the commitfest app.
type CommitfestPatch struct {
	CreatedAt    *time.Time
	LastModified *time.Time
	Title        string
	Status       string
	Author       string
	URL          string
	Tags         []string
	MailThreads  []CommitfestMailThread
	ID           int
}

// CommitfestMailThread is a mailing-list thread referenced by a patch.
type CommitfestMailThread struct {
	URL               string
	Subject           string
	SubjectNormalized string
}
