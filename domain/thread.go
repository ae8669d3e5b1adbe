package domain

import (
	"time"
)

// UnknownSubject is the literal subject used when no extraction strategy matched.
const UnknownSubject = "Unknown Subject"

// UnknownAuthor is the participant identity used when neither name nor email is known.
const UnknownAuthor = "Unknown"

// RawMessageLink is a message anchor found on a monthly archive index page.
type RawMessageLink struct {
	URL         string
	SubjectText string
	Offset      int
}

// MailThread is one archived message, keyed by its source URL.
type MailThread struct {
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
	PostDate        time.Time `db:"post_date" json:"post_date"`
	LastActivity    time.Time `db:"last_activity" json:"last_activity"`
	RedirectSlug    *string   `db:"redirect_slug" json:"redirect_slug,omitempty"`
	AuthorName      *string   `db:"author_name" json:"author_name,omitempty"`
	AuthorEmail     *string   `db:"author_email" json:"author_email,omitempty"`
	ID              string    `db:"id" json:"id"`
	ThreadURL       string    `db:"thread_url" json:"thread_url"`
	Subject         string    `db:"subject" json:"subject"`
	ThreadID        string    `db:"thread_id" json:"thread_id"`
	FirstMessageURL string    `db:"first_message_url" json:"first_message_url"`
	MessageCount    int       `db:"message_count" json:"message_count"`
	IsProcessed     bool      `db:"is_processed" json:"is_processed"`

	// Content is joined in for summarization; nil when not yet extracted.
	Content *MailThreadContent `db:"-" json:"-"`
}

// Participant returns the identity used for participant counting:
// author name, then author email, then "Unknown".
func (t *MailThread) Participant() string {
	if t.AuthorName != nil && *t.AuthorName != "" {
		return *t.AuthorName
	}
	if t.AuthorEmail != nil && *t.AuthorEmail != "" {
		return *t.AuthorEmail
	}
	return UnknownAuthor
}

// MailThreadContent is the extracted body of a MailThread. Immutable once stored.
type MailThreadContent struct {
	PostedAt    time.Time `db:"posted_at" json:"posted_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	AuthorEmail *string   `db:"author_email" json:"author_email,omitempty"`
	ThreadRef   string    `db:"thread_ref" json:"thread_ref"`
	MessageID   string    `db:"message_id" json:"message_id"`
	Subject     string    `db:"subject" json:"subject"`
	Body        string    `db:"body" json:"body"`
}

// ExtractedMessage is the result of parsing one message detail page.
type ExtractedMessage struct {
	PostedAt    time.Time
	AuthorName  *string
	AuthorEmail *string
	MessageID   string
	Subject     string
	Body        string

	// Degraded lists the fields that fell back to a default value.
	Degraded []string
}

// IsEmpty reports whether no strategy produced anything usable.
func (m *ExtractedMessage) IsEmpty() bool {
	return m.Subject == UnknownSubject && m.Body == "" && m.AuthorName == nil && m.AuthorEmail == nil
}
