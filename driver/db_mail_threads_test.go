package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

var threadColumns = []string{
	"id", "thread_url", "subject", "post_date", "thread_id", "message_count",
	"redirect_slug", "is_processed", "author_name", "author_email",
	"first_message_url", "last_activity", "created_at", "updated_at",
}

func strPtr(s string) *string { return &s }

func sampleThread() *domain.MailThread {
	posted := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	url := "https://www.postgrespro.com/list/id/abc@example.org"
	return &domain.MailThread{
		ThreadURL:       url,
		Subject:         "Add index prefetching",
		PostDate:        posted,
		ThreadID:        "2025-03-05-1430-0",
		MessageCount:    1,
		RedirectSlug:    strPtr(domain.RedirectSlug(url)),
		FirstMessageURL: url,
		LastActivity:    posted,
	}
}

func TestUpsertMailThread(t *testing.T) {
	t.Run("should report a fresh insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		thread := sampleThread()
		mock.ExpectQuery(`INSERT INTO mail_threads`).
			WithArgs(thread.ThreadURL, thread.Subject, thread.PostDate, thread.ThreadID,
				thread.MessageCount, thread.RedirectSlug, thread.FirstMessageURL, thread.LastActivity).
			WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow("thread-1", true))

		inserted, err := UpsertMailThread(context.Background(), mock, thread)

		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, "thread-1", thread.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should report an update for an existing URL", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`ON CONFLICT \(thread_url\) DO UPDATE SET`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow("thread-1", false))

		inserted, err := UpsertMailThread(context.Background(), mock, sampleThread())

		require.NoError(t, err)
		assert.False(t, inserted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should retry when the connection is busy", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO mail_threads`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("conn busy"))
		mock.ExpectQuery(`INSERT INTO mail_threads`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow("thread-1", true))

		inserted, err := UpsertMailThread(context.Background(), mock, sampleThread())

		require.NoError(t, err)
		assert.True(t, inserted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should return error when db is nil", func(t *testing.T) {
		_, err := UpsertMailThread(context.Background(), nil, sampleThread())
		require.Error(t, err)
		assert.Equal(t, "database connection is nil", err.Error())
	})
}

func TestListUnprocessedThreads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	rows := pgxmock.NewRows(threadColumns).
		AddRow("t2", "https://example.org/list/id/2", "Second", now, "2025-03-05-1430-1", 1,
			strPtr("slug2"), false, (*string)(nil), (*string)(nil), "https://example.org/list/id/2", now, now, now).
		AddRow("t1", "https://example.org/list/id/1", "First", now.Add(-time.Hour), "2025-03-05-1330-0", 1,
			(*string)(nil), false, (*string)(nil), (*string)(nil), "https://example.org/list/id/1", now, now, now)

	mock.ExpectQuery(`WHERE\s+t\.is_processed = FALSE\s+ORDER\s+BY t\.post_date DESC`).
		WithArgs(100).
		WillReturnRows(rows)

	threads, err := ListUnprocessedThreads(context.Background(), mock, 100)

	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, "t2", threads[0].ID)
	assert.Equal(t, "slug2", *threads[0].RedirectSlug)
	assert.Nil(t, threads[1].RedirectSlug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnprocessedThreads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM mail_threads WHERE is_processed = FALSE`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	count, err := CountUnprocessedThreads(context.Background(), mock)

	require.NoError(t, err)
	assert.Equal(t, 42, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkThreadProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE mail_threads SET is_processed = TRUE`).
		WithArgs("thread-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, MarkThreadProcessed(context.Background(), mock, "thread-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateThreadAfterExtraction(t *testing.T) {
	t.Run("should keep the scraped subject when none is given", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		name := strPtr("Tom Lane")
		email := strPtr("tgl@sss.pgh.pa.us")
		mock.ExpectExec(`subject = COALESCE\(\$2, subject\)`).
			WithArgs("thread-1", (*string)(nil), name, email).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = UpdateThreadAfterExtraction(context.Background(), mock, "thread-1", nil, name, email)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should wrap exec failures", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE mail_threads SET`).
			WithArgs("thread-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("deadlock detected"))

		err = UpdateThreadAfterExtraction(context.Background(), mock, "thread-1", strPtr("Subject"), nil, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadlock detected")
	})
}

func TestListThreadsInWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC)
	posted := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	columns := append(append([]string{}, threadColumns...),
		"message_id", "content_subject", "content_email", "body", "posted_at")
	rows := pgxmock.NewRows(columns).
		AddRow("t1", "https://example.org/list/id/1", "Patch", posted, "2025-03-03-0900-0", 1,
			(*string)(nil), true, strPtr("Alice"), strPtr("alice@example.org"),
			"https://example.org/list/id/1", posted, posted, posted,
			strPtr("1@example.org"), strPtr("Patch"), strPtr("alice@example.org"), strPtr("body text"), &posted).
		AddRow("t2", "https://example.org/list/id/2", "Patch", posted.Add(time.Hour), "2025-03-03-1000-1", 1,
			(*string)(nil), false, (*string)(nil), (*string)(nil),
			"https://example.org/list/id/2", posted, posted, posted,
			(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*time.Time)(nil))

	mock.ExpectQuery(`LEFT\s+JOIN mail_thread_contents c ON c\.thread_ref = t\.id`).
		WithArgs(start, end).
		WillReturnRows(rows)

	threads, err := ListThreadsInWindow(context.Background(), mock, start, end)

	require.NoError(t, err)
	require.Len(t, threads, 2)
	require.NotNil(t, threads[0].Content)
	assert.Equal(t, "body text", threads[0].Content.Body)
	assert.Equal(t, "t1", threads[0].Content.ThreadRef)
	assert.Equal(t, posted, threads[0].Content.PostedAt)
	assert.Nil(t, threads[1].Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindThreadURLBySlug(t *testing.T) {
	t.Run("should resolve a known slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT thread_url FROM mail_threads WHERE redirect_slug = \$1`).
			WithArgs("abc123xyz0").
			WillReturnRows(pgxmock.NewRows([]string{"thread_url"}).AddRow("https://example.org/list/id/1"))

		target, err := FindThreadURLBySlug(context.Background(), mock, "abc123xyz0")

		require.NoError(t, err)
		assert.Equal(t, "https://example.org/list/id/1", target)
	})

	t.Run("should return ErrNotFound for unknown slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT thread_url FROM mail_threads`).
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows([]string{"thread_url"}))

		_, err = FindThreadURLBySlug(context.Background(), mock, "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
