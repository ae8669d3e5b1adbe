package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

func TestUpsertCommitfestTag(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tag := domain.CommitfestTag{ID: 3, Name: "Performance", Color: strPtr("#ff0000")}
	mock.ExpectExec(`INSERT INTO commitfest_tags`).
		WithArgs(3, "Performance", tag.Color, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, UpsertCommitfestTag(context.Background(), mock, tag))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCommitfestPatch(t *testing.T) {
	patch := &domain.CommitfestPatch{
		ID:     4711,
		Title:  "Add index prefetching",
		Status: "Needs review",
		URL:    "https://commitfest.postgresql.org/patch/4711/",
		Tags:   []string{"Performance"},
		MailThreads: []domain.CommitfestMailThread{{
			URL:               "https://www.postgresql.org/message-id/flat/abc@example.org",
			Subject:           "Re: Add index prefetching",
			SubjectNormalized: "add index prefetching",
		}},
	}

	t.Run("should write patch, tags and thread links in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO commitfest_patches`).
			WithArgs(4711, patch.URL, patch.Title, patch.Status, "", patch.CreatedAt, patch.LastModified).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`DELETE FROM commitfest_patch_tags`).
			WithArgs(4711).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`INSERT INTO commitfest_patch_tags`).
			WithArgs(4711, "Performance").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectQuery(`INSERT INTO commitfest_mail_threads`).
			WithArgs(patch.MailThreads[0].URL, patch.MailThreads[0].Subject, "add index prefetching").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("mt-1"))
		mock.ExpectExec(`INSERT INTO commitfest_patch_mail_threads`).
			WithArgs(4711, "mt-1").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		linked, err := UpsertCommitfestPatch(context.Background(), mock, patch)

		require.NoError(t, err)
		assert.Equal(t, 1, linked)
	})

	t.Run("should roll back when the patch insert fails", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO commitfest_patches`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		_, err = UpsertCommitfestPatch(context.Background(), mock, patch)

		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindTagsBySubject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE\s+mt\.subject_normalized = \$1`).
		WithArgs("add index prefetching").
		WillReturnRows(pgxmock.NewRows([]string{"tag_name", "color"}).
			AddRow("Performance", strPtr("#ff0000")).
			AddRow("Planner", (*string)(nil)))

	tags, err := FindTagsBySubject(context.Background(), mock, "add index prefetching")

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Performance", tags[0].Name)
	assert.Equal(t, "#ff0000", *tags[0].Color)
	assert.Equal(t, domain.TagSourceCommitfest, tags[0].Source)
	assert.Nil(t, tags[1].Color)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCommitfestTagNames(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT name FROM commitfest_tags ORDER BY name`).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Bug Fix").AddRow("Performance"))

	names, err := ListCommitfestTagNames(context.Background(), mock)

	require.NoError(t, err)
	assert.Equal(t, []string{"Bug Fix", "Performance"}, names)
}

func TestListActiveSubscribers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE\s+is_active = TRUE AND confirmation_status = 'confirmed'`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email"}).
			AddRow("s1", "a@example.org").
			AddRow("s2", "b@example.org"))

	subscribers, err := ListActiveSubscribers(context.Background(), mock)

	require.NoError(t, err)
	assert.Equal(t, []domain.Subscriber{{ID: "s1", Email: "a@example.org"}, {ID: "s2", Email: "b@example.org"}}, subscribers)
}

func TestProcessingLogs(t *testing.T) {
	t.Run("should insert an audit row with its run id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		runID := "9f1b7c7e-0000-4000-8000-000000000000"
		entry := &domain.ProcessingLog{
			RunID:       &runID,
			ProcessType: domain.ProcessThreadFetch,
			Status:      domain.LogStatusInProgress,
			Message:     "fetch-threads started",
		}
		created := entry.CreatedAt
		mock.ExpectQuery(`INSERT INTO processing_logs`).
			WithArgs(&runID, domain.ProcessThreadFetch, domain.LogStatusInProgress, "fetch-threads started",
				pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("log-1", created))

		require.NoError(t, InsertProcessingLog(context.Background(), mock, entry))
		assert.Equal(t, "log-1", entry.ID)
	})

	t.Run("should list a run's rows in order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		runID := "run-1"
		rows := pgxmock.NewRows([]string{"id", "run_id", "process_type", "status", "message", "started_at", "completed_at", "created_at"})
		for i, status := range []string{domain.LogStatusInProgress, domain.LogStatusSuccess} {
			var entry domain.ProcessingLog
			rows.AddRow([]string{"l1", "l2"}[i], &runID, domain.ProcessThreadFetch, status, "", entry.StartedAt, entry.CompletedAt, entry.CreatedAt)
		}
		mock.ExpectQuery(`WHERE\s+run_id = \$1`).
			WithArgs(runID).
			WillReturnRows(rows)

		entries, err := ListProcessingLogsByRunID(context.Background(), mock, runID)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.LogStatusSuccess, entries[1].Status)
		assert.Equal(t, runID, *entries[0].RunID)
	})
}

func TestInsertThreadContent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	content := &domain.MailThreadContent{
		ThreadRef: "thread-1",
		MessageID: "abc@example.org",
		Subject:   "Patch",
		Body:      "hello",
	}
	mock.ExpectExec(`ON CONFLICT \(thread_ref\) DO NOTHING`).
		WithArgs("thread-1", "abc@example.org", "Patch", (*string)(nil), "hello", content.PostedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, InsertThreadContent(context.Background(), mock, content))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMigrations(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_init.sql", names[0])

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS mail_threads`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, ApplyMigrations(context.Background(), mock))
	require.NoError(t, mock.ExpectationsWereMet())
}
