package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CONFIG_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"serve", "run", "migrate"} {
		assert.Contains(t, out, sub)
	}
}

func TestRunCmd_Validation(t *testing.T) {
	t.Run("should reject an unknown stage before loading anything", func(t *testing.T) {
		_, _, err := execute(t, "run", "everything")
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("should require a stage", func(t *testing.T) {
		_, _, err := execute(t, "run")
		assert.Error(t, err)
	})

	t.Run("should reject a half-open window", func(t *testing.T) {
		_, _, err := execute(t, "run", "generate-summary", "--start", "2025-03-01", "--end", "")
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("should reject a negative batch size", func(t *testing.T) {
		_, _, err := execute(t, "run", "fetch-content", "--start", "", "--end", "", "--batch-size", "-1")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMigrateCmd_DryRun(t *testing.T) {
	out, errOut, err := execute(t, "migrate", "--dry-run", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "migrations/001_init.sql")
	assert.Contains(t, errOut, "dry run")
}

func TestPrinter_RunResult(t *testing.T) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	p := newPrinter(out, errOut)

	p.RunResult(&domain.RunResult{
		RunID: "run-1",
		Stage: domain.StageWeeklyDigest,
		State: domain.RunFailed,
		Stages: []*domain.StageResult{
			{Stage: domain.StageGenerateSummary, Result: &domain.GenerateSummaryResult{DiscussionCount: 5}},
			{Stage: domain.StageSendSummary, Err: errors.New("boom"), Error: "boom"},
		},
	})

	assert.Contains(t, out.String(), "Run run-1 (weekly-digest)")
	assert.Contains(t, out.String(), `"discussion_count": 5`)
	assert.Contains(t, errOut.String(), "send-summary: boom")
}
