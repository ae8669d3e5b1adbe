package service

import (
	"log/slog"
	"os"
	"time"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Only errors in tests
	}))
}

func strPtr(s string) *string {
	return &s
}

func newThread(id, subject, author string, posted time.Time) *domain.MailThread {
	t := &domain.MailThread{
		ID:        id,
		ThreadURL: "https://www.postgrespro.com/list/id/" + id + "@example.com",
		Subject:   subject,
		ThreadID:  "tid-" + id,
		PostDate:  posted,
	}
	if author != "" {
		t.AuthorName = strPtr(author)
	}
	return t
}

func testWindow() domain.DateWindow {
	return domain.DateWindow{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
	}
}
