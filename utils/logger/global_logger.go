package logger

import (
	"log/slog"
	"os"
)

// Logger is the process-wide logger used by package-level driver functions.
var Logger *slog.Logger

// init installs a stderr logger so tests can use Logger before bootstrap replaces it.
func init() {
	if Logger == nil {
		Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}

// SetGlobal replaces Logger and the slog default.
func SetGlobal(l *slog.Logger) {
	Logger = l
	slog.SetDefault(l)
}
