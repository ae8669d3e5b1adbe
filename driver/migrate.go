package driver

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationNames lists the embedded migration files in apply order.
func MigrationNames() ([]string, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ApplyMigrations runs every embedded migration. The statements are written to
// be idempotent, so re-running is safe.
func ApplyMigrations(ctx context.Context, db PgxIface) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	names, err := MigrationNames()
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, name := range names {
		script, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(script)); err != nil {
			logger.Logger.ErrorContext(ctx, "Migration failed", "migration", name, "error", err)
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		logger.Logger.InfoContext(ctx, "Migration applied", "migration", name)
	}

	return nil
}
