package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

// PgxIface is the subset of *pgxpool.Pool the driver functions use.
// pgxmock pools satisfy it in tests.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// retryDBOperation retries database operations that fail with "conn busy" errors.
func retryDBOperation(ctx context.Context, operation func() error, operationName string) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if strings.Contains(err.Error(), "conn busy") && attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<attempt)
			logger.Logger.WarnContext(ctx, "Database connection busy, retrying",
				"operation", operationName,
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}

		return err
	}

	return fmt.Errorf("operation %s failed after %d retries", operationName, maxRetries)
}

// InitDB opens the pgx pool described by cfg and verifies it with a ping.
func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	if err := ValidateSSLConfig(cfg.SSL); err != nil {
		logger.Logger.ErrorContext(ctx, "Invalid SSL configuration", "error", err)
		return nil, fmt.Errorf("invalid SSL configuration: %w", err)
	}

	logger.Logger.InfoContext(ctx, "Database configuration",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"sslmode", cfg.SSL.Mode,
		"max_conns", cfg.MaxConns,
	)

	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(cfg))
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to parse database config", "error", err)
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.ConnConfig.Tracer = &QueryTracer{}

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		logger.Logger.ErrorContext(ctx, "Failed to ping database",
			"error", err,
			"sslmode", cfg.SSL.Mode)
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.InfoContext(ctx, "Connected to database pool",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
	)

	return dbPool, nil
}

// Ping reports whether the store is reachable. Used by the health endpoint.
func Ping(ctx context.Context, db PgxIface) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.Ping(ctx)
}
