package driver

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	logger "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/logger"
)

const (
	queryDurationThreshold = 100 * time.Millisecond
)

type queryStartKey struct{}

// QueryTracer logs statements slower than queryDurationThreshold.
type QueryTracer struct {
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, time.Now())
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	queryStart, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}

	duration := time.Since(queryStart)
	if duration > queryDurationThreshold {
		logger.Logger.InfoContext(ctx, "slow query executed",
			"duration_ms", duration.Milliseconds(),
			"command", data.CommandTag.String(),
			"error", data.Err)
	}
}
