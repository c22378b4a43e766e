package db

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type queryStartContextKey struct{}

// queryTracer logs every query at debug level with its duration. Queries
// are normalized to a single line and truncated before logging.
type queryTracer struct {
	logger *slog.Logger
}

func newQueryTracer(logger *slog.Logger) *queryTracer {
	return &queryTracer{logger: logger}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartContextKey{}, time.Now())
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	if t.logger == nil {
		return
	}

	start, _ := ctx.Value(queryStartContextKey{}).(time.Time)
	attrs := []any{
		"db.operation", queryOperation(ctx, data),
		"db.rows_affected", data.CommandTag.RowsAffected(),
	}
	if !start.IsZero() {
		attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
	}

	if data.Err != nil {
		t.logger.Debug("query failed", append(attrs, "error", data.Err)...)
		return
	}
	t.logger.Debug("query completed", attrs...)
}

func queryOperation(_ context.Context, data pgx.TraceQueryEndData) string {
	parts := strings.Fields(data.CommandTag.String())
	if len(parts) == 0 {
		return "sql"
	}
	return strings.ToUpper(parts[0])
}
