package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/wwwhero/internal/logger"
)

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// slowQueryTracer logs statements that run longer than threshold
type slowQueryTracer struct {
	threshold time.Duration
	now       func() time.Time
}

var _ pgx.QueryTracer = (*slowQueryTracer)(nil)

func (t *slowQueryTracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: t.clock()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.clock().Sub(st.start)
	if elapsed < t.threshold {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgSlowQuery,
		"sql", st.sql, "duration", elapsed, "rows", data.CommandTag.RowsAffected(), "error", data.Err)
}
