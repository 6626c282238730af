package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type queryStartKey struct{}

type queryStart struct {
	sql  string
	time time.Time
}

const slowQuery = 100 * time.Millisecond

// queryTracer implements pgx.QueryTracer on a zerolog logger.
type queryTracer struct {
	logger zerolog.Logger
}

func newQueryTracer(logger zerolog.Logger) *queryTracer {
	return &queryTracer{logger: logger}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, time: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		start.time = time.Now()
	}
	duration := time.Since(start.time)

	var event *zerolog.Event
	switch {
	case data.Err != nil:
		event = t.logger.Error().Err(data.Err)
	case duration > slowQuery:
		event = t.logger.Warn()
	default:
		event = t.logger.Debug()
	}
	event.
		Str("sql", start.sql).
		Int64("duration_ms", duration.Milliseconds()).
		Str("command_tag", data.CommandTag.String()).
		Msg("query executed")
}
