package pg

import (
	"context"
	"strings"

	"devsolutions/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement through root regardless of the process level,
// since it is only installed when SQL logging was asked for
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow || ev.Err != nil {
		evt = z.log.Warn()
	}
	evt.Ctx(ctx).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("args", argCount(ev.Args)).
		Err(ev.Err).
		Msg("pg query")
}

// argCount avoids logging bound values, which carry submitter data
func argCount(a any) int {
	if s, ok := a.([]any); ok {
		return len(s)
	}
	return 0
}

// compact collapses runs of whitespace into one space
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
