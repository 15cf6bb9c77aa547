package pg

import (
	"context"
	"strings"

	"juryduty/internal/platform/logger"
	pnet "juryduty/internal/platform/net"

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

// QueryTracer receives statement events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement regardless of the root level
// slow statements are warnings
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	ev2 := z.log.Info()
	if ev.Slow {
		ev2 = z.log.Warn()
	}
	if ev.Err != nil {
		ev2 = z.log.Error().Err(ev.Err)
	}
	if reqID := pnet.RequestID(ctx); reqID != "" {
		ev2 = ev2.Str("request_id", reqID)
	}
	ev2.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Msg("pg query")
}

// compact folds whitespace runs so multi line SQL logs on one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
