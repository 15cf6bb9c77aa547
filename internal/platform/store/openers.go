package store

import (
	"context"
	"fmt"
	"time"

	"juryduty/internal/platform/logger"
	"juryduty/internal/platform/store/pg"
	"juryduty/internal/platform/store/rds"
)

// ping retry budget while Postgres comes up next to us
const (
	pingAttempts   = 20
	pingTimeout    = 3 * time.Second
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

var sleep = time.Sleep

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.URL, MaxConns: cfg.MaxConns, SlowMs: cfg.SlowQueryMs}, tracer, nil)
	if err != nil {
		return nil, err
	}

	var lastErr error
	wait := backoffStart
	for range pingAttempts {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		log.Warn().Err(lastErr).Dur("retry_in", wait).Msg("postgres not ready")
		sleep(wait)
		wait = min(wait*2, backoffCeiling)
	}
	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", pingAttempts, lastErr)
}

func openRedis(ctx context.Context, cfg RedisConfig) (KV, error) {
	c, err := rds.Open(ctx, rds.Config{URL: cfg.URL})
	if err != nil {
		return nil, err
	}
	return c, nil
}
