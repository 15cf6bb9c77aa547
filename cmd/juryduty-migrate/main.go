package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"juryduty/internal/platform/logger"
	"juryduty/internal/platform/store"
	"juryduty/internal/platform/store/migrate"
)

func main() {
	fList := flag.Bool("list", false, "print embedded migrations and exit")
	flag.Parse()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	if *fList {
		ms, err := migrate.Embedded()
		if err != nil {
			l.Panic().Err(err).Msg("load migrations")
		}
		for _, m := range ms {
			fmt.Fprintln(os.Stdout, m.Version)
		}
		return
	}

	ctx := context.Background()
	cfg := store.ConfigFromEnv("juryduty-migrate")
	cfg.RDS.Enabled = false

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	applied, err := migrate.Up(ctx, st.PG)
	if err != nil {
		l.Panic().Err(err).Msg("migrate failed")
	}
	if len(applied) == 0 {
		l.Info().Msg("schema up to date")
		return
	}
	l.Info().Strs("applied", applied).Msg("migrations applied")
}
