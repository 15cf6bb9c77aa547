// @title         JuryDuty API
// @version       0.1.0
// @description   Disputes, AI verdicts and public votes

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"juryduty/internal/core/version"
	"juryduty/internal/modkit/repokit"
	"juryduty/internal/platform/config"
	"juryduty/internal/platform/logger"
	phttp "juryduty/internal/platform/net/http"
	"juryduty/internal/platform/store"
	"juryduty/internal/platform/store/migrate"

	"juryduty/internal/services/api"
)

func main() {
	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = version.Info().Service
	}
	logger.Init(opt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// postgres is mandatory, redis only when SERVICE_REDIS_URL is set
	st, err := store.Open(ctx, store.ConfigFromEnv("juryduty-api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, "store", st.Guard)

	if root.Prefix("SERVICE_PGSQL_").MayBool("AUTO_MIGRATE", false) {
		applied, err := migrate.Up(ctx, st.PG)
		if err != nil {
			l.Panic().Err(err).Msg("migrate failed")
		}
		l.Info().Strs("applied", applied).Msg("migrations applied")
	}

	// reads CORE_API_API_PORT
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(chimw.Heartbeat("/ping"))
	})

	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"http://localhost:3000"}),
		Timeout:        apiCfg.MayDuration("REQUEST_TIMEOUT", 2*time.Minute),
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}
}
