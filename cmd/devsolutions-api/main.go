// @title         DevSolutions API
// @version       0.1.0
// @description   Contact form intake, blog reader and service meta endpoints

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devsolutions/internal/core/version"
	"devsolutions/internal/platform/config"
	"devsolutions/internal/platform/logger"
	phttp "devsolutions/internal/platform/net/http"
	"devsolutions/internal/platform/store"

	"devsolutions/internal/services/api"

	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional; real env always wins
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load .env")
	}

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	redisCfg := root.Prefix("SERVICE_REDIS_")

	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// backends are optional: without them the limiter stays in memory and the archive is off
	pgURL := pgCfg.MayString("DBURL", "")
	redisURL := redisCfg.MayString("URL", "")
	st, err := store.Open(ctx,
		store.Config{
			PG: store.PGConfig{
				Enabled:     pgURL != "",
				URL:         pgURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			Redis: store.RedisConfig{
				Enabled: redisURL != "",
				URL:     redisURL,
			},
		},
		store.WithLogger(*l),
		store.WithAppName(version.Service),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := phttp.NewServer(phttp.ServerOptions{Addr: apiCfg.MayAddr("API_PORT", ":4000")})

	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return watchBackends(gctx, st, apiCfg.MayDuration("GUARD_INTERVAL", time.Minute)) })

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("api stopped")
		return
	}
	l.Info().Msg("api stopped")
}

// watchBackends pings the configured backends until ctx ends. Failures are
// logged only; the API degrades to its in-memory paths
func watchBackends(ctx context.Context, st *store.Store, every time.Duration) error {
	if st.PG == nil && st.Redis == nil {
		return nil
	}
	log := logger.Named("guard")
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := st.Guard(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("backend check failed")
			}
		}
	}
}
