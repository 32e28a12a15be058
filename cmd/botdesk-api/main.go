// Command botdesk-api serves the bot admin and search filter API.
//
// Environment:
//
//	SERVICE_PGSQL_DBURL        postgres url (required)
//	SERVICE_PGSQL_MAX_CONNS    pool size, default 4
//	SERVICE_PGSQL_SLOW_MS      slow statement threshold, default 500
//	SERVICE_PGSQL_LOG_SQL      trace every statement
//	CORE_API_PORT              listen port or host:port, default 4000
//	CORE_API_ADMIN_TOKEN       bearer token for admin routes; blank leaves them open
//	CORE_API_MIGRATE           apply embedded migrations at boot, default true
//	CORE_API_SWAGGER           serve /api/docs, default true
//	CORE_API_PROFILER          serve /debug/pprof, default false
//	FILTERS_CATALOG_TTL        filter catalog cache lifetime, default 30s
//	LOG_LEVEL, LOG_FORMAT      see platform/logger
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/platform/config"
	"botdesk/internal/platform/logger"
	phttp "botdesk/internal/platform/net/http"
	"botdesk/internal/platform/store"
	"botdesk/internal/platform/store/migrate"
	"botdesk/internal/schema"
	"botdesk/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init(logger.FromEnv())
	if err := run(ctx, config.New()); err != nil {
		logger.Get().Fatal().Err(err).Msg("botdesk api stopped")
	}
}

func run(ctx context.Context, env config.Conf) error {
	log := logger.Named("main")
	apiEnv := env.Prefix("CORE_API_")
	pgEnv := env.Prefix("SERVICE_PGSQL_")

	st, err := store.Open(ctx, store.Config{
		AppName: "botdesk-api",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgEnv.MustString("DBURL"),
			MaxConns:    int32(pgEnv.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgEnv.MayInt("SLOW_MS", 500),
			LogSQL:      pgEnv.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*logger.Named("store")))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(context.Background()); cerr != nil {
			log.Error().Err(cerr).Msg("closing store")
		}
	}()

	if apiEnv.MayBool("MIGRATE", true) {
		if err := migrate.Up(ctx, st.PG, schema.FS, schema.Dir); err != nil {
			return err
		}
	}

	auth := httpkit.StaticToken(apiEnv.MayString("ADMIN_TOKEN", ""))
	if auth == nil {
		log.Warn().Msg("CORE_API_ADMIN_TOKEN is blank, admin routes accept anyone")
	}

	srv := phttp.NewServer(apiEnv)
	api.Mount(srv.Router(), api.Options{
		Config:         env,
		Store:          st,
		Logger:         logger.Named("api"),
		Auth:           auth,
		EnableSwagger:  apiEnv.MayBool("SWAGGER", true),
		EnableProfiler: apiEnv.MayBool("PROFILER", false),
	})

	log.Info().Str("addr", srv.Addr()).Msg("listening")
	return srv.Run(ctx)
}
