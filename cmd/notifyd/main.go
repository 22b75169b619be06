// Command notifyd serves the notification engine as a standalone HTTP
// service: Postgres-backed feed, template and preference storage, a Redis
// cache in front of the preference reads, and the notifier module mounted
// under /notifications.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deskops/notifykit/modules/notifier"
	"github.com/deskops/notifykit/pkg/config"
	"github.com/deskops/notifykit/pkg/httpserver"
	"github.com/deskops/notifykit/pkg/livefeed"
	"github.com/deskops/notifykit/pkg/logger"
	"github.com/deskops/notifykit/pkg/notifications"
	"github.com/deskops/notifykit/pkg/pg"
	"github.com/deskops/notifykit/pkg/preferences"
	"github.com/deskops/notifykit/pkg/redis"
	"github.com/deskops/notifykit/pkg/templates"
)

type appConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"notifyd"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`

	// Roles maps a role name to its member user ids, as a JSON object.
	// Backs broadcast targeting; empty means only TargetAll resolves.
	Roles string `env:"NOTIFIER_ROLES" envDefault:"{}"`

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("notifyd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{logger.WithProduction(cfg.ServiceName)}
	if cfg.Environment == "development" {
		logOpts = []logger.Option{logger.WithDevelopment(cfg.ServiceName)}
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
		}
	}()

	var roles map[string][]string
	if err := json.Unmarshal([]byte(cfg.Roles), &roles); err != nil {
		return err
	}

	prefs := preferences.NewService(
		preferences.NewCachedStorage(
			preferences.NewPostgresStorage(pool),
			preferences.NewRedisStorage(rdb),
		),
		preferences.WithServiceLogger(log),
	)

	store := notifications.NewPostgresStorage(pool)
	hub := notifications.NewHub(notifications.WithHubLogger(log))
	defer hub.Close()

	factory := notifications.NewFactory(prefs, store,
		notifications.WithFactoryLogger(log),
		notifications.WithFactoryHub(hub),
	)
	feed := notifications.NewFeed(store,
		notifications.WithFeedLogger(log),
		notifications.WithFeedHub(hub),
	)
	dispatcher := notifications.NewDispatcher(factory, notifications.NewStaticDirectory(roles),
		notifications.WithDispatcherLogger(log),
	)
	registry := templates.NewRegistry(templates.NewPostgresStorage(pool),
		templates.WithRegistryLogger(log),
	)

	module := notifier.NewModule(notifier.Deps{
		Feed:        feed,
		Dispatcher:  dispatcher,
		Registry:    registry,
		Preferences: prefs,
		Hub:         hub,
		Synthesizer: livefeed.NewSynthesizer(),
	}, notifier.WithModuleLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(rdb),
	))
	r.Mount("/notifications", module.Router())

	srv := httpserver.New(cfg.HTTP, httpserver.WithServerLogger(log))
	return srv.Run(ctx, r)
}
