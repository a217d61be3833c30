package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/presence/internal/api"
	"github.com/dmitrymomot/presence/internal/gate"
	"github.com/dmitrymomot/presence/internal/notify"
	"github.com/dmitrymomot/presence/internal/presence"
	"github.com/dmitrymomot/presence/internal/store"
	"github.com/dmitrymomot/presence/pkg/cookie"
	"github.com/dmitrymomot/presence/pkg/httpserver"
	"github.com/dmitrymomot/presence/pkg/logger"
	"github.com/dmitrymomot/presence/pkg/redis"
	"github.com/dmitrymomot/presence/pkg/session"
)

func serve(ctx context.Context, cfg Config, log *slog.Logger) error {
	st, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	// no claim survives a restart
	n, err := st.ResetAllToFree(ctx)
	if err != nil {
		return fmt.Errorf("reset claims: %w", err)
	}
	log.InfoContext(ctx, "stale claims cleared", slog.Int64("count", n))

	secret := cfg.SecretKey
	if secret == "" {
		if secret, err = cookie.GenerateSecret(); err != nil {
			return err
		}
		log.WarnContext(ctx, "SECRET_KEY is not set, using a random key for this process")
	}
	cm, err := cookie.NewFromConfig(secret, cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	sessOpts := []session.Option{session.WithCookieManager(cm), session.WithLogger(log)}
	var checks []httpserver.Check
	if cfg.Redis.Enabled() {
		rc, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = rc.Close() }()

		sessOpts = append(sessOpts, session.WithStore(session.NewRedisStore(rc)))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rc)})
		log.InfoContext(ctx, "sessions stored in redis")
	}
	sessions := session.NewFromConfig(cfg.Session, sessOpts...)
	defer func() { _ = sessions.Close() }()

	machine := presence.NewMachine(presence.NewRegistry(st), log.With(logger.Component("presence")))
	dispatcher := notify.NewFromConfig(cfg.Push, notify.NewParsePusher(cfg.Push, nil, log), log)

	a := api.New(
		gate.New(machine, sessions, log),
		sessions, st, dispatcher,
		api.WithLogger(log),
		api.WithReadinessChecks(checks...),
	)
	srv := httpserver.NewFromConfig(fmt.Sprintf(":%d", cfg.Port), cfg.HTTP, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(dispatcher.Run(ctx))
	g.Go(func() error { return srv.Run(ctx, a.Router()) })
	return g.Wait()
}
