// Command api serves the recipes REST API.
//
// @title        Recipes API
// @version      1.0
// @description  Session-authenticated recipe sharing backend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"github.com/recipebox/recipe-api/internal/api"
	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/api/session"
	"github.com/recipebox/recipe-api/internal/core/ports"
	"github.com/recipebox/recipe-api/internal/core/service"
	"github.com/recipebox/recipe-api/internal/infrastructure/config"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/memory"
	redisdb "github.com/recipebox/recipe-api/internal/infrastructure/db/redis"
	"github.com/recipebox/recipe-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "recipe-api",
	})

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	sm := session.NewManager(session.Options{
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     cfg.IsProduction(),
	})
	readiness := map[string]handler.Pinger{cfg.StoreDriver: store.ping}

	var (
		sessionStore sessions.Store
		limiter      ports.LoginLimiter
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close() //nolint:errcheck

		rs := redisdb.NewSessionStore(rdb, []byte(cfg.Session.Secret))
		rs.Options = sm.CookieOptions()
		sessionStore = rs
		if cfg.Login.MaxAttempts > 0 {
			limiter = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		}
		readiness["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	default:
		sessionStore = sm.NewCookieStore([]byte(cfg.Session.Secret))
		if cfg.Login.MaxAttempts > 0 {
			limiter = memory.NewLoginLimiter(cfg.Login.MaxAttempts, cfg.Login.Window)
		}
	}

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(store.users, store.tx, limiter, log),
		Recipes:      service.NewRecipeService(store.recipes, store.tx, log),
		SessionStore: sessionStore,
		Sessions:     sm,
		Readiness:    readiness,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.StoreDriver).
			Str("sessions", cfg.Session.Backend).
			Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
