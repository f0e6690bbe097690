package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/core/ports"
	"github.com/recipebox/recipe-api/internal/infrastructure/config"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/memory"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/mongo"
	"github.com/recipebox/recipe-api/internal/infrastructure/db/postgres"
)

// storage is the credential store selected by STORE_DRIVER.
type storage struct {
	users   ports.UserRepository
	recipes ports.RecipeRepository
	tx      ports.Transactor
	ping    handler.Pinger
	close   func(ctx context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := postgres.Open(ctx, postgres.Config{
			DSN:          cfg.Postgres.URL,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres, migrations applied")
		return &storage{
			users:   db.Users(),
			recipes: db.Recipes(),
			tx:      db,
			ping:    db,
			close:   func(context.Context) error { return db.Close() },
		}, nil

	case config.StoreDriverMongo:
		s, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &storage{
			users:   s.Users(),
			recipes: s.Recipes(),
			tx:      s,
			ping:    s,
			close:   s.Close,
		}, nil

	case config.StoreDriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.New()
		return &storage{
			users:   s.Users(),
			recipes: s.Recipes(),
			tx:      s,
			ping:    s,
			close:   func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
