// Package postgres implements the repositories on PostgreSQL through the pgx
// database/sql driver. The schema is managed by goose.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/recipebox/recipe-api/internal/infrastructure/db/postgres/migrations"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a PostgreSQL connection.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

// DB wraps a *sql.DB and vends the repositories bound to it.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings it and applies pending migrations.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	s, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	s.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 10))
	s.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 5))
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	s.SetConnMaxLifetime(lifetime)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.PingContext(pingCtx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	d := &DB{sql: s}
	if err := d.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an already opened handle without migrating it.
func New(db *sql.DB) *DB {
	return &DB{sql: db}
}

// Migrate applies the embedded goose migrations.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := goose.UpContext(ctx, d.sql, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Users returns the user repository bound to d.
func (d *DB) Users() *UserRepository { return &UserRepository{db: d} }

// Recipes returns the recipe repository bound to d.
func (d *DB) Recipes() *RecipeRepository { return &RecipeRepository{db: d} }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
