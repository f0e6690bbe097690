// Package mongo implements the repositories on MongoDB. Users and recipes
// keep integer ids allocated from a counters collection so the HTTP contract
// is the same as with the SQL store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers    = "users"
	collectionRecipes  = "recipes"
	collectionCounters = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Store bundles the repositories that share one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects and makes sure the indexes exist.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Store{client: client, db: db}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the unique username index and the recipe owner index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.Users().ensureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := s.Recipes().ensureIndexes(ctx); err != nil {
		return fmt.Errorf("recipe indexes: %w", err)
	}
	return nil
}

// WithinTx runs fn directly. Every write is a single-document insert, which
// MongoDB applies atomically, so no session transaction is opened.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{col: s.db.Collection(collectionUsers), counters: s.db.Collection(collectionCounters)}
}

func (s *Store) Recipes() *RecipeRepository {
	return &RecipeRepository{
		col:      s.db.Collection(collectionRecipes),
		users:    s.db.Collection(collectionUsers),
		counters: s.db.Collection(collectionCounters),
	}
}
