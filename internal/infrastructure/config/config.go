// Package config loads the service settings from the environment.
package config

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"

	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"

	minProductionSecret = 32
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	StoreDriver string `env:"STORE_DRIVER, default=postgres"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Session  SessionConfig
	Login    LoginConfig
}

type PostgresConfig struct {
	URL          string `env:"DATABASE_URL"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=recipes"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SessionConfig struct {
	Backend    string        `env:"SESSION_BACKEND,     default=cookie"`
	Secret     string        `env:"SESSION_SECRET"`
	CookieName string        `env:"SESSION_COOKIE_NAME, default=recipe_session"`
	MaxAge     time.Duration `env:"SESSION_MAX_AGE,     default=24h"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// Load reads .env.local when present, then the environment.
func Load(ctx context.Context) (*Config, error) {
	loadEnvFile()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		// Development only; Validate rejects this in production.
		cfg.Session.Secret = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}
	return &cfg, nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate rejects unknown drivers and backends and missing required values.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	case StoreDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required when STORE_DRIVER=mongo"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.Session.Backend {
	case SessionBackendCookie:
	case SessionBackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SESSION_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend))
	}

	if c.IsProduction() && len(c.Session.Secret) < minProductionSecret {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes in production", minProductionSecret))
	}
	if c.Session.MaxAge <= 0 {
		errs = append(errs, errors.New("SESSION_MAX_AGE must be positive"))
	}
	if c.Login.MaxAttempts < 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS must not be negative"))
	}
	if c.Login.MaxAttempts > 0 && c.Login.Window <= 0 {
		errs = append(errs, errors.New("LOGIN_WINDOW must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	parent := filepath.Dir(cwd)
	if parent == cwd {
		return
	}
	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}
