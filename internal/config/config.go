// Package config loads gateway settings from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds every gateway setting
type Config struct {
	// --- HTTP ---
	Host            string        `envconfig:"HOST" default:""`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// --- Logging ---
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// --- Credential store ---
	StorageType  string        `envconfig:"STORAGE_TYPE" default:"memory"`
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	RedisURL     string        `envconfig:"REDIS_URL"`
	DatabaseURL  string        `envconfig:"DATABASE_URL"`
	DBMaxConns   int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns   int32         `envconfig:"DB_MIN_CONNS" default:"1"`
	SQLitePath   string        `envconfig:"SQLITE_PATH" default:"timeclock.db"`

	// SeedFile optionally names a JSON array of admins loaded at startup
	SeedFile string `envconfig:"SEED_FILE"`
}

// Load reads the environment into a validated Config
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that depend on each other
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=%s", StorageRedis)
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL required when STORAGE_TYPE=%s", StoragePostgres)
		}
		if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH required when STORAGE_TYPE=%s", StorageSQLite)
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, redis, postgres or sqlite", c.StorageType)
	}
	return nil
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
