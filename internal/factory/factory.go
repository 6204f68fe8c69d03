package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/qrclock-gateway/internal/api"
	"github.com/mcoot/qrclock-gateway/internal/config"
	"github.com/mcoot/qrclock-gateway/internal/seed"
	"github.com/mcoot/qrclock-gateway/internal/services/auth"
	"github.com/mcoot/qrclock-gateway/internal/storage"
	"github.com/mcoot/qrclock-gateway/internal/storage/memory"
	"github.com/mcoot/qrclock-gateway/internal/storage/postgres"
	redisstorage "github.com/mcoot/qrclock-gateway/internal/storage/redis"
	"github.com/mcoot/qrclock-gateway/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.CredentialStore

	// Services
	AuthService *auth.Service

	// Handler is the dispatcher serving every request
	Handler http.Handler
}

// Close releases the credential store
func (a *App) Close() error {
	return a.Store.Close()
}

// New creates a new application with all dependencies wired.
// A nil logger discards output.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("credential store ready", slog.String("storage_type", cfg.StorageType))

	if cfg.SeedFile != "" {
		n, err := seed.LoadFile(ctx, store, cfg.SeedFile)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed %s: %w", cfg.SeedFile, err)
		}
		logger.Info("seeded admins", slog.String("file", cfg.SeedFile), slog.Int("count", n))
	}

	return newWithStore(store, logger), nil
}

// NewStore opens the credential store selected by cfg.StorageType
func NewStore(ctx context.Context, cfg *config.Config) (storage.CredentialStore, error) {
	switch cfg.StorageType {
	case "", config.StorageMemory:
		return memory.New(), nil
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.Timeout = cfg.StoreTimeout
		return redisstorage.New(redisCfg)
	case config.StoragePostgres:
		return postgres.New(ctx, postgres.Config{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
			Timeout:  cfg.StoreTimeout,
		})
	case config.StorageSQLite:
		return sqlite.New(cfg.SQLitePath, cfg.StoreTimeout)
	default:
		return nil, fmt.Errorf("invalid StorageType %q", cfg.StorageType)
	}
}

// newWithStore wires services and the dispatcher over an open store
func newWithStore(store storage.CredentialStore, logger *slog.Logger) *App {
	authService := auth.New(store, logger)

	return &App{
		Store:       store,
		AuthService: authService,
		Handler: api.NewRouter(api.RouterConfig{
			Logger:      logger,
			AuthService: authService,
		}),
	}
}
