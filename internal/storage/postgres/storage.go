// Package postgres implements the credential store over a PostgreSQL
// admin table, using a pgxpool connection pool shared by all requests.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS admin (
	admin_id   BIGINT PRIMARY KEY,
	admin_name TEXT NOT NULL DEFAULT '',
	username   TEXT NOT NULL,
	password   TEXT NOT NULL,
	pin        TEXT NOT NULL
)`

const (
	selectByCredentials = `
		SELECT admin_id, admin_name, username, password, pin
		FROM admin
		WHERE username = $1 AND password = $2
		ORDER BY admin_id`

	selectByPIN = `
		SELECT admin_id, admin_name, username, password, pin
		FROM admin
		WHERE admin_id = $1 AND pin = $2
		ORDER BY admin_id`

	selectProbe = `SELECT 1 AS test`

	upsertAdmin = `
		INSERT INTO admin (admin_id, admin_name, username, password, pin)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (admin_id) DO UPDATE SET
			admin_name = EXCLUDED.admin_name,
			username   = EXCLUDED.username,
			password   = EXCLUDED.password,
			pin        = EXCLUDED.pin`
)

// Config holds PostgreSQL connection settings
type Config struct {
	URL      string
	MaxConns int32
	MinConns int32
	// Timeout bounds every store call
	Timeout time.Duration
}

// Storage is a PostgreSQL-backed credential store
type Storage struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

// New opens a pool, checks the database is reachable and creates the
// admin table if needed.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create admin table: %w", err)
	}

	return &Storage{pool: pool, timeout: cfg.Timeout}, nil
}

// Close closes every pooled connection
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Storage) FindByCredentials(ctx context.Context, username, password string) ([]model.Admin, error) {
	admins, err := s.queryAdmins(ctx, selectByCredentials, username, password)
	return admins, storage.Wrap("find by credentials", err)
}

func (s *Storage) FindByPIN(ctx context.Context, id model.AdminID, pin string) ([]model.Admin, error) {
	admins, err := s.queryAdmins(ctx, selectByPIN, int64(id), pin)
	return admins, storage.Wrap("find by pin", err)
}

func (s *Storage) Probe(ctx context.Context) ([]model.ProbeRow, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, selectProbe)
	if err != nil {
		return nil, storage.Wrap("probe", err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ProbeRow])
	if err != nil {
		return nil, storage.Wrap("probe", err)
	}
	return result, nil
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.Admin) error {
	if err := storage.ValidateAdmin(admin); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.pool.Exec(ctx, upsertAdmin,
		int64(admin.ID), admin.Name, admin.Username, admin.Password, admin.PIN)
	return storage.Wrap("save admin", err)
}

// queryAdmins runs a lookup; CollectRows closes rows on every path
func (s *Storage) queryAdmins(ctx context.Context, query string, args ...any) ([]model.Admin, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Admin])
}
