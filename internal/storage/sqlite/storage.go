// Package sqlite implements the credential store over a SQLite admin
// table through sqlx.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS admin (
	admin_id   INTEGER PRIMARY KEY,
	admin_name TEXT NOT NULL DEFAULT '',
	username   TEXT NOT NULL,
	password   TEXT NOT NULL,
	pin        TEXT NOT NULL
)`

const (
	selectByCredentials = `
		SELECT admin_id, admin_name, username, password, pin
		FROM admin
		WHERE username = ? AND password = ?
		ORDER BY admin_id`

	selectByPIN = `
		SELECT admin_id, admin_name, username, password, pin
		FROM admin
		WHERE admin_id = ? AND pin = ?
		ORDER BY admin_id`

	selectProbe = `SELECT 1 AS test`

	upsertAdmin = `
		INSERT INTO admin (admin_id, admin_name, username, password, pin)
		VALUES (:admin_id, :admin_name, :username, :password, :pin)
		ON CONFLICT (admin_id) DO UPDATE SET
			admin_name = excluded.admin_name,
			username   = excluded.username,
			password   = excluded.password,
			pin        = excluded.pin`
)

// Storage is a SQLite-backed credential store
type Storage struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

// New opens the database at path and creates the admin table if needed.
// Use ":memory:" for a private in-memory database.
func New(path string, timeout time.Duration) (*Storage, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// An in-memory database exists per connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create admin table: %w", err)
	}

	return &Storage{db: db, timeout: timeout}, nil
}

// Close closes the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Storage) FindByCredentials(ctx context.Context, username, password string) ([]model.Admin, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var admins []model.Admin
	err := s.db.SelectContext(ctx, &admins, selectByCredentials, username, password)
	if err != nil {
		return nil, storage.Wrap("find by credentials", err)
	}
	return admins, nil
}

func (s *Storage) FindByPIN(ctx context.Context, id model.AdminID, pin string) ([]model.Admin, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var admins []model.Admin
	err := s.db.SelectContext(ctx, &admins, selectByPIN, int64(id), pin)
	if err != nil {
		return nil, storage.Wrap("find by pin", err)
	}
	return admins, nil
}

func (s *Storage) Probe(ctx context.Context) ([]model.ProbeRow, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []model.ProbeRow
	if err := s.db.SelectContext(ctx, &rows, selectProbe); err != nil {
		return nil, storage.Wrap("probe", err)
	}
	return rows, nil
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.Admin) error {
	if err := storage.ValidateAdmin(admin); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.NamedExecContext(ctx, upsertAdmin, admin)
	return storage.Wrap("save admin", err)
}
