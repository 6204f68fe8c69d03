package storage

import (
	"context"
	"errors"

	"github.com/mcoot/qrclock-gateway/internal/model"
)

// ErrClosed is returned by stores that have been closed
var ErrClosed = errors.New("credential store is closed")

// CredentialStore is the system of record for administrator accounts.
//
// Lookups are field-equality matches returning zero or more records,
// ordered by admin ID. An empty result is not an error.
type CredentialStore interface {
	// FindByCredentials returns admins whose username and password both match
	FindByCredentials(ctx context.Context, username, password string) ([]model.Admin, error)
	// FindByPIN returns admins whose ID and PIN both match
	FindByPIN(ctx context.Context, id model.AdminID, pin string) ([]model.Admin, error)
	// Probe performs a trivial read to check the store is reachable
	Probe(ctx context.Context) ([]model.ProbeRow, error)

	// SaveAdmin inserts or replaces an admin record (seeding only)
	SaveAdmin(ctx context.Context, admin *model.Admin) error

	Close() error
}

// StoreError wraps a failure reported by a credential store
type StoreError struct {
	Op  string
	Err error
}

// Error implements error interface
func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying store failure
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Message returns the store's own message, without the operation prefix
func (e *StoreError) Message() string {
	return e.Err.Error()
}

// Wrap returns err wrapped as a StoreError for op, or nil if err is nil
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ValidateAdmin checks an admin record has every field a lookup depends on
func ValidateAdmin(admin *model.Admin) error {
	if admin == nil || admin.ID == 0 || admin.Username == "" || admin.Password == "" || admin.PIN == "" {
		return model.ErrInvalidAdmin
	}
	return nil
}
