package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPIN         = errors.New("invalid pin")
)

// Service verifies the two administrator factors against a credential store.
//
// It holds no per-login state: the PIN step trusts the caller to present
// the admin ID returned by a successful password step. Nothing binds the
// two steps together.
type Service struct {
	store  storage.CredentialStore
	logger *slog.Logger
}

// New creates a new auth Service
func New(store storage.CredentialStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// VerifyPassword checks the first factor. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials. When several admins match,
// the first (lowest ID) wins.
func (s *Service) VerifyPassword(ctx context.Context, username, password string) (*model.Admin, error) {
	s.logger.InfoContext(ctx, "admin login request", slog.String("username", username))

	admins, err := s.store.FindByCredentials(ctx, username, password)
	if err != nil {
		s.logger.ErrorContext(ctx, "admin login lookup failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "admin login lookup",
		slog.String("username", username),
		slog.Int("matches", len(admins)),
	)

	if len(admins) == 0 {
		return nil, ErrInvalidCredentials
	}
	return &admins[0], nil
}

// VerifyPIN checks the second factor for a specific admin
func (s *Service) VerifyPIN(ctx context.Context, id model.AdminID, pin string) (*model.Admin, error) {
	s.logger.InfoContext(ctx, "pin verification request", slog.String("admin_id", id.String()))

	admins, err := s.store.FindByPIN(ctx, id, pin)
	if err != nil {
		s.logger.ErrorContext(ctx, "pin verification lookup failed",
			slog.String("admin_id", id.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if len(admins) == 0 {
		s.logger.InfoContext(ctx, "pin verification rejected", slog.String("admin_id", id.String()))
		return nil, ErrInvalidPIN
	}
	return &admins[0], nil
}

// Probe checks the credential store is reachable
func (s *Service) Probe(ctx context.Context) ([]model.ProbeRow, error) {
	rows, err := s.store.Probe(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "store probe failed", slog.String("error", err.Error()))
		return nil, err
	}
	return rows, nil
}
