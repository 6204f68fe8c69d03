package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

// Storage is an in-memory implementation of the credential store
type Storage struct {
	mu sync.RWMutex

	admins map[model.AdminID]model.Admin
	closed bool
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		admins: make(map[model.AdminID]model.Admin),
	}
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

func (s *Storage) FindByCredentials(ctx context.Context, username, password string) ([]model.Admin, error) {
	return s.find("find by credentials", func(a model.Admin) bool {
		return a.Username == username && a.Password == password
	})
}

func (s *Storage) FindByPIN(ctx context.Context, id model.AdminID, pin string) ([]model.Admin, error) {
	return s.find("find by pin", func(a model.Admin) bool {
		return a.ID == id && a.PIN == pin
	})
}

func (s *Storage) Probe(ctx context.Context) ([]model.ProbeRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.Wrap("probe", storage.ErrClosed)
	}
	return []model.ProbeRow{{Test: 1}}, nil
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.Admin) error {
	if err := storage.ValidateAdmin(admin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.Wrap("save admin", storage.ErrClosed)
	}
	s.admins[admin.ID] = *admin
	return nil
}

// Close marks the store unavailable; later calls fail with storage.ErrClosed
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Storage) find(op string, match func(model.Admin) bool) ([]model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.Wrap(op, storage.ErrClosed)
	}

	var out []model.Admin
	for _, a := range s.admins {
		if match(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b model.Admin) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
