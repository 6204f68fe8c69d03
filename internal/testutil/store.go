package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
	"github.com/mcoot/qrclock-gateway/internal/storage/memory"
)

// Alice is the fixture admin used across tests
func Alice() model.Admin {
	return model.Admin{ID: 1, Name: "Alice", Username: "alice", Password: "secret", PIN: "4321"}
}

// SeededStore returns a memory store holding Alice
func SeededStore(t *testing.T) *memory.Storage {
	t.Helper()
	store := memory.New()
	alice := Alice()
	require.NoError(t, store.SaveAdmin(context.Background(), &alice))
	return store
}

// FailingStore is a credential store whose every call fails with Err
type FailingStore struct {
	Err error
}

var _ storage.CredentialStore = (*FailingStore)(nil)

func (f *FailingStore) FindByCredentials(context.Context, string, string) ([]model.Admin, error) {
	return nil, storage.Wrap("find by credentials", f.Err)
}

func (f *FailingStore) FindByPIN(context.Context, model.AdminID, string) ([]model.Admin, error) {
	return nil, storage.Wrap("find by pin", f.Err)
}

func (f *FailingStore) Probe(context.Context) ([]model.ProbeRow, error) {
	return nil, storage.Wrap("probe", f.Err)
}

func (f *FailingStore) SaveAdmin(context.Context, *model.Admin) error {
	return storage.Wrap("save admin", f.Err)
}

func (f *FailingStore) Close() error { return nil }

// PanickingStore panics on every lookup, simulating a defect below the handlers
type PanickingStore struct {
	FailingStore
	Value any
}

func (p *PanickingStore) FindByCredentials(context.Context, string, string) ([]model.Admin, error) {
	panic(p.Value)
}
