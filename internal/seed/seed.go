// Package seed loads administrator records into a credential store from
// a JSON file, for development stores that start empty.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

// Read decodes a JSON array of admin records
func Read(r io.Reader) ([]model.Admin, error) {
	var admins []model.Admin
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&admins); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return admins, nil
}

// Load saves every admin from admins into store, stopping at the first failure
func Load(ctx context.Context, store storage.CredentialStore, admins []model.Admin) error {
	for i := range admins {
		if err := store.SaveAdmin(ctx, &admins[i]); err != nil {
			return fmt.Errorf("seed admin %d (%s): %w", i, admins[i].Username, err)
		}
	}
	return nil
}

// LoadFile reads the seed file at path and loads it into store.
// It returns the number of admins loaded.
func LoadFile(ctx context.Context, store storage.CredentialStore, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	admins, err := Read(f)
	if err != nil {
		return 0, err
	}
	if err := Load(ctx, store, admins); err != nil {
		return 0, err
	}
	return len(admins), nil
}
