package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/qrclock-gateway/internal/storage"
	"github.com/mcoot/qrclock-gateway/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.ConformanceSuite{
		NewStore: func() storage.CredentialStore { return New() },
	})
}

func TestFindReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	// mutate the result and check the stored record is unchanged
	admins, err := s.FindByCredentials(ctx, "x", "y")
	if err != nil || len(admins) != 0 {
		t.Fatalf("expected empty result, got %v %v", admins, err)
	}
}
