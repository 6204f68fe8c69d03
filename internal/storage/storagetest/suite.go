// Package storagetest holds a behavioural test suite shared by every
// CredentialStore backend.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

// ConformanceSuite exercises the CredentialStore contract.
// NewStore must return an empty, open store for every test.
type ConformanceSuite struct {
	suite.Suite
	NewStore func() storage.CredentialStore

	store storage.CredentialStore
	ctx   context.Context
}

func (s *ConformanceSuite) SetupTest() {
	s.store = s.NewStore()
	s.ctx = context.Background()
}

func (s *ConformanceSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// Store returns the store under test
func (s *ConformanceSuite) Store() storage.CredentialStore {
	return s.store
}

func (s *ConformanceSuite) seedAlice() model.Admin {
	alice := model.Admin{ID: 1, Name: "Alice", Username: "alice", Password: "secret", PIN: "4321"}
	s.Require().NoError(s.store.SaveAdmin(s.ctx, &alice))
	return alice
}

func (s *ConformanceSuite) TestProbe() {
	rows, err := s.store.Probe(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.ProbeRow{{Test: 1}}, rows)
}

func (s *ConformanceSuite) TestFindByCredentialsMatch() {
	alice := s.seedAlice()

	admins, err := s.store.FindByCredentials(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Require().Len(admins, 1)
	s.Equal(alice, admins[0])
}

func (s *ConformanceSuite) TestFindByCredentialsWrongPassword() {
	s.seedAlice()

	admins, err := s.store.FindByCredentials(s.ctx, "alice", "wrong")
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ConformanceSuite) TestFindByCredentialsUnknownUser() {
	s.seedAlice()

	admins, err := s.store.FindByCredentials(s.ctx, "bob", "secret")
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ConformanceSuite) TestFindByCredentialsIsCaseSensitive() {
	s.seedAlice()

	admins, err := s.store.FindByCredentials(s.ctx, "alice", "SECRET")
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ConformanceSuite) TestFindByCredentialsDuplicateUsernamesOrderedByID() {
	second := model.Admin{ID: 7, Name: "Alice Two", Username: "alice", Password: "secret", PIN: "1111"}
	s.Require().NoError(s.store.SaveAdmin(s.ctx, &second))
	s.seedAlice()

	admins, err := s.store.FindByCredentials(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Require().Len(admins, 2)
	s.Equal(model.AdminID(1), admins[0].ID)
	s.Equal(model.AdminID(7), admins[1].ID)
}

func (s *ConformanceSuite) TestFindByPINMatch() {
	alice := s.seedAlice()

	admins, err := s.store.FindByPIN(s.ctx, 1, "4321")
	s.Require().NoError(err)
	s.Require().Len(admins, 1)
	s.Equal(alice, admins[0])
}

func (s *ConformanceSuite) TestFindByPINWrongPIN() {
	s.seedAlice()

	admins, err := s.store.FindByPIN(s.ctx, 1, "0000")
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ConformanceSuite) TestFindByPINIsScopedToAdmin() {
	s.seedAlice()
	bob := model.Admin{ID: 2, Name: "Bob", Username: "bob", Password: "hunter2", PIN: "9999"}
	s.Require().NoError(s.store.SaveAdmin(s.ctx, &bob))

	admins, err := s.store.FindByPIN(s.ctx, 2, "4321")
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ConformanceSuite) TestSaveAdminReplacesRecord() {
	alice := s.seedAlice()
	alice.Username = "alice2"
	alice.Password = "changed"
	s.Require().NoError(s.store.SaveAdmin(s.ctx, &alice))

	admins, err := s.store.FindByCredentials(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Empty(admins)

	admins, err = s.store.FindByCredentials(s.ctx, "alice2", "changed")
	s.Require().NoError(err)
	s.Len(admins, 1)
}

func (s *ConformanceSuite) TestSaveAdminRejectsIncompleteRecord() {
	err := s.store.SaveAdmin(s.ctx, &model.Admin{ID: 3, Username: "carol"})
	s.ErrorIs(err, model.ErrInvalidAdmin)
}

func (s *ConformanceSuite) TestClosedStoreFails() {
	s.seedAlice()
	s.Require().NoError(s.store.Close())

	_, err := s.store.FindByCredentials(s.ctx, "alice", "secret")
	var se *storage.StoreError
	s.Require().ErrorAs(err, &se)
	s.NotEmpty(se.Message())

	_, err = s.store.Probe(s.ctx)
	s.Require().ErrorAs(err, &se)
}
