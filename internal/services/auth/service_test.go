package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
	"github.com/mcoot/qrclock-gateway/internal/storage/memory"
	"github.com/mcoot/qrclock-gateway/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	logs    *testutil.LogBuffer
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = testutil.SeededStore(s.T())
	logger, logs := testutil.CaptureLogger()
	s.logs = logs
	s.service = New(s.storage, logger)
	s.ctx = context.Background()
}

// VerifyPassword tests

func (s *ServiceSuite) TestVerifyPasswordSucceeds() {
	admin, err := s.service.VerifyPassword(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Equal(model.AdminID(1), admin.ID)
	s.Equal("Alice", admin.Name)
}

func (s *ServiceSuite) TestVerifyPasswordWrongPassword() {
	_, err := s.service.VerifyPassword(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestVerifyPasswordUnknownUserIsIndistinguishable() {
	_, errUnknown := s.service.VerifyPassword(s.ctx, "mallory", "secret")
	_, errWrong := s.service.VerifyPassword(s.ctx, "alice", "wrong")
	s.ErrorIs(errUnknown, ErrInvalidCredentials)
	s.Equal(errWrong, errUnknown)
}

func (s *ServiceSuite) TestVerifyPasswordTakesFirstMatch() {
	dup := model.Admin{ID: 5, Name: "Alice Dup", Username: "alice", Password: "secret", PIN: "5555"}
	s.Require().NoError(s.storage.SaveAdmin(s.ctx, &dup))

	admin, err := s.service.VerifyPassword(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Equal(model.AdminID(1), admin.ID)
}

func (s *ServiceSuite) TestVerifyPasswordStoreFailure() {
	service := New(&testutil.FailingStore{Err: errors.New("connection refused")}, testutil.NopLogger())

	_, err := service.VerifyPassword(s.ctx, "alice", "secret")
	var se *storage.StoreError
	s.Require().ErrorAs(err, &se)
	s.Equal("connection refused", se.Message())
}

func (s *ServiceSuite) TestVerifyPasswordNeverLogsSecret() {
	_, _ = s.service.VerifyPassword(s.ctx, "alice", "secret")
	_, _ = s.service.VerifyPassword(s.ctx, "alice", "wrong-guess")

	s.Contains(s.logs.String(), "alice")
	s.NotContains(s.logs.String(), "secret")
	s.NotContains(s.logs.String(), "wrong-guess")
}

// VerifyPIN tests

func (s *ServiceSuite) TestVerifyPINSucceeds() {
	admin, err := s.service.VerifyPIN(s.ctx, 1, "4321")
	s.Require().NoError(err)
	s.Equal("alice", admin.Username)
}

func (s *ServiceSuite) TestVerifyPINWrongPIN() {
	_, err := s.service.VerifyPIN(s.ctx, 1, "0000")
	s.ErrorIs(err, ErrInvalidPIN)
}

func (s *ServiceSuite) TestVerifyPINUnknownAdmin() {
	_, err := s.service.VerifyPIN(s.ctx, 42, "4321")
	s.ErrorIs(err, ErrInvalidPIN)
}

func (s *ServiceSuite) TestVerifyPINIsRepeatable() {
	for n := 0; n < 3; n++ {
		admin, err := s.service.VerifyPIN(s.ctx, 1, "4321")
		s.Require().NoError(err)
		s.Equal(model.AdminID(1), admin.ID)
	}
}

func (s *ServiceSuite) TestVerifyPINNeverLogsPIN() {
	_, _ = s.service.VerifyPIN(s.ctx, 1, "4321")
	_, _ = s.service.VerifyPIN(s.ctx, 1, "0000")

	s.Contains(s.logs.String(), `"admin_id":"1"`)
	s.NotContains(s.logs.String(), "4321")
	s.NotContains(s.logs.String(), "0000")
}

// Probe tests

func (s *ServiceSuite) TestProbeSucceeds() {
	rows, err := s.service.Probe(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.ProbeRow{{Test: 1}}, rows)
}

func (s *ServiceSuite) TestProbeClosedStore() {
	s.Require().NoError(s.storage.Close())

	_, err := s.service.Probe(s.ctx)
	s.ErrorIs(err, storage.ErrClosed)
}
