package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/trxgoblin/minerd/internal/dependencies/mocks"
	"github.com/trxgoblin/minerd/internal/hash"
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/storage/memory"
	"github.com/trxgoblin/minerd/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, hash.NewSHA3(), s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(username string) *model.Account {
	account, err := s.service.Register(s.ctx, RegisterParams{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
	})
	s.Require().NoError(err)
	return account
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	account := s.register("alice")

	s.Equal(model.Username("alice"), account.Username)
	s.Equal("alice@example.com", account.Email)
	s.True(account.CreatedAt.Equal(s.clock.Now()))
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	account := s.register("alice")

	s.NotEmpty(account.PasswordHash)
	s.NotEqual("password123", account.PasswordHash)
	s.NotContains(account.PasswordHash, "password123")
}

func (s *ServiceSuite) TestRegisterCreatesZeroTelemetry() {
	s.register("alice")

	rec, err := s.storage.GetTelemetry(s.ctx, "alice")
	s.Require().NoError(err)
	s.Zero(rec.Hashrate)
	s.Zero(rec.Threads)
	s.Zero(rec.AcceptedDaily)
	s.Zero(rec.TrxDaily)
	s.Nil(rec.LastSeen)
}

func (s *ServiceSuite) TestRegisterTrimsWhitespace() {
	account, err := s.service.Register(s.ctx, RegisterParams{
		Username:    "  alice  ",
		Password:    " password123 ",
		Email:       " alice@example.com ",
		DeviceModel: " Redmi Note 9 ",
	})
	s.Require().NoError(err)

	s.Equal(model.Username("alice"), account.Username)
	s.Equal("alice@example.com", account.Email)
	s.Equal("Redmi Note 9", account.DeviceModel)
}

func (s *ServiceSuite) TestRegisterDeviceModelOptional() {
	account, err := s.service.Register(s.ctx, RegisterParams{
		Username: "alice",
		Password: "password123",
		Email:    "alice@example.com",
	})
	s.Require().NoError(err)
	s.Empty(account.DeviceModel)
}

func (s *ServiceSuite) TestRegisterMissingFields() {
	tests := []struct {
		name   string
		params RegisterParams
	}{
		{"empty username", RegisterParams{Password: "pw", Email: "a@b.c"}},
		{"whitespace username", RegisterParams{Username: "   ", Password: "pw", Email: "a@b.c"}},
		{"empty password", RegisterParams{Username: "alice", Email: "a@b.c"}},
		{"whitespace password", RegisterParams{Username: "alice", Password: "  ", Email: "a@b.c"}},
		{"empty email", RegisterParams{Username: "alice", Password: "pw"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Register(s.ctx, tt.params)
			s.ErrorIs(err, model.ErrInvalidInput)
		})
	}
}

func (s *ServiceSuite) TestRegisterValidatesBeforeStoreMutation() {
	_, err := s.service.Register(s.ctx, RegisterParams{Username: "alice"})
	s.ErrorIs(err, model.ErrInvalidInput)

	_, err = s.storage.GetAccount(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	first := s.register("alice")

	_, err := s.service.Register(s.ctx, RegisterParams{
		Username: "alice",
		Password: "different",
		Email:    "other@example.com",
	})
	s.ErrorIs(err, model.ErrUsernameExists)

	// Stored account and telemetry unchanged from the first registration
	account, _ := s.storage.GetAccount(s.ctx, "alice")
	s.Equal(first.PasswordHash, account.PasswordHash)
	s.Equal("alice@example.com", account.Email)

	rec, _ := s.storage.GetTelemetry(s.ctx, "alice")
	s.Nil(rec.LastSeen)
}

func (s *ServiceSuite) TestUsernameIsCaseSensitive() {
	s.register("alice")

	_, err := s.service.Register(s.ctx, RegisterParams{
		Username: "Alice",
		Password: "password123",
		Email:    "alice2@example.com",
	})
	s.NoError(err)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	s.register("alice")

	err := s.service.Login(s.ctx, "alice", "password123")
	s.NoError(err)
}

func (s *ServiceSuite) TestLoginRefreshesLastSeen() {
	s.register("alice")
	s.clock.Advance(10 * time.Minute)

	err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	rec, err := s.storage.GetTelemetry(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(rec.LastSeen)
	s.True(rec.LastSeen.Equal(s.clock.Now()))
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	s.register("alice")

	err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)

	// Failed login does not touch lastSeen
	rec, _ := s.storage.GetTelemetry(s.ctx, "alice")
	s.Nil(rec.LastSeen)
}

func (s *ServiceSuite) TestLoginUnknownUserSameError() {
	s.register("alice")

	errUnknown := s.service.Login(s.ctx, "nobody", "password123")
	errWrongPw := s.service.Login(s.ctx, "alice", "wrongpassword")

	// Neither response distinguishes which part of the credential failed
	s.ErrorIs(errUnknown, ErrInvalidCredentials)
	s.ErrorIs(errWrongPw, ErrInvalidCredentials)
	s.Equal(errUnknown.Error(), errWrongPw.Error())
}

func (s *ServiceSuite) TestLoginMissingFields() {
	err := s.service.Login(s.ctx, "", "password123")
	s.ErrorIs(err, model.ErrInvalidInput)

	err = s.service.Login(s.ctx, "alice", "")
	s.ErrorIs(err, model.ErrInvalidInput)
}
