package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/songguessr/songguessr-go/internal/dependencies/mocks"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage/memory"
	"github.com/songguessr/songguessr-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	cfg := DefaultConfig()
	cfg.SigningKey = []byte("test-signing-key")

	s.service = New(s.storage, s.clock, s.random, cfg, testutil.NopLogger())
	s.ctx = context.Background()
}

// Signup tests

func (s *ServiceSuite) TestSignupSucceeds() {
	user, token, err := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)

	s.NotEmpty(token)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.Equal(0, user.GamesPlayed)
	s.NotEmpty(user.ID)
}

func (s *ServiceSuite) TestSignupPersistsUser() {
	user, _, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	stored, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", stored.Username)
	s.NotEmpty(stored.PasswordHash)
	s.NotEqual("password123", stored.PasswordHash) // Should be hashed
}

func (s *ServiceSuite) TestSignupFailsIfUsernameExists() {
	_, _, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	_, _, err := s.service.Signup(s.ctx, "alice", "other@example.com", "different")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestSignupFailsIfEmailExists() {
	_, _, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	_, _, err := s.service.Signup(s.ctx, "alice2", "alice@example.com", "different")
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestSignupTokenResolves() {
	user, token, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	identity, err := s.service.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Require().NotNil(identity)
	s.Equal(user.ID, identity.UserID)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	user, token, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)

	s.NotEmpty(token)
	s.Equal("alice", user.Username)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	_, _, err := s.service.Login(s.ctx, "alice@example.com", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownEmail() {
	_, _, err := s.service.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Resolve tests

func (s *ServiceSuite) TestResolveEmptyCredentialIsAnonymous() {
	identity, err := s.service.Resolve(s.ctx, "")
	s.Require().NoError(err)
	s.Nil(identity)
}

func (s *ServiceSuite) TestResolveGarbageCredentialIsAnonymous() {
	identity, err := s.service.Resolve(s.ctx, "not-a-token")
	s.Require().NoError(err)
	s.Nil(identity)
}

func (s *ServiceSuite) TestResolveExpiredCredentialIsAnonymous() {
	_, token, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	s.clock.Advance(25 * time.Hour)

	identity, err := s.service.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Nil(identity)
}

func (s *ServiceSuite) TestResolveMisSignedCredentialIsAnonymous() {
	otherCfg := DefaultConfig()
	otherCfg.SigningKey = []byte("a-different-key")
	other := New(s.storage, s.clock, s.random, otherCfg, testutil.NopLogger())

	_, token, _ := other.Signup(s.ctx, "alice", "alice@example.com", "password123")

	identity, err := s.service.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Nil(identity)
}

func (s *ServiceSuite) TestResolveCarriesCurrentUserState() {
	user, token, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	user.GamesPlayed = 7
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	identity, err := s.service.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Require().NotNil(identity)
	s.Equal(7, identity.User.GamesPlayed)
}

func (s *ServiceSuite) TestIssueTokenFailsWithoutSigningKey() {
	unkeyed := New(s.storage, s.clock, s.random, DefaultConfig(), testutil.NopLogger())

	_, _, err := unkeyed.Signup(s.ctx, "alice", "alice@example.com", "password123")
	s.ErrorIs(err, ErrSigningKeyMissing)
}
