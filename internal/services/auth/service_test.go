package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/riddles-game/server/internal/dependencies/mocks"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/storage/memory"
	"github.com/riddles-game/server/internal/testutil"
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
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{
		Secret:     "test-secret",
		AdminCode:  "super-secret-admin",
		BcryptCost: bcrypt.MinCost,
	}, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	player, token, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	s.NotEmpty(token)
	s.Equal("alice", player.Username)
	s.Equal(model.RoleUser, player.Role)
	s.NotZero(player.ID)
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	s.NotEmpty(player.PasswordHash)
	s.NotEqual("password123", player.PasswordHash)
}

func (s *ServiceSuite) TestRegisterPersistsPlayer() {
	registered, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	stored, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(registered.ID, stored.ID)
}

func (s *ServiceSuite) TestRegisterTrimsUsername() {
	player, _, err := s.service.Register(s.ctx, "  alice  ", "password123", "")
	s.Require().NoError(err)
	s.Equal("alice", player.Username)
}

func (s *ServiceSuite) TestRegisterRejectsShortUsername() {
	_, _, err := s.service.Register(s.ctx, "al", "password123", "")
	s.ErrorIs(err, ErrUsernameTooShort)
}

func (s *ServiceSuite) TestRegisterRejectsShortPassword() {
	_, _, err := s.service.Register(s.ctx, "alice", "12345", "")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateUsername() {
	_, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, "alice", "different456", "")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterWithAdminCodeGrantsAdmin() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "super-secret-admin")
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, player.Role)
}

func (s *ServiceSuite) TestRegisterWithWrongAdminCodeGrantsUser() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "wrong-code")
	s.Require().NoError(err)
	s.Equal(model.RoleUser, player.Role)
}

func (s *ServiceSuite) TestRegisterAdminCodeDisabledWhenUnconfigured() {
	service := New(s.storage, s.clock, Config{
		Secret:     "test-secret",
		BcryptCost: bcrypt.MinCost,
	}, testutil.NopLogger())

	player, _, err := service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)
	s.Equal(model.RoleUser, player.Role)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	player, token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("alice", player.Username)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, _, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "alice", "wrongpass")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginErrorsDoNotDistinguishUnknownFromWrongPassword() {
	_, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	_, _, unknownErr := s.service.Login(s.ctx, "nobody", "password123")
	_, _, wrongErr := s.service.Login(s.ctx, "alice", "wrongpass")
	s.Equal(unknownErr.Error(), wrongErr.Error())
}

func (s *ServiceSuite) TestLoginPasswordlessRecordRejected() {
	// Records created through score submission have no password
	id, err := s.storage.NextPlayerID(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:        id,
		Username:  "scoreonly",
		Role:      model.RoleUser,
		CreatedAt: s.clock.Now(),
	}))

	_, _, err = s.service.Login(s.ctx, "scoreonly", "anything")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Token tests

func (s *ServiceSuite) TestVerifyTokenRoundTrip() {
	player, token, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	claims, err := s.service.VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(player.ID, claims.ID)
	s.Equal("alice", claims.Username)
	s.Equal(model.RoleUser, claims.Role)
}

func (s *ServiceSuite) TestVerifyTokenEmpty() {
	_, err := s.service.VerifyToken("")
	s.ErrorIs(err, ErrTokenRequired)
}

func (s *ServiceSuite) TestVerifyTokenGarbage() {
	_, err := s.service.VerifyToken("not.a.token")
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *ServiceSuite) TestVerifyTokenExpired() {
	_, token, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	s.clock.Advance(7*24*time.Hour + time.Minute)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *ServiceSuite) TestVerifyTokenJustBeforeExpiry() {
	_, token, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	s.clock.Advance(7*24*time.Hour - time.Minute)

	_, err = s.service.VerifyToken(token)
	s.NoError(err)
}

func (s *ServiceSuite) TestVerifyTokenWrongSecret() {
	other := New(s.storage, s.clock, Config{
		Secret:     "different-secret",
		BcryptCost: bcrypt.MinCost,
	}, testutil.NopLogger())

	player, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)
	token, err := other.GenerateToken(player)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *ServiceSuite) TestTokenCarriesRoleAtIssueTime() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "super-secret-admin")
	s.Require().NoError(err)

	token, err := s.service.GenerateToken(player)
	s.Require().NoError(err)

	claims, err := s.service.VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, claims.Role)
}

// GetUserByID tests

func (s *ServiceSuite) TestGetUserByIDFound() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	fetched, err := s.service.GetUserByID(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Require().NotNil(fetched)
	s.Equal("alice", fetched.Username)
}

func (s *ServiceSuite) TestGetUserByIDMissingReturnsNilNil() {
	fetched, err := s.service.GetUserByID(s.ctx, model.PlayerID(9999))
	s.NoError(err)
	s.Nil(fetched)
}

// ChangePassword tests

func (s *ServiceSuite) TestChangePasswordSucceeds() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	err = s.service.ChangePassword(s.ctx, player.ID, "password123", "newpassword456")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "alice", "newpassword456")
	s.NoError(err)
	_, _, err = s.service.Login(s.ctx, "alice", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestChangePasswordWrongCurrent() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	err = s.service.ChangePassword(s.ctx, player.ID, "wrongpass", "newpassword456")
	s.ErrorIs(err, ErrWrongPassword)
}

func (s *ServiceSuite) TestChangePasswordTooShort() {
	player, _, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	err = s.service.ChangePassword(s.ctx, player.ID, "password123", "short")
	s.ErrorIs(err, ErrPasswordTooShort)
}
