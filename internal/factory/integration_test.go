package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
	"github.com/riddles-game/server/internal/services/stats"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: full account and play flow from registration to the leaderboard
func (s *IntegrationSuite) TestCompletePlayFlow() {
	riddles, err := s.app.SeedRiddles()
	s.Require().NoError(err)
	s.Require().Len(riddles, 5)

	// Two players register
	alice, aliceToken, err := s.app.AuthService.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)
	_, _, err = s.app.AuthService.Register(s.ctx, "bob", "password123", "")
	s.Require().NoError(err)

	// Alice's token verifies and carries her identity
	claims, err := s.app.AuthService.VerifyToken(aliceToken)
	s.Require().NoError(err)
	s.Equal(alice.ID, claims.ID)
	s.Equal(model.RoleUser, claims.Role)

	// Both solve the first riddle, bob faster
	target := riddles[0]
	s.Require().NoError(s.app.PlayerService.SubmitScore(s.ctx, "alice", target.ID, 8000))
	s.app.MockClock.Advance(time.Minute)
	s.Require().NoError(s.app.PlayerService.SubmitScore(s.ctx, "bob", target.ID, 4500))

	// Alice improves on another riddle
	s.Require().NoError(s.app.PlayerService.SubmitScore(s.ctx, "alice", riddles[1].ID, 3000))

	// Leaderboard ranks alice first on her improved best
	entries, err := s.app.PlayerService.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("alice", entries[0].Username)
	s.Equal(int64(3000), entries[0].BestTime)
	s.Equal(2, entries[0].RiddlesSolved)
	s.Equal("bob", entries[1].Username)

	// Stats projection: bob only sees alice's basic fields
	full, err := s.app.PlayerService.Stats(s.ctx, "alice")
	s.Require().NoError(err)

	bobIdentity := &auth.Identity{ID: 2, Username: "bob", Role: model.RoleUser}
	bobView, err := stats.Project(bobIdentity, "alice", full)
	s.Require().NoError(err)
	s.Equal(2, bobView.RiddlesSolved)
	s.Nil(bobView.BestTime)

	aliceIdentity := &auth.Identity{ID: alice.ID, Username: "alice", Role: model.RoleUser}
	aliceView, err := stats.Project(aliceIdentity, "alice", full)
	s.Require().NoError(err)
	s.Require().NotNil(aliceView.BestTime)
	s.Equal(int64(3000), *aliceView.BestTime)
}

// Test: admin registration through the configured code
func (s *IntegrationSuite) TestAdminRegistrationFlow() {
	admin, _, err := s.app.AuthService.Register(s.ctx, "root", "password123", "test-admin-code")
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, admin.Role)

	// The stored record carries the elevated role
	stored, err := s.app.Storage.GetPlayerByUsername(s.ctx, "root")
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, stored.Role)
}

// Test: token expiry follows the mocked clock
func (s *IntegrationSuite) TestTokenExpiryFlow() {
	_, token, err := s.app.AuthService.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	s.app.MockClock.Advance(6 * 24 * time.Hour)
	_, err = s.app.AuthService.VerifyToken(token)
	s.NoError(err)

	s.app.MockClock.Advance(2 * 24 * time.Hour)
	_, err = s.app.AuthService.VerifyToken(token)
	s.Error(err)
}
