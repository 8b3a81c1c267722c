package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

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
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	player, created, err := s.service.Create(s.ctx, "alice")
	s.Require().NoError(err)

	s.True(created)
	s.Equal("alice", player.Username)
	s.Equal(model.RoleUser, player.Role)
	s.Empty(player.PasswordHash)
	s.NotZero(player.ID)
}

func (s *ServiceSuite) TestCreateIsIdempotent() {
	first, created, err := s.service.Create(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(created)

	second, created, err := s.service.Create(s.ctx, "alice")
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)
}

func (s *ServiceSuite) TestCreateTrimsUsername() {
	player, _, err := s.service.Create(s.ctx, "  alice  ")
	s.Require().NoError(err)
	s.Equal("alice", player.Username)
}

func (s *ServiceSuite) TestCreateRequiresUsername() {
	_, _, err := s.service.Create(s.ctx, "   ")
	s.ErrorIs(err, ErrUsernameRequired)
}

// SubmitScore tests

func (s *ServiceSuite) TestSubmitScoreCreatesPlayer() {
	err := s.service.SubmitScore(s.ctx, "alice", "r_abc", 5000)
	s.Require().NoError(err)

	player, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(5000), player.BestTime)
	s.Require().Len(player.ScoreHistory, 1)
	s.Equal(model.RiddleID("r_abc"), player.ScoreHistory[0].RiddleID)
	s.Equal(s.clock.Now(), player.ScoreHistory[0].SolvedAt)
}

func (s *ServiceSuite) TestSubmitScoreAppendsHistory() {
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_abc", 5000))
	s.clock.Advance(time.Hour)
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_def", 3000))

	player, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(player.ScoreHistory, 2)
}

func (s *ServiceSuite) TestSubmitScoreUpdatesBestTimeOnlyWhenFaster() {
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_abc", 5000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_def", 3000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_ghi", 9000))

	player, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(3000), player.BestTime)
}

func (s *ServiceSuite) TestSubmitScoreRejectsNonPositiveTime() {
	s.ErrorIs(s.service.SubmitScore(s.ctx, "alice", "r_abc", 0), ErrInvalidScore)
	s.ErrorIs(s.service.SubmitScore(s.ctx, "alice", "r_abc", -100), ErrInvalidScore)
}

func (s *ServiceSuite) TestSubmitScoreRequiresUsername() {
	s.ErrorIs(s.service.SubmitScore(s.ctx, "", "r_abc", 1000), ErrUsernameRequired)
}

// Leaderboard tests

func (s *ServiceSuite) TestLeaderboardRanksByBestTimeAscending() {
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_1", 5000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "bob", "r_1", 3000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "carol", "r_1", 7000))

	entries, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal(1, entries[0].Rank)
	s.Equal("bob", entries[0].Username)
	s.Equal("alice", entries[1].Username)
	s.Equal("carol", entries[2].Username)
}

func (s *ServiceSuite) TestLeaderboardExcludesScorelessPlayers() {
	_, _, err := s.service.Create(s.ctx, "idle")
	s.Require().NoError(err)
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_1", 5000))

	entries, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("alice", entries[0].Username)
}

func (s *ServiceSuite) TestLeaderboardAppliesLimit() {
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_1", 5000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "bob", "r_1", 3000))

	entries, err := s.service.Leaderboard(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("bob", entries[0].Username)
}

func (s *ServiceSuite) TestLeaderboardTiesBrokenByUsername() {
	s.Require().NoError(s.service.SubmitScore(s.ctx, "zed", "r_1", 5000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "amy", "r_1", 5000))

	entries, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("amy", entries[0].Username)
	s.Equal("zed", entries[1].Username)
}

func (s *ServiceSuite) TestLeaderboardEmpty() {
	entries, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Stats tests

func (s *ServiceSuite) TestStatsComputesAggregates() {
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_1", 4000))
	s.Require().NoError(s.service.SubmitScore(s.ctx, "alice", "r_2", 6000))

	stats, err := s.service.Stats(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal("alice", stats.Username)
	s.Equal(2, stats.RiddlesSolved)
	s.Equal(int64(4000), stats.BestTime)
	s.Equal(int64(10000), stats.TotalTime)
	s.InDelta(5000.0, stats.AverageTime, 0.001)
	s.Len(stats.DetailedHistory, 2)
}

func (s *ServiceSuite) TestStatsMissingPlayer() {
	_, err := s.service.Stats(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// ListAll tests

func (s *ServiceSuite) TestListAllOrderedByID() {
	first, _, err := s.service.Create(s.ctx, "alice")
	s.Require().NoError(err)
	second, _, err := s.service.Create(s.ctx, "bob")
	s.Require().NoError(err)

	players, err := s.service.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(first.ID, players[0].ID)
	s.Equal(second.ID, players[1].ID)
}
