package player

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/riddles-game/server/internal/dependencies/clock"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/stats"
	"github.com/riddles-game/server/internal/storage"
)

// Errors
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidScore     = errors.New("time to solve must be a positive number")
)

// DefaultLeaderboardLimit is used when no limit is requested
const DefaultLeaderboardLimit = 10

// Service manages player records, scores and the leaderboard
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Create adds a score-only player record (no password, user role).
// If the username is already taken the existing record is returned,
// with created=false.
func (s *Service) Create(ctx context.Context, username string) (*model.Player, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, ErrUsernameRequired
	}

	existing, err := s.storage.GetPlayerByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, false, err
	}

	id, err := s.storage.NextPlayerID(ctx)
	if err != nil {
		return nil, false, err
	}

	player := &model.Player{
		ID:        id,
		Username:  username,
		Role:      model.RoleUser,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, false, err
	}
	return player, true, nil
}

// SubmitScore records a solve time for a player, creating the player
// record on first submission
func (s *Service) SubmitScore(ctx context.Context, username string, riddleID model.RiddleID, timeToSolve int64) error {
	if timeToSolve <= 0 {
		return ErrInvalidScore
	}

	player, _, err := s.Create(ctx, username)
	if err != nil {
		return err
	}

	player.ScoreHistory = append(player.ScoreHistory, model.ScoreEntry{
		RiddleID:    riddleID,
		TimeToSolve: timeToSolve,
		SolvedAt:    s.clock.Now(),
	})

	if player.BestTime == 0 || timeToSolve < player.BestTime {
		player.BestTime = timeToSolve
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return err
	}

	s.logger.Info("score submitted",
		slog.String("username", player.Username),
		slog.String("riddle_id", string(riddleID)),
		slog.Int64("time_to_solve", timeToSolve),
	)
	return nil
}

// LeaderboardEntry is one row of the leaderboard
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Username      string `json:"username"`
	BestTime      int64  `json:"best_time"`
	RiddlesSolved int    `json:"riddles_solved"`
}

// Leaderboard returns players ranked by best time ascending.
// Players who never submitted a score are excluded.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	scored := players[:0]
	for _, p := range players {
		if p.BestTime > 0 {
			scored = append(scored, p)
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].BestTime != scored[j].BestTime {
			return scored[i].BestTime < scored[j].BestTime
		}
		return scored[i].Username < scored[j].Username
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	entries := make([]LeaderboardEntry, len(scored))
	for i, p := range scored {
		entries[i] = LeaderboardEntry{
			Rank:          i + 1,
			Username:      p.Username,
			BestTime:      p.BestTime,
			RiddlesSolved: p.RiddlesSolved(),
		}
	}
	return entries, nil
}

// Stats computes the full stats for a player
func (s *Service) Stats(ctx context.Context, username string) (stats.PlayerStats, error) {
	player, err := s.storage.GetPlayerByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return stats.PlayerStats{}, err
	}
	return stats.Compute(player), nil
}

// ListAll returns every player record, ordered by id
func (s *Service) ListAll(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}
