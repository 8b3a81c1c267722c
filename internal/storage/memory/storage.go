package memory

import (
	"context"
	"sync"

	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	nextPlayerID  model.PlayerID
	players       map[model.PlayerID]*model.Player
	usernameIndex map[string]model.PlayerID
	riddles       map[model.RiddleID]*model.Riddle
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		usernameIndex: make(map[string]model.PlayerID),
		riddles:       make(map[model.RiddleID]*model.Riddle),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPlayerID++
	return s.nextPlayerID, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	s.usernameIndex[player.Username] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player, ok := s.players[id]; ok {
		delete(s.usernameIndex, player.Username)
	}
	delete(s.players, id)
	return nil
}

// Riddle operations

func (s *Storage) SaveRiddle(ctx context.Context, riddle *model.Riddle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riddles[riddle.ID] = riddle
	return nil
}

func (s *Storage) GetRiddle(ctx context.Context, id model.RiddleID) (*model.Riddle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	riddle, ok := s.riddles[id]
	if !ok {
		return nil, model.ErrRiddleNotFound
	}
	return riddle, nil
}

func (s *Storage) ListRiddles(ctx context.Context) ([]*model.Riddle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	riddles := make([]*model.Riddle, 0, len(s.riddles))
	for _, r := range s.riddles {
		riddles = append(riddles, r)
	}
	return riddles, nil
}

func (s *Storage) CountRiddles(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.riddles), nil
}

func (s *Storage) DeleteRiddle(ctx context.Context, id model.RiddleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.riddles[id]; !ok {
		return model.ErrRiddleNotFound
	}
	delete(s.riddles, id)
	return nil
}
