package storage

import (
	"context"

	"github.com/riddles-game/server/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	NextPlayerID(ctx context.Context) (model.PlayerID, error)
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Riddle operations
	SaveRiddle(ctx context.Context, riddle *model.Riddle) error
	GetRiddle(ctx context.Context, id model.RiddleID) (*model.Riddle, error)
	ListRiddles(ctx context.Context) ([]*model.Riddle, error)
	CountRiddles(ctx context.Context) (int, error)
	DeleteRiddle(ctx context.Context, id model.RiddleID) error
}
