package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) NextPlayerID(ctx context.Context) (model.PlayerID, error) {
	id, err := s.client.Incr(ctx, playerIDCounterKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.PlayerID(id), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline keeps the record, username index and member set consistent
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(player.Username), int64(player.ID), 0)
	pipe.SAdd(ctx, playersIndexKey(), int64(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, idStr := range ids {
		data, err := s.client.Get(ctx, keyPrefix+":player:"+idStr).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Stale index entry, skip
				continue
			}
			return nil, err
		}

		var player model.Player
		if err := json.Unmarshal(data, &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.Del(ctx, usernameIndexKey(player.Username))
	pipe.SRem(ctx, playersIndexKey(), int64(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Riddle operations

func (s *Storage) SaveRiddle(ctx context.Context, riddle *model.Riddle) error {
	data, err := json.Marshal(riddle)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, riddleKey(riddle.ID), data, 0)
	pipe.SAdd(ctx, riddlesIndexKey(), string(riddle.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRiddle(ctx context.Context, id model.RiddleID) (*model.Riddle, error) {
	data, err := s.client.Get(ctx, riddleKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRiddleNotFound
		}
		return nil, err
	}

	var riddle model.Riddle
	if err := json.Unmarshal(data, &riddle); err != nil {
		return nil, err
	}
	return &riddle, nil
}

func (s *Storage) ListRiddles(ctx context.Context) ([]*model.Riddle, error) {
	ids, err := s.client.SMembers(ctx, riddlesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	riddles := make([]*model.Riddle, 0, len(ids))
	for _, id := range ids {
		riddle, err := s.GetRiddle(ctx, model.RiddleID(id))
		if err != nil {
			if errors.Is(err, model.ErrRiddleNotFound) {
				// Stale index entry, skip
				continue
			}
			return nil, err
		}
		riddles = append(riddles, riddle)
	}
	return riddles, nil
}

func (s *Storage) CountRiddles(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, riddlesIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Storage) DeleteRiddle(ctx context.Context, id model.RiddleID) error {
	pipe := s.client.Pipeline()
	delCmd := pipe.Del(ctx, riddleKey(id))
	pipe.SRem(ctx, riddlesIndexKey(), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	if delCmd.Val() == 0 {
		return model.ErrRiddleNotFound
	}
	return nil
}
