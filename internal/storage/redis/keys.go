package redis

import (
	"fmt"

	"github.com/riddles-game/server/internal/model"
)

// Key prefix for all riddles-server data
const keyPrefix = "riddles"

// playerIDCounterKey returns the Redis key for the player id sequence
func playerIDCounterKey() string {
	return fmt.Sprintf("%s:seq:player_id", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// riddleKey returns the Redis key for a Riddle
func riddleKey(id model.RiddleID) string {
	return fmt.Sprintf("%s:riddle:%s", keyPrefix, id)
}

// riddlesIndexKey returns the Redis key for the SET of all riddle ids
func riddlesIndexKey() string {
	return fmt.Sprintf("%s:idx:riddles", keyPrefix)
}
