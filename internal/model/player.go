package model

import "time"

// PlayerID uniquely identifies a player across the system.
// IDs are integers allocated by storage so they can be embedded in tokens.
type PlayerID int64

// ScoreEntry records one solved riddle
type ScoreEntry struct {
	RiddleID    RiddleID  `json:"riddle_id"`
	TimeToSolve int64     `json:"time_to_solve"` // milliseconds
	SolvedAt    time.Time `json:"solved_at"`
}

// Player represents a registered user or a score-only player record.
// Players created through score submission have no password hash and
// cannot log in until they register properly.
type Player struct {
	ID           PlayerID     `json:"id"`
	Username     string       `json:"username"` // unique, immutable
	PasswordHash string       `json:"-"`        // bcrypt hash, empty for score-only records
	Role         Role         `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	BestTime     int64        `json:"best_time"` // milliseconds, 0 = no score yet
	ScoreHistory []ScoreEntry `json:"score_history"`
}

// RiddlesSolved is the number of scores the player has submitted
func (p *Player) RiddlesSolved() int {
	return len(p.ScoreHistory)
}
