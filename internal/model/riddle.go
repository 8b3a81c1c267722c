package model

import "time"

// RiddleID uniquely identifies a riddle
type RiddleID string

// Difficulty levels for riddles
const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

// ValidLevel reports whether the level is one of the known difficulty levels
func ValidLevel(level string) bool {
	switch level {
	case LevelEasy, LevelMedium, LevelHard:
		return true
	}
	return false
}

// Riddle is a single question/answer pair
type Riddle struct {
	ID        RiddleID  `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Level     string    `json:"level"` // easy, medium or hard
	CreatedAt time.Time `json:"created_at"`
}
