package response

import (
	"time"

	"github.com/riddles-game/server/internal/model"
)

// User is the public projection of a player record. The password hash
// never appears in responses.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel converts a model.Player to its public projection
func UserFromModel(p *model.Player) User {
	return User{
		ID:        int64(p.ID),
		Username:  p.Username,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
}

// AuthData is the data payload for register and login responses
type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProfileData is the data payload for the profile endpoint
type ProfileData struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	TokenExpiry time.Time `json:"tokenExpiry"`
}

// ValidateData is the data payload for the token validation endpoint
type ValidateData struct {
	Valid     bool      `json:"valid"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Riddle is the response shape for a riddle
type Riddle struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// RiddleFromModel converts a model.Riddle
func RiddleFromModel(r *model.Riddle) Riddle {
	return Riddle{
		ID:        string(r.ID),
		Question:  r.Question,
		Answer:    r.Answer,
		Level:     r.Level,
		CreatedAt: r.CreatedAt,
	}
}

// RiddlesFromModel converts a slice of riddles
func RiddlesFromModel(riddles []*model.Riddle) []Riddle {
	out := make([]Riddle, len(riddles))
	for i, r := range riddles {
		out[i] = RiddleFromModel(r)
	}
	return out
}
