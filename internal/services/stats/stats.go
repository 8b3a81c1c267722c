package stats

import (
	"errors"
	"time"

	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
)

// ErrAuthRequired is returned when no identity at all is attached to the
// request. Routes serving player stats run optional authentication, so a
// caller without even a guest identity means the route was miswired or the
// client hit it anonymously where that is not allowed.
var ErrAuthRequired = errors.New("authentication required to view player information")

// PlayerStats is the full derived projection of a player record.
// Computed on demand, never persisted.
type PlayerStats struct {
	Username        string
	CreatedAt       time.Time
	RiddlesSolved   int
	BestTime        int64
	TotalTime       int64
	AverageTime     float64
	DetailedHistory []model.ScoreEntry
}

// View is the response shape for the stats endpoint. Basic fields are
// always present; extended fields only when the visibility policy grants
// them.
type View struct {
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"created_at"`
	RiddlesSolved int       `json:"riddles_solved"`

	BestTime        *int64             `json:"best_time,omitempty"`
	TotalTime       *int64             `json:"total_time,omitempty"`
	AverageTime     *float64           `json:"average_time,omitempty"`
	DetailedHistory []model.ScoreEntry `json:"detailed_history,omitempty"`
}

// Compute derives the full stats for a player
func Compute(p *model.Player) PlayerStats {
	var total int64
	for _, entry := range p.ScoreHistory {
		total += entry.TimeToSolve
	}

	var average float64
	if len(p.ScoreHistory) > 0 {
		average = float64(total) / float64(len(p.ScoreHistory))
	}

	history := make([]model.ScoreEntry, len(p.ScoreHistory))
	copy(history, p.ScoreHistory)

	return PlayerStats{
		Username:        p.Username,
		CreatedAt:       p.CreatedAt,
		RiddlesSolved:   len(p.ScoreHistory),
		BestTime:        p.BestTime,
		TotalTime:       total,
		AverageTime:     average,
		DetailedHistory: history,
	}
}

// Project applies the visibility policy: admins and players viewing their
// own profile get the extended fields, everyone else (guests included)
// gets the basic projection. A nil caller is refused outright.
func Project(caller *auth.Identity, target string, full PlayerStats) (View, error) {
	if caller == nil {
		return View{}, ErrAuthRequired
	}

	view := View{
		Username:      full.Username,
		CreatedAt:     full.CreatedAt,
		RiddlesSolved: full.RiddlesSolved,
	}

	if caller.Role == model.RoleAdmin || caller.Username == target {
		best := full.BestTime
		total := full.TotalTime
		average := full.AverageTime
		view.BestTime = &best
		view.TotalTime = &total
		view.AverageTime = &average
		view.DetailedHistory = full.DetailedHistory
	}

	return view, nil
}
