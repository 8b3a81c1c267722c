package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Profile:
		o.printProfile(v)
	case ValidateResult:
		o.printValidateResult(v)
	case Riddle:
		o.printRiddle(v)
	case []Riddle:
		o.printRiddles(v)
	case []User:
		o.printUsers(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Profile response type
type Profile struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	TokenExpiry time.Time `json:"tokenExpiry"`
}

// ValidateResult response type
type ValidateResult struct {
	Valid     bool      `json:"valid"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Riddle response type
type Riddle struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreEntry response type
type ScoreEntry struct {
	RiddleID    string    `json:"riddle_id"`
	TimeToSolve int64     `json:"time_to_solve"`
	SolvedAt    time.Time `json:"solved_at"`
}

// PlayerStats response type
type PlayerStats struct {
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"created_at"`
	RiddlesSolved int       `json:"riddles_solved"`

	BestTime        *int64       `json:"best_time,omitempty"`
	TotalTime       *int64       `json:"total_time,omitempty"`
	AverageTime     *float64     `json:"average_time,omitempty"`
	DetailedHistory []ScoreEntry `json:"detailed_history,omitempty"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Username      string `json:"username"`
	BestTime      int64  `json:"best_time"`
	RiddlesSolved int    `json:"riddles_solved"`
}

// HealthResult response type
type HealthResult struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (id %d)\n", u.Username, u.ID)
	fmt.Printf("Role: %s\n", u.Role)
	fmt.Printf("Created: %s\n", u.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printUsers(users []User) {
	fmt.Printf("Players (%d):\n", len(users))
	for _, u := range users {
		fmt.Printf("  %4d  %-20s %s\n", u.ID, u.Username, u.Role)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("User: %s (id %d)\n", p.Username, p.ID)
	fmt.Printf("Role: %s\n", p.Role)
	fmt.Printf("Token expires: %s\n", p.TokenExpiry.Format(time.RFC3339))
}

func (o *Output) printValidateResult(v ValidateResult) {
	if v.Valid {
		fmt.Println("Token is valid")
	} else {
		fmt.Println("Token is invalid")
	}
	fmt.Printf("User: %s (%s)\n", v.User.Username, v.User.Role)
	fmt.Printf("Expires: %s\n", v.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printRiddle(r Riddle) {
	fmt.Printf("Riddle: %s [%s]\n", r.ID, r.Level)
	fmt.Printf("Q: %s\n", r.Question)
	if r.Answer != "" {
		fmt.Printf("A: %s\n", r.Answer)
	}
}

func (o *Output) printRiddles(riddles []Riddle) {
	fmt.Printf("Riddles (%d):\n", len(riddles))
	for _, r := range riddles {
		fmt.Printf("  %s [%-6s] %s\n", r.ID, r.Level, r.Question)
	}
}

func (o *Output) printPlayerStats(s PlayerStats) {
	fmt.Printf("Player: %s\n", s.Username)
	fmt.Printf("Member since: %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Riddles solved: %d\n", s.RiddlesSolved)

	if s.BestTime != nil {
		fmt.Printf("Best time: %dms\n", *s.BestTime)
	}
	if s.TotalTime != nil {
		fmt.Printf("Total time: %dms\n", *s.TotalTime)
	}
	if s.AverageTime != nil {
		fmt.Printf("Average time: %.1fms\n", *s.AverageTime)
	}
	if len(s.DetailedHistory) > 0 {
		fmt.Printf("History (%d):\n", len(s.DetailedHistory))
		for _, e := range s.DetailedHistory {
			fmt.Printf("  %s  %dms  %s\n", e.RiddleID, e.TimeToSolve, e.SolvedAt.Format(time.RFC3339))
		}
	}
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	fmt.Println("Leaderboard:")
	for _, e := range entries {
		fmt.Printf("  %2d. %-20s best %dms (%d solved)\n", e.Rank, e.Username, e.BestTime, e.RiddlesSolved)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Uptime: %.0fs\n", h.Uptime)
}
