package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the request body for changing a password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateRiddleRequest is the request body for creating a riddle
type CreateRiddleRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Level    string `json:"level,omitempty"`
}

// UpdateRiddleRequest is the request body for updating a riddle.
// Empty fields are left unchanged.
type UpdateRiddleRequest struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Level    string `json:"level,omitempty"`
}

// LoadInitialRequest is the request body for seeding riddles.
// Path is optional; the server falls back to its configured seed file.
type LoadInitialRequest struct {
	Path string `json:"path,omitempty"`
}

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	Username string `json:"username"`
}

// SubmitScoreRequest is the request body for submitting a score
type SubmitScoreRequest struct {
	Username    string `json:"username"`
	RiddleID    string `json:"riddleId"`
	TimeToSolve int64  `json:"timeToSolve"`
}
