package handler

import (
	"net/http"
	"time"

	"github.com/riddles-game/server/internal/api/response"
)

// RootHandler serves the welcome and health endpoints
type RootHandler struct {
	startedAt time.Time
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{startedAt: time.Now()}
}

// Welcome handles GET /
func (h *RootHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Riddles Server!",
		"endpoints": map[string][]string{
			"auth": {
				"POST /auth/register - Register a new user",
				"POST /auth/login - Log in",
				"GET /auth/profile - Current user profile",
				"POST /auth/validate - Validate current token",
				"POST /auth/logout - Log out",
				"PUT /auth/change-password - Change password",
			},
			"riddles": {
				"GET /riddles - Get all riddles",
				"GET /riddles/random - Get random riddle",
				"GET /riddles/{id} - Get riddle by ID",
				"POST /riddles - Create new riddle",
				"PUT /riddles/{id} - Update riddle",
				"DELETE /riddles/{id} - Delete riddle",
				"POST /riddles/load-initial - Load initial riddles",
			},
			"players": {
				"GET /players - Get all players",
				"GET /players/leaderboard - Get leaderboard",
				"POST /players - Create player",
				"GET /players/{username} - Get player stats",
				"POST /players/submit-score - Submit score",
			},
			"system": {
				"GET /health - Health check",
			},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health handles GET /health
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"uptime":    time.Since(h.startedAt).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
