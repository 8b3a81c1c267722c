package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/riddles-game/server/internal/api/middleware"
	"github.com/riddles-game/server/internal/api/request"
	"github.com/riddles-game/server/internal/api/response"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/player"
	"github.com/riddles-game/server/internal/services/stats"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// Create handles POST /players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	created, isNew, err := h.playerService.Create(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !isNew {
		response.Success(w, http.StatusOK, "Player already exists", response.UserFromModel(created))
		return
	}
	response.Success(w, http.StatusCreated, "Player created successfully", response.UserFromModel(created))
}

// Stats handles GET /players/{username}. The response shape depends on
// who is asking: admins and owners get the extended fields.
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	caller := middleware.GetIdentity(r.Context())

	full, err := h.playerService.Stats(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := stats.Project(caller, username, full)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "", view)
}

// SubmitScore handles POST /players/submit-score
func (h *PlayerHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	if req.Username == "" || req.RiddleID == "" || req.TimeToSolve == 0 {
		WriteError(w, NewValidationError("Missing required fields: username, riddleId, timeToSolve"))
		return
	}

	if err := h.playerService.SubmitScore(r.Context(), req.Username, model.RiddleID(req.RiddleID), req.TimeToSolve); err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Score submitted successfully", nil)
}

// Leaderboard handles GET /players/leaderboard
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, NewValidationError("Limit must be a number"))
			return
		}
		limit = parsed
	}

	entries, err := h.playerService.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "", entries)
}

// List handles GET /players (admin only, enforced by the router)
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListAll(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	users := make([]response.User, len(players))
	for i, p := range players {
		users[i] = response.UserFromModel(p)
	}
	response.Success(w, http.StatusOK, "", users)
}
