package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/riddles-game/server/internal/api/request"
	"github.com/riddles-game/server/internal/api/response"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/riddle"
)

// RiddleHandler handles riddle CRUD endpoints
type RiddleHandler struct {
	riddleService *riddle.Service
	seedPath      string
}

// NewRiddleHandler creates a new riddle handler. seedPath is the default
// seed file for load-initial when the request names none.
func NewRiddleHandler(riddleService *riddle.Service, seedPath string) *RiddleHandler {
	return &RiddleHandler{
		riddleService: riddleService,
		seedPath:      seedPath,
	}
}

// List handles GET /riddles
func (h *RiddleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := riddle.Filter{Level: query.Get("level")}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, NewValidationError("Limit must be a number"))
			return
		}
		filter.Limit = limit
	}
	if v := query.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, NewValidationError("Skip must be a number"))
			return
		}
		filter.Skip = skip
	}

	riddles, err := h.riddleService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, len(riddles), response.RiddlesFromModel(riddles))
}

// Get handles GET /riddles/{id}
func (h *RiddleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := h.riddleService.Get(r.Context(), model.RiddleID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "", response.RiddleFromModel(found))
}

// Random handles GET /riddles/random
func (h *RiddleHandler) Random(w http.ResponseWriter, r *http.Request) {
	found, err := h.riddleService.Random(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "", response.RiddleFromModel(found))
}

// Create handles POST /riddles
func (h *RiddleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRiddleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	created, err := h.riddleService.Create(r.Context(), riddle.CreateParams{
		Question: req.Question,
		Answer:   req.Answer,
		Level:    req.Level,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Riddle created successfully", response.RiddleFromModel(created))
}

// Update handles PUT /riddles/{id}
func (h *RiddleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req request.UpdateRiddleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	updated, err := h.riddleService.Update(r.Context(), model.RiddleID(id), riddle.UpdateParams{
		Question: req.Question,
		Answer:   req.Answer,
		Level:    req.Level,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Riddle updated successfully", response.RiddleFromModel(updated))
}

// Delete handles DELETE /riddles/{id}
func (h *RiddleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.riddleService.Delete(r.Context(), model.RiddleID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Riddle deleted successfully", map[string]string{"deletedId": id})
}

// LoadInitial handles POST /riddles/load-initial
func (h *RiddleHandler) LoadInitial(w http.ResponseWriter, r *http.Request) {
	var req request.LoadInitialRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewValidationError("Invalid request body"))
			return
		}
	}

	path := req.Path
	if path == "" {
		path = h.seedPath
	}
	if path == "" {
		WriteError(w, NewValidationError("No seed file configured"))
		return
	}

	count, err := h.riddleService.LoadInitial(r.Context(), path)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Initial riddles loaded", map[string]int{"loaded": count})
}
