package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/riddles-game/server/internal/api/middleware"
	"github.com/riddles-game/server/internal/api/request"
	"github.com/riddles-game/server/internal/api/response"
	"github.com/riddles-game/server/internal/services/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Password, req.AdminCode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", response.AuthData{
		User:  response.UserFromModel(user),
		Token: token,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", response.AuthData{
		User:  response.UserFromModel(user),
		Token: token,
	})
}

// Profile handles GET /auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		WriteError(w, NewInternalError())
		return
	}

	response.Success(w, http.StatusOK, "", response.ProfileData{
		ID:          int64(identity.ID),
		Username:    identity.Username,
		Role:        string(identity.Role),
		TokenExpiry: claims.ExpiresAt.Time,
	})
}

// Validate handles POST /auth/validate
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		WriteError(w, NewInternalError())
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), identity.ID)
	if err != nil || user == nil {
		WriteError(w, NewInternalError())
		return
	}

	response.Success(w, http.StatusOK, "", response.ValidateData{
		Valid:     true,
		User:      response.UserFromModel(user),
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// Logout handles POST /auth/logout. Tokens are stateless so there is
// nothing to revoke server side; the endpoint exists for audit logging
// and client symmetry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	h.logger.Info("user logged out", slog.String("username", identity.Username))

	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

// ChangePassword handles PUT /auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		WriteError(w, NewValidationError("Current password and new password are required"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		WriteError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}
