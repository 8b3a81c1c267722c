package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
	"github.com/riddles-game/server/internal/services/player"
	"github.com/riddles-game/server/internal/services/riddle"
	"github.com/riddles-game/server/internal/services/stats"
)

// ErrorBody is the error payload inside the envelope
type ErrorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Details    string `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// httpError combines an HTTP status code with a client-safe message
type httpError struct {
	status  int
	message string
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response envelope to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorBody{Message: he.message, StatusCode: he.status},
	})
}

// toHTTPError converts an error to an httpError. Domain errors keep their
// message; anything unrecognized becomes a generic 500 so internal detail
// never reaches the client.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation errors
	case errors.Is(err, auth.ErrUsernameTooShort):
		return &httpError{http.StatusBadRequest, "Username must be at least 3 characters long"}
	case errors.Is(err, auth.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, "Password must be at least 6 characters long"}
	case errors.Is(err, riddle.ErrQuestionRequired):
		return &httpError{http.StatusBadRequest, "Question is required"}
	case errors.Is(err, riddle.ErrAnswerRequired):
		return &httpError{http.StatusBadRequest, "Answer is required"}
	case errors.Is(err, player.ErrUsernameRequired):
		return &httpError{http.StatusBadRequest, "Username is required"}
	case errors.Is(err, player.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, "Time to solve must be a positive number"}
	case errors.Is(err, model.ErrInvalidLevel):
		return &httpError{http.StatusBadRequest, "Level must be easy, medium or hard"}

	// Auth errors. The invalid-credentials message is shared between
	// unknown-user and wrong-password on purpose.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid username or password"}
	case errors.Is(err, auth.ErrTokenRequired):
		return &httpError{http.StatusUnauthorized, "Authentication token is required"}
	case errors.Is(err, auth.ErrTokenExpired):
		return &httpError{http.StatusUnauthorized, "Token has expired"}
	case errors.Is(err, auth.ErrTokenInvalid):
		return &httpError{http.StatusUnauthorized, "Invalid token"}
	case errors.Is(err, auth.ErrWrongPassword):
		return &httpError{http.StatusUnauthorized, "Current password is incorrect"}
	case errors.Is(err, stats.ErrAuthRequired):
		return &httpError{http.StatusUnauthorized, "Authentication required to view player information"}

	// Conflict errors
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, "Username already exists"}

	// Not found errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found"}
	case errors.Is(err, model.ErrRiddleNotFound):
		return &httpError{http.StatusNotFound, "Riddle not found"}
	case errors.Is(err, model.ErrNoRiddles):
		return &httpError{http.StatusNotFound, "No riddles found in database"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewValidationError creates a 400 error with the given message
func NewValidationError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewAuthError creates a 401 error with the given message
func NewAuthError(message string) error {
	return &httpError{http.StatusUnauthorized, message}
}

// NewForbiddenError creates a 403 error with the given message
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, message}
}

// NewNotFoundError creates a 404 error with the given message
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, message}
}

// NewInternalError creates a generic 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
