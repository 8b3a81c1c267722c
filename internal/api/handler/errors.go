package handler

import (
	"net/http"

	"github.com/riddles-game/server/internal/api/apierr"
)

// Thin re-exports from apierr so handlers read without the extra import

// WriteError writes an error envelope to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewValidationError creates a 400 error with the given message
func NewValidationError(message string) error {
	return apierr.NewValidationError(message)
}

// NewNotFoundError creates a 404 error with the given message
func NewNotFoundError(message string) error {
	return apierr.NewNotFoundError(message)
}

// NewInternalError creates a generic 500 error
func NewInternalError() error {
	return apierr.NewInternalError()
}
