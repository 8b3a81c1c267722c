package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrUsernameExists = errors.New("username already exists")

	// Riddle errors
	ErrRiddleNotFound = errors.New("riddle not found")
	ErrNoRiddles      = errors.New("no riddles found in database")
	ErrInvalidLevel   = errors.New("invalid difficulty level")
)
