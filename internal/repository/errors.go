package repository

import "errors"

// Common repository errors
var (
	// ErrDuplicateUsername is returned when a username is already taken
	ErrDuplicateUsername = errors.New("username already exists")
)
