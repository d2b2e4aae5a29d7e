package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyDecided is returned when a registration decision is
	// attempted after the registration has left the pending state
	ErrAlreadyDecided = errors.New("registration already decided")
)
