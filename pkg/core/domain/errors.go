package domain

import "errors"

// Failure kinds surfaced by services and mapped to HTTP statuses at the
// handler boundary with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
)
