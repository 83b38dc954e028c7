package models

import "errors"

// Callers match these with errors.Is; services wrap them with a message
// meant for the client, e.g. fmt.Errorf("%w: title is required", ErrValidation).
var (
	// missing or empty required input
	ErrValidation = errors.New("validation error")

	// uniqueness violation, e.g. email already registered
	ErrConflict = errors.New("conflict")

	// missing or invalid credentials or token
	ErrUnauthorized = errors.New("unauthorized")

	// repository miss
	ErrNotFound = errors.New("not found")
)
