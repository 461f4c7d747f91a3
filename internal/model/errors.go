package model

import "errors"

// Common errors used across the application
var (
	// ErrAccountNotFound is returned when no account exists for a username
	ErrAccountNotFound = errors.New("account not found")

	// ErrUsernameExists is returned when registering an already-taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidInput is returned when a required field is missing or
	// malformed. Wrap it with the offending field for context.
	ErrInvalidInput = errors.New("invalid input")
)
