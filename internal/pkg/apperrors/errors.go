package apperrors

import "errors"

// Standard application errors
var (
	// ErrNotFound is returned when a requested file or resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when caller-supplied input (flags, ids, config values) is invalid.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrExternalServiceFailure is returned when an interaction with a remote host fails.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("operation timed out")

	// ErrInternal is returned for unexpected internal system errors (I/O, encoding).
	ErrInternal = errors.New("internal system error")
)
