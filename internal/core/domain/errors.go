package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoText indicates a preview was requested for empty text.
	ErrNoText = errors.New("no text to preview")

	// ErrControllerClosed indicates the preview controller has been torn down.
	ErrControllerClosed = errors.New("preview controller closed")
)
