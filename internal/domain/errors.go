// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific validation failures wrap this error.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when a task status change is not
	// permitted by the status state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)
