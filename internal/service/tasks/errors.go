// Package tasks implements the task retrieval and lifecycle core: the
// query planner that turns a list request into one bounded seek query, and
// the lifecycle manager that enforces ownership and field invariants on
// writes.
package tasks

import "errors"

// Planner input errors.
var (
	// ErrInvalidFilter is returned when a priority filter falls outside
	// the valid priority domain or a status filter is not an enumerated
	// status.
	ErrInvalidFilter = errors.New("filter out of range")

	// ErrInvalidLimit is returned when an explicitly supplied limit is
	// non-positive. Limits above the maximum are clamped, not rejected.
	ErrInvalidLimit = errors.New("limit must be positive")
)
