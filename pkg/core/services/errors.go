package services

import "errors"

// Hard caller errors. The engine itself never errors on bad domain data
// (that resolves to zero scores); these cover the cases where the request
// itself is wrong.
var (
	// ErrProfileNotFound is returned when no preference profile exists for
	// the requested driver
	ErrProfileNotFound = errors.New("driver preference profile not found")

	// ErrNoOccurrences is returned when the occurrence pool is empty and
	// there is nothing to match against
	ErrNoOccurrences = errors.New("no unassigned occurrences available")

	// ErrInvalidArgument is returned when a threshold or strategy name in
	// the request itself is malformed
	ErrInvalidArgument = errors.New("invalid argument")
)
