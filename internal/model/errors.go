package model

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the core. Callers match them with errors.Is and
// map them onto whatever transport codes they use.
var (
	// ErrNotFound covers a missing record and empty aggregate input.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a mutation request missing a required field.
	ErrValidation = errors.New("validation failed")

	// ErrFeedUnavailable marks a failure to fetch the source feed. It
	// aborts an ingestion run before any mutation.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrStorage marks a rejected read or write from the backing store.
	ErrStorage = errors.New("storage failure")

	// ErrUpstreamUnavailable marks a failed or unparsable response from
	// the weather collaborator.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Distinguishable reasons for an empty age-statistics result. Both match
// ErrNotFound.
var (
	ErrNoLegislators = fmt.Errorf("no legislators found: %w", ErrNotFound)
	ErrNoBirthdays   = fmt.Errorf("no valid birth dates found: %w", ErrNotFound)
)

func fieldError(name string) error {
	return fmt.Errorf("missing or invalid field %s: %w", name, ErrValidation)
}
