package service

import (
	"errors"
	"fmt"

	"github.com/avoronkov/trackdeck/internal/repository"
)

var (
	// ErrValidation indicates a request that can never succeed as stated
	// (bad hours, wrong scope, cross-epic target). Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a missing epic, work item, person, or
	// assignment. Never retried.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a concurrent-modification race on the same
	// source assignment. Retried exactly once against a re-read source.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrUpstream indicates the assignment store is unavailable or timed
	// out. During rollups it degrades a field; during a reallocation it
	// aborts and rolls back.
	ErrUpstream = errors.New("assignment store unavailable")
)

// notFound translates a repository lookup miss into the service taxonomy,
// passing other errors through unchanged.
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
