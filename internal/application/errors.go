package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound  = errors.New("not found")
	ErrEphemeris = errors.New("ephemeris failure")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EphemerisError represents a failure reported by an ephemeris provider.
// It is never recovered from inside the engine.
type EphemerisError struct {
	Provider string
	Op       string
	Err      error
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("ephemeris %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *EphemerisError) Unwrap() error {
	return e.Err
}

func (e *EphemerisError) Is(target error) bool {
	return target == ErrEphemeris
}
