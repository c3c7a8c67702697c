package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate = errors.New("invalid calendar date")
	ErrInvalidTime = errors.New("invalid time of day")
	ErrNonFinite   = errors.New("non-finite angle")
)

// InvariantError is raised (as a panic value) when classification math produces a value
// outside its guaranteed range. It always indicates a bug, never bad input.
type InvariantError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s = %d, want [%d,%d]", e.Name, e.Value, e.Min, e.Max)
}

func mustRange(name string, v, lo, hi int) int {
	if v < lo || v > hi {
		panic(&InvariantError{Name: name, Value: v, Min: lo, Max: hi})
	}
	return v
}
