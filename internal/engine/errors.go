package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownPet is returned by World commands addressed to a pet that does
// not exist (or was already removed).
var ErrUnknownPet = errors.New("engine: unknown pet")

// ErrWorldFull is returned by Spawn when the pet limit is reached.
var ErrWorldFull = errors.New("engine: pet limit reached")

// EmptyEligibleSetError reports that no non-hidden behavior could be chosen.
// The selector recovers by returning the neutral behavior alongside it.
type EmptyEligibleSetError struct {
	After string // behavior that had just completed
}

func (e *EmptyEligibleSetError) Error() string {
	return fmt.Sprintf("engine: no eligible behavior after %q, falling back to neutral", e.After)
}

// InvalidStateTransition is the panic value raised when the motion state
// machine is asked to do something it never should. It signals a bug, not
// bad input.
type InvalidStateTransition struct {
	From   MotionState
	To     MotionState
	Reason string
}

func (e InvalidStateTransition) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("engine: invalid state %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("engine: invalid state transition %s -> %s", e.From, e.To)
}
