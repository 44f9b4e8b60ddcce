package kinetics

import (
	"errors"
	"fmt"
)

// Domain errors for kinetics operations.
var (
	// ErrUnsolvable indicates the rate law has no closed form reachable by the
	// Laplace method.
	ErrUnsolvable = errors.New("kinetics: system has no closed-form solution")

	// ErrUnintegrable indicates a pairwise integral has no closed form.
	ErrUnintegrable = errors.New("kinetics: expression has no closed-form integral")

	// ErrMalformedInput indicates an empty name, non-finite number or a
	// parameter that shadows the time or frequency variable.
	ErrMalformedInput = errors.New("kinetics: malformed reaction input")

	// ErrAmbiguousSpecies indicates a species listed as both reactant and
	// product under the reject policy.
	ErrAmbiguousSpecies = errors.New("kinetics: species is both reactant and product")

	// ErrMissingInitial indicates a species without an initial value under the
	// reject policy.
	ErrMissingInitial = errors.New("kinetics: missing initial value")

	// ErrUnknownStrategy indicates a strategy name with no registration.
	ErrUnknownStrategy = errors.New("kinetics: unknown strategy")
)

// SolveError wraps an error with the species or pair being processed.
type SolveError struct {
	Species string
	Pair    Pair
	Stage   string
	Wrapped error
}

func (e *SolveError) Error() string {
	switch {
	case e.Pair != (Pair{}):
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Pair, e.Wrapped)
	case e.Species != "":
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Species, e.Wrapped)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
