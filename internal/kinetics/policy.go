package kinetics

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/san-kum/rxnrate/internal/logging"
)

// OverlapPolicy decides the ODE sign of a species listed as both reactant
// and product.
type OverlapPolicy string

const (
	// ConsumedFirst gives -rate: the reactant role is checked first.
	ConsumedFirst OverlapPolicy = "consumed"
	// ReformedLast gives +rate: the product role is assigned last and wins.
	ReformedLast OverlapPolicy = "reformed"
	// Catalytic gives a net rate of zero; the species still enters the rate law.
	Catalytic OverlapPolicy = "catalytic"
	// RejectOverlap fails with ErrAmbiguousSpecies.
	RejectOverlap OverlapPolicy = "reject"
)

// MissingPolicy decides what happens to species without an initial value.
type MissingPolicy string

const (
	DefaultZero   MissingPolicy = "zero"
	RejectMissing MissingPolicy = "reject"
)

func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch p := OverlapPolicy(strings.ToLower(s)); p {
	case ConsumedFirst, ReformedLast, Catalytic, RejectOverlap:
		return p, nil
	case "":
		return ConsumedFirst, nil
	}
	return "", fmt.Errorf("unknown overlap policy: %s", s)
}

func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(s)); p {
	case DefaultZero, RejectMissing:
		return p, nil
	case "":
		return DefaultZero, nil
	}
	return "", fmt.Errorf("unknown missing-value policy: %s", s)
}

// Options carries the explicit context of a calculation.
type Options struct {
	TimeVar string
	FreqVar string
	Overlap OverlapPolicy
	Missing MissingPolicy
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		TimeVar: "t",
		FreqVar: "s",
		Overlap: ConsumedFirst,
		Missing: DefaultZero,
		Logger:  logging.NewNop(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TimeVar == "" {
		o.TimeVar = d.TimeVar
	}
	if o.FreqVar == "" {
		o.FreqVar = d.FreqVar
	}
	if o.Overlap == "" {
		o.Overlap = d.Overlap
	}
	if o.Missing == "" {
		o.Missing = d.Missing
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
