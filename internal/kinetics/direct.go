package kinetics

import (
	"fmt"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Transforms holds s-domain expressions computed by the first-order
// heuristic. Products past the second have no transform and are listed in
// Skipped.
type Transforms struct {
	FreqVar string
	Species []string
	Domain  map[string]symbolic.Expr
	Skipped []string
}

// CalculateLaplaceTransforms applies the first-order heuristic: every reactant
// decays as X0/(s + k) and each of the first two products is the product
// of the first two reactant transforms divided by s. Reactants are exact
// only for first-order decay, and products only when k = 1 and they start
// from zero; use Compare to measure the error against Solve. A species on
// both sides follows opts.Overlap like Build does: only ReformedLast gives
// it the product transform.
func CalculateLaplaceTransforms(r Reaction, opts Options) (*Transforms, error) {
	opts = opts.withDefaults()
	if len(r.Reactants) == 0 {
		return nil, fmt.Errorf("%w: the heuristic needs at least one reactant", ErrMalformedInput)
	}
	if err := validate(r, opts); err != nil {
		return nil, err
	}
	k, err := Resolve(r.K)
	if err != nil {
		return nil, fmt.Errorf("rate constant: %w", err)
	}

	s := symbolic.S(opts.FreqVar)
	tr := &Transforms{FreqVar: opts.FreqVar, Domain: make(map[string]symbolic.Expr)}
	product := setOf(r.Products)

	var feed []symbolic.Expr
	for _, name := range r.Reactants {
		if _, done := tr.Domain[name]; done {
			continue
		}
		if product[name] && opts.Overlap == RejectOverlap {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousSpecies, name)
		}
		x0, err := initialValue(r, name, opts.Missing)
		if err != nil {
			return nil, err
		}
		tr.Domain[name] = symbolic.Quo(x0, symbolic.AddOf(s, k))
		if len(feed) < 2 {
			feed = append(feed, tr.Domain[name])
		}
	}

	reactant := setOf(r.Reactants)
	formed := symbolic.Quo(symbolic.MulOf(feed...), s)
	seen := map[string]bool{}
	for _, name := range r.Products {
		if seen[name] {
			continue
		}
		seen[name] = true
		if len(seen) > 2 {
			tr.Skipped = append(tr.Skipped, name)
			continue
		}
		if reactant[name] && opts.Overlap != ReformedLast {
			continue
		}
		tr.Domain[name] = formed
	}

	tr.Species = sortedUnique(append(append([]string(nil), r.Reactants...), r.Products...))
	opts.Logger.Debug("computed direct transforms", "species", len(tr.Domain), "skipped", tr.Skipped)
	return tr, nil
}

// InverseLaplaceTransforms inverts every computed transform, replaces the
// unit step with 1 (t > 0) and simplifies.
func InverseLaplaceTransforms(tr *Transforms, opts Options) (map[string]symbolic.Expr, error) {
	opts = opts.withDefaults()
	out := make(map[string]symbolic.Expr, len(tr.Domain))
	for _, name := range tr.Species {
		F, ok := tr.Domain[name]
		if !ok {
			continue
		}
		f, err := symbolic.InverseLaplaceTransform(F, tr.FreqVar, opts.TimeVar)
		if err != nil {
			return nil, &SolveError{Species: name, Stage: "invert", Wrapped: fmt.Errorf("%w: %w", ErrUnsolvable, err)}
		}
		out[name] = symbolic.Simplify(symbolic.SubsHeaviside(f, opts.TimeVar, symbolic.N(1)))
	}
	return out, nil
}
