package kinetics

import (
	"fmt"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Solution is the closed-form result for one reaction.
type Solution struct {
	System *System
	// Extent is the reaction extent xi(t); every species is X0 + Sigma*xi.
	Extent    symbolic.Expr
	Solutions map[string]symbolic.Expr
	Integrals IntegralTable
}

// Solve builds the system for r, solves every species and computes the
// pairwise integral table. Nothing is returned on failure.
func Solve(r Reaction, opts Options) (*Solution, error) {
	opts = opts.withDefaults()
	sys, err := Build(r, opts)
	if err != nil {
		return nil, err
	}
	sols, extent, err := SolveSystem(sys, opts)
	if err != nil {
		return nil, err
	}
	integrals, err := PairwiseIntegrals(sys, sols, opts)
	if err != nil {
		return nil, err
	}
	return &Solution{System: sys, Extent: extent, Solutions: sols, Integrals: integrals}, nil
}

// SolveSystem solves dX/dt = f(X), X(0) = X0 for every species of sys.
//
// All species move together with the reaction extent xi, so the rate law
// becomes a single ODE in one lead concentration y. That ODE is linear or
// Bernoulli for zero, one or two varying reactant factors; the linear form
// y' = a*y + b is solved as Y(s) = (y0 + b/s) / (s - a) and inverted.
func SolveSystem(sys *System, opts Options) (map[string]symbolic.Expr, symbolic.Expr, error) {
	opts = opts.withDefaults()
	extent, err := solveExtent(sys, opts)
	if err != nil {
		return nil, nil, &SolveError{Stage: "solve", Wrapped: err}
	}

	sols := make(map[string]symbolic.Expr, len(sys.Species))
	for _, name := range sys.Species {
		sigma := symbolic.N(int64(sys.Sigma[name]))
		sols[name] = symbolic.Simplify(symbolic.AddOf(sys.Initial[name], symbolic.MulOf(sigma, extent)))
		opts.Logger.Debug("solved species", "species", name, "solution", sols[name].String())
	}
	return sols, extent, nil
}

type leadFactor struct {
	name  string
	init  symbolic.Expr
	sigma int
	order int
}

func solveExtent(sys *System, opts Options) (symbolic.Expr, error) {
	constant := []symbolic.Expr{sys.K}
	var varying []leadFactor
	for _, name := range sys.Reactants {
		order := sys.Orders[name]
		if sys.Sigma[name] == 0 {
			constant = append(constant, symbolic.PowOf(sys.Initial[name], symbolic.N(int64(order))))
			continue
		}
		varying = append(varying, leadFactor{name: name, init: sys.Initial[name], sigma: sys.Sigma[name], order: order})
	}
	k := symbolic.MulOf(constant...)

	if symbolic.IsZero(k) {
		return symbolic.N(0), nil
	}
	for _, f := range varying {
		if symbolic.IsZero(f.init) {
			// A reactant starting at zero keeps the rate at zero.
			return symbolic.N(0), nil
		}
	}

	switch {
	case len(varying) == 0:
		return solveLinear(symbolic.N(0), k, symbolic.N(0), opts)

	case len(varying) == 1 && varying[0].order == 1:
		f := varying[0]
		y, err := solveLinear(symbolic.MulOf(symbolic.N(int64(f.sigma)), k), symbolic.N(0), f.init, opts)
		if err != nil {
			return nil, err
		}
		return extentOf(y, f), nil

	case len(varying) == 1:
		// u = y^(1-m) turns y' = sigma*k*y^m into u' = (1-m)*sigma*k.
		f := varying[0]
		m := int64(f.order)
		b := symbolic.MulOf(symbolic.N(1-m), symbolic.N(int64(f.sigma)), k)
		u, err := solveLinear(symbolic.N(0), b, symbolic.PowOf(f.init, symbolic.N(1-m)), opts)
		if err != nil {
			return nil, err
		}
		return extentOf(symbolic.PowOf(u, symbolic.F(1, 1-m)), f), nil

	case len(varying) == 2 && varying[0].order == 1 && varying[1].order == 1:
		// With y the lead factor the other is rho + delta*y, and u = 1/y
		// gives u' = -sigma*k*rho*u - sigma*k*delta.
		lead, other := varying[0], varying[1]
		sigma := symbolic.N(int64(lead.sigma))
		delta := symbolic.N(int64(lead.sigma * other.sigma))
		rho := symbolic.Minus(other.init, symbolic.MulOf(delta, lead.init))
		a := symbolic.Neg(symbolic.MulOf(sigma, k, rho))
		b := symbolic.Neg(symbolic.MulOf(sigma, k, delta))
		u, err := solveLinear(a, b, symbolic.PowOf(lead.init, symbolic.N(-1)), opts)
		if err != nil {
			return nil, err
		}
		return extentOf(symbolic.PowOf(u, symbolic.N(-1)), lead), nil
	}
	return nil, fmt.Errorf("%w: rate law %s", ErrUnsolvable, sys.Rate)
}

// solveLinear solves y' = a*y + b with y(0) = y0 through the Laplace
// transform and returns y for t > 0.
func solveLinear(a, b, y0 symbolic.Expr, opts Options) (symbolic.Expr, error) {
	t, s := opts.TimeVar, opts.FreqVar
	bs, err := symbolic.LaplaceTransform(b, t, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsolvable, err)
	}
	Y := symbolic.Quo(symbolic.AddOf(y0, bs), symbolic.Minus(symbolic.S(s), a))
	y, err := symbolic.InverseLaplaceTransform(Y, s, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsolvable, err)
	}
	y = symbolic.Simplify(symbolic.SubsHeaviside(y, t, symbolic.N(1)))
	opts.Logger.Debug("inverted transform", "transform", Y.String(), "solution", y.String())
	return y, nil
}

// extentOf recovers xi from the lead concentration: y = y0 + sigma*xi.
func extentOf(y symbolic.Expr, f leadFactor) symbolic.Expr {
	return symbolic.Simplify(symbolic.MulOf(symbolic.N(int64(f.sigma)), symbolic.Minus(y, f.init)))
}
