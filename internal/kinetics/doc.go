// Package kinetics derives closed-form concentration trajectories for a
// single elementary reaction under the mass-action law.
//
// The package is organised around a few pure operations:
//
//   - [Resolve]: turns a [Param] (number or parameter name) into an expression
//   - [Build]: assembles the mass-action [System] of ODEs
//   - [Solve]: solves every species analytically with the Laplace transform
//     and computes the pairwise integral table
//   - [CalculateLaplaceTransforms] / [InverseLaplaceTransforms]: the approximate
//     first-order heuristic working directly in the s-domain
//   - [Verify] and [Compare]: numeric checks of a solution set and of one
//     [Strategy] against another
//
// # Example
//
//	r := kinetics.Reaction{
//		Reactants: []string{"A", "B"},
//		Products:  []string{"C"},
//		K:         kinetics.Sym("k1"),
//		Initial:   map[string]kinetics.Param{"A": kinetics.Sym("a_0"), "B": kinetics.Num(2)},
//	}
//	sol, err := kinetics.Solve(r, kinetics.DefaultOptions())
//
// # Thread Safety
//
// Every call builds fresh values from its inputs and nothing is shared
// between calls, so independent reactions may be solved concurrently.
package kinetics
