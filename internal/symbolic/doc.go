// Package symbolic is a small exact computer algebra engine sized for
// reaction kinetics.
//
// Expressions are immutable trees built from:
//
//   - [Num]: exact rationals backed by math/big
//   - [Sym]: free symbols such as t, k1 or a_0
//   - [Add], [Mul], [Pow]: canonical sums, products and powers
//   - [Func]: exp, log and Heaviside
//   - [Call], [Derivative]: undetermined functions like A(t) and A'(t)
//
// Constructors simplify on the way in, so structurally equal expressions
// print identically and compare with Equal.
//
// On top of the tree the package provides Expand, Subs, Replace,
// differentiation, numeric evaluation, the Laplace transform pair for
// exponential polynomials (inversion by partial fractions over linear
// factors) and definite integration from zero for the integrands that
// arise in mass-action kinetics.
//
// # Example
//
//	t := symbolic.S("t")
//	f := symbolic.ExpOf(symbolic.Neg(t))
//	F, _ := symbolic.LaplaceTransform(f, "t", "s") // 1/(s + 1)
//	g, _ := symbolic.InverseLaplaceTransform(F, "s", "t")
//	g = symbolic.SubsHeaviside(g, "t", symbolic.N(1)) // exp(-t)
package symbolic
