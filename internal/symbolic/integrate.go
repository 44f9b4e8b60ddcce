package symbolic

import "fmt"

// IntegrateDefinite returns the integral of f over [0, v] as an expression
// in v. Supported integrands are sums of
//
//   - exponential polynomials c * v^n * exp(a + b*v),
//   - c * (a + b*v)^e for any e free of v,
//   - c / u and c / u^2 with u = B + A*exp(lambda*v).
func IntegrateDefinite(f Expr, v string) (Expr, error) {
	var out []Expr
	for _, term := range termsOf(Expand(f)) {
		r, err := integrateTerm(term, v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return Simplify(AddOf(out...)), nil
}

func integrateTerm(term Expr, v string) (Expr, error) {
	if c, n, lambda, ok := expPolyMonomial(term, v); ok {
		return integrateExpPoly(c, n, lambda, v), nil
	}

	var cs, dep []Expr
	for _, f := range factorsOf(term) {
		if Depends(f, v) {
			dep = append(dep, f)
			continue
		}
		cs = append(cs, f)
	}
	if len(dep) == 1 {
		if p, ok := dep[0].(*Pow); ok && !Depends(p.exp, v) {
			if r, ok := integratePower(p.base, p.exp, v); ok {
				return MulOf(append(cs, r)...), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnintegrable, term)
}

// integrateExpPoly integrates c v^n e^(lambda v) from 0 through the
// transform pair: the integral has transform F(s)/s.
func integrateExpPoly(c Expr, n int, lambda Expr, v string) Expr {
	if IsZero(lambda) {
		return MulOf(c, numRecip(N(int64(n+1))), PowOf(S(v), N(int64(n+1))))
	}
	poles := []pole{{root: lambda, order: n + 1}, {root: N(0), order: 1}}
	var out []Expr
	for _, pt := range partialFractions(poles) {
		out = append(out, inversePole(MulOf(c, factorial(n), pt.coeff), pt.root, pt.order, v))
	}
	return AddOf(out...)
}

func integratePower(u, e Expr, v string) (Expr, bool) {
	if a, b, ok := linearIn(u, v); ok && !IsZero(b) {
		en, isNum := e.(*Num)
		if IsZero(a) && (!isNum || numAdd(en, N(1)).Sign() <= 0) {
			return nil, false
		}
		if isNum && en.IsNegOne() {
			return Quo(LnOf(Quo(u, a)), b), true
		}
		e1 := AddOf(e, N(1))
		return Quo(Minus(PowOf(u, e1), PowOf(a, e1)), MulOf(b, e1)), true
	}

	en, isNum := e.(*Num)
	if !isNum || !(en.IsNegOne() || en.Equal(N(-2))) {
		return nil, false
	}
	B, A, lambda, ok := expAffine(u, v)
	if !ok {
		return nil, false
	}
	// u' = -P (u - B) with P = -lambda.
	P := Neg(lambda)
	u0 := AddOf(A, B)
	i1 := Quo(AddOf(S(v), Quo(LnOf(Quo(u, u0)), P)), B)
	if en.IsNegOne() {
		return i1, true
	}
	return Minus(Quo(i1, B), Quo(Minus(PowOf(u, N(-1)), PowOf(u0, N(-1))), MulOf(P, B))), true
}

// expAffine matches u = B + A*exp(lambda*v) with B nonzero.
func expAffine(u Expr, v string) (B, A, lambda Expr, ok bool) {
	add, isAdd := u.(*Add)
	if !isAdd {
		return nil, nil, nil, false
	}
	var bs, as []Expr
	for _, term := range add.terms {
		if !Depends(term, v) {
			bs = append(bs, term)
			continue
		}
		var cs []Expr
		var found Expr
		for _, f := range factorsOf(term) {
			if !Depends(f, v) {
				cs = append(cs, f)
				continue
			}
			fn, isFn := f.(*Func)
			if !isFn || fn.name != fnExp || found != nil {
				return nil, nil, nil, false
			}
			a0, l, lin := linearIn(fn.arg, v)
			if !lin {
				return nil, nil, nil, false
			}
			cs = append(cs, ExpOf(a0))
			found = l
		}
		if found == nil {
			return nil, nil, nil, false
		}
		if lambda == nil {
			lambda = found
		} else if !IsZero(Minus(lambda, found)) {
			return nil, nil, nil, false
		}
		as = append(as, MulOf(cs...))
	}
	B = AddOf(bs...)
	if lambda == nil || IsZero(lambda) || IsZero(B) {
		return nil, nil, nil, false
	}
	return B, AddOf(as...), lambda, true
}
