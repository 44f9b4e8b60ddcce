package symbolic

import "fmt"

// pole is a factor (s - root)^-order of a rational term.
type pole struct {
	root  Expr
	order int
}

// poleTerm is coeff / (s - root)^order.
type poleTerm struct {
	coeff Expr
	root  Expr
	order int
}

// LaplaceTransform returns the one-sided transform of f in variable t as
// an expression in s. f must be a sum of terms c * t^n * exp(a + b*t),
// optionally gated by Heaviside(t).
func LaplaceTransform(f Expr, t, s string) (Expr, error) {
	var out []Expr
	for _, term := range termsOf(Expand(f)) {
		c, n, lambda, ok := expPolyMonomial(term, t)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoTransform, term)
		}
		out = append(out, MulOf(c, factorial(n), PowOf(Minus(S(s), lambda), N(int64(-(n+1))))))
	}
	return AddOf(out...), nil
}

// InverseLaplaceTransform inverts a sum of rational terms whose
// denominators factor into powers of polynomials linear in s. The result
// carries the Heaviside(t) gate; use SubsHeaviside to drop it.
func InverseLaplaceTransform(F Expr, s, t string) (Expr, error) {
	var out []Expr
	for _, term := range termsOf(Expand(F)) {
		coeff, poles, ok := rationalTerm(term, s)
		if !ok || len(poles) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoInverse, term)
		}
		for _, pt := range partialFractions(poles) {
			out = append(out, inversePole(MulOf(coeff, pt.coeff), pt.root, pt.order, t))
		}
	}
	return MulOf(Simplify(AddOf(out...)), HeavisideOf(S(t))), nil
}

// expPolyMonomial matches c * t^n * exp(a + lambda*t).
func expPolyMonomial(term Expr, t string) (coeff Expr, n int, lambda Expr, ok bool) {
	var cs, lambdas []Expr
	for _, f := range factorsOf(term) {
		if !Depends(f, t) {
			cs = append(cs, f)
			continue
		}
		switch v := f.(type) {
		case *Sym:
			n++
			continue
		case *Pow:
			if s, isSym := v.base.(*Sym); isSym && s.name == t {
				if en, isNum := v.exp.(*Num); isNum && en.Sign() > 0 {
					if k, small := en.smallInt(); small {
						n += k
						continue
					}
				}
			}
		case *Func:
			switch v.name {
			case fnExp:
				a, b, lin := linearIn(v.arg, t)
				if lin {
					cs = append(cs, ExpOf(a))
					lambdas = append(lambdas, b)
					continue
				}
			case fnHeaviside:
				if v.arg.Equal(S(t)) {
					continue
				}
			}
		}
		return nil, 0, nil, false
	}
	return MulOf(cs...), n, AddOf(lambdas...), true
}

// rationalTerm matches coeff * prod (a_i + b_i*s)^-n_i.
func rationalTerm(term Expr, s string) (Expr, []pole, bool) {
	var cs []Expr
	var poles []pole
	for _, f := range factorsOf(term) {
		if !Depends(f, s) {
			cs = append(cs, f)
			continue
		}
		base, order := f, 1
		if p, isPow := f.(*Pow); isPow {
			en, isNum := p.exp.(*Num)
			if !isNum || !en.IsInteger() {
				return nil, nil, false
			}
			k, small := en.smallInt()
			if !small {
				return nil, nil, false
			}
			base, order = p.base, k
		}
		if order >= 0 {
			return nil, nil, false
		}
		a, b, lin := linearIn(base, s)
		if !lin || IsZero(b) {
			return nil, nil, false
		}
		cs = append(cs, PowOf(b, N(int64(order))))
		poles = append(poles, pole{root: Simplify(Neg(Quo(a, b))), order: -order})
	}
	return MulOf(cs...), mergePoles(poles), true
}

func mergePoles(poles []pole) []pole {
	var out []pole
next:
	for _, p := range poles {
		for i := range out {
			if IsZero(Minus(out[i].root, p.root)) {
				out[i].order += p.order
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// partialFractions expands 1 / prod (s - r_i)^n_i into simple pole terms
// using 1/((s-a)(s-p)) = (1/(a-p)) (1/(s-a) - 1/(s-p)) recursively.
func partialFractions(poles []pole) []poleTerm {
	return mergeTerms(decompose(poles))
}

func decompose(poles []pole) []poleTerm {
	var live []pole
	for _, p := range poles {
		if p.order > 0 {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return nil
	}
	if len(live) == 1 {
		return []poleTerm{{coeff: N(1), root: live[0].root, order: live[0].order}}
	}
	a, p := live[0], live[1]
	inv := PowOf(Minus(a.root, p.root), N(-1))

	left := append([]pole(nil), live...)
	left[1].order--
	right := append([]pole(nil), live...)
	right[0].order--

	var out []poleTerm
	for _, pt := range decompose(left) {
		out = append(out, poleTerm{coeff: MulOf(inv, pt.coeff), root: pt.root, order: pt.order})
	}
	for _, pt := range decompose(right) {
		out = append(out, poleTerm{coeff: Neg(MulOf(inv, pt.coeff)), root: pt.root, order: pt.order})
	}
	return out
}

func mergeTerms(terms []poleTerm) []poleTerm {
	var out []poleTerm
next:
	for _, t := range terms {
		for i := range out {
			if out[i].order == t.order && out[i].root.Equal(t.root) {
				out[i].coeff = AddOf(out[i].coeff, t.coeff)
				continue next
			}
		}
		out = append(out, t)
	}
	for i := range out {
		out[i].coeff = Simplify(out[i].coeff)
	}
	return out
}

// inversePole maps c/(s-r)^n to c t^(n-1) e^(r t) / (n-1)!.
func inversePole(c, root Expr, order int, t string) Expr {
	return MulOf(c, numRecip(factorial(order-1)), PowOf(S(t), N(int64(order-1))), ExpOf(MulOf(root, S(t))))
}
