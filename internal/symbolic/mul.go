package symbolic

import (
	"sort"
	"strings"
)

// Mul is a product. The numeric coefficient, if any, is the first factor.
type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Factors() []Expr  { return append([]Expr(nil), m.factors...) }
func (m *Mul) children() []Expr { return m.factors }

func (m *Mul) rebuild(ch []Expr) Expr { return MulOf(ch...) }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
			continue
		}
		flat = append(flat, s)
	}

	type group struct {
		base   Expr
		exps   []Expr
		single Expr
	}
	coeff := N(1)
	var expArgs []Expr
	groups := map[string]*group{}
	var order []string
	addBase := func(original, base, exp Expr) {
		key := base.String()
		if g, ok := groups[key]; ok {
			g.exps = append(g.exps, exp)
			g.single = nil
			return
		}
		groups[key] = &group{base: base, exps: []Expr{exp}, single: original}
		order = append(order, key)
	}

	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Func:
			if v.name == fnExp {
				expArgs = append(expArgs, v.arg)
				continue
			}
			addBase(f, f, N(1))
		case *Pow:
			addBase(f, v.base, v.exp)
		default:
			addBase(f, f, N(1))
		}
	}
	if coeff.IsZero() {
		return N(0)
	}

	var others []Expr
	reflatten := false
	for _, key := range order {
		g := groups[key]
		p := g.single
		if p == nil {
			p = PowOf(g.base, AddOf(g.exps...))
		}
		switch pv := p.(type) {
		case *Num:
			coeff = numMul(coeff, pv)
		case *Mul:
			reflatten = true
			others = append(others, pv.factors...)
		default:
			others = append(others, p)
		}
	}
	if len(expArgs) > 0 {
		switch e := ExpOf(AddOf(expArgs...)).(type) {
		case *Num:
			coeff = numMul(coeff, e)
		default:
			others = append(others, e)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if reflatten {
		return MulOf(append([]Expr{coeff}, others...)...)
	}

	sort.SliceStable(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	switch {
	case len(others) == 0:
		return coeff
	case coeff.IsOne() && len(others) == 1:
		return others[0]
	case coeff.IsOne():
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		d := m.factors[i].Diff(name)
		if n, ok := d.(*Num); ok && n.IsZero() {
			continue
		}
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, m.factors[:i]...)
		parts = append(parts, d)
		parts = append(parts, m.factors[i+1:]...)
		terms = append(terms, MulOf(parts...))
	}
	return AddOf(terms...)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(o.factors) != len(m.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// numerDenom splits the non-coefficient factors into those printed above
// and below the fraction bar.
func (m *Mul) numerDenom() (*Num, []Expr, []Expr) {
	coeff, rest := splitCoeff(m)
	var num, den []Expr
	for _, f := range factorsOf(rest) {
		if p, ok := f.(*Pow); ok {
			if en, ok := p.exp.(*Num); ok && en.Sign() < 0 {
				den = append(den, PowOf(p.base, numNeg(en)))
				continue
			}
		}
		num = append(num, f)
	}
	return coeff, num, den
}

func (m *Mul) String() string {
	coeff, num, den := m.numerDenom()
	sign := ""
	if coeff.Sign() < 0 {
		sign = "-"
		coeff = numNeg(coeff)
	}
	var parts []string
	if !coeff.IsOne() {
		parts = append(parts, coeff.String())
	}
	for _, f := range num {
		parts = append(parts, wrapFactor(f))
	}
	numStr := strings.Join(parts, "*")
	if numStr == "" {
		numStr = "1"
	}
	if len(den) == 0 {
		return sign + numStr
	}
	dparts := make([]string, len(den))
	for i, f := range den {
		dparts[i] = wrapFactor(f)
	}
	denStr := strings.Join(dparts, "*")
	if len(den) > 1 {
		denStr = "(" + denStr + ")"
	}
	return sign + numStr + "/" + denStr
}

func (m *Mul) LaTeX() string {
	coeff, num, den := m.numerDenom()
	sign := ""
	if coeff.Sign() < 0 {
		sign = "-"
		coeff = numNeg(coeff)
	}
	var parts []string
	if !coeff.IsOne() {
		parts = append(parts, coeff.LaTeX())
	}
	for _, f := range num {
		parts = append(parts, wrapFactorLaTeX(f))
	}
	numStr := strings.Join(parts, " ")
	if numStr == "" {
		numStr = "1"
	}
	if len(den) == 0 {
		return sign + numStr
	}
	dparts := make([]string, len(den))
	for i, f := range den {
		dparts[i] = wrapFactorLaTeX(f)
	}
	return sign + "\\frac{" + numStr + "}{" + strings.Join(dparts, " ") + "}"
}

func wrapFactor(e Expr) string {
	switch v := e.(type) {
	case *Add:
		return "(" + v.String() + ")"
	case *Num:
		if v.Sign() < 0 {
			return "(" + v.String() + ")"
		}
	}
	return e.String()
}

func wrapFactorLaTeX(e Expr) string {
	if _, ok := e.(*Add); ok {
		return "\\left(" + e.LaTeX() + "\\right)"
	}
	return e.LaTeX()
}
