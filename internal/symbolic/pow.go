package symbolic

// Pow is base raised to exp.
type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Base() Expr       { return p.base }
func (p *Pow) Exp() Expr        { return p.exp }
func (p *Pow) children() []Expr { return []Expr{p.base, p.exp} }

func (p *Pow) rebuild(ch []Expr) Expr { return PowOf(ch[0], ch[1]) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()
	en, expNum := exp.(*Num)
	if expNum && en.IsZero() {
		return N(1)
	}
	if expNum && en.IsOne() {
		return base
	}
	intExp := expNum && en.IsInteger()

	switch b := base.(type) {
	case *Num:
		if b.IsOne() {
			return N(1)
		}
		if b.IsZero() {
			if expNum && en.Sign() > 0 {
				return N(0)
			}
			break
		}
		if intExp {
			if e, ok := en.smallInt(); ok {
				return numPowInt(b, e)
			}
		}
	case *Pow:
		if intExp {
			return PowOf(b.base, MulOf(b.exp, en))
		}
	case *Mul:
		if intExp {
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = PowOf(f, en)
			}
			return MulOf(fs...)
		}
	case *Func:
		if b.name == fnExp {
			return ExpOf(MulOf(b.arg, exp))
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) Diff(name string) Expr {
	if !Depends(p.exp, name) {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), p.base.Diff(name))
	}
	// d(b^e) = b^e * (e' ln b + e b'/b)
	return MulOf(p, AddOf(
		MulOf(p.exp.Diff(name), LnOf(p.base)),
		MulOf(p.exp, p.base.Diff(name), PowOf(p.base, N(-1))),
	))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok && en.Sign() < 0 {
		return "1/" + wrapFactor(PowOf(p.base, numNeg(en)))
	}
	return wrapBase(p.base) + "^" + wrapExp(p.exp)
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && en.Sign() < 0 {
		return "\\frac{1}{" + PowOf(p.base, numNeg(en)).LaTeX() + "}"
	}
	base := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		base = "\\left(" + base + "\\right)"
	}
	return base + "^{" + p.exp.LaTeX() + "}"
}

func wrapBase(e Expr) string {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return "(" + e.String() + ")"
	case *Num:
		if v.Sign() < 0 || !v.IsInteger() {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}

func wrapExp(e Expr) string {
	switch v := e.(type) {
	case *Sym:
		return v.String()
	case *Num:
		if v.IsInteger() && v.Sign() >= 0 {
			return v.String()
		}
	}
	return "(" + e.String() + ")"
}
