package symbolic

import (
	"fmt"
	"strings"
)

// Expr is a node of an expression tree. Values are immutable; every
// constructor returns a simplified, canonically ordered tree so that equal
// expressions print identically.
type Expr interface {
	String() string
	LaTeX() string
	Equal(other Expr) bool
	Simplify() Expr
	Diff(name string) Expr

	children() []Expr
	rebuild(children []Expr) Expr
}

// ============================================================
// Sym
// ============================================================

// Sym is a free symbol such as t, k1 or a_0.
type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string          { return s.name }
func (s *Sym) String() string        { return s.name }
func (s *Sym) Simplify() Expr        { return s }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && o.name == s.name }
func (s *Sym) children() []Expr      { return nil }
func (s *Sym) rebuild([]Expr) Expr   { return s }

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) LaTeX() string {
	base, sub, ok := strings.Cut(s.name, "_")
	if !ok || sub == "" {
		return s.name
	}
	return fmt.Sprintf("%s_{%s}", base, sub)
}

// ============================================================
// Call
// ============================================================

// Call is an undetermined function applied to an argument, e.g. A(t).
type Call struct {
	name string
	arg  Expr
}

func CallOf(name string, arg Expr) *Call { return &Call{name: name, arg: arg.Simplify()} }

func (c *Call) Name() string     { return c.name }
func (c *Call) Arg() Expr        { return c.arg }
func (c *Call) String() string   { return c.name + "(" + c.arg.String() + ")" }
func (c *Call) LaTeX() string    { return fmt.Sprintf("%s\\left(%s\\right)", c.name, c.arg.LaTeX()) }
func (c *Call) Simplify() Expr   { return c }
func (c *Call) children() []Expr { return []Expr{c.arg} }

func (c *Call) rebuild(ch []Expr) Expr { return CallOf(c.name, ch[0]) }

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && o.name == c.name && o.arg.Equal(c.arg)
}

func (c *Call) Diff(name string) Expr {
	inner := c.arg.Diff(name)
	if n, ok := inner.(*Num); ok && n.IsZero() {
		return N(0)
	}
	return MulOf(&Derivative{call: c, order: 1}, inner)
}

// ============================================================
// Derivative
// ============================================================

// Derivative is the unevaluated derivative of a Call with respect to its
// argument.
type Derivative struct {
	call  *Call
	order int
}

// DerivativeOf returns d/dx f(x) for the call f(x).
func DerivativeOf(call *Call) *Derivative { return &Derivative{call: call, order: 1} }

func (d *Derivative) Call() *Call      { return d.call }
func (d *Derivative) Order() int       { return d.order }
func (d *Derivative) Simplify() Expr   { return d }
func (d *Derivative) children() []Expr { return nil }

func (d *Derivative) rebuild([]Expr) Expr { return d }

func (d *Derivative) String() string {
	if d.order == 1 {
		return fmt.Sprintf("Derivative(%s, %s)", d.call, d.call.arg)
	}
	return fmt.Sprintf("Derivative(%s, (%s, %d))", d.call, d.call.arg, d.order)
}

func (d *Derivative) LaTeX() string {
	if d.order == 1 {
		return fmt.Sprintf("\\frac{d}{d %s} %s", d.call.arg.LaTeX(), d.call.LaTeX())
	}
	return fmt.Sprintf("\\frac{d^{%d}}{d %s^{%d}} %s", d.order, d.call.arg.LaTeX(), d.order, d.call.LaTeX())
}

func (d *Derivative) Equal(other Expr) bool {
	o, ok := other.(*Derivative)
	return ok && o.order == d.order && o.call.Equal(d.call)
}

func (d *Derivative) Diff(name string) Expr {
	inner := d.call.arg.Diff(name)
	if n, ok := inner.(*Num); ok && n.IsZero() {
		return N(0)
	}
	return MulOf(&Derivative{call: d.call, order: d.order + 1}, inner)
}

// ============================================================
// Equation
// ============================================================

// Equation pairs a left and right hand side.
type Equation struct {
	LHS Expr
	RHS Expr
}

func Eq(lhs, rhs Expr) Equation { return Equation{LHS: lhs, RHS: rhs} }

func (e Equation) String() string { return e.LHS.String() + " = " + e.RHS.String() }
func (e Equation) LaTeX() string  { return e.LHS.LaTeX() + " = " + e.RHS.LaTeX() }

// Residual returns LHS - RHS.
func (e Equation) Residual() Expr { return Minus(e.LHS, e.RHS) }

// ============================================================
// Shorthands
// ============================================================

func Neg(e Expr) Expr      { return MulOf(N(-1), e) }
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }
func Quo(a, b Expr) Expr   { return MulOf(a, PowOf(b, N(-1))) }

// termsOf returns the summands of e.
func termsOf(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.terms
	case *Num:
		if v.IsZero() {
			return nil
		}
	}
	return []Expr{e}
}

// factorsOf returns the multiplicands of e.
func factorsOf(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}
