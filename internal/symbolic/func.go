package symbolic

import "fmt"

const (
	fnExp       = "exp"
	fnLog       = "log"
	fnHeaviside = "Heaviside"
)

// Func is one of the elementary functions exp, log and Heaviside.
type Func struct {
	name string
	arg  Expr
}

func ExpOf(arg Expr) Expr       { return (&Func{name: fnExp, arg: arg}).Simplify() }
func LnOf(arg Expr) Expr        { return (&Func{name: fnLog, arg: arg}).Simplify() }
func HeavisideOf(arg Expr) Expr { return (&Func{name: fnHeaviside, arg: arg}).Simplify() }

func (f *Func) Name() string     { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
func (f *Func) children() []Expr { return []Expr{f.arg} }

func (f *Func) rebuild(ch []Expr) Expr { return (&Func{name: f.name, arg: ch[0]}).Simplify() }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	n, isNum := arg.(*Num)
	switch f.name {
	case fnExp:
		if isNum && n.IsZero() {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == fnLog {
			return inner.arg
		}
	case fnLog:
		if isNum && n.IsOne() {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == fnExp {
			return inner.arg
		}
	case fnHeaviside:
		if isNum {
			switch n.Sign() {
			case 1:
				return N(1)
			case -1:
				return N(0)
			}
			return F(1, 2)
		}
	}
	return &Func{name: f.name, arg: arg}
}

// Diff treats Heaviside as constant away from its jump.
func (f *Func) Diff(name string) Expr {
	inner := f.arg.Diff(name)
	switch f.name {
	case fnExp:
		return MulOf(f, inner)
	case fnLog:
		return MulOf(inner, PowOf(f.arg, N(-1)))
	}
	return N(0)
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && o.name == f.name && o.arg.Equal(f.arg)
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case fnExp:
		return "e^{" + f.arg.LaTeX() + "}"
	case fnLog:
		return fmt.Sprintf("\\ln\\left(%s\\right)", f.arg.LaTeX())
	}
	return fmt.Sprintf("\\theta\\left(%s\\right)", f.arg.LaTeX())
}
