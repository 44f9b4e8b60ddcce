package symbolic

import "sort"

// Replace rebuilds e bottom-up, substituting every node for which fn
// reports a replacement. Replacements are not visited again.
func Replace(e Expr, fn func(Expr) (Expr, bool)) Expr {
	if r, ok := fn(e); ok {
		return r
	}
	ch := e.children()
	if len(ch) == 0 {
		return e
	}
	next := make([]Expr, len(ch))
	changed := false
	for i, c := range ch {
		next[i] = Replace(c, fn)
		if next[i] != c {
			changed = true
		}
	}
	if !changed {
		return e
	}
	return e.rebuild(next)
}

// Subs replaces the symbol name with value.
func Subs(e Expr, name string, value Expr) Expr {
	return Replace(e, func(x Expr) (Expr, bool) {
		if s, ok := x.(*Sym); ok && s.name == name {
			return value, true
		}
		return nil, false
	})
}

// SubsHeaviside replaces Heaviside(v) with value.
func SubsHeaviside(e Expr, v string, value Expr) Expr {
	return Replace(e, func(x Expr) (Expr, bool) {
		if f, ok := x.(*Func); ok && f.name == fnHeaviside && f.arg.Equal(S(v)) {
			return value, true
		}
		return nil, false
	})
}

// Depends reports whether e contains the symbol name, including inside
// call arguments.
func Depends(e Expr, name string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == name
	case *Derivative:
		return Depends(v.call, name)
	}
	for _, c := range e.children() {
		if Depends(c, name) {
			return true
		}
	}
	return false
}

// FreeSymbols returns the sorted names of all symbols in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]bool{}
	var walk func(Expr)
	walk = func(x Expr) {
		switch v := x.(type) {
		case *Sym:
			seen[v.name] = true
			return
		case *Derivative:
			walk(v.call)
			return
		}
		for _, c := range x.children() {
			walk(c)
		}
	}
	walk(e)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Expand distributes products over sums and positive integer powers of
// sums.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = Expand(t)
		}
		return AddOf(out...)
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = mulExpanded(result, Expand(f))
		}
		return result
	case *Pow:
		base := Expand(v.base)
		if en, ok := v.exp.(*Num); ok && en.IsInteger() && en.Sign() > 0 {
			if n, ok := en.smallInt(); ok && n <= 16 {
				if _, isAdd := base.(*Add); isAdd {
					result := Expr(N(1))
					for i := 0; i < n; i++ {
						result = mulExpanded(result, base)
					}
					return result
				}
			}
		}
		return PowOf(base, Expand(v.exp))
	case *Func:
		return (&Func{name: v.name, arg: Expand(v.arg)}).Simplify()
	case *Call:
		return CallOf(v.name, Expand(v.arg))
	}
	return e
}

// mulExpanded multiplies two expanded expressions term by term.
func mulExpanded(a, b Expr) Expr {
	at, bt := termsOf(a), termsOf(b)
	out := make([]Expr, 0, len(at)*len(bt))
	for _, x := range at {
		for _, y := range bt {
			out = append(out, MulOf(x, y))
		}
	}
	return AddOf(out...)
}

// Simplify returns the canonical expanded form of e.
func Simplify(e Expr) Expr { return Expand(e.Simplify()) }

// IsZero reports whether e expands to zero.
func IsZero(e Expr) bool {
	n, ok := Expand(e).(*Num)
	return ok && n.IsZero()
}

// linearIn splits e as a + b*v with a and b free of v.
func linearIn(e Expr, v string) (a, b Expr, ok bool) {
	var as, bs []Expr
	for _, term := range termsOf(Expand(e)) {
		if !Depends(term, v) {
			as = append(as, term)
			continue
		}
		var rest []Expr
		found := false
		for _, f := range factorsOf(term) {
			if s, isSym := f.(*Sym); isSym && s.name == v && !found {
				found = true
				continue
			}
			if Depends(f, v) {
				return nil, nil, false
			}
			rest = append(rest, f)
		}
		if !found {
			return nil, nil, false
		}
		bs = append(bs, MulOf(rest...))
	}
	return AddOf(as...), AddOf(bs...), true
}
