package symbolic

import (
	"fmt"
	"math"
)

// Evaluate computes e numerically with the given symbol bindings.
// Heaviside evaluates with H(0) = 1/2.
func Evaluate(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Sym:
		x, ok := env[v.name]
		if !ok {
			return 0, fmt.Errorf("%w: unbound symbol %s", ErrUnevaluated, v.name)
		}
		return x, nil
	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			x, err := Evaluate(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod := 1.0
		for _, f := range v.factors {
			x, err := Evaluate(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := Evaluate(v.base, env)
		if err != nil {
			return 0, err
		}
		x, err := Evaluate(v.exp, env)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, x), nil
	case *Func:
		x, err := Evaluate(v.arg, env)
		if err != nil {
			return 0, err
		}
		switch v.name {
		case fnExp:
			return math.Exp(x), nil
		case fnLog:
			return math.Log(x), nil
		}
		switch {
		case x > 0:
			return 1, nil
		case x < 0:
			return 0, nil
		}
		return 0.5, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnevaluated, e)
}

// EvaluateAt is Evaluate with an additional binding for one symbol.
func EvaluateAt(e Expr, env map[string]float64, name string, value float64) (float64, error) {
	bound := make(map[string]float64, len(env)+1)
	for k, v := range env {
		bound[k] = v
	}
	bound[name] = value
	return Evaluate(e, bound)
}
