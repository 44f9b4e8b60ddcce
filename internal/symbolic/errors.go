package symbolic

import "errors"

var (
	ErrNoTransform  = errors.New("symbolic: no Laplace transform for expression")
	ErrNoInverse    = errors.New("symbolic: no inverse Laplace transform for expression")
	ErrUnintegrable = errors.New("symbolic: integrand has no closed form")
	ErrUnevaluated  = errors.New("symbolic: expression cannot be evaluated")
)
