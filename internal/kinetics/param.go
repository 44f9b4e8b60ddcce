package kinetics

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Param is a rate constant or initial concentration. It is either a
// literal number or the name of a free parameter.
type Param struct {
	Name  string
	Value float64
}

func Num(v float64) Param     { return Param{Value: v} }
func Sym(name string) Param   { return Param{Name: name} }
func (p Param) IsSymbol() bool { return p.Name != "" }

func (p Param) String() string {
	if p.IsSymbol() {
		return p.Name
	}
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

// ParseParam reads s as a number when it parses as one and as a parameter
// name otherwise.
func ParseParam(s string) Param {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Num(v)
	}
	return Sym(s)
}

func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: parameter must be a scalar, got %q", ErrMalformedInput, node.Value)
	}
	switch node.ShortTag() {
	case "!!str":
		if node.Value == "" {
			return fmt.Errorf("%w: empty parameter name", ErrMalformedInput)
		}
		*p = Sym(node.Value)
		return nil
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		*p = Num(v)
		return nil
	}
	return fmt.Errorf("%w: parameter must be a number or a name, got %q", ErrMalformedInput, node.Value)
}

func (p Param) MarshalYAML() (any, error) {
	if p.IsSymbol() {
		return p.Name, nil
	}
	return p.Value, nil
}

// Resolve converts p into an expression. Numbers pass through exactly as
// written (2.5 stays 2.5); names become free symbols. Values are not range
// checked.
func Resolve(p Param) (symbolic.Expr, error) {
	if p.IsSymbol() {
		return symbolic.S(p.Name), nil
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return nil, fmt.Errorf("%w: non-finite value %v", ErrMalformedInput, p.Value)
	}
	return symbolic.NFloat(p.Value), nil
}
