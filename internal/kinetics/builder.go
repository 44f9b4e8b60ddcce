package kinetics

import (
	"fmt"
	"sort"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Reaction describes a single elementary reaction.
type Reaction struct {
	Reactants []string
	Products  []string
	K         Param
	Initial   map[string]Param
}

// System is the mass-action ODE system of a reaction. Species that only
// appear in Initial are spectators with ODE 0.
type System struct {
	Species   []string
	Reactants []string
	Products  []string
	TimeVar   string

	K       symbolic.Expr
	Rate    symbolic.Expr
	Funcs   map[string]*symbolic.Call
	ODEs    map[string]symbolic.Expr
	Initial map[string]symbolic.Expr

	// Sigma is the net stoichiometric sign of each species: dX/dt = Sigma*rate.
	Sigma map[string]int
	// Orders counts how often each reactant appears in the rate law.
	Orders map[string]int
}

// Build assembles the ODE system for r. It is deterministic: equal inputs
// give structurally equal systems regardless of list order.
func Build(r Reaction, opts Options) (*System, error) {
	opts = opts.withDefaults()
	if err := validate(r, opts); err != nil {
		return nil, err
	}

	k, err := Resolve(r.K)
	if err != nil {
		return nil, fmt.Errorf("rate constant: %w", err)
	}

	sys := &System{
		Species:   speciesSet(r),
		Reactants: sortedUnique(r.Reactants),
		Products:  sortedUnique(r.Products),
		TimeVar:   opts.TimeVar,
		K:         k,
		Funcs:     make(map[string]*symbolic.Call),
		ODEs:      make(map[string]symbolic.Expr),
		Initial:   make(map[string]symbolic.Expr),
		Sigma:     make(map[string]int),
		Orders:    make(map[string]int),
	}

	t := symbolic.S(opts.TimeVar)
	for _, name := range sys.Species {
		sys.Funcs[name] = symbolic.CallOf(name, t)
	}

	factors := []symbolic.Expr{k}
	for _, name := range r.Reactants {
		factors = append(factors, sys.Funcs[name])
		sys.Orders[name]++
	}
	sys.Rate = symbolic.MulOf(factors...)

	reactant := setOf(r.Reactants)
	product := setOf(r.Products)
	for _, name := range sys.Species {
		sigma, err := signOf(name, reactant[name], product[name], opts.Overlap)
		if err != nil {
			return nil, err
		}
		sys.Sigma[name] = sigma
		sys.ODEs[name] = symbolic.MulOf(symbolic.N(int64(sigma)), sys.Rate)

		init, err := initialValue(r, name, opts.Missing)
		if err != nil {
			return nil, err
		}
		sys.Initial[name] = init
	}

	opts.Logger.Debug("built reaction system",
		"species", sys.Species,
		"rate", sys.Rate.String(),
	)
	return sys, nil
}

// Equations returns dX/dt = f for every species in species order.
func (s *System) Equations() []symbolic.Equation {
	eqs := make([]symbolic.Equation, 0, len(s.Species))
	for _, name := range s.Species {
		eqs = append(eqs, symbolic.Eq(symbolic.DerivativeOf(s.Funcs[name]), s.ODEs[name]))
	}
	return eqs
}

// Active returns the species listed as reactant or product, in species order.
func (s *System) Active() []string {
	inList := setOf(append(append([]string(nil), s.Reactants...), s.Products...))
	var out []string
	for _, name := range s.Species {
		if inList[name] {
			out = append(out, name)
		}
	}
	return out
}

// Substitute replaces every concentration function X(t) in e with sols[X].
func (s *System) Substitute(e symbolic.Expr, sols map[string]symbolic.Expr) symbolic.Expr {
	return symbolic.Replace(e, func(x symbolic.Expr) (symbolic.Expr, bool) {
		c, ok := x.(*symbolic.Call)
		if !ok {
			return nil, false
		}
		sol, ok := sols[c.Name()]
		return sol, ok
	})
}

func signOf(name string, isReactant, isProduct bool, policy OverlapPolicy) (int, error) {
	switch {
	case isReactant && isProduct:
		switch policy {
		case ReformedLast:
			return 1, nil
		case Catalytic:
			return 0, nil
		case RejectOverlap:
			return 0, fmt.Errorf("%w: %s", ErrAmbiguousSpecies, name)
		}
		return -1, nil
	case isReactant:
		return -1, nil
	case isProduct:
		return 1, nil
	}
	return 0, nil
}

func initialValue(r Reaction, name string, policy MissingPolicy) (symbolic.Expr, error) {
	p, ok := r.Initial[name]
	if !ok {
		if policy == RejectMissing {
			return nil, fmt.Errorf("%w: %s", ErrMissingInitial, name)
		}
		return symbolic.N(0), nil
	}
	v, err := Resolve(p)
	if err != nil {
		return nil, fmt.Errorf("initial value of %s: %w", name, err)
	}
	return v, nil
}

func validate(r Reaction, opts Options) error {
	names := append(append([]string(nil), r.Reactants...), r.Products...)
	for name := range r.Initial {
		names = append(names, name)
	}
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: empty species name", ErrMalformedInput)
		}
	}

	reserved := map[string]bool{opts.TimeVar: true, opts.FreqVar: true}
	params := []Param{r.K}
	for _, p := range r.Initial {
		params = append(params, p)
	}
	for _, p := range params {
		if p.IsSymbol() && reserved[p.Name] {
			return fmt.Errorf("%w: parameter %q shadows a variable", ErrMalformedInput, p.Name)
		}
	}
	return nil
}

func speciesSet(r Reaction) []string {
	names := append(append([]string(nil), r.Reactants...), r.Products...)
	for name := range r.Initial {
		names = append(names, name)
	}
	return sortedUnique(names)
}

func sortedUnique(names []string) []string {
	seen := setOf(names)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func setOf(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
