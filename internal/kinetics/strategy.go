package kinetics

import (
	"fmt"
	"sort"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Strategy produces time-domain trajectories for a reaction.
type Strategy interface {
	Name() string
	// Exact reports whether the trajectories solve the mass-action ODEs.
	Exact() bool
	Trajectories(r Reaction, opts Options) (map[string]symbolic.Expr, error)
}

// MassActionLaplace is the canonical strategy backed by Build and SolveSystem.
type MassActionLaplace struct{}

func (MassActionLaplace) Name() string { return "mass-action" }
func (MassActionLaplace) Exact() bool  { return true }

func (MassActionLaplace) Trajectories(r Reaction, opts Options) (map[string]symbolic.Expr, error) {
	sys, err := Build(r, opts)
	if err != nil {
		return nil, err
	}
	sols, _, err := SolveSystem(sys, opts)
	return sols, err
}

// DirectFirstOrderHeuristic is the approximate s-domain strategy.
type DirectFirstOrderHeuristic struct{}

func (DirectFirstOrderHeuristic) Name() string { return "direct" }
func (DirectFirstOrderHeuristic) Exact() bool  { return false }

func (DirectFirstOrderHeuristic) Trajectories(r Reaction, opts Options) (map[string]symbolic.Expr, error) {
	tr, err := CalculateLaplaceTransforms(r, opts)
	if err != nil {
		return nil, err
	}
	return InverseLaplaceTransforms(tr, opts)
}

type Registry struct {
	strategies map[string]func() Strategy
}

func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]func() Strategy)}
	r.Register(func() Strategy { return MassActionLaplace{} })
	r.Register(func() Strategy { return DirectFirstOrderHeuristic{} })
	return r
}

// Register adds a strategy under its own name, replacing any previous one.
func (r *Registry) Register(fn func() Strategy) {
	r.strategies[fn().Name()] = fn
}

func (r *Registry) Get(name string) (Strategy, error) {
	fn, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
