package trajectory

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Sampler evaluates closed-form trajectories on a uniform time grid.
type Sampler struct {
	species []string
	exprs   []symbolic.Expr
	timeVar string
	metrics []Metric
}

// New prepares a sampler for the given species. Every species needs an
// expression in sols.
func New(species []string, sols map[string]symbolic.Expr, timeVar string) (*Sampler, error) {
	exprs := make([]symbolic.Expr, len(species))
	for i, name := range species {
		e, ok := sols[name]
		if !ok {
			return nil, fmt.Errorf("no trajectory for species %s", name)
		}
		exprs[i] = e
	}
	return &Sampler{
		species: append([]string(nil), species...),
		exprs:   exprs,
		timeVar: timeVar,
		metrics: make([]Metric, 0),
	}, nil
}

func (s *Sampler) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }
func (s *Sampler) Species() []string  { return append([]string(nil), s.species...) }

// Run samples t = 0, dt, 2dt, ... up to duration.
func (s *Sampler) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	steps := Steps(cfg)
	result := &Result{
		Species: s.Species(),
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		x, err := s.At(t, cfg.Params)
		if err != nil {
			return nil, err
		}
		if cfg.ValidateState && !x.IsValid() {
			result.Errors = append(result.Errors, SampleError{Step: i, Time: t, Message: fmt.Sprintf("invalid state (NaN/Inf) at t=%.4f", t)})
			break
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback streams samples until the callback returns false.
func (s *Sampler) RunWithCallback(ctx context.Context, cfg Config, callback func(State, float64) bool) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	steps := Steps(cfg)
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		x, err := s.At(t, cfg.Params)
		if err != nil {
			return err
		}
		if !callback(x, t) {
			return nil
		}
	}
	return nil
}

// At evaluates every species at time t.
func (s *Sampler) At(t float64, params map[string]float64) (State, error) {
	x := make(State, len(s.exprs))
	for i, e := range s.exprs {
		v, err := symbolic.EvaluateAt(e, params, s.timeVar, t)
		if err != nil {
			return nil, fmt.Errorf("species %s at t=%g: %w", s.species[i], t, err)
		}
		x[i] = v
	}
	return x, nil
}

// Steps is the number of intervals on the grid, rounding to absorb
// floating point error in duration/dt.
func Steps(cfg Config) int {
	return int(cfg.Duration/cfg.Dt + 1e-9)
}

// Times lists the grid points of cfg.
func Times(cfg Config) ([]float64, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	steps := Steps(cfg)
	out := make([]float64, steps+1)
	for i := range out {
		out[i] = float64(i) * cfg.Dt
	}
	return out, nil
}

// MaxSteps bounds the grid of a single run.
const MaxSteps = 1_000_000

// ValidateConfig requires a positive, finite dt and duration and at most
// MaxSteps intervals.
func ValidateConfig(cfg Config) error {
	if math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) || cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive and finite, got %g", cfg.Dt)
	}
	if math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) || cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive and finite, got %g", cfg.Duration)
	}
	if n := cfg.Duration / cfg.Dt; n > MaxSteps {
		return fmt.Errorf("duration/dt = %g exceeds %d steps", n, MaxSteps)
	}
	return nil
}
