package trajectory

import "math"

// State holds one concentration per species, in sampler species order.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Metric accumulates a scalar over a sampled trajectory.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Dt       float64
	Duration float64
	// Params binds every free parameter in the closed forms.
	Params map[string]float64
	// ValidateState stops sampling at the first NaN or Inf.
	ValidateState bool
}

type Result struct {
	Species []string
	States  []State
	Times   []float64
	Metrics map[string]float64
	Errors  []error
}

// Column returns the samples of one species.
func (r *Result) Column(species string) []float64 {
	idx := -1
	for i, name := range r.Species {
		if name == species {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s[idx]
	}
	return out
}

// SampleError records where sampling produced an invalid state.
type SampleError struct {
	Step    int
	Time    float64
	Message string
}

func (e SampleError) Error() string {
	return e.Message
}
