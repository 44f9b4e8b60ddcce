package kinetics

import (
	"math"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Deviation is the largest absolute difference between two strategies for
// one species. Missing is set when either strategy has no trajectory.
type Deviation struct {
	Species string
	MaxAbs  float64
	At      float64
	Missing bool
}

// Compare evaluates both strategies on r at the given times and reports the
// per-species deviation in species order.
func Compare(r Reaction, a, b Strategy, params map[string]float64, times []float64, opts Options) ([]Deviation, error) {
	opts = opts.withDefaults()
	left, err := a.Trajectories(r, opts)
	if err != nil {
		return nil, err
	}
	right, err := b.Trajectories(r, opts)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(left)+len(right))
	for name := range left {
		names = append(names, name)
	}
	for name := range right {
		names = append(names, name)
	}

	var out []Deviation
	for _, name := range sortedUnique(names) {
		lf, lok := left[name]
		rf, rok := right[name]
		if !lok || !rok {
			out = append(out, Deviation{Species: name, Missing: true})
			continue
		}
		lv, err := sampleAll([]string{name}, map[string]symbolic.Expr{name: lf}, params, opts.TimeVar, times)
		if err != nil {
			return nil, err
		}
		rv, err := sampleAll([]string{name}, map[string]symbolic.Expr{name: rf}, params, opts.TimeVar, times)
		if err != nil {
			return nil, err
		}
		d := Deviation{Species: name}
		for i, at := range times {
			if diff := math.Abs(lv[i][name] - rv[i][name]); diff > d.MaxAbs {
				d.MaxAbs, d.At = diff, at
			}
		}
		out = append(out, d)
	}
	opts.Logger.Debug("compared strategies", "a", a.Name(), "b", b.Name(), "species", len(out))
	return out, nil
}
