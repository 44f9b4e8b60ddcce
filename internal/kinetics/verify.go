package kinetics

import (
	"fmt"
	"math"

	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Invariant is a linear combination of concentrations that the reaction
// leaves unchanged.
type Invariant struct {
	Name   string
	Coeffs map[string]int
}

// Value evaluates the combination for a set of concentrations.
func (inv Invariant) Value(conc map[string]float64) float64 {
	sum := 0.0
	for name, c := range inv.Coeffs {
		sum += float64(c) * conc[name]
	}
	return sum
}

// ConservedQuantities lists one invariant per species untouched by the
// reaction and one per pair of changing species: sigma_j*X_i - sigma_i*X_j.
func ConservedQuantities(sys *System) []Invariant {
	var out []Invariant
	var moving []string
	for _, name := range sys.Species {
		if sys.Sigma[name] == 0 {
			out = append(out, Invariant{Name: name, Coeffs: map[string]int{name: 1}})
			continue
		}
		moving = append(moving, name)
	}
	for i := 0; i < len(moving); i++ {
		for j := i + 1; j < len(moving); j++ {
			a, b := moving[i], moving[j]
			ca, cb := sys.Sigma[b], -sys.Sigma[a]
			if ca < 0 {
				ca, cb = -ca, -cb
			}
			op := " + "
			if cb < 0 {
				op = " - "
			}
			out = append(out, Invariant{Name: a + op + b, Coeffs: map[string]int{a: ca, b: cb}})
		}
	}
	return out
}

// Check is the largest absolute deviation seen for one quantity.
type Check struct {
	Name   string
	MaxAbs float64
	At     float64
}

// VerifyReport collects ODE residuals, initial value errors and invariant
// drift for a solution set.
type VerifyReport struct {
	Residuals []Check
	Initial   []Check
	Drift     []Check
}

// Max returns the largest deviation in the report.
func (r *VerifyReport) Max() float64 {
	worst := 0.0
	for _, group := range [][]Check{r.Residuals, r.Initial, r.Drift} {
		for _, c := range group {
			worst = math.Max(worst, c.MaxAbs)
		}
	}
	return worst
}

func (r *VerifyReport) OK(tol float64) bool { return r.Max() <= tol }

// Verify checks sols against sys numerically. params binds every free
// parameter; times are the sample points for the residual and drift checks.
func Verify(sys *System, sols map[string]symbolic.Expr, params map[string]float64, times []float64) (*VerifyReport, error) {
	t := sys.TimeVar
	report := &VerifyReport{}

	for _, name := range sys.Species {
		sol, ok := sols[name]
		if !ok {
			return nil, &SolveError{Species: name, Stage: "verify", Wrapped: fmt.Errorf("%w: no solution", ErrMalformedInput)}
		}
		residual := symbolic.Minus(sol.Diff(t), sys.Substitute(sys.ODEs[name], sols))
		check := Check{Name: name}
		for _, at := range times {
			v, err := symbolic.EvaluateAt(residual, params, t, at)
			if err != nil {
				return nil, &SolveError{Species: name, Stage: "verify", Wrapped: err}
			}
			if math.Abs(v) > check.MaxAbs || math.IsNaN(v) {
				check.MaxAbs, check.At = math.Abs(v), at
			}
		}
		report.Residuals = append(report.Residuals, check)

		got, err := symbolic.EvaluateAt(sol, params, t, 0)
		if err != nil {
			return nil, &SolveError{Species: name, Stage: "verify", Wrapped: err}
		}
		want, err := symbolic.Evaluate(sys.Initial[name], params)
		if err != nil {
			return nil, &SolveError{Species: name, Stage: "verify", Wrapped: err}
		}
		report.Initial = append(report.Initial, Check{Name: name, MaxAbs: math.Abs(got - want)})
	}

	values, err := sampleAll(sys.Species, sols, params, t, append([]float64{0}, times...))
	if err != nil {
		return nil, err
	}
	for _, inv := range ConservedQuantities(sys) {
		check := Check{Name: inv.Name}
		start := inv.Value(values[0])
		for i, at := range times {
			if d := math.Abs(inv.Value(values[i+1]) - start); d > check.MaxAbs {
				check.MaxAbs, check.At = d, at
			}
		}
		report.Drift = append(report.Drift, check)
	}
	return report, nil
}

// sampleAll evaluates every species at each time.
func sampleAll(species []string, sols map[string]symbolic.Expr, params map[string]float64, t string, times []float64) ([]map[string]float64, error) {
	out := make([]map[string]float64, len(times))
	for i, at := range times {
		row := make(map[string]float64, len(species))
		for _, name := range species {
			v, err := symbolic.EvaluateAt(sols[name], params, t, at)
			if err != nil {
				return nil, &SolveError{Species: name, Stage: "sample", Wrapped: err}
			}
			row[name] = v
		}
		out[i] = row
	}
	return out, nil
}
