package trajectory

import (
	"math"

	"github.com/san-kum/rxnrate/internal/kinetics"
)

// InvariantDrift tracks the largest absolute change of a conserved
// quantity relative to its value at the first sample.
type InvariantDrift struct {
	inv      kinetics.Invariant
	species  []string
	initial  float64
	maxDrift float64
	samples  int
}

func NewInvariantDrift(inv kinetics.Invariant, species []string) *InvariantDrift {
	return &InvariantDrift{inv: inv, species: species}
}

func (d *InvariantDrift) Name() string { return "drift[" + d.inv.Name + "]" }

func (d *InvariantDrift) Observe(x State, t float64) {
	conc := make(map[string]float64, len(d.species))
	for i, name := range d.species {
		conc[name] = x[i]
	}
	v := d.inv.Value(conc)
	if d.samples == 0 {
		d.initial = v
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, math.Abs(v-d.initial))
}

func (d *InvariantDrift) Value() float64 { return d.maxDrift }

func (d *InvariantDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// Extreme tracks the minimum or maximum of one species.
type Extreme struct {
	name    string
	index   int
	maximum bool
	value   float64
	samples int
}

func NewPeak(species []string, name string) *Extreme   { return newExtreme(species, name, true) }
func NewMinimum(species []string, name string) *Extreme { return newExtreme(species, name, false) }

func newExtreme(species []string, name string, maximum bool) *Extreme {
	idx := -1
	for i, s := range species {
		if s == name {
			idx = i
		}
	}
	prefix := "min["
	if maximum {
		prefix = "max["
	}
	return &Extreme{name: prefix + name + "]", index: idx, maximum: maximum}
}

func (e *Extreme) Name() string { return e.name }

func (e *Extreme) Observe(x State, t float64) {
	if e.index < 0 || e.index >= len(x) {
		return
	}
	v := x[e.index]
	switch {
	case e.samples == 0:
		e.value = v
	case e.maximum:
		e.value = math.Max(e.value, v)
	default:
		e.value = math.Min(e.value, v)
	}
	e.samples++
}

func (e *Extreme) Value() float64 { return e.value }

func (e *Extreme) Reset() {
	e.value = 0
	e.samples = 0
}

// DriftMetrics returns one InvariantDrift per conserved quantity of sys.
func DriftMetrics(sys *kinetics.System) []Metric {
	var out []Metric
	for _, inv := range kinetics.ConservedQuantities(sys) {
		out = append(out, NewInvariantDrift(inv, sys.Species))
	}
	return out
}
