package trajectory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Ensemble samples the same closed forms under several parameter bindings,
// one goroutine per binding.
type Ensemble struct {
	base     *Sampler
	bindings []map[string]float64
	// metrics builds fresh metrics for each run; metrics are stateful and
	// cannot be shared between goroutines.
	metrics func() []Metric
}

func NewEnsemble(s *Sampler, bindings []map[string]float64) *Ensemble {
	return &Ensemble{base: s, bindings: bindings}
}

// WithMetrics attaches a metric factory called once per run.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

// Run samples every binding on the grid of cfg. Each binding is layered
// over cfg.Params. Results are in binding order; the first error wins.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	results := make([]*Result, len(e.bindings))
	errs := make([]error, len(e.bindings))

	var wg sync.WaitGroup
	for i := range e.bindings {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Params = merge(cfg.Params, e.bindings[idx])

			s := &Sampler{species: e.base.species, exprs: e.base.exprs, timeVar: e.base.timeVar}
			if e.metrics != nil {
				s.metrics = e.metrics()
			}
			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", FormatBinding(e.bindings[i]), err)
		}
	}
	return results, nil
}

func merge(base, over map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Sweep builds one binding per value of a single parameter.
func Sweep(name string, values []float64) []map[string]float64 {
	out := make([]map[string]float64, len(values))
	for i, v := range values {
		out[i] = map[string]float64{name: v}
	}
	return out
}

// FormatBinding renders a binding as "a=1 k=0.5" with sorted names.
func FormatBinding(b map[string]float64) string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + strconv.FormatFloat(b[name], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
