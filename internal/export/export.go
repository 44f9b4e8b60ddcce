package export

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
)

// Entry is one named expression in both plain and LaTeX form.
type Entry struct {
	Name  string `json:"name"`
	Expr  string `json:"expr"`
	LaTeX string `json:"latex"`
}

func entry(name string, e symbolic.Expr) Entry {
	return Entry{Name: name, Expr: e.String(), LaTeX: e.LaTeX()}
}

// Report is the serialisable result of one calculation.
type Report struct {
	Reaction   string             `json:"reaction"`
	Strategy   string             `json:"strategy"`
	TimeVar    string             `json:"time_var"`
	FreqVar    string             `json:"freq_var,omitempty"`
	Species    []string           `json:"species"`
	Rate       string             `json:"rate,omitempty"`
	ODEs       []Entry            `json:"odes,omitempty"`
	Initial    []Entry            `json:"initial,omitempty"`
	Extent     *Entry             `json:"extent,omitempty"`
	Solutions  []Entry            `json:"solutions"`
	Integrals  []Entry            `json:"integrals,omitempty"`
	Transforms []Entry            `json:"transforms,omitempty"`
	Skipped    []string           `json:"skipped,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// NewReport describes a closed-form solution.
func NewReport(reaction, strategy string, sol *kinetics.Solution) *Report {
	sys := sol.System
	r := &Report{
		Reaction: reaction,
		Strategy: strategy,
		TimeVar:  sys.TimeVar,
		Species:  append([]string(nil), sys.Species...),
		Rate:     sys.Rate.String(),
	}
	for _, eq := range sys.Equations() {
		r.ODEs = append(r.ODEs, Entry{Name: eq.LHS.String(), Expr: eq.String(), LaTeX: eq.LaTeX()})
	}
	for _, name := range sys.Species {
		r.Initial = append(r.Initial, entry(name, sys.Initial[name]))
		r.Solutions = append(r.Solutions, entry(name, sol.Solutions[name]))
	}
	if sol.Extent != nil {
		e := entry("xi", sol.Extent)
		r.Extent = &e
	}
	for _, p := range sol.Integrals.Pairs() {
		r.Integrals = append(r.Integrals, entry(p.String(), sol.Integrals[p]))
	}
	return r
}

// NewTransformReport describes the s-domain heuristic and its inverses.
func NewTransformReport(reaction, timeVar string, tr *kinetics.Transforms, sols map[string]symbolic.Expr) *Report {
	r := &Report{
		Reaction: reaction,
		Strategy: "direct",
		TimeVar:  timeVar,
		FreqVar:  tr.FreqVar,
		Species:  append([]string(nil), tr.Species...),
		Skipped:  append([]string(nil), tr.Skipped...),
	}
	for _, name := range tr.Species {
		if f, ok := tr.Domain[name]; ok {
			r.Transforms = append(r.Transforms, entry(name, f))
		}
		if f, ok := sols[name]; ok {
			r.Solutions = append(r.Solutions, entry(name, f))
		}
	}
	return r
}

// NewTrajectoryReport lists time-domain solutions of any strategy, sorted
// by species.
func NewTrajectoryReport(reaction, strategy, timeVar string, sols map[string]symbolic.Expr) *Report {
	r := &Report{
		Reaction: reaction,
		Strategy: strategy,
		TimeVar:  timeVar,
		Species:  make([]string, 0, len(sols)),
	}
	for name := range sols {
		r.Species = append(r.Species, name)
	}
	sort.Strings(r.Species)
	for _, name := range r.Species {
		r.Solutions = append(r.Solutions, entry(name, sols[name]))
	}
	return r
}

func WriteJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func ExportJSON(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, r)
}

func ExportJSONStdout(r *Report) error {
	return WriteJSON(os.Stdout, r)
}
