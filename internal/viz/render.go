package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/rxnrate/internal/export"
	"github.com/san-kum/rxnrate/internal/kinetics"
)

// RenderReport renders every populated section of a report.
func RenderReport(s Styles, r *export.Report) string {
	var sections []string

	header := []string{
		s.Row("Reaction", r.Reaction),
		s.Row("Strategy", r.Strategy),
		s.Row("Species", strings.Join(r.Species, ", ")),
	}
	if r.Rate != "" {
		header = append(header, s.Row("Rate", r.Rate))
	}
	if r.Extent != nil {
		header = append(header, s.Row("Extent", r.Extent.Expr))
	}
	sections = append(sections, s.Section("Reaction", header))

	if len(r.ODEs) > 0 {
		sections = append(sections, s.Section("Rate equations", exprLines(r.ODEs)))
	}
	if len(r.Initial) > 0 {
		sections = append(sections, s.Section("Initial values", namedLines(s, r.Initial)))
	}
	if len(r.Transforms) > 0 {
		sections = append(sections, s.Section("Laplace transforms ("+r.FreqVar+")", namedLines(s, r.Transforms)))
	}
	sections = append(sections, s.Section("Solutions ("+r.TimeVar+")", namedLines(s, r.Solutions)))
	if len(r.Integrals) > 0 {
		sections = append(sections, s.Section("Integrals from 0 to "+r.TimeVar, namedLines(s, r.Integrals)))
	}
	if len(r.Skipped) > 0 {
		sections = append(sections, s.Subtle.Render("no transform for: "+strings.Join(r.Skipped, ", ")))
	}
	if len(r.Metrics) > 0 {
		sections = append(sections, s.Section("Metrics", metricLines(s, r.Metrics)))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// RenderLaTeX lists the LaTeX form of every solution and integral.
func RenderLaTeX(r *export.Report) string {
	var b strings.Builder
	for _, e := range r.ODEs {
		b.WriteString(e.LaTeX + "\n")
	}
	for _, group := range [][]export.Entry{r.Transforms, r.Solutions, r.Integrals} {
		for _, e := range group {
			fmt.Fprintf(&b, "%s = %s\n", e.Name, e.LaTeX)
		}
	}
	return b.String()
}

func RenderVerify(s Styles, r *kinetics.VerifyReport, tol float64) string {
	var sections []string
	groups := []struct {
		title  string
		checks []kinetics.Check
	}{
		{"ODE residuals", r.Residuals},
		{"Initial values", r.Initial},
		{"Conserved quantities", r.Drift},
	}
	for _, g := range groups {
		if len(g.checks) == 0 {
			continue
		}
		lines := make([]string, 0, len(g.checks))
		for _, c := range g.checks {
			lines = append(lines, s.Row(c.Name, fmt.Sprintf("%-12.3g at %-8.4g %s", c.MaxAbs, c.At, status(s, c.MaxAbs, tol))))
		}
		sections = append(sections, s.Section(g.title, lines))
	}

	verdict := s.Pass.Render(fmt.Sprintf("OK: max deviation %.3g <= %.3g", r.Max(), tol))
	if !r.OK(tol) {
		verdict = s.Fail.Render(fmt.Sprintf("FAILED: max deviation %.3g > %.3g", r.Max(), tol))
	}
	sections = append(sections, verdict)
	return strings.Join(sections, "\n\n") + "\n"
}

func RenderCompare(s Styles, a, b string, devs []kinetics.Deviation, tol float64) string {
	lines := make([]string, 0, len(devs))
	for _, d := range devs {
		if d.Missing {
			lines = append(lines, s.Row(d.Species, s.Warn.Render("missing in one strategy")))
			continue
		}
		lines = append(lines, s.Row(d.Species, fmt.Sprintf("%-12.3g at %-8.4g %s", d.MaxAbs, d.At, status(s, d.MaxAbs, tol))))
	}
	return s.Section(a+" vs "+b, lines) + "\n"
}

func status(s Styles, v, tol float64) string {
	if v <= tol {
		return s.Pass.Render("ok")
	}
	return s.Fail.Render("off")
}

func exprLines(entries []export.Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Expr
	}
	return lines
}

func namedLines(s Styles, entries []export.Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = s.Row(e.Name, e.Expr)
	}
	return lines
}

func metricLines(s Styles, metrics map[string]float64) []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = s.Row(name, fmt.Sprintf("%.6g", metrics[name]))
	}
	return lines
}

// RenderSystem shows the rate law and ODE system before solving.
func RenderSystem(s Styles, reaction string, sys *kinetics.System) string {
	header := []string{
		s.Row("Reaction", reaction),
		s.Row("Species", strings.Join(sys.Species, ", ")),
		s.Row("Rate", sys.Rate.String()),
	}
	eqs := sys.Equations()
	odes := make([]string, len(eqs))
	for i, eq := range eqs {
		odes[i] = eq.String()
	}
	initial := make([]string, len(sys.Species))
	for i, name := range sys.Species {
		initial[i] = s.Row(name, sys.Initial[name].String())
	}
	return strings.Join([]string{
		s.Section("Reaction", header),
		s.Section("Rate equations", odes),
		s.Section("Initial values", initial),
	}, "\n\n") + "\n"
}
