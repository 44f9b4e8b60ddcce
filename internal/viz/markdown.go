package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/san-kum/rxnrate/internal/export"
)

// RenderMarkdown writes the report as a Markdown document. Expressions are
// code spans; LaTeX forms go in a math column.
func RenderMarkdown(r *export.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Reaction)
	fmt.Fprintf(&b, "Strategy: **%s**, species: %s\n\n", r.Strategy, strings.Join(r.Species, ", "))
	if r.Rate != "" {
		fmt.Fprintf(&b, "Rate law: `%s`\n\n", r.Rate)
	}

	if len(r.ODEs) > 0 {
		b.WriteString("## Rate equations\n\n")
		for _, e := range r.ODEs {
			fmt.Fprintf(&b, "- `%s`\n", e.Expr)
		}
		b.WriteString("\n")
	}
	table(&b, "Initial values", r.Initial)
	table(&b, "Laplace transforms", r.Transforms)
	table(&b, "Solutions", r.Solutions)
	table(&b, "Integrals from 0 to "+r.TimeVar, r.Integrals)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "_No transform for: %s_\n", strings.Join(r.Skipped, ", "))
	}
	return b.String()
}

func table(b *strings.Builder, title string, entries []export.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n| Name | Expression | LaTeX |\n| --- | --- | --- |\n", title)
	for _, e := range entries {
		fmt.Fprintf(b, "| %s | `%s` | `%s` |\n", e.Name, e.Expr, strings.ReplaceAll(e.LaTeX, "|", `\|`))
	}
	b.WriteString("\n")
}

// RenderTerminal renders Markdown for the terminal with glamour.
func RenderTerminal(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
