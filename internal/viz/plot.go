package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rxnrate/internal/trajectory"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Cyan,
	asciigraph.Magenta,
}

var legendColors = []lipgloss.Color{"4", "1", "2", "3", "6", "5"}

type PlotOptions struct {
	Height  int
	Width   int
	Caption string
	// Species limits the plot to these columns; empty plots all.
	Species []string
}

// Plot draws the selected species of a sampled trajectory on one chart.
func Plot(result *trajectory.Result, opts PlotOptions) (string, error) {
	if len(result.States) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}
	species := opts.Species
	if len(species) == 0 {
		species = result.Species
	}

	series := make([][]float64, 0, len(species))
	for _, name := range species {
		col := result.Column(name)
		if col == nil {
			return "", fmt.Errorf("unknown species %q", name)
		}
		series = append(series, col)
	}

	chart := asciigraph.PlotMany(series, graphOptions(opts, len(series))...)
	return chart + "\n" + legend(species) + "\n", nil
}

func graphOptions(opts PlotOptions, n int) []asciigraph.Option {
	height := opts.Height
	if height <= 0 {
		height = 12
	}
	options := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.SeriesColors(seriesColors[:min(n, len(seriesColors))]...),
	}
	if opts.Width > 0 {
		options = append(options, asciigraph.Width(opts.Width))
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}
	return options
}

func legend(species []string) string {
	parts := make([]string, len(species))
	for i, name := range species {
		style := lipgloss.NewStyle()
		if i < len(legendColors) {
			style = style.Foreground(legendColors[i])
		}
		parts[i] = style.Render("■ " + name)
	}
	return strings.Join(parts, "  ")
}

// PlotSweep draws one species from each run of an ensemble, labelled by
// its parameter binding.
func PlotSweep(results []*trajectory.Result, labels []string, species string, opts PlotOptions) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("no runs to plot")
	}

	series := make([][]float64, len(results))
	for i, r := range results {
		col := r.Column(species)
		if len(col) == 0 {
			return "", fmt.Errorf("unknown species %q", species)
		}
		series[i] = col
	}

	chart := asciigraph.PlotMany(series, graphOptions(opts, len(series))...)
	return chart + "\n" + legend(labels) + "\n", nil
}
