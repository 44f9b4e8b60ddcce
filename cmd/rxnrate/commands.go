package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/rxnrate/internal/config"
	"github.com/san-kum/rxnrate/internal/export"
	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
	"github.com/san-kum/rxnrate/internal/trajectory"
	"github.com/san-kum/rxnrate/internal/viz"
)

var registry = kinetics.NewRegistry()

func styles() viz.Styles {
	return viz.NewStyles(viz.GetTheme(viper.GetString("theme")))
}

// calculation is a resolved configuration plus everything derived from it
// by one strategy.
type calculation struct {
	cfg      *config.Config
	opts     kinetics.Options
	reaction kinetics.Reaction
	strategy kinetics.Strategy

	report  *export.Report
	system  *kinetics.System
	species []string
	sols    map[string]symbolic.Expr
}

func prepare(cmd *cobra.Command) (*calculation, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.GetOptions(logger)
	if err != nil {
		return nil, err
	}
	strategy, err := registry.Get(cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(registry.List(), ", "))
	}
	return &calculation{cfg: cfg, opts: opts, reaction: cfg.GetReaction(), strategy: strategy}, nil
}

// solvers produce the richer reports of the built-in strategies. Any other
// registered strategy goes through its own Trajectories.
var solvers = map[string]func(*calculation) error{
	kinetics.MassActionLaplace{}.Name():         (*calculation).solveMassAction,
	kinetics.DirectFirstOrderHeuristic{}.Name(): (*calculation).solveDirect,
}

// solve runs the configured strategy and fills report, species and sols.
func (c *calculation) solve() error {
	if fn, ok := solvers[c.strategy.Name()]; ok {
		return fn(c)
	}
	sols, err := c.strategy.Trajectories(c.reaction, c.opts)
	if err != nil {
		return err
	}
	c.report = export.NewTrajectoryReport(c.cfg.Equation(), c.strategy.Name(), c.opts.TimeVar, sols)
	c.species = c.report.Species
	c.sols = sols
	return nil
}

func (c *calculation) solveMassAction() error {
	sol, err := kinetics.Solve(c.reaction, c.opts)
	if err != nil {
		return err
	}
	c.report = export.NewReport(c.cfg.Equation(), c.strategy.Name(), sol)
	c.system = sol.System
	c.species = sol.System.Species
	c.sols = sol.Solutions
	return nil
}

func (c *calculation) solveDirect() error {
	tr, err := kinetics.CalculateLaplaceTransforms(c.reaction, c.opts)
	if err != nil {
		return err
	}
	sols, err := kinetics.InverseLaplaceTransforms(tr, c.opts)
	if err != nil {
		return err
	}
	c.report = export.NewTransformReport(c.cfg.Equation(), c.opts.TimeVar, tr, sols)
	c.sols = sols
	for _, name := range tr.Species {
		if _, ok := sols[name]; ok {
			c.species = append(c.species, name)
		}
	}
	return nil
}

// sample evaluates the solutions on the configured grid. Conserved
// quantities and per-species extremes are tracked as metrics.
func (c *calculation) sample(ctx context.Context) (*trajectory.Result, error) {
	scfg := c.cfg.GetSampleConfig()
	if missing := unboundParams(c.sols, scfg.Params, c.opts.TimeVar); len(missing) > 0 {
		return nil, fmt.Errorf("unbound parameters %s: bind them with --param NAME=VALUE", strings.Join(missing, ", "))
	}

	sampler, err := trajectory.New(c.species, c.sols, c.opts.TimeVar)
	if err != nil {
		return nil, err
	}
	if c.system != nil {
		for _, m := range trajectory.DriftMetrics(c.system) {
			sampler.AddMetric(m)
		}
	}
	for _, name := range c.species {
		sampler.AddMetric(trajectory.NewPeak(c.species, name))
		sampler.AddMetric(trajectory.NewMinimum(c.species, name))
	}

	logger.Info("sampling", "species", len(c.species), "steps", trajectory.Steps(scfg))
	result, err := sampler.Run(ctx, scfg)
	if err != nil {
		return nil, err
	}
	for _, e := range result.Errors {
		logger.Warn("sampling stopped early", "error", e)
	}
	c.report.Metrics = result.Metrics
	return result, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "show the rate law and ODE system",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			sys, err := kinetics.Build(c.reaction, c.opts)
			if err != nil {
				return err
			}
			fmt.Print(viz.RenderSystem(styles(), c.cfg.Equation(), sys))
			return nil
		},
	}
}

func solveCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the rate equations and integrate concentration products",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			if err := c.solve(); err != nil {
				return err
			}
			return emitReport(c, &flags)
		},
	}
	addReportFlags(cmd, &flags)
	return cmd
}

func transformCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "compute s-domain transforms with the first-order heuristic",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			if c.strategy, err = registry.Get(kinetics.DirectFirstOrderHeuristic{}.Name()); err != nil {
				return err
			}
			if err := c.solve(); err != nil {
				return err
			}
			return emitReport(c, &flags)
		},
	}
	addReportFlags(cmd, &flags)
	return cmd
}

type reportFlags struct {
	json     bool
	latex    bool
	markdown bool
	output   string
}

func addReportFlags(cmd *cobra.Command, f *reportFlags) {
	cmd.Flags().BoolVar(&f.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&f.latex, "latex", false, "print LaTeX forms")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "print the report as rendered Markdown")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "also write the JSON report to this file")
}

func emitReport(c *calculation, f *reportFlags) error {
	if f.output != "" {
		if err := export.ExportJSON(f.output, c.report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported to %s\n", f.output)
	}
	switch {
	case f.json:
		return export.ExportJSONStdout(c.report)
	case f.latex:
		fmt.Print(viz.RenderLaTeX(c.report))
	case f.markdown:
		out, err := viz.RenderTerminal(viz.RenderMarkdown(c.report), 100)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		fmt.Print(viz.RenderReport(styles(), c.report))
	}
	return nil
}

func compareCommand() *cobra.Command {
	var tolerance float64
	cmd := &cobra.Command{
		Use:   "compare [strategy] [strategy]",
		Short: "compare two strategies numerically on the sampling grid",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			names := []string{"mass-action", "direct"}
			copy(names, args)
			a, err := registry.Get(names[0])
			if err != nil {
				return err
			}
			b, err := registry.Get(names[1])
			if err != nil {
				return err
			}

			times, err := trajectory.Times(c.cfg.GetSampleConfig())
			if err != nil {
				return err
			}
			devs, err := kinetics.Compare(c.reaction, a, b, c.cfg.Params, times, c.opts)
			if err != nil {
				return err
			}
			fmt.Print(viz.RenderCompare(styles(), a.Name(), b.Name(), devs, tolerance))
			return nil
		},
	}
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-9, "largest deviation reported as agreeing")
	return cmd
}

func verifyCommand() *cobra.Command {
	var tolerance float64
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "check the closed forms against the ODEs and conservation laws",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			sol, err := kinetics.Solve(c.reaction, c.opts)
			if err != nil {
				return err
			}
			if missing := unboundParams(sol.Solutions, c.cfg.Params, c.opts.TimeVar); len(missing) > 0 {
				return fmt.Errorf("unbound parameters %s: bind them with --param NAME=VALUE", strings.Join(missing, ", "))
			}
			times, err := trajectory.Times(c.cfg.GetSampleConfig())
			if err != nil {
				return err
			}
			report, err := kinetics.Verify(sol.System, sol.Solutions, c.cfg.Params, times)
			if err != nil {
				return err
			}
			fmt.Print(viz.RenderVerify(styles(), report, tolerance))
			if !report.OK(tolerance) {
				return fmt.Errorf("verification failed: max deviation %g", report.Max())
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-8, "largest accepted deviation")
	return cmd
}

func plotCommand() *cobra.Command {
	var plot viz.PlotOptions
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "plot sampled concentrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			if err := c.solve(); err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			result, err := c.sample(ctx)
			if err != nil {
				return err
			}
			plot.Caption = c.cfg.Equation() + " (" + c.strategy.Name() + ")"
			chart, err := viz.Plot(result, plot)
			if err != nil {
				return err
			}
			fmt.Print(chart)
			return nil
		},
	}
	addPlotFlags(cmd, &plot)
	return cmd
}

func addPlotFlags(cmd *cobra.Command, opts *viz.PlotOptions) {
	cmd.Flags().StringSliceVar(&opts.Species, "species", nil, "species to plot (default: all)")
	cmd.Flags().IntVar(&opts.Height, "height", 12, "chart height")
	cmd.Flags().IntVar(&opts.Width, "width", 70, "chart width")
}

func sweepCommand() *cobra.Command {
	var (
		vary   string
		target string
		plot   viz.PlotOptions
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot one species while varying a parameter",
		Example: `  rxnrate sweep --preset flex --reaction "A + B -> C" --vary k1=0.1:2:5 --target C`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, values, err := parseSweep(vary)
			if err != nil {
				return err
			}
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			if err := c.solve(); err != nil {
				return err
			}
			if target == "" {
				target = c.species[len(c.species)-1]
			}

			bound := map[string]float64{}
			for k, v := range c.cfg.Params {
				bound[k] = v
			}
			bound[name] = values[0]
			if missing := unboundParams(c.sols, bound, c.opts.TimeVar); len(missing) > 0 {
				return fmt.Errorf("unbound parameters %s: bind them with --param NAME=VALUE", strings.Join(missing, ", "))
			}

			sampler, err := trajectory.New(c.species, c.sols, c.opts.TimeVar)
			if err != nil {
				return err
			}
			bindings := trajectory.Sweep(name, values)
			ctx, cancel := signalContext()
			defer cancel()
			logger.Info("sweeping", "param", name, "runs", len(bindings))
			results, err := trajectory.NewEnsemble(sampler, bindings).Run(ctx, c.cfg.GetSampleConfig())
			if err != nil {
				return err
			}

			labels := make([]string, len(bindings))
			for i, b := range bindings {
				labels[i] = trajectory.FormatBinding(b)
			}
			plot.Caption = target + "(" + c.opts.TimeVar + ") for " + c.cfg.Equation()
			chart, err := viz.PlotSweep(results, labels, target, plot)
			if err != nil {
				return err
			}
			fmt.Print(chart)
			return nil
		},
	}
	cmd.Flags().StringVar(&vary, "vary", "", "parameter range NAME=START:STOP:N")
	cmd.Flags().StringVar(&target, "target", "", "species to plot (default: last species)")
	cmd.Flags().IntVar(&plot.Height, "height", 12, "chart height")
	cmd.Flags().IntVar(&plot.Width, "width", 70, "chart width")
	_ = cmd.MarkFlagRequired("vary")
	return cmd
}

func sampleCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "sample concentrations and write CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := prepare(cmd)
			if err != nil {
				return err
			}
			if err := c.solve(); err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			result, err := c.sample(ctx)
			if err != nil {
				return err
			}
			if outPath == "" {
				return export.WriteCSV(os.Stdout, result)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.WriteCSV(f, result); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %d samples to %s\n", len(result.Times), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "CSV output file (default: stdout)")
	return cmd
}

func presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [reaction]",
		Short: "list preset reactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reactions := config.ListReactions()
			if len(args) == 1 {
				reactions = []string{normalizeEquation(args[0])}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "REACTION\tPRESET\tK\tINITIAL\tSTRATEGY")
			for _, reaction := range reactions {
				for _, name := range config.ListPresets(reaction) {
					p := config.GetPreset(reaction, name)
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", reaction, name, p.Reaction.K, formatInitial(p.Reaction.Initial), p.Strategy)
				}
			}
			return w.Flush()
		},
	}
}

func formatInitial(initial map[string]kinetics.Param) string {
	names := make([]string, 0, len(initial))
	for name := range initial {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + initial[name].String()
	}
	return strings.Join(parts, " ")
}

func initConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file for the current reaction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "rxnrate.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
}
