package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/rxnrate/internal/config"
	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
	"github.com/san-kum/rxnrate/internal/trajectory"
)

// resolveConfig merges, lowest first: defaults, the config file, a preset,
// environment and changed flags.
//
// The reaction section is read from the file with yaml.v3 because viper
// folds map keys to lower case and species names are case sensitive.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if used := viper.ConfigFileUsed(); used != "" {
		loaded, err := config.Load(used)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", used, err)
		}
		cfg = loaded
	}

	if preset != "" {
		eq := cfg.Equation()
		if reactionFlag != "" {
			eq = normalizeEquation(reactionFlag)
		}
		p := config.GetPreset(eq, preset)
		if p == nil {
			return nil, fmt.Errorf("preset %q not found for %s (available: %s)", preset, eq, strings.Join(config.ListPresets(eq), ", "))
		}
		cfg = p
	}

	flags := cmd.Flags()
	overlay := func(key, flag string, apply func()) {
		if preset == "" || flags.Changed(flag) || envSet(key) {
			apply()
		}
	}
	overlay("strategy", "strategy", func() { cfg.Strategy = viper.GetString("strategy") })
	overlay("overlap", "overlap", func() { cfg.Overlap = viper.GetString("overlap") })
	overlay("missing", "missing", func() { cfg.Missing = viper.GetString("missing") })
	overlay("time_var", "time-var", func() { cfg.TimeVar = viper.GetString("time_var") })
	overlay("freq_var", "freq-var", func() { cfg.FreqVar = viper.GetString("freq_var") })
	overlay("dt", "dt", func() { cfg.Dt = viper.GetFloat64("dt") })
	overlay("duration", "duration", func() { cfg.Duration = viper.GetFloat64("duration") })

	if reactionFlag != "" && preset == "" {
		reactants, products, err := config.ParseEquation(reactionFlag)
		if err != nil {
			return nil, err
		}
		cfg.Reaction.Reactants, cfg.Reaction.Products = reactants, products
		cfg.Reaction.Initial = map[string]kinetics.Param{}
	}
	if kFlag != "" {
		cfg.Reaction.K = kinetics.ParseParam(kFlag)
	}

	inits, err := parseAssignments(initFlags)
	if err != nil {
		return nil, err
	}
	if cfg.Reaction.Initial == nil {
		cfg.Reaction.Initial = map[string]kinetics.Param{}
	}
	for name, value := range inits {
		cfg.Reaction.Initial[name] = kinetics.ParseParam(value)
	}

	params, err := parseAssignments(paramFlags)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 && cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	for name, value := range params {
		v, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		cfg.Params[name] = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("resolved configuration",
		"reaction", cfg.Equation(),
		"strategy", cfg.Strategy,
		"k", cfg.Reaction.K.String(),
		"params", len(cfg.Params))
	return cfg, nil
}

func envSet(key string) bool {
	_, ok := os.LookupEnv("RXNRATE_" + strings.ToUpper(key))
	return ok
}

// parseAssignments reads NAME=VALUE pairs.
func parseAssignments(items []string) (map[string]string, error) {
	out := make(map[string]string, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("%w: expected NAME=VALUE, got %q", kinetics.ErrMalformedInput, item)
		}
		out[name] = value
	}
	return out, nil
}

// parseSweep reads NAME=START:STOP:N.
func parseSweep(s string) (string, []float64, error) {
	name, rng, ok := strings.Cut(s, "=")
	parts := strings.Split(rng, ":")
	if !ok || strings.TrimSpace(name) == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("%w: expected NAME=START:STOP:N, got %q", kinetics.ErrMalformedInput, s)
	}
	start, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", nil, fmt.Errorf("sweep start: %w", err)
	}
	stop, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", nil, fmt.Errorf("sweep stop: %w", err)
	}
	n, err := cast.ToIntE(strings.TrimSpace(parts[2]))
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("%w: sweep needs a positive count, got %q", kinetics.ErrMalformedInput, parts[2])
	}
	return strings.TrimSpace(name), trajectory.Linspace(start, stop, n), nil
}

func normalizeEquation(s string) string {
	reactants, products, err := config.ParseEquation(s)
	if err != nil {
		return s
	}
	return config.FormatEquation(reactants, products)
}

// unboundParams lists free symbols of the solutions that params does not bind.
func unboundParams(sols map[string]symbolic.Expr, params map[string]float64, timeVar string) []string {
	seen := map[string]bool{}
	for _, e := range sols {
		for _, name := range symbolic.FreeSymbols(e) {
			if _, ok := params[name]; !ok && name != timeVar {
				seen[name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
