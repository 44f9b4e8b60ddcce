package config

import (
	"sort"

	"github.com/san-kum/rxnrate/internal/kinetics"
)

func num(v float64) kinetics.Param { return kinetics.Num(v) }
func sym(s string) kinetics.Param { return kinetics.Sym(s) }
func initial(kv ...any) map[string]kinetics.Param {
	out := make(map[string]kinetics.Param, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1].(kinetics.Param)
	}
	return out
}

// Presets are keyed by reaction equation, then by scenario name.
var Presets = map[string]map[string]*Config{
	"A + B -> C": {
		"equal": {
			Reaction: ReactionConfig{
				Reactants: []string{"A", "B"}, Products: []string{"C"}, K: num(1.0),
				Initial: initial("A", num(1.0), "B", num(1.0), "C", num(0.0)),
			},
			Dt: 0.05, Duration: 10.0,
		},
		"excess": {
			Reaction: ReactionConfig{
				Reactants: []string{"A", "B"}, Products: []string{"C"}, K: num(0.5),
				Initial: initial("A", num(1.0), "B", num(3.0)),
			},
			Dt: 0.05, Duration: 10.0,
		},
		"flex": {
			Reaction: ReactionConfig{
				Reactants: []string{"A", "B"}, Products: []string{"C"}, K: sym("k1"),
				Initial: initial("A", sym("a_0"), "B", num(2.0), "C", num(0.0)),
			},
			Dt: 0.05, Duration: 10.0,
			Params: map[string]float64{"k1": 0.5, "a_0": 1.0},
		},
	},
	"A -> B": {
		"unit": {
			Reaction: ReactionConfig{
				Reactants: []string{"A"}, Products: []string{"B"}, K: num(1.0),
				Initial: initial("A", num(1.0), "B", num(0.0)),
			},
			Dt: 0.05, Duration: 8.0,
		},
		"symbolic": {
			Reaction: ReactionConfig{
				Reactants: []string{"A"}, Products: []string{"B"}, K: sym("k"),
				Initial: initial("A", sym("a_0")),
			},
			Dt: 0.05, Duration: 8.0,
			Params: map[string]float64{"k": 0.8, "a_0": 2.0},
		},
	},
	"A + B -> C + D": {
		"equal": {
			Reaction: ReactionConfig{
				Reactants: []string{"A", "B"}, Products: []string{"C", "D"}, K: num(4.0),
				Initial: initial("A", num(1), "B", num(1), "C", num(0), "D", num(0), "E", num(3)),
			},
			Dt: 0.02, Duration: 5.0,
		},
	},
	"A -> C + D": {
		"unit": {
			Reaction: ReactionConfig{
				Reactants: []string{"A"}, Products: []string{"C", "D"}, K: num(1.0),
				Initial: initial("A", num(1.0)),
			},
			Dt: 0.05, Duration: 8.0,
		},
	},
	"A + B + E -> C + D": {
		"direct": {
			Reaction: ReactionConfig{
				Reactants: []string{"A", "B", "E"}, Products: []string{"C", "D"}, K: num(4.0),
				Initial: initial("A", num(1), "B", num(1), "C", num(0), "D", num(0), "E", num(3)),
			},
			Strategy: "direct",
			Dt:       0.02, Duration: 3.0,
		},
	},
}

// GetPreset returns a copy of the preset with defaults filled in, or nil.
func GetPreset(reaction, name string) *Config {
	group, ok := Presets[reaction]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Reaction = p.Reaction
	cfg.Reaction.Initial = make(map[string]kinetics.Param, len(p.Reaction.Initial))
	for k, v := range p.Reaction.Initial {
		cfg.Reaction.Initial[k] = v
	}
	if p.Strategy != "" {
		cfg.Strategy = p.Strategy
	}
	if p.Dt > 0 {
		cfg.Dt = p.Dt
	}
	if p.Duration > 0 {
		cfg.Duration = p.Duration
	}
	if len(p.Params) > 0 {
		cfg.Params = make(map[string]float64, len(p.Params))
		for k, v := range p.Params {
			cfg.Params[k] = v
		}
	}
	return cfg
}

func ListPresets(reaction string) []string {
	group, ok := Presets[reaction]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListReactions() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
