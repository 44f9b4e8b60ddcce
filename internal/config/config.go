package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/trajectory"
)

const (
	DefaultDt       = 0.05
	DefaultDuration = 10.0
	DefaultStrategy = "mass-action"
	DefaultTimeVar  = "t"
	DefaultFreqVar  = "s"
)

// Config is a reaction description plus the settings used to solve and
// sample it.
type Config struct {
	Reaction ReactionConfig     `yaml:"reaction"`
	Strategy string             `yaml:"strategy"`
	Overlap  string             `yaml:"overlap"`
	Missing  string             `yaml:"missing"`
	TimeVar  string             `yaml:"time_var"`
	FreqVar  string             `yaml:"freq_var"`
	Dt       float64            `yaml:"dt"`
	Duration float64            `yaml:"duration"`
	Params   map[string]float64 `yaml:"params,omitempty"`
}

type ReactionConfig struct {
	Reactants []string                  `yaml:"reactants"`
	Products  []string                  `yaml:"products"`
	K         kinetics.Param            `yaml:"k"`
	Initial   map[string]kinetics.Param `yaml:"initial"`
}

func DefaultConfig() *Config {
	return &Config{
		Reaction: ReactionConfig{
			Reactants: []string{"A", "B"},
			Products:  []string{"C"},
			K:         kinetics.Sym("k1"),
			Initial: map[string]kinetics.Param{
				"A": kinetics.Sym("a_0"),
				"B": kinetics.Num(2.0),
				"C": kinetics.Num(0.0),
			},
		},
		Strategy: DefaultStrategy,
		Overlap:  string(kinetics.ConsumedFirst),
		Missing:  string(kinetics.DefaultZero),
		TimeVar:  DefaultTimeVar,
		FreqVar:  DefaultFreqVar,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. A reaction section replaces the
// default reaction entirely.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Reaction = ReactionConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Reaction.Reactants) == 0 && len(cfg.Reaction.Products) == 0 {
		cfg.Reaction = DefaultConfig().Reaction
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := trajectory.ValidateConfig(c.GetSampleConfig()); err != nil {
		return err
	}
	if _, err := kinetics.ParseOverlapPolicy(c.Overlap); err != nil {
		return err
	}
	if _, err := kinetics.ParseMissingPolicy(c.Missing); err != nil {
		return err
	}
	return nil
}

func (c *Config) GetReaction() kinetics.Reaction {
	initial := make(map[string]kinetics.Param, len(c.Reaction.Initial))
	for k, v := range c.Reaction.Initial {
		initial[k] = v
	}
	return kinetics.Reaction{
		Reactants: append([]string(nil), c.Reaction.Reactants...),
		Products:  append([]string(nil), c.Reaction.Products...),
		K:         c.Reaction.K,
		Initial:   initial,
	}
}

func (c *Config) GetOptions(logger *slog.Logger) (kinetics.Options, error) {
	overlap, err := kinetics.ParseOverlapPolicy(c.Overlap)
	if err != nil {
		return kinetics.Options{}, err
	}
	missing, err := kinetics.ParseMissingPolicy(c.Missing)
	if err != nil {
		return kinetics.Options{}, err
	}
	return kinetics.Options{
		TimeVar: c.TimeVar,
		FreqVar: c.FreqVar,
		Overlap: overlap,
		Missing: missing,
		Logger:  logger,
	}, nil
}

func (c *Config) GetSampleConfig() trajectory.Config {
	return trajectory.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		Params:        c.Params,
		ValidateState: true,
	}
}

// Equation renders the reaction as "A + B -> C".
func (c *Config) Equation() string {
	return FormatEquation(c.Reaction.Reactants, c.Reaction.Products)
}

func FormatEquation(reactants, products []string) string {
	side := func(names []string) string {
		if len(names) == 0 {
			return "0"
		}
		return strings.Join(names, " + ")
	}
	return side(reactants) + " -> " + side(products)
}

// ParseEquation reads "A + B -> C + D". Either side may be empty or "0".
func ParseEquation(s string) (reactants, products []string, err error) {
	left, right, ok := strings.Cut(s, "->")
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing -> in %q", kinetics.ErrMalformedInput, s)
	}
	if reactants, err = parseSide(left); err != nil {
		return nil, nil, err
	}
	if products, err = parseSide(right); err != nil {
		return nil, nil, err
	}
	return reactants, products, nil
}

func parseSide(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return nil, nil
	}
	var names []string
	for _, part := range strings.Split(s, "+") {
		name := strings.TrimSpace(part)
		if name == "" || strings.ContainsAny(name, " \t()*^/") {
			return nil, fmt.Errorf("%w: bad species %q", kinetics.ErrMalformedInput, part)
		}
		names = append(names, name)
	}
	return names, nil
}
