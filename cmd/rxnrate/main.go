package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/rxnrate/internal/config"
	"github.com/san-kum/rxnrate/internal/logging"
)

var (
	reactionFlag string
	kFlag        string
	initFlags    []string
	paramFlags   []string
	preset       string

	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "rxnrate",
	Short: "closed-form rate equations for elementary reactions",
	Long: `rxnrate builds the mass-action rate equations of a single elementary
reaction, solves them analytically with the Laplace transform and integrates
pairwise concentration products from 0 to t.

Reactions come from a YAML file (rxnrate.yaml), a preset or flags:

  rxnrate solve --reaction "A + B -> C" --k k1 --init A=a_0 --init B=2`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger = logging.New(level)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./rxnrate.yaml or ~/.config/rxnrate/rxnrate.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("theme", "cyberpunk", "report color theme")
	pf.String("strategy", defaults.Strategy, "solution strategy (mass-action, direct)")
	pf.String("overlap", defaults.Overlap, "sign of species that are both reactant and product (consumed, reformed, catalytic, reject)")
	pf.String("missing", defaults.Missing, "species without an initial value (zero, reject)")
	pf.String("time-var", defaults.TimeVar, "time variable name")
	pf.String("freq-var", defaults.FreqVar, "Laplace frequency variable name")
	pf.Float64("dt", defaults.Dt, "sampling step")
	pf.Float64("duration", defaults.Duration, "sampling duration")

	pf.StringVar(&reactionFlag, "reaction", "", `reaction equation, e.g. "A + B -> C"`)
	pf.StringVar(&kFlag, "k", "", "rate constant (number or parameter name)")
	pf.StringArrayVar(&initFlags, "init", nil, "initial value NAME=VALUE (repeatable)")
	pf.StringArrayVar(&paramFlags, "param", nil, "bind free parameter NAME=VALUE for sampling (repeatable)")
	pf.StringVar(&preset, "preset", "", "use preset configuration for the reaction")

	for key, flag := range map[string]string{
		"log_level": "log-level",
		"theme":     "theme",
		"strategy":  "strategy",
		"overlap":   "overlap",
		"missing":   "missing",
		"time_var":  "time-var",
		"freq_var":  "freq-var",
		"dt":        "dt",
		"duration":  "duration",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		buildCommand(),
		solveCommand(),
		transformCommand(),
		compareCommand(),
		verifyCommand(),
		plotCommand(),
		sampleCommand(),
		sweepCommand(),
		presetsCommand(),
		initConfigCommand(),
	)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rxnrate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rxnrate"))
		}
	}

	viper.SetEnvPrefix("RXNRATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "error reading config:", err)
			os.Exit(1)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
