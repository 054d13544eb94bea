package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/superdense/internal/cli"
	"github.com/aretw0/superdense/internal/config"
	"github.com/aretw0/superdense/internal/logging"
	"github.com/spf13/cobra"
)

var (
	v          = config.New()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "superdense",
	Short: "Superdense coding simulator",
	Long: `superdense simulates the superdense coding protocol: two classical bits are
encoded on one half of an entangled pair, sent, and decoded by a Bell measurement.
Without a subcommand it starts the interactive simulator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./superdense.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.Duration("period", 0, "delay between protocol phases (default 2s)")
	flags.Uint64("seed", 0, "seed for gate-cutting faults (0 is random)")

	bind := map[string]string{
		"logging.level":   "log-level",
		"logging.format":  "log-format",
		"protocol.period": "period",
		"protocol.seed":   "seed",
	}
	for key, name := range bind {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	addInteractiveFlags(rootCmd)
}

// loadRuntime reads configuration and builds the shared engine.
func loadRuntime() (*cli.Runtime, error) {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.FromConfig(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return cli.NewRuntime(cfg, logger)
}
