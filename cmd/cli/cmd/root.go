// Package cmd implements the grid-automata command line interface.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grid-automata/pkg/config"
	"github.com/grid-automata/pkg/telemetry"
	"github.com/grid-automata/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger       utils.Logger
	cfg          *config.Config
	otelShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "grid-automata",
	Short: "A parallel cellular automata framework",
	Long: `grid-automata evolves synchronous cellular automata on a 2D toroidal
grid across multiple CPU cores.

Two parallel step engines are available: a shared-buffer engine where all
workers rendezvous at a step barrier, and a halo-exchange engine where each
worker owns a private subgrid with ghost rows. For the same rule and initial
state both produce identical results.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logLevel := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			logLevel = utils.LevelDebug
		}
		if cfg.Log.OutputPath != "" {
			logger, err = utils.NewFileLogger(logLevel, cfg.Log.OutputPath)
			if err != nil {
				return err
			}
		} else {
			logger = utils.NewDefaultLogger(logLevel, os.Stdout)
		}
		utils.SetGlobalLogger(logger)

		otelShutdown, err = telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("failed to initialize telemetry: %v", err)
			otelShutdown = nil
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if otelShutdown != nil {
			return otelShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	binName := BinName()
	rootCmd.Example = `  # Evolve a random 1024x1024 grid for 100 steps on 8 workers
  ` + binName + ` run --height 1024 --width 1024 --workers 8 --steps 100

  # Benchmark the halo-exchange engine, 5 repetitions with baseline
  ` + binName + ` bench --height 2048 --width 2048 --workers 8 --steps 50 --runs 5 --engine halo --baseline

  # Check that every engine and worker count agrees with the sequential result
  ` + binName + ` verify --height 64 --width 64 --steps 16`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
