package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grid-automata/internal/engine"
	"github.com/grid-automata/internal/rule"
	"github.com/grid-automata/pkg/model"
)

var (
	runHeight  int
	runWidth   int
	runWorkers int
	runSteps   int
	runEngine  string
	runRule    string
	runSeed    int64
	runPrint   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evolve one automaton and report the elapsed time",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := resolveEngineKind(runEngine)
		if err != nil {
			return err
		}
		transition, err := rule.Parse(runRule)
		if err != nil {
			return err
		}
		workers := runWorkers
		if workers <= 0 {
			workers = cfg.Engine.Workers
		}
		seed := runSeed
		if seed == 0 {
			seed = cfg.Engine.Seed
		}

		eng, err := engine.New(engine.Options{
			Height:  runHeight,
			Width:   runWidth,
			Workers: workers,
			Kind:    kind,
			Rule:    transition,
			Seed:    seed,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		logger.Info("running %dx%d grid for %d steps (engine=%s, workers=%d, rule=%s)",
			runHeight, runWidth, runSteps, kind, eng.Workers(), runRule)

		elapsed, err := eng.Run(cmd.Context(), runSteps)
		if err != nil {
			return err
		}
		logger.Info("completed in %.3f ms", elapsed)

		if runPrint {
			return eng.Render(os.Stdout)
		}
		return nil
	},
}

// resolveEngineKind parses the flag value, falling back to the configured
// default when the flag is empty.
func resolveEngineKind(flagValue string) (model.EngineKind, error) {
	if flagValue == "" {
		flagValue = cfg.Engine.Kind
	}
	return model.ParseEngineKind(flagValue)
}

func init() {
	runCmd.Flags().IntVar(&runHeight, "height", 512, "Grid height")
	runCmd.Flags().IntVar(&runWidth, "width", 512, "Grid width")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Worker count (0 uses the configured default)")
	runCmd.Flags().IntVar(&runSteps, "steps", 100, "Number of steps")
	runCmd.Flags().StringVar(&runEngine, "engine", "", "Engine kind: shared or halo (default from config)")
	runCmd.Flags().StringVar(&runRule, "rule", rule.NameLife, "Transition rule")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Seed for the random initial state (0 uses the configured default)")
	runCmd.Flags().BoolVar(&runPrint, "print", false, "Render the final grid to stdout")

	rootCmd.AddCommand(runCmd)
}
