package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grid-automata/internal/benchmark"
	"github.com/grid-automata/internal/repository"
	"github.com/grid-automata/internal/rule"
	"github.com/grid-automata/internal/storage"
	"github.com/grid-automata/pkg/model"
)

var (
	benchHeight   int
	benchWidth    int
	benchWorkers  int
	benchSteps    int
	benchRuns     int
	benchEngine   string
	benchRule     string
	benchSeed     int64
	benchBaseline bool
	benchSave     bool
	benchUpload   bool
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark one configuration over repeated runs",
	Long: `Benchmark one automaton configuration: the engine is constructed once
and re-run the requested number of times. The summary reports minimum,
maximum and average wall-clock time, and with --baseline also speedup and
efficiency against a single-worker run.

Results can be persisted to the configured database and the report uploaded
to the configured archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := resolveEngineKind(benchEngine)
		if err != nil {
			return err
		}
		workers := benchWorkers
		if workers <= 0 {
			workers = cfg.Engine.Workers
		}
		runs := benchRuns
		if runs <= 0 {
			runs = cfg.Benchmark.Runs
		}
		seed := benchSeed
		if seed == 0 {
			seed = cfg.Engine.Seed
		}

		spec := model.RunSpec{
			Height:  benchHeight,
			Width:   benchWidth,
			Workers: workers,
			Steps:   benchSteps,
			Runs:    runs,
			Engine:  kind,
			Rule:    benchRule,
			Seed:    seed,
		}

		opts := []benchmark.Option{benchmark.WithLogger(logger)}
		if benchBaseline || cfg.Benchmark.Baseline {
			opts = append(opts, benchmark.WithBaseline())
		}
		runner := benchmark.NewRunner(opts...)

		result, err := runner.Run(cmd.Context(), spec)
		if err != nil {
			return err
		}
		fmt.Print(result.Report())

		if benchSave || cfg.Database.Enabled {
			if err := saveResult(cmd, result); err != nil {
				return err
			}
		}
		if benchUpload || cfg.Storage.Enabled {
			if err := uploadResult(cmd, result); err != nil {
				return err
			}
		}
		return nil
	},
}

func saveResult(cmd *cobra.Command, result *benchmark.Result) error {
	db, err := repository.NewGormDB(&cfg.Database)
	if err != nil {
		return err
	}
	repo := repository.NewGormRunRepository(db)
	record := repository.FromResult(result.Spec, result.Stats)
	if err := repo.Create(cmd.Context(), record); err != nil {
		return err
	}
	logger.Info("saved benchmark run %d", record.ID)
	return nil
}

func uploadResult(cmd *cobra.Command, result *benchmark.Result) error {
	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return err
	}

	stamp := time.Now().Format("20060102-150405")
	reportKey := fmt.Sprintf("bench/%s/%s-report.txt", result.Spec.Engine, stamp)
	if err := store.Upload(cmd.Context(), reportKey, strings.NewReader(result.Report())); err != nil {
		return err
	}

	rendering, err := result.RenderFinal()
	if err != nil {
		return err
	}
	gridKey := fmt.Sprintf("bench/%s/%s-grid.txt", result.Spec.Engine, stamp)
	if err := store.Upload(cmd.Context(), gridKey, strings.NewReader(rendering)); err != nil {
		return err
	}

	logger.Info("uploaded report to %s", store.GetURL(reportKey))
	return nil
}

func init() {
	benchCmd.Flags().IntVar(&benchHeight, "height", 1024, "Grid height")
	benchCmd.Flags().IntVar(&benchWidth, "width", 1024, "Grid width")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "Worker count (0 uses the configured default)")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 100, "Number of steps per run")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 0, "Number of repetitions (0 uses the configured default)")
	benchCmd.Flags().StringVar(&benchEngine, "engine", "", "Engine kind: shared or halo (default from config)")
	benchCmd.Flags().StringVar(&benchRule, "rule", rule.NameLife, "Transition rule")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 0, "Seed for the random initial state (0 uses the configured default)")
	benchCmd.Flags().BoolVar(&benchBaseline, "baseline", false, "Also run sequentially to compute speedup")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "Persist the result to the configured database")
	benchCmd.Flags().BoolVar(&benchUpload, "upload", false, "Upload the report to the configured archive")

	rootCmd.AddCommand(benchCmd)
}
