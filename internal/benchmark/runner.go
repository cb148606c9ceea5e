// Package benchmark provides the multi-run timing harness around the
// engines: repeated runs of one configuration, summary statistics, and an
// optional sequential baseline for speedup and efficiency.
package benchmark

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/grid-automata/internal/engine"
	"github.com/grid-automata/internal/grid"
	"github.com/grid-automata/internal/rule"
	"github.com/grid-automata/pkg/model"
	"github.com/grid-automata/pkg/utils"
)

const tracerName = "grid-automata/benchmark"

// Result holds the outcome of benchmarking one configuration.
type Result struct {
	Spec      model.RunSpec
	Stats     model.RunStats
	TimingsMS []float64
	Final     []int // row-major final state after the last run
}

// Runner executes benchmark specs.
type Runner struct {
	logger   utils.Logger
	baseline bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(logger utils.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBaseline enables the sequential baseline run used to derive speedup
// and efficiency.
func WithBaseline() Option {
	return func(r *Runner) {
		r.baseline = true
	}
}

// NewRunner creates a benchmark runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: &utils.NullLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run benchmarks one configuration: the engine is constructed once and
// re-run spec.Runs times over the evolving grid, the way the original
// benchmark drivers do.
func (r *Runner) Run(ctx context.Context, spec model.RunSpec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	transition, err := rule.Parse(spec.Rule)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "benchmark.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("engine", string(spec.Engine)),
		attribute.Int("workers", spec.Workers),
		attribute.Int("steps", spec.Steps),
		attribute.Int("cells", spec.Cells()),
	)

	timer := utils.NewTimer("benchmark")
	setup := timer.Start("setup")
	eng, err := engine.New(engine.Options{
		Height:  spec.Height,
		Width:   spec.Width,
		Workers: spec.Workers,
		Kind:    spec.Engine,
		Rule:    transition,
		Seed:    spec.Seed,
		Logger:  r.logger,
	})
	setup.Stop()
	if err != nil {
		return nil, err
	}

	r.logger.Info("benchmarking %s", spec)

	timings := make([]float64, 0, spec.Runs)
	runs := timer.Start("runs")
	for i := 0; i < spec.Runs; i++ {
		elapsed, err := eng.Run(ctx, spec.Steps)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("run %d/%d completed in %.3f ms", i+1, spec.Runs, elapsed)
		timings = append(timings, elapsed)
	}
	runs.Stop()

	baselineAvg := 0.0
	if r.baseline && spec.Workers > 1 {
		baselineAvg, err = r.runBaseline(ctx, spec)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{
		Spec:      spec,
		Stats:     ComputeStats(timings, eng.Workers(), baselineAvg),
		TimingsMS: timings,
		Final:     eng.Snapshot(),
	}
	r.logger.Debug("%s", timer.Summary())
	return result, nil
}

// runBaseline repeats the same spec on one worker and returns the average
// wall-clock milliseconds.
func (r *Runner) runBaseline(ctx context.Context, spec model.RunSpec) (float64, error) {
	transition, err := rule.Parse(spec.Rule)
	if err != nil {
		return 0, err
	}
	eng, err := engine.New(engine.Options{
		Height:  spec.Height,
		Width:   spec.Width,
		Workers: 1,
		Kind:    spec.Engine,
		Rule:    transition,
		Seed:    spec.Seed,
		Logger:  r.logger,
	})
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < spec.Runs; i++ {
		elapsed, err := eng.Run(ctx, spec.Steps)
		if err != nil {
			return 0, err
		}
		sum += elapsed
	}
	return sum / float64(spec.Runs), nil
}

// Report renders the closing summary the benchmark drivers print.
func (res *Result) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Configuration: %s\n", res.Spec)
	fmt.Fprintf(&sb, "Minimum time: %.3f ms\n", res.Stats.MinMS)
	fmt.Fprintf(&sb, "Maximum time: %.3f ms\n", res.Stats.MaxMS)
	fmt.Fprintf(&sb, "Average time: %.3f ms\n", res.Stats.AvgMS)
	if res.Stats.Speedup > 0 {
		fmt.Fprintf(&sb, "Speedup: %.2f\n", res.Stats.Speedup)
		fmt.Fprintf(&sb, "Efficiency: %.2f\n", res.Stats.Efficiency)
	}
	return sb.String()
}

// RenderFinal returns the rendering of the final grid as a string.
func (res *Result) RenderFinal() (string, error) {
	var sb strings.Builder
	if err := grid.RenderValues(&sb, res.Spec.Height, res.Spec.Width, res.Final); err != nil {
		return "", err
	}
	return sb.String(), nil
}
