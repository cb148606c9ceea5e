package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/grid-automata/internal/grid"
	"github.com/grid-automata/internal/rule"
	apperrors "github.com/grid-automata/pkg/errors"
	"github.com/grid-automata/pkg/model"
	"github.com/grid-automata/pkg/parallel"
	"github.com/grid-automata/pkg/utils"
)

// SharedBarrierEngine is the bulk-synchronous engine. All workers share one
// grid; each owns a contiguous range of the flattened index space and reads
// the current buffer while writing the next. A reusable barrier of width
// workers+1 keeps every worker on the same logical time step: the
// coordinator swaps the buffers between two barrier cycles, while every
// worker is parked.
type SharedBarrierEngine struct {
	g       *grid.Grid
	rule    rule.Rule
	workers int
	ranges  []grid.Band
	logger  utils.Logger
}

func newShared(g *grid.Grid, r rule.Rule, workers int, logger utils.Logger) (*SharedBarrierEngine, error) {
	if workers > g.Size() {
		logger.Warn("clamping %d workers to %d cells", workers, g.Size())
		workers = g.Size()
	}
	ranges, err := grid.SplitIndexes(g.Size(), workers)
	if err != nil {
		return nil, err
	}
	return &SharedBarrierEngine{
		g:       g,
		rule:    r,
		workers: workers,
		ranges:  ranges,
		logger:  logger,
	}, nil
}

// Run performs the given number of steps and returns the elapsed
// wall-clock milliseconds.
func (e *SharedBarrierEngine) Run(ctx context.Context, steps int) (float64, error) {
	if err := checkRun(ctx, steps); err != nil {
		return -1, err
	}
	start := time.Now()
	if steps == 0 {
		return millis(time.Since(start)), nil
	}
	if e.workers == 1 {
		runSequential(e.g, e.rule, steps)
		return millis(time.Since(start)), nil
	}

	barrier, err := parallel.NewBarrier(e.workers + 1)
	if err != nil {
		return -1, apperrors.Wrap(apperrors.CodeSubstrateFailure, "failed to build step barrier", err)
	}

	var wg sync.WaitGroup
	for _, rng := range e.ranges {
		wg.Add(1)
		go func(rng grid.Band) {
			defer wg.Done()
			for j := 0; j < steps; j++ {
				for i := rng.Lo; i < rng.Hi; i++ {
					e.g.SetNextIndex(i, e.rule(e.g.GetIndex(i), e.g.NeighborsIndex(i)))
				}
				barrier.Await() // ready: local range fully written to next
				barrier.Await() // released: buffers swapped by the coordinator
			}
		}(rng)
	}

	// The coordinator participates in both barrier cycles of every step.
	// The swap happens strictly between them, so no worker ever observes a
	// half-written buffer. The step counter decrements exactly when the
	// workers are released into the next step.
	for remaining := steps; remaining > 0; remaining-- {
		barrier.Await()
		e.g.Swap()
		barrier.Await()
	}
	wg.Wait()

	return millis(time.Since(start)), nil
}

// Snapshot returns a row-major copy of the current state.
func (e *SharedBarrierEngine) Snapshot() []int {
	return e.g.Snapshot()
}

// Render writes the current state to w.
func (e *SharedBarrierEngine) Render(w io.Writer) error {
	return e.g.Render(w)
}

// Workers returns the effective worker count.
func (e *SharedBarrierEngine) Workers() int {
	return e.workers
}

// Kind identifies the engine variant.
func (e *SharedBarrierEngine) Kind() model.EngineKind {
	return model.EngineShared
}
