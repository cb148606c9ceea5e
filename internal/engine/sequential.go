package engine

import (
	"github.com/grid-automata/internal/grid"
	"github.com/grid-automata/internal/rule"
)

// runSequential advances the grid through the given number of steps on the
// calling goroutine. This is the single-worker fast path: no goroutines are
// spawned and no synchronization primitives are touched, only the
// double-buffered compute-then-swap loop.
func runSequential(g *grid.Grid, r rule.Rule, steps int) {
	size := g.Size()
	for j := 0; j < steps; j++ {
		for i := 0; i < size; i++ {
			g.SetNextIndex(i, r(g.GetIndex(i), g.NeighborsIndex(i)))
		}
		g.Swap()
	}
}
