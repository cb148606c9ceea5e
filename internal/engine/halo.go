package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/grid-automata/internal/grid"
	"github.com/grid-automata/internal/rule"
	"github.com/grid-automata/pkg/model"
	"github.com/grid-automata/pkg/utils"
)

type haloMsgKind int

const (
	// msgGo releases a worker into the next step.
	msgGo haloMsgKind = iota
	// msgHalo carries the two refreshed ghost rows.
	msgHalo
	// msgEnd shuts a worker down.
	msgEnd
)

// haloMsg is the tagged coordinator-to-worker message. The top and bottom
// rows are owned by the receiver once sent.
type haloMsg struct {
	kind   haloMsgKind
	top    []int
	bottom []int
}

// HaloExchangeEngine is the distributed-buffer engine. The grid is split
// into row bands; each worker owns a private subgrid padded with two ghost
// rows, so during a step it never reads another worker's memory. Between
// steps the coordinator snapshots the boundary interiors of the (circular)
// band ring and hands every worker the pair of rows its ghosts must mirror.
type HaloExchangeEngine struct {
	g        *grid.Grid
	rule     rule.Rule
	workers  int
	subgrids []*grid.Subgrid
	logger   utils.Logger
	ran      bool
}

func newHalo(g *grid.Grid, r rule.Rule, workers int, logger utils.Logger) (*HaloExchangeEngine, error) {
	if workers > g.Height() {
		logger.Warn("clamping %d workers to %d rows", workers, g.Height())
		workers = g.Height()
	}
	e := &HaloExchangeEngine{
		g:       g,
		rule:    r,
		workers: workers,
		logger:  logger,
	}
	if workers > 1 {
		bands, err := grid.SplitRows(g.Height(), workers)
		if err != nil {
			return nil, err
		}
		e.subgrids = make([]*grid.Subgrid, workers)
		for k, band := range bands {
			e.subgrids[k] = grid.NewSubgrid(g, band)
		}
	}
	return e, nil
}

// Run performs the given number of steps and returns the elapsed
// wall-clock milliseconds.
func (e *HaloExchangeEngine) Run(ctx context.Context, steps int) (float64, error) {
	if err := checkRun(ctx, steps); err != nil {
		return -1, err
	}
	start := time.Now()
	if steps == 0 {
		return millis(time.Since(start)), nil
	}
	if e.workers == 1 {
		// A single band is the whole torus; ghost rows have nothing to add.
		runSequential(e.g, e.rule, steps)
		return millis(time.Since(start)), nil
	}

	nw := e.workers
	// Buffer of two: a halo message and the following go may be in flight
	// while the worker is still draining the previous one.
	inboxes := make([]chan haloMsg, nw)
	for k := range inboxes {
		inboxes[k] = make(chan haloMsg, 2)
	}
	readyCh := make(chan int, nw)

	var wg sync.WaitGroup
	for k := 0; k < nw; k++ {
		wg.Add(1)
		go func(k int, sg *grid.Subgrid) {
			defer wg.Done()
			for {
				msg := <-inboxes[k]
				switch msg.kind {
				case msgHalo:
					sg.SetGhosts(msg.top, msg.bottom)
				case msgGo:
					// Interior rows only; local row indices never wrap
					// through the ghosts, so the subgrid's own neighbor
					// lookup matches global toroidal indexing.
					width := sg.Width()
					for r := 1; r <= sg.InteriorRows(); r++ {
						for c := 0; c < width; c++ {
							sg.SetNext(r, c, e.rule(sg.Get(r, c), sg.Neighbors(r, c)))
						}
					}
					sg.Swap()
					readyCh <- k
				case msgEnd:
					return
				}
			}
		}(k, e.subgrids[k])
	}

	for k := range inboxes {
		inboxes[k] <- haloMsg{kind: msgGo}
	}
	remaining := steps - 1
	for {
		for i := 0; i < nw; i++ {
			<-readyCh
		}
		e.exchangeHalos(inboxes)
		if remaining == 0 {
			// One last exchange has just run, so every ghost row mirrors
			// the true final state of its neighbor band.
			for k := range inboxes {
				inboxes[k] <- haloMsg{kind: msgEnd}
			}
			break
		}
		for k := range inboxes {
			inboxes[k] <- haloMsg{kind: msgGo}
		}
		remaining--
	}
	wg.Wait()
	e.ran = true

	return millis(time.Since(start)), nil
}

// exchangeHalos snapshots the boundary interiors of every band and sends
// each worker the rows its ghosts must mirror. All rows are copied before
// the first message goes out: once a worker receives its halo it may be
// released into the next step, and its interior must not be read after
// that.
func (e *HaloExchangeEngine) exchangeHalos(inboxes []chan haloMsg) {
	nw := e.workers
	tops := make([][]int, nw)
	bottoms := make([][]int, nw)
	for k := 0; k < nw; k++ {
		tops[k] = e.subgrids[grid.Mod(k-1, nw)].LastInteriorRow()
		bottoms[k] = e.subgrids[grid.Mod(k+1, nw)].FirstInteriorRow()
	}
	for k := 0; k < nw; k++ {
		inboxes[k] <- haloMsg{kind: msgHalo, top: tops[k], bottom: bottoms[k]}
	}
}

// Snapshot returns a row-major copy of the current global state, assembled
// from the subgrid interiors once a parallel run has happened.
func (e *HaloExchangeEngine) Snapshot() []int {
	if !e.ran || e.workers == 1 {
		return e.g.Snapshot()
	}
	out := make([]int, 0, e.g.Size())
	for _, sg := range e.subgrids {
		out = sg.InteriorSnapshot(out)
	}
	return out
}

// Render writes the current state to w.
func (e *HaloExchangeEngine) Render(w io.Writer) error {
	return grid.RenderValues(w, e.g.Height(), e.g.Width(), e.Snapshot())
}

// Workers returns the effective worker count.
func (e *HaloExchangeEngine) Workers() int {
	return e.workers
}

// Kind identifies the engine variant.
func (e *HaloExchangeEngine) Kind() model.EngineKind {
	return model.EngineHalo
}
