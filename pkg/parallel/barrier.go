// Package parallel provides the reusable synchronization primitives the
// engines are built on.
package parallel

import (
	"sync"

	apperrors "github.com/grid-automata/pkg/errors"
)

// Barrier is a reusable rendezvous for a fixed set of participants. Every
// participant calls Await; all of them block until the last one arrives,
// then the whole set is released and the barrier resets for the next cycle.
//
// The wait predicate is a generation counter, not a bare signal, so the
// barrier is immune to spurious wakeups. A barrier can be cycled any number
// of times, which is what lets the engines reuse one instance across
// thousands of steps.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	arrived    int
	generation uint64
}

// NewBarrier creates a barrier for the given number of participants.
func NewBarrier(parties int) (*Barrier, error) {
	if parties <= 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidParameters,
			"barrier requires at least one party, got %d", parties)
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b, nil
}

// Parties returns the number of participants.
func (b *Barrier) Parties() int {
	return b.parties
}

// Await blocks until all participants have arrived at the current cycle.
// The last arriver advances the generation and wakes the rest.
func (b *Barrier) Await() {
	b.mu.Lock()
	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.mu.Unlock()
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
