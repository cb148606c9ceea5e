// Package rule defines the local transition functions evaluated by the
// engines.
package rule

import (
	"sort"

	"github.com/grid-automata/internal/grid"
	apperrors "github.com/grid-automata/pkg/errors"
)

// Rule computes the next state of one cell from its own state and the
// states of its eight Moore neighbors, supplied in the order NW, N, NE, W,
// E, SW, S, SE. Rules must be pure: the engines invoke them concurrently
// from multiple workers with no synchronization around the call.
type Rule func(self int, neighbors [grid.NeighborCount]int) int

// Built-in rule names accepted by Parse.
const (
	NameLife     = "life"
	NameIdentity = "identity"
)

// Life is Conway's Game of Life over binary states.
func Life(self int, neighbors [grid.NeighborCount]int) int {
	sum := 0
	for _, n := range neighbors {
		sum += n
	}
	if sum < 2 || sum > 3 {
		return 0
	}
	if self == 1 {
		return 1
	}
	if sum == 3 {
		return 1
	}
	return 0
}

// Identity leaves every cell unchanged.
func Identity(self int, _ [grid.NeighborCount]int) int {
	return self
}

var registry = map[string]Rule{
	NameLife:     Life,
	NameIdentity: Identity,
}

// Parse resolves a rule selector to a built-in rule.
func Parse(name string) (Rule, error) {
	r, ok := registry[name]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeInvalidParameters, "unknown rule %q", name)
	}
	return r, nil
}

// Names returns the built-in rule names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
