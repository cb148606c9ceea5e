// Package grid provides the double-buffered toroidal state store shared by
// the automaton engines, plus the row-band partitioning of that state among
// workers.
package grid

import (
	"fmt"
	"io"
	"math/rand"

	apperrors "github.com/grid-automata/pkg/errors"
)

// Neighbor ordering within the array returned by Neighbors:
// NW, N, NE, W, E, SW, S, SE.
const NeighborCount = 8

// Mod is the floored modulo used for every toroidal index reduction.
// Unlike the % operator it wraps negative arguments positively, so
// Mod(-1, n) == n-1. It is the single source of truth for wrap semantics;
// row indices always reduce by the grid height and column indices by the
// grid width.
func Mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Grid is a rectangle of height x width cells held in two equally sized
// buffers. Reads during a step target the current buffer, writes target the
// next buffer, and Swap exchanges their roles at step boundaries.
type Grid struct {
	height int
	width  int
	bufs   [2][]int
	cur    int
}

// New allocates a grid with the current buffer randomized over {0,1} using
// the given source and the next buffer zeroed.
func New(height, width int, rng *rand.Rand) (*Grid, error) {
	g, err := newZero(height, width)
	if err != nil {
		return nil, err
	}
	cur := g.bufs[g.cur]
	for i := range cur {
		cur[i] = rng.Intn(2)
	}
	return g, nil
}

// NewFromValues allocates a grid with the current buffer initialized from a
// row-major vector of length height*width and the next buffer zeroed.
func NewFromValues(height, width int, values []int) (*Grid, error) {
	g, err := newZero(height, width)
	if err != nil {
		return nil, err
	}
	if len(values) != height*width {
		return nil, apperrors.Newf(apperrors.CodeInvalidParameters,
			"initial vector has %d values, want %d", len(values), height*width)
	}
	copy(g.bufs[g.cur], values)
	return g, nil
}

func newZero(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidParameters,
			"non-positive dimensions %dx%d", height, width)
	}
	size := height * width
	return &Grid{
		height: height,
		width:  width,
		bufs:   [2][]int{make([]int, size), make([]int, size)},
	}, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Size returns the total cell count.
func (g *Grid) Size() int { return g.height * g.width }

// Get reads a cell from the current buffer.
func (g *Grid) Get(row, col int) int {
	return g.bufs[g.cur][row*g.width+col]
}

// GetIndex reads a cell from the current buffer by linear index.
func (g *Grid) GetIndex(i int) int {
	return g.bufs[g.cur][i]
}

// SetNext writes a cell into the next buffer.
func (g *Grid) SetNext(row, col, value int) {
	g.bufs[1-g.cur][row*g.width+col] = value
}

// SetNextIndex writes a cell into the next buffer by linear index.
func (g *Grid) SetNextIndex(i, value int) {
	g.bufs[1-g.cur][i] = value
}

// Swap exchanges the roles of the current and next buffers. The caller
// guarantees no worker is inside a step at the moment of the swap; the
// buffers themselves are never copied.
func (g *Grid) Swap() {
	g.cur = 1 - g.cur
}

// Neighbors returns the eight Moore neighbors of (row, col) read from the
// current buffer, in the order NW, N, NE, W, E, SW, S, SE. Row indices wrap
// by the height and column indices by the width.
func (g *Grid) Neighbors(row, col int) [NeighborCount]int {
	up := Mod(row-1, g.height)
	down := Mod(row+1, g.height)
	left := Mod(col-1, g.width)
	right := Mod(col+1, g.width)
	cur := g.bufs[g.cur]
	w := g.width
	return [NeighborCount]int{
		cur[up*w+left], cur[up*w+col], cur[up*w+right],
		cur[row*w+left], cur[row*w+right],
		cur[down*w+left], cur[down*w+col], cur[down*w+right],
	}
}

// NeighborsIndex is Neighbors for a linear cell index.
func (g *Grid) NeighborsIndex(i int) [NeighborCount]int {
	return g.Neighbors(i/g.width, i%g.width)
}

// Row returns a copy of one row of the current buffer.
func (g *Grid) Row(row int) []int {
	out := make([]int, g.width)
	copy(out, g.bufs[g.cur][row*g.width:(row+1)*g.width])
	return out
}

// SetRow overwrites one row of the current buffer. Used by the halo
// exchange to refresh ghost rows; never called while a step is in flight.
func (g *Grid) SetRow(row int, values []int) {
	copy(g.bufs[g.cur][row*g.width:(row+1)*g.width], values)
}

// Snapshot returns a row-major copy of the current buffer.
func (g *Grid) Snapshot() []int {
	out := make([]int, g.Size())
	copy(out, g.bufs[g.cur])
	return out
}

// Render writes the current buffer to w: '-' for zero cells, 'x' for
// anything else, one row per line, and a blank line after the grid.
func (g *Grid) Render(w io.Writer) error {
	return RenderValues(w, g.height, g.width, g.bufs[g.cur])
}

// RenderValues renders a row-major value vector in the grid format.
func RenderValues(w io.Writer, height, width int, values []int) error {
	line := make([]byte, width+1)
	line[width] = '\n'
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if values[r*width+c] == 0 {
				line[c] = '-'
			} else {
				line[c] = 'x'
			}
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("failed to render grid: %w", err)
		}
	}
	_, err := w.Write([]byte{'\n'})
	return err
}
