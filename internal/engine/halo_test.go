package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grid-automata/internal/rule"
	"github.com/grid-automata/pkg/model"
)

func TestHalo_ClampsWorkersToRowCount(t *testing.T) {
	eng, err := New(Options{
		Height: 3, Width: 64, Workers: 8,
		Kind: model.EngineHalo, Rule: rule.Life,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, eng.Workers())
}

func TestHalo_SnapshotBeforeRunIsInitialState(t *testing.T) {
	initial := []int{
		1, 0, 1,
		0, 1, 0,
		1, 1, 1,
		0, 0, 0,
	}
	eng, err := New(Options{
		Height: 4, Width: 3, Workers: 2,
		Kind: model.EngineHalo, Rule: rule.Life, Initial: initial,
	})
	require.NoError(t, err)
	assert.Equal(t, initial, eng.Snapshot())
}

func TestHalo_SingleRowBands(t *testing.T) {
	// One row per worker is the extreme decomposition: both ghost rows of a
	// band are interiors of other workers, and with two rows each worker's
	// top and bottom ghost come from the same neighbor.
	initial := []int{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 1, 1, 1, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
	}
	eng, err := New(Options{
		Height: 5, Width: 5, Workers: 5,
		Kind: model.EngineHalo, Rule: rule.Life, Initial: initial,
	})
	require.NoError(t, err)
	require.Equal(t, 5, eng.Workers())

	_, err = eng.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, initial, eng.Snapshot())
}

func TestHalo_ManyStepsManyWorkers(t *testing.T) {
	// Long evolution stresses the go/halo/end message cycle.
	eng, err := New(Options{
		Height: 24, Width: 10, Workers: 6,
		Kind: model.EngineHalo, Rule: rule.Life, Seed: 21,
	})
	require.NoError(t, err)

	reference, err := New(Options{
		Height: 24, Width: 10, Workers: 1,
		Kind: model.EngineHalo, Rule: rule.Life, Seed: 21,
	})
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), 150)
	require.NoError(t, err)
	_, err = reference.Run(context.Background(), 150)
	require.NoError(t, err)

	assert.Equal(t, reference.Snapshot(), eng.Snapshot())
}
