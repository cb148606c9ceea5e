package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grid-automata/pkg/model"
)

func newTestGormDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&BenchmarkRun{}))
	return db
}

func sampleRecord() *BenchmarkRun {
	return FromResult(
		model.RunSpec{
			Height: 1024, Width: 1024, Workers: 8, Steps: 100,
			Engine: model.EngineShared, Rule: "life", Seed: 112233,
		},
		model.RunStats{
			Runs: 5, MinMS: 90, MaxMS: 120, AvgMS: 100, StdDevMS: 10,
			Speedup: 6.2, Efficiency: 0.78,
		},
	)
}

func TestGormRunRepository_CreateAndGet(t *testing.T) {
	repo := NewGormRunRepository(newTestGormDB(t))
	ctx := context.Background()

	record := sampleRecord()
	require.NoError(t, repo.Create(ctx, record))
	require.NotZero(t, record.ID)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "shared", got.Engine)
	assert.Equal(t, 8, got.Workers)
	assert.Equal(t, 100.0, got.AvgMS)
	assert.Equal(t, record.Spec(), got.Spec())
	assert.Equal(t, record.Stats(), got.Stats())
}

func TestGormRunRepository_GetByID_NotFound(t *testing.T) {
	repo := NewGormRunRepository(newTestGormDB(t))
	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)
}

func TestGormRunRepository_ListRecent(t *testing.T) {
	repo := NewGormRunRepository(newTestGormDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record := sampleRecord()
		record.Steps = 10 * (i + 1)
		require.NoError(t, repo.Create(ctx, record))
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	// Newest first.
	assert.Equal(t, 50, runs[0].Steps)
	assert.Equal(t, 40, runs[1].Steps)
	assert.Equal(t, 30, runs[2].Steps)
}

func TestGormRunRepository_ListByEngine(t *testing.T) {
	repo := NewGormRunRepository(newTestGormDB(t))
	ctx := context.Background()

	shared := sampleRecord()
	require.NoError(t, repo.Create(ctx, shared))

	halo := sampleRecord()
	halo.Engine = string(model.EngineHalo)
	require.NoError(t, repo.Create(ctx, halo))

	runs, err := repo.ListByEngine(ctx, "halo", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "halo", runs[0].Engine)
}
