package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/grid-automata/pkg/errors"
)

// newMockGormDB opens a GORM connection over a sqlmock driver so the SQL
// the repository emits against a server-backed dialect can be asserted
// without a live database.
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var mockRunColumns = []string{
	"id", "engine", "height", "width", "workers", "steps", "runs", "rule_name", "seed",
	"min_ms", "max_ms", "avg_ms", "stddev_ms", "speedup", "efficiency", "create_time",
}

func TestGormRunRepository_Create_SQL(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormRunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `benchmark_runs`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	record := sampleRecord()
	require.NoError(t, repo.Create(context.Background(), record))
	assert.Equal(t, int64(7), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRunRepository_Create_SQLError(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormRunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `benchmark_runs`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetErrorCode(err))
}

func TestGormRunRepository_ListByEngine_SQL(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormRunRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `benchmark_runs` WHERE engine = (.+) ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows(mockRunColumns).
			AddRow(9, "halo", 512, 512, 4, 50, 3, "life", int64(1),
				10.0, 12.0, 11.0, 0.5, 3.1, 0.77, now))

	runs, err := repo.ListByEngine(context.Background(), "halo", 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(9), runs[0].ID)
	assert.Equal(t, "halo", runs[0].Engine)
	assert.Equal(t, 11.0, runs[0].AvgMS)
	assert.NoError(t, mock.ExpectationsWereMet())
}
