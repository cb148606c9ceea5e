package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/grid-automata/pkg/errors"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Create persists a new record and fills in its ID.
func (r *GormRunRepository) Create(ctx context.Context, run *BenchmarkRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to insert benchmark run", err)
	}
	return nil
}

// GetByID retrieves a record by its ID.
func (r *GormRunRepository) GetByID(ctx context.Context, id int64) (*BenchmarkRun, error) {
	var run BenchmarkRun
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeDatabaseError,
				fmt.Sprintf("benchmark run not found: %d", id), err)
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get benchmark run", err)
	}
	return &run, nil
}

// ListRecent retrieves up to limit records, newest first.
func (r *GormRunRepository) ListRecent(ctx context.Context, limit int) ([]*BenchmarkRun, error) {
	var runs []*BenchmarkRun
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list benchmark runs", err)
	}
	return runs, nil
}

// ListByEngine retrieves up to limit records for one engine kind, newest
// first.
func (r *GormRunRepository) ListByEngine(ctx context.Context, engine string, limit int) ([]*BenchmarkRun, error) {
	var runs []*BenchmarkRun
	err := r.db.WithContext(ctx).
		Where("engine = ?", engine).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list benchmark runs", err)
	}
	return runs, nil
}
