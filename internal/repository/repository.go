package repository

import "context"

// RunRepository stores and retrieves benchmark run records.
type RunRepository interface {
	// Create persists a new record and fills in its ID.
	Create(ctx context.Context, run *BenchmarkRun) error

	// GetByID retrieves a record by its ID.
	GetByID(ctx context.Context, id int64) (*BenchmarkRun, error)

	// ListRecent retrieves up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*BenchmarkRun, error)

	// ListByEngine retrieves up to limit records for one engine kind,
	// newest first.
	ListByEngine(ctx context.Context, engine string, limit int) ([]*BenchmarkRun, error)
}
