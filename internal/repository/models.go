// Package repository persists benchmark results.
package repository

import (
	"time"

	"github.com/grid-automata/pkg/model"
)

// BenchmarkRun represents the benchmark_runs table.
type BenchmarkRun struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Engine     string    `gorm:"column:engine;type:varchar(16);index"`
	Height     int       `gorm:"column:height"`
	Width      int       `gorm:"column:width"`
	Workers    int       `gorm:"column:workers"`
	Steps      int       `gorm:"column:steps"`
	Runs       int       `gorm:"column:runs"`
	RuleName   string    `gorm:"column:rule_name;type:varchar(64)"`
	Seed       int64     `gorm:"column:seed"`
	MinMS      float64   `gorm:"column:min_ms"`
	MaxMS      float64   `gorm:"column:max_ms"`
	AvgMS      float64   `gorm:"column:avg_ms"`
	StdDevMS   float64   `gorm:"column:stddev_ms"`
	Speedup    float64   `gorm:"column:speedup"`
	Efficiency float64   `gorm:"column:efficiency"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime"`
}

// TableName returns the table name for BenchmarkRun.
func (BenchmarkRun) TableName() string {
	return "benchmark_runs"
}

// FromResult builds a record from a run spec and its statistics.
func FromResult(spec model.RunSpec, stats model.RunStats) *BenchmarkRun {
	return &BenchmarkRun{
		Engine:     string(spec.Engine),
		Height:     spec.Height,
		Width:      spec.Width,
		Workers:    spec.Workers,
		Steps:      spec.Steps,
		Runs:       stats.Runs,
		RuleName:   spec.Rule,
		Seed:       spec.Seed,
		MinMS:      stats.MinMS,
		MaxMS:      stats.MaxMS,
		AvgMS:      stats.AvgMS,
		StdDevMS:   stats.StdDevMS,
		Speedup:    stats.Speedup,
		Efficiency: stats.Efficiency,
	}
}

// Spec reconstructs the run spec stored in the record.
func (r *BenchmarkRun) Spec() model.RunSpec {
	return model.RunSpec{
		Height:  r.Height,
		Width:   r.Width,
		Workers: r.Workers,
		Steps:   r.Steps,
		Runs:    r.Runs,
		Engine:  model.EngineKind(r.Engine),
		Rule:    r.RuleName,
		Seed:    r.Seed,
	}
}

// Stats reconstructs the statistics stored in the record.
func (r *BenchmarkRun) Stats() model.RunStats {
	return model.RunStats{
		Runs:       r.Runs,
		MinMS:      r.MinMS,
		MaxMS:      r.MaxMS,
		AvgMS:      r.AvgMS,
		StdDevMS:   r.StdDevMS,
		Speedup:    r.Speedup,
		Efficiency: r.Efficiency,
	}
}
