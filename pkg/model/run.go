// Package model defines the shared types describing automaton runs.
package model

import (
	"fmt"
	"strings"

	apperrors "github.com/grid-automata/pkg/errors"
)

// EngineKind selects one of the two parallel step engines.
type EngineKind string

const (
	// EngineShared is the bulk-synchronous engine where all workers share
	// one grid and rendezvous at a step barrier.
	EngineShared EngineKind = "shared"
	// EngineHalo is the distributed-buffer engine where each worker owns a
	// subgrid with ghost rows refreshed by a coordinator.
	EngineHalo EngineKind = "halo"
)

// ParseEngineKind resolves an engine selector string.
func ParseEngineKind(s string) (EngineKind, error) {
	switch strings.ToLower(s) {
	case "shared", "barrier":
		return EngineShared, nil
	case "halo", "ghost":
		return EngineHalo, nil
	default:
		return "", apperrors.Newf(apperrors.CodeInvalidParameters, "unknown engine kind %q", s)
	}
}

// RunSpec describes one benchmark configuration.
type RunSpec struct {
	Height  int        `json:"height"`
	Width   int        `json:"width"`
	Workers int        `json:"workers"`
	Steps   int        `json:"steps"`
	Runs    int        `json:"runs"`
	Engine  EngineKind `json:"engine"`
	Rule    string     `json:"rule"`
	Seed    int64      `json:"seed"`
}

// Validate checks the spec parameters.
func (s RunSpec) Validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return apperrors.Newf(apperrors.CodeInvalidParameters,
			"non-positive dimensions %dx%d", s.Height, s.Width)
	}
	if s.Workers <= 0 {
		return apperrors.Newf(apperrors.CodeInvalidParameters,
			"non-positive worker count %d", s.Workers)
	}
	if s.Steps < 0 {
		return apperrors.Newf(apperrors.CodeInvalidParameters,
			"negative step count %d", s.Steps)
	}
	if s.Runs <= 0 {
		return apperrors.Newf(apperrors.CodeInvalidParameters,
			"non-positive run count %d", s.Runs)
	}
	if s.Engine != EngineShared && s.Engine != EngineHalo {
		return apperrors.Newf(apperrors.CodeInvalidParameters,
			"unknown engine kind %q", s.Engine)
	}
	return nil
}

// Cells returns the total cell count of the configuration.
func (s RunSpec) Cells() int {
	return s.Height * s.Width
}

// String renders the spec the way the benchmark log prints it.
func (s RunSpec) String() string {
	return fmt.Sprintf("%dx%d grid, %d workers, %d steps, engine=%s, rule=%s",
		s.Height, s.Width, s.Workers, s.Steps, s.Engine, s.Rule)
}

// RunStats aggregates wall-clock timings over repeated runs of one spec.
type RunStats struct {
	Runs       int     `json:"runs"`
	MinMS      float64 `json:"min_ms"`
	MaxMS      float64 `json:"max_ms"`
	AvgMS      float64 `json:"avg_ms"`
	StdDevMS   float64 `json:"stddev_ms"`
	Speedup    float64 `json:"speedup"`    // sequential avg / parallel avg, 0 when no baseline
	Efficiency float64 `json:"efficiency"` // speedup / workers, 0 when no baseline
}
