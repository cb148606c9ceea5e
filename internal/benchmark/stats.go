package benchmark

import (
	"math"

	"github.com/grid-automata/pkg/model"
)

// ComputeStats aggregates per-run wall-clock timings. The baseline average,
// when positive, additionally yields speedup and efficiency for the given
// worker count.
func ComputeStats(timingsMS []float64, workers int, baselineAvgMS float64) model.RunStats {
	stats := model.RunStats{Runs: len(timingsMS)}
	if len(timingsMS) == 0 {
		return stats
	}

	stats.MinMS = math.MaxFloat64
	sum := 0.0
	for _, t := range timingsMS {
		if t < stats.MinMS {
			stats.MinMS = t
		}
		if t > stats.MaxMS {
			stats.MaxMS = t
		}
		sum += t
	}
	stats.AvgMS = sum / float64(len(timingsMS))

	variance := 0.0
	for _, t := range timingsMS {
		d := t - stats.AvgMS
		variance += d * d
	}
	stats.StdDevMS = math.Sqrt(variance / float64(len(timingsMS)))

	if baselineAvgMS > 0 && stats.AvgMS > 0 && workers > 0 {
		stats.Speedup = baselineAvgMS / stats.AvgMS
		stats.Efficiency = stats.Speedup / float64(workers)
	}
	return stats
}
