package grid

import (
	apperrors "github.com/grid-automata/pkg/errors"
)

// Band is a contiguous half-open interval [Lo, Hi) of rows or of linear cell
// indexes assigned to one worker.
type Band struct {
	Lo int
	Hi int
}

// Len returns the number of elements in the band.
func (b Band) Len() int { return b.Hi - b.Lo }

// SplitRows partitions [0, height) into one band per worker. The first
// workers-1 bands hold height/workers rows each and the last band absorbs
// the remainder. Bands are disjoint and cover the whole interval.
func SplitRows(height, workers int) ([]Band, error) {
	return split(height, workers, "rows")
}

// SplitIndexes partitions the linear index space [0, size) the same way
// SplitRows partitions rows.
func SplitIndexes(size, workers int) ([]Band, error) {
	return split(size, workers, "cells")
}

func split(total, workers int, unit string) ([]Band, error) {
	if total <= 0 || workers <= 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidParameters,
			"cannot split %d %s among %d workers", total, unit, workers)
	}
	if workers > total {
		return nil, apperrors.Newf(apperrors.CodeInvalidParameters,
			"more workers (%d) than %s (%d)", workers, unit, total)
	}
	share := total / workers
	bands := make([]Band, workers)
	lo := 0
	for i := 0; i < workers; i++ {
		hi := lo + share
		if i == workers-1 {
			hi = total
		}
		bands[i] = Band{Lo: lo, Hi: hi}
		lo = hi
	}
	return bands, nil
}
