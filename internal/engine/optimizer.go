package engine

import (
	"fmt"
	"math"

	"github.com/dougthor42/gdw/internal/model"
)

// parityShifts lists the four odd/even grid alignments, closest to a
// centered grid first. Maximize keeps the first best result, so this order
// doubles as the tie-break.
var parityShifts = []model.GridShift{
	{X: model.AlignOdd, Y: model.AlignOdd},
	{X: model.AlignOdd, Y: model.AlignEven},
	{X: model.AlignEven, Y: model.AlignOdd},
	{X: model.AlignEven, Y: model.AlignEven},
}

// Maximize computes the grid for each of the four parity shifts and returns
// the one with the highest gross die count. The winning shift is recorded
// in the result.
func (e *Engine) Maximize(w model.Wafer, die model.DieSize) (model.GridResult, error) {
	var best model.GridResult
	bestGross := -1

	for _, shift := range parityShifts {
		res, err := e.Compute(w, die, model.ParityOffset(shift.X, shift.Y))
		if err != nil {
			return model.GridResult{}, err
		}
		if res.TotalGross() > bestGross {
			bestGross = res.TotalGross()
			s := shift
			res.Shift = &s
			best = res
		}
	}
	return best, nil
}

// OptimizeOffset brute-forces a resolution by resolution sub-die offset
// grid and returns the computation with the highest gross die count. Ties
// go to the offset closest to a centered grid, measuring each axis on the
// wrapped interval [-0.5, 0.5): an offset of 0.9 die is 0.1 die away from
// centered, not 0.9.
func (e *Engine) OptimizeOffset(w model.Wafer, die model.DieSize, resolution int) (model.GridResult, error) {
	if resolution < 1 {
		return model.GridResult{}, fmt.Errorf("offset search resolution must be >= 1, got %d", resolution)
	}

	var best model.GridResult
	bestGross := -1
	bestDist := math.Inf(1)

	step := 1 / float64(resolution)
	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			off := model.Offset{X: float64(i) * step, Y: float64(j) * step}
			res, err := e.Compute(w, die, off)
			if err != nil {
				return model.GridResult{}, err
			}
			dist := wrapSqrd(off.X) + wrapSqrd(off.Y)
			if res.TotalGross() > bestGross ||
				(res.TotalGross() == bestGross && dist < bestDist) {
				bestGross = res.TotalGross()
				bestDist = dist
				best = res
			}
		}
	}
	return best, nil
}

// wrapSqrd maps a die-fraction offset in [0, 1) onto [-0.5, 0.5) and
// squares it.
func wrapSqrd(f float64) float64 {
	if f > 0.5 {
		f -= 1
	}
	return f * f
}
