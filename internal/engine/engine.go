// Package engine enumerates candidate die positions over a wafer and
// classifies every one of them. The enumeration is a pure streaming
// reduction: for fixed inputs it always produces the same GridResult.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dougthor42/gdw/internal/model"
)

// ErrGridTooLarge is returned when the candidate grid exceeds the
// configured cell cap before any counting begins.
var ErrGridTooLarge = errors.New("grid too large")

// Settings holds the optional knobs around the core computation.
type Settings struct {
	// NorthLimit is a scribe keep-out: die whose top edge reaches above
	// this y coordinate (mm from wafer center) classify StateScribe.
	// 0 disables the check.
	NorthLimit float64 `json:"north_limit"`

	// MaxCells caps the number of grid cells a single computation may
	// enumerate, guarding against near-zero die sizes. 0 disables the cap.
	MaxCells int `json:"max_cells"`

	// Workers shards classification across goroutines with per-worker
	// partial counts merged at the end. Values <= 1 run inline.
	Workers int `json:"workers"`
}

// DefaultSettings returns the zero configuration: no scribe keep-out,
// no cell cap, single-threaded.
func DefaultSettings() Settings {
	return Settings{}
}

// Engine runs grid computations with a fixed Settings.
type Engine struct {
	Settings Settings
}

func New(settings Settings) *Engine {
	return &Engine{Settings: settings}
}

// grid captures the derived layout for one computation.
type grid struct {
	cols, rows       int
	centerX, centerY float64
}

// layout sizes the grid to span the wafer's bounding square with a full
// extra die on every side, so no candidate position near the edge is
// missed. Cell (1,1) therefore starts well off the wafer.
func layout(w model.Wafer, die model.DieSize, off model.Offset) grid {
	cols := 2 * int(math.Ceil(w.Diameter()/die.Width))
	rows := 2 * int(math.Ceil(w.Diameter()/die.Height))
	return grid{
		cols:    cols,
		rows:    rows,
		centerX: float64(cols)/2 + off.X,
		centerY: float64(rows)/2 + off.Y,
	}
}

// cell computes the classified Die for grid coordinate (x, y).
func (e *Engine) cell(w model.Wafer, die model.DieSize, g grid, x, y int) model.Die {
	centerX := die.Width * (float64(x) - g.centerX)
	// grid rows grow downward while wafer y grows upward, so the y term flips
	centerY := die.Height * (g.centerY - float64(y))
	center := model.Point2D{X: centerX, Y: centerY}

	return model.Die{
		XGrid: x,
		YGrid: y,
		X:     centerX - die.Width/2,
		Y:     centerY - die.Height/2,
		State: w.Classify(center, die, e.Settings.NorthLimit),
	}
}

// Compute enumerates the candidate grid for the given wafer, die size, and
// grid offset, classifies every cell, and aggregates per-state counts.
//
// Cells entirely off the wafer are counted but not retained in Dies; the
// sum of all counts equals CellCount. The result is deterministic for
// identical inputs regardless of the Workers setting.
func (e *Engine) Compute(w model.Wafer, die model.DieSize, off model.Offset) (model.GridResult, error) {
	g := layout(w, die, off)
	cells := (g.cols - 1) * (g.rows - 1)
	if e.Settings.MaxCells > 0 && cells > e.Settings.MaxCells {
		return model.GridResult{}, fmt.Errorf("%w: %d candidate cells exceed the cap of %d",
			ErrGridTooLarge, cells, e.Settings.MaxCells)
	}

	res := model.GridResult{
		Counts:      make(map[model.DieState]int, len(model.AllStates)),
		CellCount:   cells,
		Offset:      off,
		GridCenterX: g.centerX,
		GridCenterY: g.centerY,
	}

	if e.Settings.Workers > 1 {
		e.computeParallel(w, die, g, &res)
		return res, nil
	}

	for x := 1; x < g.cols; x++ {
		for y := 1; y < g.rows; y++ {
			d := e.cell(w, die, g, x, y)
			res.Counts[d.State]++
			if d.State != model.StateWafer {
				res.Dies = append(res.Dies, d)
			}
		}
	}
	return res, nil
}

// computeParallel shards the grid columns across Workers goroutines. Each
// worker reduces into its own partial counts and die slice; the partials
// are merged in column order afterwards, so the output matches the inline
// path exactly.
func (e *Engine) computeParallel(w model.Wafer, die model.DieSize, g grid, res *model.GridResult) {
	type partial struct {
		counts map[model.DieState]int
		dies   []model.Die
	}

	workers := e.Settings.Workers
	per := (g.cols - 1 + workers - 1) / workers
	parts := make([]partial, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := 1 + i*per
		hi := lo + per
		if hi > g.cols {
			hi = g.cols
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			p := partial{counts: make(map[model.DieState]int, len(model.AllStates))}
			for x := lo; x < hi; x++ {
				for y := 1; y < g.rows; y++ {
					d := e.cell(w, die, g, x, y)
					p.counts[d.State]++
					if d.State != model.StateWafer {
						p.dies = append(p.dies, d)
					}
				}
			}
			parts[i] = p
		}(i, lo, hi)
	}
	wg.Wait()

	for _, p := range parts {
		for s, n := range p.counts {
			res.Counts[s] += n
		}
		res.Dies = append(res.Dies, p.dies...)
	}
}
