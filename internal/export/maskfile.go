// Package export writes grid computation results to the file formats used
// downstream: OWT prober mask files, wafer-map PDFs and DXFs, die-map
// spreadsheets, and QR-coded traveler labels.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/dougthor42/gdw/internal/model"
)

// MaskOptions configures WriteMaskFile.
type MaskOptions struct {
	// Name is written into the [Mask] section header.
	Name string

	// FixedStartCoord keeps the grid coordinates as enumerated. By default
	// the grid is re-anchored so that row and column 1 sit just outside the
	// outermost edge-exclusion die, which is where the prober expects them.
	FixedStartCoord bool
}

// rc is a (row, column) cell address. Mask files are row/column ordered,
// the opposite of the x/y grid coordinates carried on each Die.
type rc struct {
	row, col int
}

// WriteMaskFile writes the result as a prober mask file readable by the
// LabVIEW OWT program.
//
// The result must retain its die list (every die fully or partially on the
// wafer); die inside the exclusion zones are part of the map even though
// they are not probed.
func WriteMaskFile(path string, result model.GridResult, die model.DieSize, diameter float64, opts MaskOptions) error {
	if len(result.Dies) == 0 {
		return fmt.Errorf("no die on wafer, nothing to write")
	}

	dies := make([]model.Die, len(result.Dies))
	copy(dies, result.Dies)

	if !opts.FixedStartCoord {
		// Re-anchor the grid: the engine puts cell (1,1) far off the wafer,
		// so shift the origin to two cells outside the outermost
		// edge-exclusion die.
		edgeRow, edgeCol := 0, 0
		found := false
		for _, d := range dies {
			if d.State != model.StateExclusion {
				continue
			}
			if !found || d.YGrid < edgeRow {
				edgeRow = d.YGrid
			}
			if !found || d.XGrid < edgeCol {
				edgeCol = d.XGrid
			}
			found = true
		}
		if !found {
			return fmt.Errorf("no edge-exclusion die to anchor the grid origin")
		}
		edgeRow -= 2
		edgeCol -= 2
		for i := range dies {
			dies[i].XGrid -= edgeCol
			dies[i].YGrid -= edgeRow
		}
	}

	nRows, nCols := 0, 0
	probe := make(map[rc]bool)
	onMap := make(map[rc]model.DieState, len(dies))
	for _, d := range dies {
		if d.YGrid > nRows {
			nRows = d.YGrid
		}
		if d.XGrid > nCols {
			nCols = d.XGrid
		}
		cell := rc{row: d.YGrid, col: d.XGrid}
		onMap[cell] = d.State
		if d.State == model.StateProbe {
			probe[cell] = true
		}
	}
	nRows++
	nCols++

	if len(probe) == 0 {
		return fmt.Errorf("no probe-able die on wafer")
	}

	// The landing die: lowest row, then lowest column, with a probe state.
	start := rc{row: nRows + 1}
	for cell := range probe {
		if cell.row < start.row || (cell.row == start.row && cell.col < start.col) {
			start = cell
		}
	}

	// Build the three cell lists the prober consumes. Each walks the full
	// row/column rectangle and keeps the cells NOT in the named group:
	// TestAll is everything except probed die, Every is everything that is
	// neither probed nor on the wafer inside the exclusions, Edge Inking
	// additionally keeps the probed die.
	var testAll, every, edge []string
	for row := 1; row <= nRows; row++ {
		for col := 1; col <= nCols; col++ {
			cell := rc{row: row, col: col}
			state, on := onMap[cell]
			entry := fmt.Sprintf("%d,%d", row, col)

			if !probe[cell] {
				testAll = append(testAll, entry)
			}
			inExclusion := on && (state == model.StateExclusion || state == model.StateFlatExclusion)
			if !inExclusion && !probe[cell] {
				every = append(every, entry)
			}
			if !inExclusion {
				edge = append(edge, entry)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "[Mask]\n")
	fmt.Fprintf(f, "Mask = %q\n", opts.Name)
	fmt.Fprintf(f, "Die X = %f\n", die.Width)
	fmt.Fprintf(f, "Die Y = %f\n", die.Height)
	fmt.Fprintf(f, "Flat = 0\n")
	fmt.Fprintf(f, "\n")
	fmt.Fprintf(f, "[%dmm]\n", int(diameter))
	fmt.Fprintf(f, "Rows = %d\n", nRows)
	fmt.Fprintf(f, "Cols = %d\n", nCols)
	fmt.Fprintf(f, "Home Row = 1\n")
	fmt.Fprintf(f, "Home Col = 1\n")
	fmt.Fprintf(f, "Start Row = %d\n", start.row)
	fmt.Fprintf(f, "Start Col = %d\n", start.col)
	fmt.Fprintf(f, "Every = %q\n", strings.Join(every, "; "))
	fmt.Fprintf(f, "TestAll = %q\n", strings.Join(testAll, "; "))
	fmt.Fprintf(f, "Edge Inking = %q\n", strings.Join(edge, "; "))
	fmt.Fprintf(f, "\n[Devices]\n")
	fmt.Fprintf(f, "PCM = \"0.2,0,0,,T\"\n")

	return nil
}
