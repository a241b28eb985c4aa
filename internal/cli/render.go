package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dougthor42/gdw/internal/model"
)

// summary is the JSON output shape: the result without its die list.
type summary struct {
	Diameter      float64                  `json:"diameter_mm"`
	EdgeExclusion float64                  `json:"edge_exclusion_mm"`
	FlatExclusion float64                  `json:"flat_exclusion_mm"`
	FlatSize      float64                  `json:"flat_size_mm"`
	DieWidth      float64                  `json:"die_width_mm"`
	DieHeight     float64                  `json:"die_height_mm"`
	Offset        model.Offset             `json:"offset"`
	Shift         *model.GridShift         `json:"shift,omitempty"`
	GridCenter    [2]float64               `json:"grid_center"`
	CellCount     int                      `json:"cell_count"`
	Counts        map[model.DieState]int   `json:"counts"`
	GrossDie      int                      `json:"gross_die"`
}

// render writes the result to w, as JSON or as the human summary block.
func render(w io.Writer, result model.GridResult, wafer model.Wafer, die model.DieSize, asJSON bool) error {
	if asJSON {
		s := summary{
			Diameter:      wafer.Diameter(),
			EdgeExclusion: wafer.EdgeExclusion(),
			FlatExclusion: wafer.FlatExclusion(),
			FlatSize:      wafer.FlatSize(),
			DieWidth:      die.Width,
			DieHeight:     die.Height,
			Offset:        result.Offset,
			Shift:         result.Shift,
			GridCenter:    [2]float64{result.GridCenterX, result.GridCenterY},
			CellCount:     result.CellCount,
			Counts:        result.Counts,
			GrossDie:      result.TotalGross(),
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Fprintln(w, "----------------------------------")
	if result.Shift != nil {
		fmt.Fprintf(w, "Maximum GDW: %d (X: %s, Y: %s)\n",
			result.TotalGross(), result.Shift.X, result.Shift.Y)
	} else {
		fmt.Fprintf(w, "Gross Die per Wafer: %d\n", result.TotalGross())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Die lost off the wafer edge:   %d\n", result.CountByState(model.StateWafer))
	fmt.Fprintf(w, "Die lost to the wafer flat:    %d\n", result.CountByState(model.StateFlat))
	fmt.Fprintf(w, "Die lost to edge exclusion:    %d\n", result.CountByState(model.StateExclusion))
	fmt.Fprintf(w, "Die lost to flat exclusion:    %d\n", result.CountByState(model.StateFlatExclusion))
	if n := result.CountByState(model.StateScribe); n > 0 {
		fmt.Fprintf(w, "Die lost to scribe keep-out:   %d\n", n)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Cells enumerated: %d\n", result.CellCount)
	fmt.Fprintf(w, "Grid center: (%g, %g)\n", result.GridCenterX, result.GridCenterY)
	fmt.Fprintln(w, "----------------------------------")
	return nil
}
