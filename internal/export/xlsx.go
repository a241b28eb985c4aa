package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dougthor42/gdw/internal/model"
)

// stateCodes are the short cell markers written into the die-map sheet.
var stateCodes = map[model.DieState]string{
	model.StateProbe:         "P",
	model.StateExclusion:     "E",
	model.StateFlatExclusion: "FE",
	model.StateFlat:          "F",
	model.StateScribe:        "S",
}

// ExportXLSX writes the result as a spreadsheet: a "Die Map" sheet laying
// out the grid with one cell per die (spreadsheet row/column mirror the
// grid coordinates), and a "Summary" sheet with the inputs and per-state
// counts.
func ExportXLSX(path string, result model.GridResult, wafer model.Wafer, die model.DieSize) error {
	if len(result.Dies) == 0 {
		return fmt.Errorf("no die on wafer, nothing to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	const mapSheet = "Die Map"
	if err := f.SetSheetName("Sheet1", mapSheet); err != nil {
		return err
	}

	maxCol := 0
	for _, d := range result.Dies {
		cell, err := excelize.CoordinatesToCellName(d.XGrid, d.YGrid)
		if err != nil {
			return fmt.Errorf("die (%d, %d): %w", d.XGrid, d.YGrid, err)
		}
		if err := f.SetCellValue(mapSheet, cell, stateCodes[d.State]); err != nil {
			return err
		}
		if d.XGrid > maxCol {
			maxCol = d.XGrid
		}
	}

	// Narrow columns so the map reads as a grid.
	if maxCol > 0 {
		endCol, err := excelize.ColumnNumberToName(maxCol)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(mapSheet, "A", endCol, 3); err != nil {
			return err
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Wafer diameter (mm)", wafer.Diameter()},
		{"Edge exclusion (mm)", wafer.EdgeExclusion()},
		{"Flat exclusion (mm)", wafer.FlatExclusion()},
		{"Flat size (mm)", wafer.FlatSize()},
		{"Die width (mm)", die.Width},
		{"Die height (mm)", die.Height},
		{"Offset X (die)", result.Offset.X},
		{"Offset Y (die)", result.Offset.Y},
		{"Cells enumerated", result.CellCount},
		{"Gross die", result.TotalGross()},
	}
	for _, state := range model.AllStates {
		rows = append(rows, []interface{}{
			fmt.Sprintf("Count: %s", stateLabels[state]),
			result.CountByState(state),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}

	return f.SaveAs(path)
}
