package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/dougthor42/gdw/internal/model"
)

// stateColor represents an RGB fill color for a die state.
type stateColor struct {
	R, G, B int
}

// stateColors assigns a fill color to every retained die state.
var stateColors = map[model.DieState]stateColor{
	model.StateProbe:         {R: 76, G: 175, B: 80},   // green
	model.StateExclusion:     {R: 244, G: 67, B: 54},   // red
	model.StateFlatExclusion: {R: 255, G: 152, B: 0},   // orange
	model.StateFlat:          {R: 158, G: 158, B: 158}, // gray
	model.StateScribe:        {R: 156, G: 39, B: 176},  // purple
}

// stateLabels names the states for legends and summaries.
var stateLabels = map[model.DieState]string{
	model.StateWafer:         "Off wafer",
	model.StateFlat:          "Off flat",
	model.StateExclusion:     "Edge exclusion",
	model.StateFlatExclusion: "Flat exclusion",
	model.StateScribe:        "Scribe keep-out",
	model.StateProbe:         "Gross (probed)",
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 10.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF wafer map: the wafer outline with its flat and
// exclusion ring, every retained die colored by state, a legend, and a
// summary statistics page.
func ExportPDF(path string, result model.GridResult, wafer model.Wafer, die model.DieSize) error {
	if len(result.Dies) == 0 {
		return fmt.Errorf("no die on wafer, nothing to draw")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderMapPage(pdf, result, wafer, die)

	pdf.AddPage()
	renderSummaryPage(pdf, result, wafer, die)

	return pdf.OutputFileAndClose(path)
}

// renderMapPage draws the wafer map on the current page.
func renderMapPage(pdf *fpdf.Fpdf, result model.GridResult, wafer model.Wafer, die model.DieSize) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Wafer Map: %.0f mm wafer, %.2f x %.2f mm die",
		wafer.Diameter(), die.Width, die.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Gross die: %d | Cells: %d | Edge exclusion: %.1f mm | Flat exclusion: %.1f mm | Offset: (%.3g, %.3g)",
		result.TotalGross(), result.CellCount, wafer.EdgeExclusion(), wafer.FlatExclusion(),
		result.Offset.X, result.Offset.Y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the wafer into the drawing area.
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth, drawHeight) / wafer.Diameter()

	// Wafer center on the page.
	cx := marginLeft + drawWidth/2
	cy := drawAreaTop + drawHeight/2

	// Wafer disc background.
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Circle(cx, cy, wafer.Radius()*scale, "FD")

	// Die rectangles, colored by state. Page y grows downward, wafer y
	// grows upward, so the die's top edge maps to the rectangle origin.
	for _, d := range result.Dies {
		col, ok := stateColors[d.State]
		if !ok {
			continue
		}
		px := cx + d.X*scale
		py := cy - (d.Y+die.Height)*scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(40, 40, 40)
		pdf.SetLineWidth(0.05)
		pdf.Rect(px, py, die.Width*scale, die.Height*scale, "FD")
	}

	// Usable-area circle (edge exclusion boundary), dashed.
	pdf.SetDrawColor(180, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
	pdf.Circle(cx, cy, wafer.UsableRadius()*scale, "D")
	pdf.SetDashPattern([]float64{}, 0)

	// Flat chord.
	if wafer.FlatSize() > 0 {
		half := wafer.FlatSize() / 2 * scale
		fy := cy - wafer.FlatY()*scale
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.4)
		pdf.Line(cx-half, fy, cx+half, fy)
	}

	drawLegend(pdf, result, drawAreaTop+drawHeight+3)
}

// drawLegend renders a color swatch and count for every non-empty state.
func drawLegend(pdf *fpdf.Fpdf, result model.GridResult, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	xPos := marginLeft

	for _, state := range model.AllStates {
		col, ok := stateColors[state]
		if !ok || result.CountByState(state) == 0 {
			continue
		}
		label := fmt.Sprintf("%s: %d", stateLabels[state], result.CountByState(state))

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, y+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, y)
		w := pdf.GetStringWidth(label)
		pdf.CellFormat(w, 4, label, "", 0, "L", false, 0, "")
		xPos += w + 10
	}
}

// renderSummaryPage draws the statistics and input parameters.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.GridResult, wafer model.Wafer, die model.DieSize) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Gross Die per Wafer Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	items := []struct {
		label string
		value string
	}{
		{"Wafer diameter", fmt.Sprintf("%.1f mm", wafer.Diameter())},
		{"Edge exclusion", fmt.Sprintf("%.1f mm", wafer.EdgeExclusion())},
		{"Flat exclusion", fmt.Sprintf("%.1f mm", wafer.FlatExclusion())},
		{"Flat size", fmt.Sprintf("%.2f mm", wafer.FlatSize())},
		{"Die size", fmt.Sprintf("%.2f x %.2f mm", die.Width, die.Height)},
		{"Grid offset", fmt.Sprintf("(%.4g, %.4g) die", result.Offset.X, result.Offset.Y)},
		{"Grid center", fmt.Sprintf("(%.1f, %.1f)", result.GridCenterX, result.GridCenterY)},
		{"Cells enumerated", fmt.Sprintf("%d", result.CellCount)},
		{"Gross die", fmt.Sprintf("%d", result.TotalGross())},
	}
	if result.Shift != nil {
		items = append(items, struct {
			label string
			value string
		}{"Best shift", fmt.Sprintf("X: %s, Y: %s", result.Shift.X, result.Shift.Y)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Die by State", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 30}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0], 6, "State", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[1], 6, "Count", "1", 0, "C", true, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, state := range model.AllStates {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(colWidths[0], 6, stateLabels[state], "1", 0, "L", true, 0, "")
		pdf.CellFormat(colWidths[1], 6, fmt.Sprintf("%d", result.CountByState(state)), "1", 0, "C", true, 0, "")
		y += 6
	}
}
