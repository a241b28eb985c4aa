package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/dougthor42/gdw/internal/model"
)

// TravelerInfo is the data encoded into each traveler label's QR code.
type TravelerInfo struct {
	MapID      string  `json:"map_id"`
	Diameter   float64 `json:"diameter_mm"`
	DieWidth   float64 `json:"die_width_mm"`
	DieHeight  float64 `json:"die_height_mm"`
	GrossDie   int     `json:"gross_die"`
	OffsetX    float64 `json:"offset_x"`
	OffsetY    float64 `json:"offset_y"`
	WaferIndex int     `json:"wafer"`
	LotSize    int     `json:"lot_size"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per page, US Letter).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportTravelerLabels generates a PDF of QR-coded wafer traveler labels,
// one per wafer in the lot, laid out on a standard label sheet. The QR code
// carries the map identity and gross die summary as JSON so a scanner at
// the prober can pull up the matching map.
func ExportTravelerLabels(path, mapID string, result model.GridResult, wafer model.Wafer, die model.DieSize, lotSize int) error {
	if lotSize < 1 {
		return fmt.Errorf("lot size must be >= 1, got %d", lotSize)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i := 0; i < lotSize; i++ {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		info := TravelerInfo{
			MapID:      mapID,
			Diameter:   wafer.Diameter(),
			DieWidth:   die.Width,
			DieHeight:  die.Height,
			GrossDie:   result.TotalGross(),
			OffsetX:    result.Offset.X,
			OffsetY:    result.Offset.Y,
			WaferIndex: i + 1,
			LotSize:    lotSize,
		}
		if err := renderTravelerLabel(pdf, x, y, info); err != nil {
			return fmt.Errorf("failed to render label %d: %w", i+1, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTravelerLabel draws a single label at the given position.
func renderTravelerLabel(pdf *fpdf.Fpdf, x, y float64, info TravelerInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal traveler info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.MapID, info.WaferIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 4, fmt.Sprintf("Map %s", info.MapID), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	lines := []string{
		fmt.Sprintf("Wafer %d of %d, %.0f mm", info.WaferIndex, info.LotSize, info.Diameter),
		fmt.Sprintf("Die %.2f x %.2f mm", info.DieWidth, info.DieHeight),
		fmt.Sprintf("Gross die: %d", info.GrossDie),
	}
	for i, line := range lines {
		pdf.SetXY(textX, y+labelPadding+5+float64(i)*4)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 4, line, "", 0, "L", false, 0, "")
	}

	return nil
}
