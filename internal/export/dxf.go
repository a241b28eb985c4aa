package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/dougthor42/gdw/internal/model"
)

// dxfLayers maps die states to DXF layer names and colors. CAD tools toggle
// visibility per layer, so each state gets its own.
var dxfLayers = map[model.DieState]struct {
	name  string
	color dxfcolor.ColorNumber
}{
	model.StateProbe:         {name: "DIE_PROBE", color: dxfcolor.Green},
	model.StateExclusion:     {name: "DIE_EDGE_EXCL", color: dxfcolor.Red},
	model.StateFlatExclusion: {name: "DIE_FLAT_EXCL", color: dxfcolor.Yellow},
	model.StateFlat:          {name: "DIE_FLAT", color: dxfcolor.Cyan},
	model.StateScribe:        {name: "DIE_SCRIBE", color: dxfcolor.Magenta},
}

// ExportDXF writes the wafer map as a DXF drawing in wafer coordinates
// (mm, origin at wafer center): the wafer outline and flat on one layer,
// the usable-area circle on another, and the die rectangles on one layer
// per state.
func ExportDXF(path string, result model.GridResult, wafer model.Wafer, die model.DieSize) error {
	if len(result.Dies) == 0 {
		return fmt.Errorf("no die on wafer, nothing to draw")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("WAFER", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add wafer layer: %w", err)
	}
	if _, err := d.Circle(0, 0, 0, wafer.Radius()); err != nil {
		return fmt.Errorf("draw wafer outline: %w", err)
	}
	if wafer.FlatSize() > 0 {
		half := wafer.FlatSize() / 2
		if _, err := d.Line(-half, wafer.FlatY(), 0, half, wafer.FlatY(), 0); err != nil {
			return fmt.Errorf("draw flat: %w", err)
		}
	}

	if _, err := d.AddLayer("EXCLUSION", dxfcolor.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("add exclusion layer: %w", err)
	}
	if _, err := d.Circle(0, 0, 0, wafer.UsableRadius()); err != nil {
		return fmt.Errorf("draw exclusion boundary: %w", err)
	}

	for _, state := range model.AllStates {
		layer, ok := dxfLayers[state]
		if !ok || result.CountByState(state) == 0 {
			continue
		}
		if _, err := d.AddLayer(layer.name, layer.color, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer.name, err)
		}
		for _, die2 := range result.Dies {
			if die2.State != state {
				continue
			}
			if err := drawDieRect(d, die2, die); err != nil {
				return err
			}
		}
	}

	return d.SaveAs(path)
}

// drawDieRect draws one die as a closed polyline.
func drawDieRect(d *drawing.Drawing, die2 model.Die, size model.DieSize) error {
	corners := die2.Corners(size)
	vertices := make([][]float64, 0, len(corners))
	for _, c := range corners {
		vertices = append(vertices, []float64{c.X, c.Y})
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("draw die (%d, %d): %w", die2.XGrid, die2.YGrid, err)
	}
	return nil
}
