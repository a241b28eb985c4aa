package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dougthor42/gdw/internal/model"
)

// parseDie parses a die size flag of the form "WxH" in mm, e.g. "5x5" or
// "2.43x3.30".
func parseDie(s string) (model.DieSize, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return model.DieSize{}, fmt.Errorf("die size %q must look like WIDTHxHEIGHT, e.g. 5x5", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return model.DieSize{}, fmt.Errorf("die width %q is not a number", parts[0])
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.DieSize{}, fmt.Errorf("die height %q is not a number", parts[1])
	}
	return model.NewDieSize(w, h)
}

// parseOffset parses a grid offset flag: two comma-separated axis values,
// each either a parity name ("odd", "even") or a millimeter distance from
// the wafer center, e.g. "odd,even" or "-1.65,2.95". Millimeter values are
// converted to die fractions.
func parseOffset(s string, die model.DieSize) (model.Offset, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return model.Offset{}, fmt.Errorf("offset %q must have two comma-separated values, e.g. odd,odd", s)
	}
	x, err := axisOffset(parts[0], die.Width)
	if err != nil {
		return model.Offset{}, err
	}
	y, err := axisOffset(parts[1], die.Height)
	if err != nil {
		return model.Offset{}, err
	}
	return model.Offset{X: x, Y: y}, nil
}

func axisOffset(tok string, dieDim float64) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case string(model.AlignOdd):
		return 0, nil
	case string(model.AlignEven):
		return 0.5, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, fmt.Errorf("offset value %q must be 'odd', 'even', or a number of mm", tok)
	}
	return v / dieDim, nil
}
