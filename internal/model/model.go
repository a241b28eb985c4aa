package model

import (
	"fmt"
	"math"
)

// DieState classifies a grid cell after it has been placed against the wafer.
// The set is closed: counting and reporting iterate over AllStates and rely
// on there being no other values.
type DieState int

const (
	StateWafer         DieState = iota // off the edge of the wafer
	StateFlat                          // off the wafer flat
	StateExclusion                     // inside the edge exclusion ring
	StateFlatExclusion                 // inside the flat exclusion band
	StateScribe                        // above the scribe keep-out line
	StateProbe                         // good die
)

// AllStates lists every DieState in classification precedence order.
var AllStates = []DieState{
	StateWafer,
	StateFlat,
	StateExclusion,
	StateFlatExclusion,
	StateScribe,
	StateProbe,
}

func (s DieState) String() string {
	switch s {
	case StateWafer:
		return "wafer"
	case StateFlat:
		return "flat"
	case StateExclusion:
		return "excl"
	case StateFlatExclusion:
		return "flatExcl"
	case StateScribe:
		return "scribe"
	case StateProbe:
		return "probe"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name so JSON maps keyed by DieState stay
// readable in saved projects.
func (s DieState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *DieState) UnmarshalText(text []byte) error {
	for _, state := range AllStates {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown die state %q", text)
}

// DieSize holds the die dimensions in mm.
type DieSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewDieSize validates the die dimensions.
func NewDieSize(width, height float64) (DieSize, error) {
	if math.IsNaN(width) || math.IsNaN(height) || width <= 0 || height <= 0 {
		return DieSize{}, fmt.Errorf("%w: die size %gx%g mm, both sides must be > 0",
			ErrInvalidDieSpec, width, height)
	}
	return DieSize{Width: width, Height: height}, nil
}

// Die is a single classified grid cell. X and Y are the coordinates of the
// die's lower-left corner in mm relative to the wafer center. XGrid and
// YGrid are 1-indexed grid coordinates, with YGrid growing downward.
type Die struct {
	XGrid int      `json:"x_grid"`
	YGrid int      `json:"y_grid"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	State DieState `json:"state"`
}

// Corners returns the die's four corner points for a given die size,
// lower-left first, counter-clockwise.
func (d Die) Corners(size DieSize) [4]Point2D {
	return [4]Point2D{
		{X: d.X, Y: d.Y},
		{X: d.X + size.Width, Y: d.Y},
		{X: d.X + size.Width, Y: d.Y + size.Height},
		{X: d.X, Y: d.Y + size.Height},
	}
}

// Alignment names the two standard grid parities. An odd grid has a die
// centered on the wafer center; an even grid has a die corner there.
type Alignment string

const (
	AlignOdd  Alignment = "odd"
	AlignEven Alignment = "even"
)

func (a Alignment) offset() float64 {
	if a == AlignEven {
		return 0.5
	}
	return 0
}

// GridShift is a pair of parity choices, one per axis.
type GridShift struct {
	X Alignment `json:"x"`
	Y Alignment `json:"y"`
}

// Offset positions the die grid relative to the wafer center, expressed in
// fractions of a die per axis. The zero value is a grid centered exactly on
// the wafer center (odd/odd).
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ParityOffset returns the Offset for a parity shift.
func ParityOffset(x, y Alignment) Offset {
	return Offset{X: x.offset(), Y: y.offset()}
}

// OffsetMM converts a millimeter offset into die fractions for the given die.
func OffsetMM(x, y float64, die DieSize) Offset {
	return Offset{X: x / die.Width, Y: y / die.Height}
}

// GridResult is the immutable outcome of one grid computation.
//
// Dies holds every die that is at least partially on the wafer, in
// enumeration order; cells entirely off the wafer are counted but not
// retained. Counts covers all enumerated cells, so the sum of its values
// always equals CellCount.
type GridResult struct {
	Dies        []Die            `json:"dies,omitempty"`
	Counts      map[DieState]int `json:"counts"`
	CellCount   int              `json:"cell_count"`
	Offset      Offset           `json:"offset"`
	GridCenterX float64          `json:"grid_center_x"`
	GridCenterY float64          `json:"grid_center_y"`
	Shift       *GridShift       `json:"shift,omitempty"` // set by the parity search
}

// TotalGross returns the gross die count: the number of cells classified
// StateProbe.
func (r GridResult) TotalGross() int {
	return r.Counts[StateProbe]
}

// CountByState returns the number of cells classified with the given state.
func (r GridResult) CountByState(state DieState) int {
	return r.Counts[state]
}
