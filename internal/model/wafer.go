package model

import (
	"fmt"
	"math"
)

// Wafer models a wafer's usable geometry: a circle shrunk by the edge
// exclusion, optionally truncated by a flat chord near the bottom edge.
//
// The flat size is treated as an opaque input; looking it up by diameter
// per SEMI M1-0302 is the caller's job (see the semi package). A Wafer is
// immutable once constructed.
type Wafer struct {
	diameter      float64
	edgeExclusion float64
	flatExclusion float64
	flatSize      float64
	flatY         float64
}

// NewWafer validates the wafer parameters and computes the flat location.
//
// diameter must be positive, edgeExclusion must be within [0, radius),
// flatExclusion must be non-negative, and flatSize must be within
// [0, diameter). flatSize == 0 means no flat: the wafer is a full circle
// and the flat predicates degenerate to the wafer edge.
func NewWafer(diameter, edgeExclusion, flatExclusion, flatSize float64) (Wafer, error) {
	for _, v := range []float64{diameter, edgeExclusion, flatExclusion, flatSize} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Wafer{}, fmt.Errorf("%w: parameters must be finite", ErrInvalidWaferSpec)
		}
	}
	switch {
	case diameter <= 0:
		return Wafer{}, fmt.Errorf("%w: diameter %g mm must be > 0", ErrInvalidWaferSpec, diameter)
	case edgeExclusion < 0 || edgeExclusion >= diameter/2:
		return Wafer{}, fmt.Errorf("%w: edge exclusion %g mm must be within [0, %g)",
			ErrInvalidWaferSpec, edgeExclusion, diameter/2)
	case flatExclusion < 0:
		return Wafer{}, fmt.Errorf("%w: flat exclusion %g mm must be >= 0",
			ErrInvalidWaferSpec, flatExclusion)
	case flatSize < 0 || flatSize >= diameter:
		return Wafer{}, fmt.Errorf("%w: flat size %g mm must be within [0, %g)",
			ErrInvalidWaferSpec, flatSize, diameter)
	}

	w := Wafer{
		diameter:      diameter,
		edgeExclusion: edgeExclusion,
		flatExclusion: flatExclusion,
		flatSize:      flatSize,
		flatY:         -diameter / 2,
	}
	if flatSize > 0 {
		half := flatSize / 2
		w.flatY = -math.Sqrt((diameter/2)*(diameter/2) - half*half)
	}
	return w, nil
}

// Diameter returns the wafer diameter in mm.
func (w Wafer) Diameter() float64 { return w.diameter }

// Radius returns the wafer radius in mm.
func (w Wafer) Radius() float64 { return w.diameter / 2 }

// EdgeExclusion returns the edge exclusion distance in mm.
func (w Wafer) EdgeExclusion() float64 { return w.edgeExclusion }

// FlatExclusion returns the flat exclusion distance in mm.
func (w Wafer) FlatExclusion() float64 { return w.flatExclusion }

// FlatSize returns the flat chord length in mm; 0 means no flat.
func (w Wafer) FlatSize() float64 { return w.flatSize }

// FlatY returns the flat chord's y position relative to the wafer center.
// Without a flat this is the bottom of the wafer, -Radius().
func (w Wafer) FlatY() float64 { return w.flatY }

// UsableRadius returns the radius of the area inside the edge exclusion.
func (w Wafer) UsableRadius() float64 { return w.Radius() - w.edgeExclusion }

// ExclRadiusSqrd returns the squared usable radius, r² + e² − d·e, kept in
// expanded form so the classifier compares squared distances directly.
func (w Wafer) ExclRadiusSqrd() float64 {
	r := w.Radius()
	return r*r + w.edgeExclusion*w.edgeExclusion - w.diameter*w.edgeExclusion
}

// Contains reports whether all four corners sit inside the usable area:
// within the edge-exclusion-shrunk circle and on or above the flat
// exclusion line. Partial die are never usable, so a single failing corner
// rejects the whole rectangle. Any scribe keep-out is ignored here; that is
// an engine setting, not wafer geometry.
func (w Wafer) Contains(corners [4]Point2D) bool {
	origin := Point2D{}
	for _, c := range corners {
		if !PointInCircle(c, origin, w.UsableRadius()) {
			return false
		}
		if !PointAboveFlat(c, w.flatY+w.flatExclusion) {
			return false
		}
	}
	return true
}

// Classify assigns a DieState to a die of the given size centered at center.
//
// Precedence: a die with any corner off the wafer is StateWafer no matter
// what the flat says; the circle test is authoritative. Then the flat, the
// edge exclusion ring, the flat exclusion band, and finally the scribe
// keep-out (northLimit, in mm; <= 0 disables it). Whatever survives is a
// good die.
func (w Wafer) Classify(center Point2D, size DieSize, northLimit float64) DieState {
	maxSqrd := MaxDistSqrd(center, size)
	lowerLeftY := center.Y - size.Height/2
	r := w.Radius()

	switch {
	case maxSqrd > r*r:
		return StateWafer
	case lowerLeftY < w.flatY:
		return StateFlat
	case maxSqrd > w.ExclRadiusSqrd():
		return StateExclusion
	case lowerLeftY < w.flatY+w.flatExclusion:
		return StateFlatExclusion
	case northLimit > 0 && lowerLeftY+size.Height > northLimit:
		return StateScribe
	default:
		return StateProbe
	}
}
