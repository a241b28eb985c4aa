package model

// Point2D represents a 2D coordinate in mm. Wafer coordinates put the
// origin at the wafer center with y growing upward.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointInCircle reports whether p lies inside or on the circle of the given
// radius around center. The boundary is inclusive.
func PointInCircle(p, center Point2D, radius float64) bool {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return dx*dx+dy*dy <= radius*radius
}

// PointAboveFlat reports whether p sits on or above a horizontal flat chord
// at flatY.
func PointAboveFlat(p Point2D, flatY float64) bool {
	return p.Y >= flatY
}

// MaxDistSqrd returns the squared distance from the origin to the farthest
// corner of a rectangle of the given size centered at center.
//
// If the rectangle's center is in quadrant I the upper-right corner is the
// farthest from the origin, in quadrant II the upper-left, and so on.
// The square root is skipped on purpose: callers compare against squared
// radii and this sits in the per-die hot path.
func MaxDistSqrd(center Point2D, size DieSize) float64 {
	halfX := size.Width / 2
	halfY := size.Height / 2
	if center.X < 0 {
		halfX = -halfX
	}
	if center.Y < 0 {
		halfY = -halfY
	}
	dx := center.X + halfX
	dy := center.Y + halfY
	return dx*dx + dy*dy
}
