package model

import (
	"math"
	"testing"
)

// approx reports whether got is within a relative tolerance of want.
func approx(got, want float64) bool {
	tol := 1e-6 * math.Abs(want)
	if tol < 1e-9 {
		tol = 1e-9
	}
	return math.Abs(got-want) <= tol
}

func TestMaxDistSqrdKnownValues(t *testing.T) {
	tests := []struct {
		center Point2D
		size   DieSize
		want   float64
	}{
		{Point2D{0, 0}, DieSize{2, 2}, 2},
		{Point2D{0, 0}, DieSize{6, 8}, 25},
		{Point2D{0, 0}, DieSize{2, 36}, 325},
		{Point2D{0, 0}, DieSize{0, 0}, 0},
		{Point2D{0.5, 0.5}, DieSize{1, 1}, 2},
		{Point2D{0, 0}, DieSize{3.14, 2.718}, 4.311781},
		{Point2D{0, -10}, DieSize{3.14, 2.718}, 131.491781},
		{Point2D{-10, 0}, DieSize{3.14, 2.718}, 135.711781},
		{Point2D{-10, -10}, DieSize{3.14, 2.718}, 262.891781},
		{Point2D{0, 10}, DieSize{3.14, 2.718}, 131.491781},
		{Point2D{10, 0}, DieSize{3.14, 2.718}, 135.711781},
		{Point2D{10, 10}, DieSize{3.14, 2.718}, 262.891781},
		{Point2D{100000, 100000}, DieSize{2, 2}, 20000400002},
		{Point2D{1000, 0}, DieSize{100, 0.00001}, 1102500},
	}

	for _, tt := range tests {
		got := MaxDistSqrd(tt.center, tt.size)
		if !approx(got, tt.want) {
			t.Errorf("MaxDistSqrd(%v, %v) = %v, want %v", tt.center, tt.size, got, tt.want)
		}
	}
}

func TestPointInCircle(t *testing.T) {
	origin := Point2D{}
	tests := []struct {
		p      Point2D
		radius float64
		want   bool
	}{
		{Point2D{0, 0}, 1, true},
		{Point2D{3, 4}, 5, true}, // boundary is inclusive
		{Point2D{3, 4}, 4.999, false},
		{Point2D{-3, -4}, 5, true},
		{Point2D{70, 0}, 70, true},
		{Point2D{70.001, 0}, 70, false},
	}
	for _, tt := range tests {
		if got := PointInCircle(tt.p, origin, tt.radius); got != tt.want {
			t.Errorf("PointInCircle(%v, origin, %v) = %v, want %v", tt.p, tt.radius, got, tt.want)
		}
	}
}

func TestPointInCircleOffsetCenter(t *testing.T) {
	center := Point2D{X: 10, Y: -10}
	if !PointInCircle(Point2D{X: 13, Y: -6}, center, 5) {
		t.Error("point on boundary of shifted circle should be inside")
	}
	if PointInCircle(Point2D{X: 16, Y: -10}, center, 5) {
		t.Error("point outside shifted circle should not be inside")
	}
}

func TestPointAboveFlat(t *testing.T) {
	flatY := -69.27
	if !PointAboveFlat(Point2D{X: 0, Y: -69.27}, flatY) {
		t.Error("point on the flat line counts as above it")
	}
	if !PointAboveFlat(Point2D{X: 0, Y: 0}, flatY) {
		t.Error("wafer center is above the flat")
	}
	if PointAboveFlat(Point2D{X: 0, Y: -70}, flatY) {
		t.Error("point below the flat line is not above it")
	}
}
