package animcurve

import (
	"math"
)

// Rect is an axis-aligned rectangle in curve space. For curves, X spans time
// and Y spans values.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Min returns the corner with the smallest coordinates.
func (r Rect) Min() Point { return Pt(r.MinX(), r.MinY()) }

// Max returns the corner with the largest coordinates.
func (r Rect) Max() Point { return Pt(r.MaxX(), r.MaxY()) }

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's heigth, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Contains reports whether pt lies inside the rectangle, including its
// perimeter.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X0 &&
		pt.X <= r.X1 &&
		pt.Y >= r.Y0 &&
		pt.Y <= r.Y1
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

func (r Rect) IsInf() bool {
	return math.IsInf(r.X0, 0) ||
		math.IsInf(r.Y0, 0) ||
		math.IsInf(r.X1, 0) ||
		math.IsInf(r.Y1, 0)
}

func (r Rect) IsNaN() bool {
	return math.IsNaN(r.X0) ||
		math.IsNaN(r.Y0) ||
		math.IsNaN(r.X1) ||
		math.IsNaN(r.Y1)
}
