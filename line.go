package animcurve

import (
	"math"
)

// Line represents a line segment. Step segments of a curve are drawn as
// lines, and the derivative of a [QuadBez] is a line.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ ParametricCurve = Line{}

// Slope returns the line's rise over run. Vertical lines have a slope of 0.
func (l Line) Slope() float64 {
	d := l.P1.Sub(l.P0)
	if math.Abs(d.X) < Epsilon {
		return 0
	}
	return d.Y / d.X
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) Extrema() ([MaxExtrema]float64, int) {
	return [MaxExtrema]float64{}, 0
}
