// Package sequence holds curves for an outer timeline: a simple point-array
// curve kind with its own evaluator, and an adapter that exposes keyframe
// curves through the same editing interface.
package sequence

import (
	"fmt"

	"honnef.co/go/animcurve"
)

// LerpType selects how [SampleCurveForAnimation] blends between two points.
type LerpType uint8

const (
	// Discrete holds each point's value until the next point.
	Discrete LerpType = iota
	// Linear interpolates linearly.
	Linear
	// Smooth eases in and out with smoothstep.
	Smooth
)

func (typ LerpType) String() string {
	switch typ {
	case Discrete:
		return "discrete"
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	default:
		return fmt.Sprintf("LerpType(%d)", uint8(typ))
	}
}

// ParseLerpType parses the string form of a [LerpType].
func ParseLerpType(s string) (LerpType, error) {
	for typ := Discrete; typ <= Smooth; typ++ {
		if typ.String() == s {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("unknown lerp type %q", s)
}

// SampleCurveForAnimation samples a point-array curve at time. points must be
// sorted by time.
//
// This is the evaluator for curves without tangents; keyframe curves use
// [animcurve.Curve.SampleAtTime] instead. Before the first and after the last
// point the curve is flat. An empty curve samples to 0.
func SampleCurveForAnimation(points []animcurve.Point, time float64, lerp LerpType) float64 {
	n := len(points)
	if n == 0 {
		return 0
	}
	if time <= points[0].X {
		return points[0].Y
	}
	if time >= points[n-1].X {
		return points[n-1].Y
	}

	for i := range n - 1 {
		p0, p1 := points[i], points[i+1]
		if time >= p1.X {
			continue
		}
		span := p1.X - p0.X
		if span < animcurve.Epsilon {
			return p1.Y
		}
		t := (time - p0.X) / span
		switch lerp {
		case Discrete:
			return p0.Y
		case Smooth:
			t = t * t * (3 - 2*t)
		}
		return p0.Y + (p1.Y-p0.Y)*t
	}
	return points[n-1].Y
}
