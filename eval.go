package animcurve

import (
	"iter"
	"math"
)

// Segment is the piece of a curve between two adjacent keyframes.
type Segment struct {
	// Cubic runs from the first keyframe, through both tangent handles, to the
	// second keyframe.
	Cubic CubicBez
	// Step is set when the first keyframe's out-tangent is constant. The
	// segment then holds the first keyframe's value, and Cubic is only used
	// for its end points.
	Step bool
}

// Eval evaluates the segment at the Bézier parameter u, for drawing. A step
// segment moves linearly in time and holds its start value until u reaches 1.
func (s Segment) Eval(u float64) Point {
	if !s.Step {
		return s.Cubic.Eval(u)
	}
	if u >= 1 {
		return s.Cubic.P3
	}
	return Pt(s.Cubic.P0.X+(s.Cubic.P3.X-s.Cubic.P0.X)*u, s.Cubic.P0.Y)
}

// ValueAt returns the segment's value at time. Times within [Epsilon] of a
// keyframe return that keyframe's value exactly.
func (s Segment) ValueAt(time float64) float64 {
	p0, p3 := s.Cubic.P0, s.Cubic.P3
	if s.Step {
		if time >= p3.X-Epsilon {
			return p3.Y
		}
		return p0.Y
	}
	if math.Abs(time-p0.X) < Epsilon {
		return p0.Y
	}
	if math.Abs(time-p3.X) < Epsilon {
		return p3.Y
	}
	return s.Cubic.Eval(s.Cubic.FindTForX(time)).Y
}

// SegmentCount returns the number of segments, one less than the number of
// keyframes.
func (c *Curve) SegmentCount() int {
	return max(len(c.keys)-1, 0)
}

// Segment returns the segment between keyframes i and i+1. It reports false
// if there is no such segment.
func (c *Curve) Segment(i int) (Segment, bool) {
	if i < 0 || i >= len(c.keys)-1 {
		return Segment{}, false
	}
	return c.segment(i), true
}

func (c *Curve) segment(i int) Segment {
	k0, k1 := c.keys[i], c.keys[i+1]
	return Segment{
		Cubic: CubicBez{
			P0: k0.Pos,
			P1: k0.Pos.Translate(k0.Out.Offset()),
			P2: k1.Pos.Translate(k1.In.Offset()),
			P3: k1.Pos,
		},
		Step: k0.IsStep(),
	}
}

// FindSegmentIndex returns the index of the keyframe that starts the segment
// containing time.
//
// It returns -1 for an empty curve or a time before the first keyframe, and 0
// for a curve with a single keyframe. Keyframe times are compared with a
// tolerance of [Epsilon], and a time that falls on a keyframe belongs to the
// segment that ends there. Times after the last keyframe map to the last
// segment, so callers that want flat extrapolation must check for them first,
// as [Curve.SampleAtTime] does.
func (c *Curve) FindSegmentIndex(time float64) int {
	n := len(c.keys)
	if n == 0 || time < c.keys[0].Pos.X-Epsilon {
		return -1
	}
	if n == 1 {
		return 0
	}
	for i := range n - 1 {
		if time >= c.keys[i].Pos.X-Epsilon && time <= c.keys[i+1].Pos.X+Epsilon {
			return i
		}
	}
	return n - 2
}

// SampleAtTime returns the curve's value at time.
//
// An empty curve samples to 0 and a single keyframe to its value. Outside the
// keyframes the curve extrapolates flat. Step segments hold their start value
// until the next keyframe. Everything else is evaluated as a cubic Bézier,
// finding the parameter for time with [CubicBez.FindTForX].
func (c *Curve) SampleAtTime(time float64) float64 {
	n := len(c.keys)
	switch n {
	case 0:
		return 0
	case 1:
		return c.keys[0].Pos.Y
	}
	// The flat cases must come first; FindSegmentIndex doesn't extrapolate.
	if first := c.keys[0].Pos; time <= first.X {
		return first.Y
	}
	if last := c.keys[n-1].Pos; time >= last.X {
		return last.Y
	}
	return c.segment(c.FindSegmentIndex(time)).ValueAt(time)
}

// Samples returns an iterator over (time, value) pairs from from to to,
// inclusive, in increments of step. It yields nothing if step isn't positive.
func (c *Curve) Samples(from, to, step float64) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		if !(step > 0) || math.IsInf(step, 0) {
			return
		}
		for i := 0; ; i++ {
			t := from + float64(i)*step
			if t > to+Epsilon {
				return
			}
			if !yield(t, c.SampleAtTime(t)) {
				return
			}
		}
	}
}

// SampleForDrawing evaluates the curve at the global parameter t ∈ [0, 1] and
// normalizes the result to the unit square, see [NormalizeToDisplay].
//
// Unlike [Curve.SampleAtTime], t isn't a time: every segment covers an equal
// share of the parameter range regardless of its duration, and t is used as
// the Bézier parameter within the segment.
func (c *Curve) SampleForDrawing(t float64, displayMin, displayMax Point) Point {
	n := len(c.keys)
	switch n {
	case 0:
		return NormalizeToDisplay(Point{}, displayMin, displayMax)
	case 1:
		return NormalizeToDisplay(c.keys[0].Pos, displayMin, displayMax)
	}
	f := clamp01(t) * float64(n-1)
	i := int(f)
	if i > n-2 {
		i = n - 2
	}
	return NormalizeToDisplay(c.segment(i).Eval(f-float64(i)), displayMin, displayMax)
}

// NormalizeToDisplay maps p from the display range to the unit square. The
// time span is one frame longer than displayMax.X-displayMin.X so that the
// last frame isn't drawn at the very edge.
func NormalizeToDisplay(p, displayMin, displayMax Point) Point {
	return p.Transform(DisplayTransform(displayMin, displayMax))
}

// Path returns the whole curve as a Bézier path. Smooth segments become cubic
// elements; step segments become a horizontal line followed by a vertical
// one. The path of an empty curve is empty.
func (c *Curve) Path() BezPath {
	if len(c.keys) == 0 {
		return nil
	}
	p := make(BezPath, 0, len(c.keys)*2)
	p.MoveTo(c.keys[0].Pos)
	for i := range len(c.keys) - 1 {
		seg := c.segment(i)
		if seg.Step {
			p.LineTo(Pt(seg.Cubic.P3.X, seg.Cubic.P0.Y))
			p.LineTo(seg.Cubic.P3)
		} else {
			p.CubicTo(seg.Cubic.P1, seg.Cubic.P2, seg.Cubic.P3)
		}
	}
	return p
}

// BoundingBox returns the tight bounding box of the curve between its first
// and last keyframes, including any overshoot of free tangents.
func (c *Curve) BoundingBox() Rect {
	return c.Path().BoundingBox()
}
