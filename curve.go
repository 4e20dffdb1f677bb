package animcurve

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateTime is returned by [Curve.AddKeyframe] when a keyframe already
// exists within [Epsilon] of the requested time.
var ErrDuplicateTime = errors.New("a keyframe already exists at this time")

// IndexError reports a keyframe index that is out of range.
type IndexError struct {
	Index int
	Len   int
}

func (err *IndexError) Error() string {
	return fmt.Sprintf("keyframe index %d out of range [0, %d)", err.Index, err.Len)
}

// Keyframe is an explicit (time, value) anchor of a curve, with the tangents
// that shape the curve approaching and leaving it.
type Keyframe struct {
	// Pos is the keyframe's position. X is the time, Y the value.
	Pos  Point
	Type TangentType
	In   Tangent
	Out  Tangent
}

func newKeyframe(pos Point) Keyframe {
	return Keyframe{
		Pos:  pos,
		Type: Smooth,
		In:   Tangent{Smooth: SmoothAuto, Direction: defaultDirection(In)},
		Out:  Tangent{Smooth: SmoothAuto, Direction: defaultDirection(Out)},
	}
}

// Time returns the keyframe's time.
func (k Keyframe) Time() float64 { return k.Pos.X }

// Value returns the keyframe's value.
func (k Keyframe) Value() float64 { return k.Pos.Y }

// Tangent returns the tangent on the given side.
func (k Keyframe) Tangent(side Side) Tangent {
	if side == In {
		return k.In
	}
	return k.Out
}

func (k *Keyframe) tangent(side Side) *Tangent {
	if side == In {
		return &k.In
	}
	return &k.Out
}

// IsStep reports whether the segment leaving this keyframe holds its value.
func (k Keyframe) IsStep() bool {
	return k.Type == Broken && k.Out.Broken == BrokenConstant
}

// Curve is an ordered list of keyframes.
//
// Keyframes are sorted by ascending time, and no two keyframes are closer in
// time than [Epsilon]. Every mutation re-resolves all tangents before
// returning, so the tangents observed through [Curve.Keyframe] always reflect
// the current keyframe positions and modes.
//
// A Curve is not safe for concurrent use. The zero value is an empty curve
// that samples to 0.
type Curve struct {
	Name    string
	Visible bool

	keys []Keyframe
}

// NewCurve returns a visible curve with keyframes at start and end, both
// smooth with automatic tangents.
func NewCurve(name string, start, end Point) (*Curve, error) {
	if start.X > end.X {
		start, end = end, start
	}
	if end.X-start.X < Epsilon {
		return nil, ErrDuplicateTime
	}
	c := &Curve{
		Name:    name,
		Visible: true,
		keys:    []Keyframe{newKeyframe(start), newKeyframe(end)},
	}
	c.Resolve()
	return c, nil
}

// Clone returns a deep copy of the curve.
func (c *Curve) Clone() *Curve {
	return &Curve{
		Name:    c.Name,
		Visible: c.Visible,
		keys:    slices.Clone(c.keys),
	}
}

// KeyframeCount returns the number of keyframes.
func (c *Curve) KeyframeCount() int {
	return len(c.keys)
}

// Keyframe returns the keyframe at index i. It returns an [*IndexError] if i
// is out of range.
func (c *Curve) Keyframe(i int) (Keyframe, error) {
	if !c.inRange(i) {
		return Keyframe{}, &IndexError{Index: i, Len: len(c.keys)}
	}
	return c.keys[i], nil
}

// Keyframes returns a copy of all keyframes in time order.
func (c *Curve) Keyframes() []Keyframe {
	return slices.Clone(c.keys)
}

// Points returns the positions of all keyframes in time order.
func (c *Curve) Points() []Point {
	pts := make([]Point, len(c.keys))
	for i, k := range c.keys {
		pts[i] = k.Pos
	}
	return pts
}

// FirstTime returns the time of the first keyframe, or 0 for an empty curve.
func (c *Curve) FirstTime() float64 {
	if len(c.keys) == 0 {
		return 0
	}
	return c.keys[0].Pos.X
}

// LastTime returns the time of the last keyframe, or 0 for an empty curve.
func (c *Curve) LastTime() float64 {
	if len(c.keys) == 0 {
		return 0
	}
	return c.keys[len(c.keys)-1].Pos.X
}

func (c *Curve) inRange(i int) bool {
	return i >= 0 && i < len(c.keys)
}

// IsInTangentEditable reports whether keyframe i has an in-tangent, which is
// the case for all keyframes but the first.
func (c *Curve) IsInTangentEditable(i int) bool {
	return i > 0 && i < len(c.keys)
}

// IsOutTangentEditable reports whether keyframe i has an out-tangent, which
// is the case for all keyframes but the last.
func (c *Curve) IsOutTangentEditable(i int) bool {
	return i >= 0 && i < len(c.keys)-1
}

// ShouldShowInTangentHandle reports whether a curve editor should draw a
// draggable handle for keyframe i's in-tangent. Linear and constant tangents
// have no handle of their own.
func (c *Curve) ShouldShowInTangentHandle(i int) bool {
	return c.IsInTangentEditable(i) && hasHandle(c.keys[i], In)
}

// ShouldShowOutTangentHandle is like [Curve.ShouldShowInTangentHandle], for
// the out-tangent.
func (c *Curve) ShouldShowOutTangentHandle(i int) bool {
	return c.IsOutTangentEditable(i) && hasHandle(c.keys[i], Out)
}

func hasHandle(k Keyframe, side Side) bool {
	if k.Type != Broken {
		return true
	}
	switch k.Tangent(side).Broken {
	case BrokenLinear, BrokenConstant:
		return false
	default:
		return true
	}
}

// InHandle returns the curve-space position of keyframe i's in-tangent
// handle. It reports false if the keyframe has no in-tangent.
func (c *Curve) InHandle(i int) (Point, bool) {
	if !c.IsInTangentEditable(i) {
		return Point{}, false
	}
	k := c.keys[i]
	return k.Pos.Translate(k.In.Offset()), true
}

// OutHandle returns the curve-space position of keyframe i's out-tangent
// handle. It reports false if the keyframe has no out-tangent.
func (c *Curve) OutHandle(i int) (Point, bool) {
	if !c.IsOutTangentEditable(i) {
		return Point{}, false
	}
	k := c.keys[i]
	return k.Pos.Translate(k.Out.Offset()), true
}
