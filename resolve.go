package animcurve

import (
	"math"
)

// Resolve recomputes the direction and weight of every tangent from its mode
// and the positions of the neighboring keyframes.
//
// Resolving reads neighbor positions only, never neighbor tangents, so the
// order in which keyframes are visited doesn't matter. Resolving twice in a
// row produces bit-identical tangents. Mutating methods call Resolve
// themselves; it only needs to be called directly after restoring a curve
// from somewhere else.
func (c *Curve) Resolve() {
	for i := range c.keys {
		c.resolveKeyframe(i)
	}
}

func (c *Curve) resolveKeyframe(i int) {
	k := &c.keys[i]
	var prev, next *Point
	if i > 0 {
		prev = &c.keys[i-1].Pos
	}
	if i < len(c.keys)-1 {
		next = &c.keys[i+1].Pos
	}
	slope := func() float64 { return autoSlope(prev, k.Pos, next) }
	if prev != nil {
		resolveTangent(&k.In, In, k.Type, k.Pos, *prev, slope)
	}
	if next != nil {
		resolveTangent(&k.Out, Out, k.Type, k.Pos, *next, slope)
	}
}

// resolveTangent resolves one side of the keyframe at pos. neighbor is the
// adjacent keyframe on that side.
func resolveTangent(t *Tangent, side Side, typ TangentType, pos, neighbor Point, slope func() float64) {
	defaultWeight := math.Abs(neighbor.X-pos.X) / 3

	switch typ {
	case Smooth:
		switch t.Smooth {
		case SmoothAuto:
			t.Direction = slopeDirection(side, slope())
			t.Weight = defaultWeight
		case SmoothFlat:
			t.Direction = defaultDirection(side)
			t.Weight = defaultWeight
		case SmoothFree:
			resolveFree(t, side, defaultWeight)
		case SmoothUnused:
		}
	case Broken:
		switch t.Broken {
		case BrokenLinear:
			t.Direction = validateDirection(neighbor.Sub(pos), side)
			t.Weight = defaultWeight
		case BrokenConstant:
			t.Direction = defaultDirection(side)
			t.Weight = defaultWeight
		case BrokenFree:
			resolveFree(t, side, defaultWeight)
		case BrokenUnused:
		}
	}
}

func resolveFree(t *Tangent, side Side, defaultWeight float64) {
	t.Direction = validateDirection(t.Direction, side)
	if !t.Weighted {
		t.Weight = defaultWeight
	}
}

// autoSlope computes the slope of an automatic tangent with clamped
// Catmull-Rom. prev and next are nil at the ends of the curve.
//
// Interior keyframes use the chord slope between their neighbors. Local
// extrema, plateaus included, get a slope of exactly zero. Elsewhere the
// slope is clamped to the smaller of the two one-sided slopes so the curve
// can't overshoot either neighbor.
func autoSlope(prev *Point, p Point, next *Point) float64 {
	switch {
	case prev == nil && next == nil:
		return 0
	case prev == nil:
		return chordSlope(p, *next)
	case next == nil:
		return chordSlope(*prev, p)
	}

	if (p.Y >= prev.Y && p.Y >= next.Y) || (p.Y <= prev.Y && p.Y <= next.Y) {
		return 0
	}

	slope := chordSlope(*prev, *next)
	slopePrev := chordSlope(*prev, p)
	slopeNext := chordSlope(p, *next)
	if slopePrev*slopeNext < 0 {
		// inflection
		return 0
	}
	limit := min(math.Abs(slopePrev), math.Abs(slopeNext))
	if math.Abs(slope) > limit {
		slope = math.Copysign(limit, slope)
	}
	return slope
}

// chordSlope returns the slope of the line from p0 to p1, or 0 if they are
// less than Epsilon apart in time.
func chordSlope(p0, p1 Point) float64 {
	dt := p1.X - p0.X
	if math.Abs(dt) < Epsilon {
		return 0
	}
	return (p1.Y - p0.Y) / dt
}
