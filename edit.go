package animcurve

import (
	"math"
	"slices"
	"sort"
)

// AddKeyframe inserts a smooth keyframe with automatic tangents at (time,
// value) and returns its index. It returns [ErrDuplicateTime] if a keyframe
// already exists within [Epsilon] of time. Inserting into a step segment ends
// the step.
func (c *Curve) AddKeyframe(time, value float64) (int, error) {
	for _, k := range c.keys {
		if math.Abs(k.Pos.X-time) < Epsilon {
			return -1, ErrDuplicateTime
		}
	}
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Pos.X > time })
	c.keys = slices.Insert(c.keys, i, newKeyframe(Pt(time, value)))
	c.matchNeighbors(i)
	c.Resolve()
	return i, nil
}

// RemoveKeyframe removes keyframe i. The first and last keyframes can't be
// removed; RemoveKeyframe reports false for them and for out of range
// indices. The joined segment is a step if the previous keyframe's
// out-tangent is constant.
func (c *Curve) RemoveKeyframe(i int) bool {
	if i <= 0 || i >= len(c.keys)-1 {
		return false
	}
	c.keys = slices.Delete(c.keys, i, i+1)
	c.matchNeighbor(i-1, Out)
	c.Resolve()
	return true
}

// MoveKeyframe moves keyframe i towards pos.
//
// The time is floored to a whole frame and clamped to stay at least one frame
// away from both neighbors; if the neighbors are too close for that, the time
// doesn't change. The first keyframe's time never changes. The value is
// unconstrained.
func (c *Curve) MoveKeyframe(i int, pos Point) bool {
	if !c.inRange(i) {
		return false
	}
	k := &c.keys[i]
	t := pos.SnapFrame().X
	if i == 0 {
		t = k.Pos.X
	} else {
		lo := c.keys[i-1].Pos.X + 1
		hi := math.Inf(1)
		if i < len(c.keys)-1 {
			hi = c.keys[i+1].Pos.X - 1
		}
		if lo > hi {
			t = k.Pos.X
		} else {
			t = min(max(t, lo), hi)
		}
	}
	k.Pos = Pt(t, pos.Y)
	c.Resolve()
	return true
}

// SetKeyframeSmoothType links keyframe i's tangents and gives both sides the
// smooth type typ.
//
// Switching to SmoothFree seeds symmetric handles by mirroring the out-tangent
// into the in-tangent. The last keyframe has no out-tangent, so its
// in-tangent is mirrored into the out-tangent instead. Adjacent constant
// tangents facing keyframe i become free.
func (c *Curve) SetKeyframeSmoothType(i int, typ SmoothType) bool {
	if !c.inRange(i) || typ == SmoothUnused {
		return false
	}
	k := &c.keys[i]
	k.Type = Smooth
	k.In.Smooth, k.Out.Smooth = typ, typ
	k.In.Broken, k.Out.Broken = BrokenUnused, BrokenUnused
	if typ == SmoothFree {
		if c.IsOutTangentEditable(i) {
			k.In.Direction = k.Out.Mirrored()
		} else {
			k.Out.Direction = k.In.Mirrored()
		}
	}
	c.matchNeighbors(i)
	c.Resolve()
	return true
}

// SetKeyframeBrokenType unlinks keyframe i's tangents and gives each side its
// own broken type. The facing tangents of the adjacent keyframes follow it in
// and out of constancy, see [Curve.SetInTangentBrokenType].
func (c *Curve) SetKeyframeBrokenType(i int, in, out BrokenType) bool {
	if !c.inRange(i) || in == BrokenUnused || out == BrokenUnused {
		return false
	}
	k := &c.keys[i]
	k.Type = Broken
	k.In.Smooth, k.Out.Smooth = SmoothUnused, SmoothUnused
	k.In.Broken, k.Out.Broken = in, out
	c.matchNeighbors(i)
	c.Resolve()
	return true
}

// SetInTangentBrokenType gives keyframe i's in-tangent the broken type typ.
// If the keyframe was smooth, its out-tangent becomes BrokenFree so that the
// two sides can diverge.
//
// Constancy is symmetric across a segment: making the in-tangent constant also
// makes the previous keyframe's out-tangent constant, breaking that keyframe
// in turn if necessary. Changing a constant in-tangent to another type turns
// the previous keyframe's constant out-tangent into a free one.
//
// The first keyframe has no in-tangent; SetInTangentBrokenType reports false
// for it.
func (c *Curve) SetInTangentBrokenType(i int, typ BrokenType) bool {
	if !c.IsInTangentEditable(i) || typ == BrokenUnused {
		return false
	}
	c.setInBrokenType(i, typ)
	c.Resolve()
	return true
}

// SetOutTangentBrokenType is like [Curve.SetInTangentBrokenType], for the
// out-tangent. A constant out-tangent turns the following segment into a step
// and makes the next keyframe's in-tangent constant; any other type ends the
// step.
func (c *Curve) SetOutTangentBrokenType(i int, typ BrokenType) bool {
	if !c.IsOutTangentEditable(i) || typ == BrokenUnused {
		return false
	}
	c.setOutBrokenType(i, typ)
	c.Resolve()
	return true
}

// SetBothTangentsBrokenType applies [Curve.SetInTangentBrokenType] and
// [Curve.SetOutTangentBrokenType], skipping the side that the first or last
// keyframe doesn't have.
func (c *Curve) SetBothTangentsBrokenType(i int, typ BrokenType) bool {
	if !c.inRange(i) || typ == BrokenUnused {
		return false
	}
	if c.IsInTangentEditable(i) {
		c.setInBrokenType(i, typ)
	}
	if c.IsOutTangentEditable(i) {
		c.setOutBrokenType(i, typ)
	}
	c.Resolve()
	return true
}

func (c *Curve) setInBrokenType(i int, typ BrokenType) {
	c.setBrokenType(i, In, typ)
	c.matchNeighbor(i, In)
}

func (c *Curve) setOutBrokenType(i int, typ BrokenType) {
	c.setBrokenType(i, Out, typ)
	c.matchNeighbor(i, Out)
}

func (c *Curve) matchNeighbors(i int) {
	c.matchNeighbor(i, In)
	c.matchNeighbor(i, Out)
}

// matchNeighbor makes the tangent facing keyframe i across the segment on
// side agree with keyframe i's tangent on that side about being constant. A
// facing tangent that stops being constant becomes free.
func (c *Curve) matchNeighbor(i int, side Side) {
	j := i + 1
	if side == In {
		j = i - 1
	}
	if i < 0 || i >= len(c.keys) || j < 0 || j >= len(c.keys) {
		return
	}
	constant := c.keys[i].tangent(side).Broken == BrokenConstant
	facing := c.keys[j].tangent(side.Opposite())
	switch {
	case constant && facing.Broken != BrokenConstant:
		c.setBrokenType(j, side.Opposite(), BrokenConstant)
	case !constant && facing.Broken == BrokenConstant:
		facing.Broken = BrokenFree
	}
}

// setBrokenType sets one side's broken type without touching neighbors. A
// smooth keyframe is broken first, keeping the other side's current direction
// as a free tangent.
func (c *Curve) setBrokenType(i int, side Side, typ BrokenType) {
	k := &c.keys[i]
	if k.Type == Smooth {
		k.Type = Broken
		other := k.tangent(side.Opposite())
		other.Smooth = SmoothUnused
		other.Broken = BrokenFree
	}
	t := k.tangent(side)
	t.Smooth = SmoothUnused
	t.Broken = typ
}

// SetInTangentWeighted sets whether keyframe i's in-tangent keeps its weight
// across resolves. Turning weighting off snaps the weight back to a third of
// the segment's duration.
func (c *Curve) SetInTangentWeighted(i int, weighted bool) bool {
	if !c.IsInTangentEditable(i) {
		return false
	}
	c.keys[i].In.Weighted = weighted
	c.Resolve()
	return true
}

// SetOutTangentWeighted is like [Curve.SetInTangentWeighted], for the
// out-tangent.
func (c *Curve) SetOutTangentWeighted(i int, weighted bool) bool {
	if !c.IsOutTangentEditable(i) {
		return false
	}
	c.keys[i].Out.Weighted = weighted
	c.Resolve()
	return true
}

// SetBothTangentsWeighted sets the weighted flag of both of keyframe i's
// tangents.
func (c *Curve) SetBothTangentsWeighted(i int, weighted bool) bool {
	if !c.inRange(i) {
		return false
	}
	c.keys[i].In.Weighted = weighted
	c.keys[i].Out.Weighted = weighted
	c.Resolve()
	return true
}

// SetInTangentOffset is the entry point for dragging keyframe i's in-tangent
// handle to offset, relative to the keyframe.
//
// Automatic, flat, linear and constant tangents become free tangents. Smooth
// keyframes stay smooth: both sides become SmoothFree and the out-tangent is
// mirrored from the dragged in-tangent. On broken keyframes only the dragged
// side changes, apart from a constant tangent facing it, which becomes free. The handle's length becomes the weight, which survives the
// resolve only if the tangent is weighted.
func (c *Curve) SetInTangentOffset(i int, offset Vec2) bool {
	if !c.IsInTangentEditable(i) {
		return false
	}
	c.setOffset(i, In, offset)
	c.Resolve()
	return true
}

// SetOutTangentOffset is like [Curve.SetInTangentOffset], for the
// out-tangent.
func (c *Curve) SetOutTangentOffset(i int, offset Vec2) bool {
	if !c.IsOutTangentEditable(i) {
		return false
	}
	c.setOffset(i, Out, offset)
	c.Resolve()
	return true
}

func (c *Curve) setOffset(i int, side Side, offset Vec2) {
	k := &c.keys[i]
	t := k.tangent(side)
	if k.Type == Smooth {
		k.In.Smooth, k.Out.Smooth = SmoothFree, SmoothFree
	} else {
		t.Broken = BrokenFree
	}
	t.Direction = validateDirection(offset, side)
	if w := offset.Hypot(); w >= Epsilon {
		t.Weight = w
	}
	if k.Type == Smooth {
		other := k.tangent(side.Opposite())
		other.Direction = t.Mirrored()
	}
	c.matchNeighbors(i)
}
