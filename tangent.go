package animcurve

import (
	"fmt"
	"math"
)

// TangentType governs whether a keyframe's in and out tangents are linked.
type TangentType uint8

const (
	// Smooth keyframes have mirrored in and out tangents, shaped by a
	// [SmoothType].
	Smooth TangentType = iota
	// Broken keyframes have independent in and out tangents, each shaped by a
	// [BrokenType].
	Broken
)

func (typ TangentType) String() string {
	switch typ {
	case Smooth:
		return "smooth"
	case Broken:
		return "broken"
	default:
		return fmt.Sprintf("TangentType(%d)", uint8(typ))
	}
}

// SmoothType is the shape of a tangent on a [Smooth] keyframe.
type SmoothType uint8

const (
	SmoothUnused SmoothType = iota
	// SmoothAuto derives the slope from the neighboring keyframes, using
	// clamped Catmull-Rom.
	SmoothAuto
	// SmoothFree keeps the direction set by the user.
	SmoothFree
	// SmoothFlat is horizontal.
	SmoothFlat
)

func (typ SmoothType) String() string {
	switch typ {
	case SmoothUnused:
		return "unused"
	case SmoothAuto:
		return "auto"
	case SmoothFree:
		return "free"
	case SmoothFlat:
		return "flat"
	default:
		return fmt.Sprintf("SmoothType(%d)", uint8(typ))
	}
}

// BrokenType is the shape of a tangent on a [Broken] keyframe.
type BrokenType uint8

const (
	BrokenUnused BrokenType = iota
	// BrokenFree keeps the direction set by the user.
	BrokenFree
	// BrokenLinear points at the adjacent keyframe.
	BrokenLinear
	// BrokenConstant holds the keyframe's value. On an out-tangent it turns
	// the following segment into a step.
	BrokenConstant
)

func (typ BrokenType) String() string {
	switch typ {
	case BrokenUnused:
		return "unused"
	case BrokenFree:
		return "free"
	case BrokenLinear:
		return "linear"
	case BrokenConstant:
		return "constant"
	default:
		return fmt.Sprintf("BrokenType(%d)", uint8(typ))
	}
}

// ParseSmoothType parses the string form of a [SmoothType].
func ParseSmoothType(s string) (SmoothType, error) {
	for typ := SmoothUnused; typ <= SmoothFlat; typ++ {
		if typ.String() == s {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("unknown smooth tangent type %q", s)
}

// ParseBrokenType parses the string form of a [BrokenType].
func ParseBrokenType(s string) (BrokenType, error) {
	for typ := BrokenUnused; typ <= BrokenConstant; typ++ {
		if typ.String() == s {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("unknown broken tangent type %q", s)
}

// Side selects one of a keyframe's two tangents.
type Side uint8

const (
	In Side = iota
	Out
)

func (side Side) String() string {
	if side == In {
		return "in"
	}
	return "out"
}

// Opposite returns the other side of the keyframe.
func (side Side) Opposite() Side {
	if side == In {
		return Out
	}
	return In
}

// Tangent is one side of a keyframe's derivative control.
//
// The handle is stored as a unit Direction and a Weight, the handle's length
// in curve space. The Bézier control point offset is Direction × Weight; see
// [Tangent.Offset]. In-tangents point towards negative time and out-tangents
// towards positive time.
type Tangent struct {
	// Smooth is the active mode when the keyframe is [Smooth], and
	// SmoothUnused otherwise.
	Smooth SmoothType
	// Broken is the active mode when the keyframe is [Broken], and
	// BrokenUnused otherwise.
	Broken BrokenType

	Direction Vec2
	Weight    float64
	// Weighted tangents keep the user's weight. Unweighted tangents have
	// their weight reset to a third of the segment's duration on every
	// resolve.
	Weighted bool
}

// Offset returns the handle's offset from the keyframe, which is the offset
// of the segment's inner Bézier control point.
func (t Tangent) Offset() Vec2 {
	return t.Direction.Mul(t.Weight)
}

// Slope returns the derivative of the curve at the keyframe on the tangent's
// side. Both tangents of a smooth keyframe report the same slope. Near
// vertical tangents have a slope of 0.
//
// Unlike [Vec2.Slope], which measures the handle's rise against its absolute
// run, this is the slope of the line through the handle and the keyframe.
func (t Tangent) Slope() float64 {
	if math.Abs(t.Direction.X) < Epsilon {
		return 0
	}
	return t.Direction.Y / t.Direction.X
}

// Mirrored returns the direction exactly antiparallel to t's direction, for
// the opposite side of the same keyframe.
func (t Tangent) Mirrored() Vec2 {
	return t.Direction.Negate()
}

// defaultDirection is the horizontal direction of a side.
func defaultDirection(side Side) Vec2 {
	if side == In {
		return Vec(-1, 0)
	}
	return Vec(1, 0)
}

// slopeDirection returns the unit direction of a side with the given slope.
// Both sides of the same slope are antiparallel.
func slopeDirection(side Side, slope float64) Vec2 {
	if side == In {
		return Vec(-1, -slope).Normalize()
	}
	return Vec(1, slope).Normalize()
}

// validateDirection normalizes v and forces its x component to point away
// from the keyframe on the given side. Degenerate vectors become horizontal.
//
// The sign is fixed by negating x only, so the magnitude of y survives the
// flip. Vectors that are already unit length are not renormalized, which
// makes validation idempotent down to the bit.
func validateDirection(v Vec2, side Side) Vec2 {
	h := v.Hypot()
	if h < Epsilon || math.IsNaN(h) || math.IsInf(h, 0) {
		return defaultDirection(side)
	}
	if math.Abs(h-1) > 1e-12 {
		v = v.Div(h)
	}
	if (side == In && v.X > 0) || (side == Out && v.X < 0) {
		v.X = -v.X
	}
	return v
}
