// Package track maps sampled curve values onto named, typed targets.
//
// A [Value] is one of a closed set of shapes: [Scalar], [Vec2], [Vec3], [Vec4]
// and [Quat]. A [Track] holds keys of a single shape and samples them component
// by component with [sequence.SampleCurveForAnimation], except for
// quaternions, which are interpolated spherically. A [Registry] binds target
// names to setters, and [Registry.Apply] routes values to them.
package track

import (
	"fmt"
	"math"
)

// Kind identifies the shape of a [Value].
type Kind uint8

const (
	KindScalar Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindQuat
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindQuat:
		return "quat"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses the string form of a [Kind].
func ParseKind(s string) (Kind, error) {
	for k := KindScalar; k <= KindQuat; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown value kind %q", s)
}

// Components returns the number of components of values of kind k.
func (k Kind) Components() int {
	switch k {
	case KindScalar:
		return 1
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4, KindQuat:
		return 4
	default:
		panic(fmt.Sprintf("unhandled kind %s", k))
	}
}

// Value is an animatable value. The set of implementations is closed; see the
// package documentation.
type Value interface {
	Kind() Kind
	// Components returns the value's components in order. Quaternions are
	// ordered X, Y, Z, W.
	Components() []float64
	isValue()
}

type Scalar float64

type Vec2 [2]float64

type Vec3 [3]float64

type Vec4 [4]float64

// Quat is a rotation quaternion, W + Xi + Yj + Zk.
type Quat struct {
	X, Y, Z, W float64
}

var (
	_ Value = Scalar(0)
	_ Value = Vec2{}
	_ Value = Vec3{}
	_ Value = Vec4{}
	_ Value = Quat{}
)

func (Scalar) Kind() Kind { return KindScalar }
func (Vec2) Kind() Kind   { return KindVec2 }
func (Vec3) Kind() Kind   { return KindVec3 }
func (Vec4) Kind() Kind   { return KindVec4 }
func (Quat) Kind() Kind   { return KindQuat }

func (v Scalar) Components() []float64 { return []float64{float64(v)} }
func (v Vec2) Components() []float64   { return v[:] }
func (v Vec3) Components() []float64   { return v[:] }
func (v Vec4) Components() []float64   { return v[:] }
func (q Quat) Components() []float64   { return []float64{q.X, q.Y, q.Z, q.W} }

func (Scalar) isValue() {}
func (Vec2) isValue()   {}
func (Vec3) isValue()   {}
func (Vec4) isValue()   {}
func (Quat) isValue()   {}

// FromComponents builds a value of kind k from its components.
func FromComponents(k Kind, c []float64) (Value, error) {
	if k > KindQuat {
		return nil, fmt.Errorf("unknown value kind %s", k)
	}
	if len(c) != k.Components() {
		return nil, fmt.Errorf("%s needs %d components, got %d", k, k.Components(), len(c))
	}
	switch k {
	case KindScalar:
		return Scalar(c[0]), nil
	case KindVec2:
		return Vec2(c), nil
	case KindVec3:
		return Vec3(c), nil
	case KindVec4:
		return Vec4(c), nil
	case KindQuat:
		return Quat{c[0], c[1], c[2], c[3]}, nil
	default:
		panic("unreachable")
	}
}

// IdentityQuat is the rotation that does nothing.
var IdentityQuat = Quat{W: 1}

func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quat) Len() float64 {
	return math.Sqrt(q.Dot(q))
}

func (q Quat) Negate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Normalize returns q scaled to unit length. The zero quaternion normalizes to
// [IdentityQuat].
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) {
		return IdentityQuat
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Slerp interpolates spherically between the rotations q and o, taking the
// shorter of the two arcs. Both are normalized first.
func (q Quat) Slerp(o Quat, t float64) Quat {
	q, o = q.Normalize(), o.Normalize()
	d := q.Dot(o)
	if d < 0 {
		o = o.Negate()
		d = -d
	}
	if d > 1-1e-6 {
		// Nearly identical rotations; the angle is too small to divide by.
		return Quat{
			q.X + (o.X-q.X)*t,
			q.Y + (o.Y-q.Y)*t,
			q.Z + (o.Z-q.Z)*t,
			q.W + (o.W-q.W)*t,
		}.Normalize()
	}
	theta := math.Acos(d)
	sin := math.Sin(theta)
	a := math.Sin((1-t)*theta) / sin
	b := math.Sin(t*theta) / sin
	return Quat{
		a*q.X + b*o.X,
		a*q.Y + b*o.Y,
		a*q.Z + b*o.Z,
		a*q.W + b*o.W,
	}
}

// QuatFromAxisAngle returns the rotation by angle radians around axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	l := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if l == 0 {
		return IdentityQuat
	}
	s := math.Sin(angle/2) / l
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, math.Cos(angle / 2)}
}
