package sequence

import (
	"image/color"

	"honnef.co/go/animcurve"
)

// Editable is the set of operations a curve editor needs from whatever holds
// the curves it displays. Both [Sequence] and [KeyframeSequence] implement it.
//
// Curve and point indices that are out of range are not errors: queries
// return zero values and edits are refused, so that an editor can forward
// stale selections without checking them first.
type Editable interface {
	CurveCount() int
	CurvePointCount(curve int) int
	CurveColor(curve int) color.NRGBA
	// CurvePoints returns a copy of the curve's points in time order.
	CurvePoints(curve int) []animcurve.Point

	// EditPoint moves a point and returns its index afterwards. If the edit
	// is refused, the original index is returned.
	EditPoint(curve, point int, value animcurve.Point) int
	// AddPoint adds a point and returns its index, or -1 if it couldn't be
	// added.
	AddPoint(curve int, value animcurve.Point) int
	RemovePoint(curve, point int) bool

	// BeginEdit and EndEdit bracket a group of edits that undo as a single
	// step. Brackets nest.
	BeginEdit()
	EndEdit()

	// LastFrame returns the last frame of the sequence.
	LastFrame() float64
}

// Lerped is implemented by holders of curves that are sampled with a
// [LerpType].
type Lerped interface {
	CurveLerpType(curve int) LerpType
}

var (
	_ Editable = (*Sequence)(nil)
	_ Lerped   = (*Sequence)(nil)
	_ Editable = (*KeyframeSequence)(nil)
)

// DefaultColors are the colors assigned to curves, cycling by index, when no
// color is given. The first four match the X, Y, Z and W channels of a
// vector.
var DefaultColors = []color.NRGBA{
	{0xe0, 0x40, 0x40, 0xff},
	{0x40, 0xc0, 0x40, 0xff},
	{0x40, 0x70, 0xe0, 0xff},
	{0xe0, 0xc0, 0x30, 0xff},
	{0xb0, 0x50, 0xd0, 0xff},
	{0x30, 0xc0, 0xc0, 0xff},
}

// DefaultColor returns the default color of the i'th curve.
func DefaultColor(i int) color.NRGBA {
	return DefaultColors[i%len(DefaultColors)]
}
