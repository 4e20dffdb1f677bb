package sequence

import (
	"cmp"
	"errors"
	"image/color"
	"math"
	"slices"

	"honnef.co/go/animcurve"
)

// MaxPoints is the maximum number of points of a point-array curve.
const MaxPoints = 8

// ErrTooManyPoints is returned by [Sequence.SetPoints] for more than
// [MaxPoints] points.
var ErrTooManyPoints = errors.New("too many points")

// PointCurve is a curve without tangents, sampled with
// [SampleCurveForAnimation].
type PointCurve struct {
	Name   string
	Color  color.NRGBA
	Lerp   LerpType
	Points []animcurve.Point
}

func (c PointCurve) clone() PointCurve {
	c.Points = slices.Clone(c.Points)
	return c
}

func (c PointCurve) equal(o PointCurve) bool {
	return c.Name == o.Name && c.Color == o.Color && c.Lerp == o.Lerp && slices.Equal(c.Points, o.Points)
}

// Sample samples the curve at time.
func (c PointCurve) Sample(time float64) float64 {
	return SampleCurveForAnimation(c.Points, time, c.Lerp)
}

func byTime(a, b animcurve.Point) int {
	return cmp.Compare(a.X, b.X)
}

// Sequence is a group of point-array curves sharing a frame range.
//
// Every curve has between 2 and [MaxPoints] points on distinct whole frames.
// The first point is always at frame 0 and the last at [Sequence.LastFrame];
// only their values can be edited.
type Sequence struct {
	lastFrame float64
	curves    []PointCurve
	history   history[sequenceState]
}

type sequenceState struct {
	lastFrame float64
	curves    []PointCurve
}

// NewSequence returns an empty sequence spanning frames 0 through lastFrame.
// lastFrame is floored to a whole frame and is at least 1.
func NewSequence(lastFrame float64) *Sequence {
	return &Sequence{lastFrame: max(math.Floor(lastFrame), 1)}
}

// AddCurve adds a curve from start at frame 0 to end at the last frame and
// returns its index. A zero color is replaced by [DefaultColor].
func (s *Sequence) AddCurve(name string, lerp LerpType, col color.NRGBA, start, end float64) int {
	if col == (color.NRGBA{}) {
		col = DefaultColor(len(s.curves))
	}
	s.curves = append(s.curves, PointCurve{
		Name:   name,
		Color:  col,
		Lerp:   lerp,
		Points: []animcurve.Point{animcurve.Pt(0, start), animcurve.Pt(s.lastFrame, end)},
	})
	return len(s.curves) - 1
}

// Curve returns a copy of curve i.
func (s *Sequence) Curve(i int) (PointCurve, bool) {
	if i < 0 || i >= len(s.curves) {
		return PointCurve{}, false
	}
	return s.curves[i].clone(), true
}

// SetPoints replaces the points of curve i. The points are snapped to whole
// frames and sorted, and the outermost points are pinned to the sequence's
// frame range. Points on the same frame, or outside the range after
// pinning, are an error.
func (s *Sequence) SetPoints(i int, pts []animcurve.Point) error {
	if i < 0 || i >= len(s.curves) {
		return &animcurve.IndexError{Index: i, Len: len(s.curves)}
	}
	if len(pts) > MaxPoints {
		return ErrTooManyPoints
	}
	if len(pts) < 2 {
		return errors.New("a curve needs at least two points")
	}
	out := make([]animcurve.Point, len(pts))
	for j, pt := range pts {
		out[j] = pt.SnapFrame()
	}
	slices.SortStableFunc(out, byTime)
	out[0].X = 0
	out[len(out)-1].X = s.lastFrame
	for j := 1; j < len(out); j++ {
		if out[j].X <= out[j-1].X {
			return errors.New("points must be on distinct frames within the sequence")
		}
	}
	s.curves[i].Points = out
	return nil
}

// Sample samples curve i at time.
func (s *Sequence) Sample(i int, time float64) float64 {
	if i < 0 || i >= len(s.curves) {
		return 0
	}
	return s.curves[i].Sample(time)
}

func (s *Sequence) CurveCount() int { return len(s.curves) }

func (s *Sequence) CurvePointCount(curve int) int {
	if curve < 0 || curve >= len(s.curves) {
		return 0
	}
	return len(s.curves[curve].Points)
}

func (s *Sequence) CurveColor(curve int) color.NRGBA {
	if curve < 0 || curve >= len(s.curves) {
		return color.NRGBA{}
	}
	return s.curves[curve].Color
}

func (s *Sequence) CurvePoints(curve int) []animcurve.Point {
	if curve < 0 || curve >= len(s.curves) {
		return nil
	}
	return slices.Clone(s.curves[curve].Points)
}

func (s *Sequence) CurveLerpType(curve int) LerpType {
	if curve < 0 || curve >= len(s.curves) {
		return Discrete
	}
	return s.curves[curve].Lerp
}

// EditPoint moves a point to value and returns its index after re-sorting.
//
// The time is floored to a whole frame. The first and last points keep their
// frames. Interior points stay strictly inside the frame range, and an edit
// that would put two points on the same frame is refused.
func (s *Sequence) EditPoint(curve, point int, value animcurve.Point) int {
	if curve < 0 || curve >= len(s.curves) {
		return point
	}
	pts := s.curves[curve].Points
	if point < 0 || point >= len(pts) {
		return point
	}
	value = value.SnapFrame()
	last := len(pts) - 1
	switch point {
	case 0:
		value.X = 0
	case last:
		value.X = s.lastFrame
	default:
		value.X = min(max(value.X, 1), s.lastFrame-1)
		for j, pt := range pts {
			if j != point && pt.X == value.X {
				return point
			}
		}
	}
	pts[point] = value
	slices.SortFunc(pts, byTime)
	s.pin(curve)
	return slices.Index(pts, value)
}

// AddPoint adds a point at value, snapped to a whole frame, and returns its
// index. It returns -1 if the curve is full or a point already exists on that
// frame.
func (s *Sequence) AddPoint(curve int, value animcurve.Point) int {
	if curve < 0 || curve >= len(s.curves) {
		return -1
	}
	c := &s.curves[curve]
	if len(c.Points) >= MaxPoints {
		return -1
	}
	value = value.SnapFrame()
	if value.X <= 0 || value.X >= s.lastFrame {
		return -1
	}
	i, found := slices.BinarySearchFunc(c.Points, value.X, func(pt animcurve.Point, x float64) int {
		return cmp.Compare(pt.X, x)
	})
	if found {
		return -1
	}
	c.Points = slices.Insert(c.Points, i, value)
	return i
}

// RemovePoint removes an interior point. The first and last points can't be
// removed.
func (s *Sequence) RemovePoint(curve, point int) bool {
	if curve < 0 || curve >= len(s.curves) {
		return false
	}
	c := &s.curves[curve]
	if point <= 0 || point >= len(c.Points)-1 {
		return false
	}
	c.Points = slices.Delete(c.Points, point, point+1)
	return true
}

// pin moves the outermost points of a curve onto the frame range.
func (s *Sequence) pin(curve int) {
	pts := s.curves[curve].Points
	pts[0].X = 0
	pts[len(pts)-1].X = s.lastFrame
}

func (s *Sequence) LastFrame() float64 { return s.lastFrame }

// SetLastFrame changes the last frame and moves every curve's last point
// onto it. The new last frame is floored and kept after every interior point;
// SetLastFrame returns the value it applied.
func (s *Sequence) SetLastFrame(frame float64) float64 {
	lo := 1.0
	for _, c := range s.curves {
		if n := len(c.Points); n > 2 {
			lo = max(lo, c.Points[n-2].X+1)
		}
	}
	s.lastFrame = max(math.Floor(frame), lo)
	for i := range s.curves {
		s.pin(i)
	}
	return s.lastFrame
}

// PointFrameRange returns the frames a point can be moved to without
// crossing one of its neighbors. The first and last points can't change
// frames at all.
func (s *Sequence) PointFrameRange(curve, point int) (lo, hi float64, ok bool) {
	if curve < 0 || curve >= len(s.curves) {
		return 0, 0, false
	}
	pts := s.curves[curve].Points
	switch {
	case point < 0 || point >= len(pts):
		return 0, 0, false
	case point == 0:
		return 0, 0, true
	case point == len(pts)-1:
		return s.lastFrame, s.lastFrame, true
	default:
		return pts[point-1].X + 1, pts[point+1].X - 1, true
	}
}

func (s *Sequence) snapshot() sequenceState {
	st := sequenceState{lastFrame: s.lastFrame, curves: make([]PointCurve, len(s.curves))}
	for i, c := range s.curves {
		st.curves[i] = c.clone()
	}
	return st
}

func (s *Sequence) restore(st sequenceState) {
	s.lastFrame = st.lastFrame
	s.curves = st.curves
}

func (s *Sequence) BeginEdit() { s.history.begin(s.snapshot) }

func (s *Sequence) EndEdit() {
	s.history.end(func(before sequenceState) bool {
		return before.lastFrame != s.lastFrame || !slices.EqualFunc(before.curves, s.curves, PointCurve.equal)
	})
}

// Undo restores the state before the last completed edit bracket. It reports
// false if there is nothing to undo or an edit is in progress.
func (s *Sequence) Undo() bool {
	prev, ok := s.history.undoStep(s.snapshot())
	if ok {
		s.restore(prev)
	}
	return ok
}

// Redo reapplies the last undone edit bracket.
func (s *Sequence) Redo() bool {
	next, ok := s.history.redoStep(s.snapshot())
	if ok {
		s.restore(next)
	}
	return ok
}
