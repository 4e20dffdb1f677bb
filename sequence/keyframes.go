package sequence

import (
	"image/color"
	"math"
	"slices"

	"honnef.co/go/animcurve"
)

// KeyframeSequence exposes a [CurveList] of keyframe curves through
// [Editable]. Points are keyframe positions. Edits go through the keyframe
// model, so tangents are re-resolved after every edit.
type KeyframeSequence struct {
	CurveList

	lastFrame float64
	history   history[keyframeState]
}

type keyframeState struct {
	lastFrame float64
	entries   []CurveEntry
}

// NewKeyframeSequence returns an empty sequence spanning frames 0 through
// lastFrame.
func NewKeyframeSequence(lastFrame float64) *KeyframeSequence {
	return &KeyframeSequence{lastFrame: max(math.Floor(lastFrame), 1)}
}

func (s *KeyframeSequence) CurveCount() int { return s.Len() }

func (s *KeyframeSequence) CurvePointCount(curve int) int {
	c := s.Curve(curve)
	if c == nil {
		return 0
	}
	return c.KeyframeCount()
}

func (s *KeyframeSequence) CurveColor(curve int) color.NRGBA { return s.Color(curve) }

func (s *KeyframeSequence) CurvePoints(curve int) []animcurve.Point {
	c := s.Curve(curve)
	if c == nil {
		return nil
	}
	return c.Points()
}

// EditPoint moves a keyframe with [animcurve.Curve.MoveKeyframe], keeping it
// within the last frame. Keyframes never change order, so the index is
// returned unchanged.
func (s *KeyframeSequence) EditPoint(curve, point int, value animcurve.Point) int {
	c := s.Curve(curve)
	if c == nil {
		return point
	}
	value.X = min(value.X, s.lastFrame)
	c.MoveKeyframe(point, value)
	return point
}

// AddPoint adds a keyframe at value, snapped to a whole frame.
func (s *KeyframeSequence) AddPoint(curve int, value animcurve.Point) int {
	c := s.Curve(curve)
	if c == nil {
		return -1
	}
	value = value.SnapFrame()
	if value.X < 0 || value.X > s.lastFrame {
		return -1
	}
	i, err := c.AddKeyframe(value.X, value.Y)
	if err != nil {
		return -1
	}
	return i
}

func (s *KeyframeSequence) RemovePoint(curve, point int) bool {
	c := s.Curve(curve)
	if c == nil {
		return false
	}
	return c.RemoveKeyframe(point)
}

func (s *KeyframeSequence) LastFrame() float64 { return s.lastFrame }

// SetLastFrame changes the last frame. Unlike [Sequence.SetLastFrame] it
// doesn't move any keyframes; keyframes past the new last frame simply fall
// outside the sequence.
func (s *KeyframeSequence) SetLastFrame(frame float64) {
	s.lastFrame = max(math.Floor(frame), 1)
}

// FrameRange returns the times of the first and last keyframes of a curve.
func (s *KeyframeSequence) FrameRange(curve int) (first, last float64, ok bool) {
	c := s.Curve(curve)
	if c == nil {
		return 0, 0, false
	}
	return c.FirstTime(), c.LastTime(), true
}

func (s *KeyframeSequence) snapshot() keyframeState {
	return keyframeState{lastFrame: s.lastFrame, entries: s.clone()}
}

func (s *KeyframeSequence) BeginEdit() { s.history.begin(s.snapshot) }

func (s *KeyframeSequence) EndEdit() {
	s.history.end(func(before keyframeState) bool {
		return before.lastFrame != s.lastFrame || !slices.EqualFunc(before.entries, s.entries, entryEqual)
	})
}

func entryEqual(a, b CurveEntry) bool {
	return a.Color == b.Color &&
		a.Curve.Name == b.Curve.Name &&
		a.Curve.Visible == b.Curve.Visible &&
		slices.Equal(a.Curve.Keyframes(), b.Curve.Keyframes())
}

// Undo restores the state before the last completed edit bracket. Curves are
// restored as copies, so pointers obtained before Undo no longer refer to
// curves of the sequence.
func (s *KeyframeSequence) Undo() bool {
	prev, ok := s.history.undoStep(s.snapshot())
	if ok {
		s.lastFrame, s.entries = prev.lastFrame, prev.entries
	}
	return ok
}

// Redo reapplies the last undone edit bracket.
func (s *KeyframeSequence) Redo() bool {
	next, ok := s.history.redoStep(s.snapshot())
	if ok {
		s.lastFrame, s.entries = next.lastFrame, next.entries
	}
	return ok
}
