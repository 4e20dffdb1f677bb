package sequence

import (
	"errors"
	"testing"

	"honnef.co/go/animcurve"
)

func newTestSequence(t *testing.T, pts ...animcurve.Point) *Sequence {
	t.Helper()
	s := NewSequence(20)
	s.AddCurve("x", Linear, DefaultColor(0), 0, 0)
	if len(pts) > 0 {
		if err := s.SetPoints(0, pts); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

// checkPinned verifies the first point is at frame 0, the last point is at
// the last frame, and points are on ascending distinct frames.
func checkPinned(t *testing.T, s *Sequence) {
	t.Helper()
	for c := range s.CurveCount() {
		pts := s.CurvePoints(c)
		if pts[0].X != 0 {
			t.Errorf("curve %d starts at %v", c, pts[0].X)
		}
		if pts[len(pts)-1].X != s.LastFrame() {
			t.Errorf("curve %d ends at %v, want %v", c, pts[len(pts)-1].X, s.LastFrame())
		}
		for i := 1; i < len(pts); i++ {
			if pts[i].X <= pts[i-1].X {
				t.Errorf("curve %d: points %d and %d out of order", c, i-1, i)
			}
		}
	}
}

func TestSequenceAddCurve(t *testing.T) {
	s := NewSequence(30.7)
	if s.LastFrame() != 30 {
		t.Errorf("got last frame %v, want 30", s.LastFrame())
	}
	i := s.AddCurve("opacity", Smooth, DefaultColor(3), 1, 0)
	diff(t, 0, i)
	diff(t, []animcurve.Point{animcurve.Pt(0, 1), animcurve.Pt(30, 0)}, s.CurvePoints(i))
	diff(t, Smooth, s.CurveLerpType(i))
	diff(t, DefaultColor(3), s.CurveColor(i))

	j := s.AddCurve("y", Linear, DefaultColor(1), 0, 0)
	if j != 1 || s.CurveCount() != 2 {
		t.Errorf("got index %d and %d curves", j, s.CurveCount())
	}
	if v := s.Sample(0, 15); v != 0.5 {
		t.Errorf("got %v, want 0.5", v)
	}
}

func TestSequenceEditPoint(t *testing.T) {
	s := newTestSequence(t, animcurve.Pt(0, 0), animcurve.Pt(5, 1), animcurve.Pt(10, 2), animcurve.Pt(20, 3))

	// Moving past a neighbor re-sorts.
	if i := s.EditPoint(0, 1, animcurve.Pt(12.7, 4)); i != 2 {
		t.Errorf("got index %d, want 2", i)
	}
	diff(t, []animcurve.Point{
		animcurve.Pt(0, 0),
		animcurve.Pt(10, 2),
		animcurve.Pt(12, 4),
		animcurve.Pt(20, 3),
	}, s.CurvePoints(0))

	// Collisions are refused.
	if i := s.EditPoint(0, 2, animcurve.Pt(10.5, 9)); i != 2 {
		t.Errorf("got index %d after refused edit, want 2", i)
	}
	diff(t, animcurve.Pt(12, 4), s.CurvePoints(0)[2])

	// The outer points only change value.
	if i := s.EditPoint(0, 0, animcurve.Pt(15, 7)); i != 0 {
		t.Errorf("got index %d, want 0", i)
	}
	if i := s.EditPoint(0, 3, animcurve.Pt(3, 8)); i != 3 {
		t.Errorf("got index %d, want 3", i)
	}
	diff(t, animcurve.Pt(0, 7), s.CurvePoints(0)[0])
	diff(t, animcurve.Pt(20, 8), s.CurvePoints(0)[3])

	// Interior points stay inside the range.
	if i := s.EditPoint(0, 1, animcurve.Pt(-5, 0)); i != 1 {
		t.Errorf("got index %d, want 1", i)
	}
	diff(t, animcurve.Pt(1, 0), s.CurvePoints(0)[1])
	checkPinned(t, s)

	if i := s.EditPoint(3, 1, animcurve.Pt(0, 0)); i != 1 {
		t.Errorf("edit of missing curve returned %d", i)
	}
}

func TestSequenceAddRemovePoint(t *testing.T) {
	s := newTestSequence(t)
	if i := s.AddPoint(0, animcurve.Pt(7.5, 1)); i != 1 {
		t.Fatalf("got index %d, want 1", i)
	}
	if i := s.AddPoint(0, animcurve.Pt(7, 2)); i != -1 {
		t.Errorf("added point on an occupied frame at %d", i)
	}
	for _, x := range []float64{0, 20, 25, -1} {
		if i := s.AddPoint(0, animcurve.Pt(x, 2)); i != -1 {
			t.Errorf("added point at frame %v", x)
		}
	}
	for x := 1.0; s.CurvePointCount(0) < MaxPoints; x++ {
		if x == 7 {
			continue
		}
		if i := s.AddPoint(0, animcurve.Pt(x, 0)); i == -1 {
			t.Fatalf("couldn't add point at %v", x)
		}
	}
	if i := s.AddPoint(0, animcurve.Pt(15, 0)); i != -1 {
		t.Errorf("added point beyond the limit of %d", MaxPoints)
	}
	checkPinned(t, s)

	if s.RemovePoint(0, 0) || s.RemovePoint(0, MaxPoints-1) {
		t.Error("removed an outer point")
	}
	if !s.RemovePoint(0, 1) {
		t.Error("couldn't remove interior point")
	}
	diff(t, MaxPoints-1, s.CurvePointCount(0))
}

func TestSequenceSetPoints(t *testing.T) {
	s := newTestSequence(t)
	pts := make([]animcurve.Point, MaxPoints+1)
	for i := range pts {
		pts[i] = animcurve.Pt(float64(i), 0)
	}
	if err := s.SetPoints(0, pts); !errors.Is(err, ErrTooManyPoints) {
		t.Errorf("got error %v, want %v", err, ErrTooManyPoints)
	}
	if err := s.SetPoints(0, []animcurve.Point{animcurve.Pt(0, 0), animcurve.Pt(3.2, 1), animcurve.Pt(3.9, 2), animcurve.Pt(20, 0)}); err == nil {
		t.Error("accepted two points on frame 3")
	}
	var ierr *animcurve.IndexError
	if err := s.SetPoints(4, pts[:2]); !errors.As(err, &ierr) {
		t.Errorf("got error %v, want *IndexError", err)
	}

	if err := s.SetPoints(0, []animcurve.Point{animcurve.Pt(12.5, 1), animcurve.Pt(-3, 0), animcurve.Pt(18, 2)}); err != nil {
		t.Fatal(err)
	}
	diff(t, []animcurve.Point{animcurve.Pt(0, 0), animcurve.Pt(12, 1), animcurve.Pt(20, 2)}, s.CurvePoints(0))
}

func TestSequenceLastFrame(t *testing.T) {
	s := newTestSequence(t, animcurve.Pt(0, 0), animcurve.Pt(12, 1), animcurve.Pt(20, 2))
	if got := s.SetLastFrame(40.5); got != 40 {
		t.Errorf("got last frame %v, want 40", got)
	}
	checkPinned(t, s)
	if got := s.SetLastFrame(5); got != 13 {
		t.Errorf("got last frame %v, want 13", got)
	}
	checkPinned(t, s)

	lo, hi, ok := s.PointFrameRange(0, 1)
	if !ok || lo != 1 || hi != 12 {
		t.Errorf("got range [%v, %v] %t, want [1, 12]", lo, hi, ok)
	}
	lo, hi, _ = s.PointFrameRange(0, 2)
	if lo != 13 || hi != 13 {
		t.Errorf("got range [%v, %v] for last point, want [13, 13]", lo, hi)
	}
	if _, _, ok := s.PointFrameRange(0, 3); ok {
		t.Error("got range for missing point")
	}
}

func TestSequenceUndo(t *testing.T) {
	s := newTestSequence(t)
	orig := s.CurvePoints(0)

	s.BeginEdit()
	s.AddPoint(0, animcurve.Pt(5, 1))
	s.BeginEdit()
	s.AddPoint(0, animcurve.Pt(10, 2))
	s.EndEdit()
	if s.Undo() {
		t.Error("undid while an edit was in progress")
	}
	s.EndEdit()
	edited := s.CurvePoints(0)

	// An edit bracket without changes doesn't create a step.
	s.BeginEdit()
	s.EndEdit()

	if !s.Undo() {
		t.Fatal("nothing to undo")
	}
	diff(t, orig, s.CurvePoints(0))
	if s.Undo() {
		t.Error("undid more than one step")
	}
	if !s.Redo() {
		t.Fatal("nothing to redo")
	}
	diff(t, edited, s.CurvePoints(0))

	s.Undo()
	s.BeginEdit()
	s.SetLastFrame(50)
	s.EndEdit()
	if s.Redo() {
		t.Error("redo survived a new edit")
	}
	s.Undo()
	if s.LastFrame() != 20 {
		t.Errorf("got last frame %v after undo, want 20", s.LastFrame())
	}
	checkPinned(t, s)
}
