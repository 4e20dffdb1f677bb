package sequence

import (
	"image/color"
	"testing"

	"honnef.co/go/animcurve"
)

func newTestKeyframeSequence(t *testing.T) *KeyframeSequence {
	t.Helper()
	s := NewKeyframeSequence(20)
	c, err := animcurve.NewCurve("x", animcurve.Pt(0, 0), animcurve.Pt(20, 0))
	if err != nil {
		t.Fatal(err)
	}
	s.Add(c, color.NRGBA{})
	return s
}

func TestKeyframeSequenceEdit(t *testing.T) {
	s := newTestKeyframeSequence(t)
	var e Editable = s
	if i := e.AddPoint(0, animcurve.Pt(10.6, 5)); i != 1 {
		t.Fatalf("got index %d, want 1", i)
	}
	if i := e.AddPoint(0, animcurve.Pt(10.2, 5)); i != -1 {
		t.Errorf("added duplicate keyframe at %d", i)
	}
	if i := e.AddPoint(0, animcurve.Pt(30, 5)); i != -1 {
		t.Errorf("added keyframe past the last frame at %d", i)
	}
	diff(t, 3, e.CurvePointCount(0))
	diff(t, DefaultColor(0), e.CurveColor(0))

	if i := e.EditPoint(0, 0, animcurve.Pt(5, 2)); i != 0 {
		t.Errorf("got index %d, want 0", i)
	}
	if i := e.EditPoint(0, 2, animcurve.Pt(50, 1)); i != 2 {
		t.Errorf("got index %d, want 2", i)
	}
	diff(t, []animcurve.Point{
		animcurve.Pt(0, 2),
		animcurve.Pt(10, 5),
		animcurve.Pt(20, 1),
	}, e.CurvePoints(0))

	first, last, ok := s.FrameRange(0)
	if !ok || first != 0 || last != 20 {
		t.Errorf("got frame range [%v, %v] %t, want [0, 20]", first, last, ok)
	}

	if e.RemovePoint(0, 0) {
		t.Error("removed first keyframe")
	}
	if !e.RemovePoint(0, 1) {
		t.Error("couldn't remove interior keyframe")
	}
	if e.CurvePoints(5) != nil || e.AddPoint(5, animcurve.Pt(1, 1)) != -1 {
		t.Error("edited missing curve")
	}
}

func TestKeyframeSequenceUndo(t *testing.T) {
	s := newTestKeyframeSequence(t)
	s.BeginEdit()
	s.AddPoint(0, animcurve.Pt(10, 5))
	s.Curve(0).SetOutTangentBrokenType(1, animcurve.BrokenConstant)
	s.EndEdit()

	if !s.Undo() {
		t.Fatal("nothing to undo")
	}
	diff(t, 2, s.CurvePointCount(0))
	if !s.Redo() {
		t.Fatal("nothing to redo")
	}
	k, err := s.Curve(0).Keyframe(1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, animcurve.BrokenConstant, k.Out.Broken)
}

func TestCurveList(t *testing.T) {
	var l CurveList
	a, _ := animcurve.NewCurve("a", animcurve.Pt(0, 0), animcurve.Pt(10, 5))
	b, _ := animcurve.NewCurve("b", animcurve.Pt(0, -3), animcurve.Pt(20, 1))
	hidden, _ := animcurve.NewCurve("hidden", animcurve.Pt(0, 100), animcurve.Pt(50, 100))
	hidden.Visible = false
	red := color.NRGBA{0xff, 0, 0, 0xff}
	l.Add(a, red)
	l.Add(b, color.NRGBA{})
	l.Add(hidden, color.NRGBA{})

	diff(t, red, l.Color(0))
	diff(t, DefaultColor(1), l.Color(1))
	if c, ok := l.Lookup("b"); !ok || c != b {
		t.Error("couldn't look up curve b")
	}
	if _, ok := l.Lookup("c"); ok {
		t.Error("found missing curve")
	}

	var names []string
	for _, e := range l.Visible() {
		names = append(names, e.Curve.Name)
	}
	diff(t, []string{"a", "b"}, names)

	r, ok := l.DisplayRange()
	if !ok {
		t.Fatal("no display range")
	}
	diff(t, animcurve.Rect{X0: 0, Y0: -3, X1: 20, Y1: 5}, r)

	if !l.Remove(0) || l.Len() != 2 || l.Curve(0) != b {
		t.Error("remove failed")
	}
	if l.Remove(5) {
		t.Error("removed missing curve")
	}
}
