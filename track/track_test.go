package track

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"honnef.co/go/animcurve/sequence"
)

func TestTrackSetKey(t *testing.T) {
	tr := NewTrack("pos", KindVec2, sequence.Linear)
	for _, frame := range []float64{10, 0, 5} {
		if _, err := tr.SetKey(frame, Vec2{frame, -frame}); err != nil {
			t.Fatal(err)
		}
	}
	if i, err := tr.SetKey(5, Vec2{1, 1}); err != nil || i != 1 {
		t.Errorf("got (%d, %v), want (1, nil)", i, err)
	}
	diff(t, []Key{
		{0, Vec2{0, 0}},
		{5, Vec2{1, 1}},
		{10, Vec2{10, -10}},
	}, tr.Keys())

	if _, err := tr.SetKey(3, Scalar(1)); err == nil {
		t.Error("set scalar key on vec2 track")
	}
	if _, err := tr.SetKey(3, nil); err == nil {
		t.Error("set nil key")
	}
	if !tr.RemoveKey(1) || tr.RemoveKey(5) {
		t.Error("unexpected RemoveKey result")
	}
	diff(t, 2, len(tr.Keys()))
}

func TestTrackSample(t *testing.T) {
	tr := NewTrack("color", KindVec3, sequence.Linear)
	tr.SetKey(0, Vec3{0, 1, 2})
	tr.SetKey(10, Vec3{10, 1, 0})

	diff(t, Vec3{0, 1, 2}, tr.Sample(-5))
	diff(t, Vec3{5, 1, 1}, tr.Sample(5))
	diff(t, Vec3{10, 1, 0}, tr.Sample(15))

	tr.Lerp = sequence.Discrete
	diff(t, Vec3{0, 1, 2}, tr.Sample(9))

	s := NewTrack("opacity", KindScalar, sequence.Smooth)
	diff(t, Scalar(0), s.Sample(3))
	s.SetKey(0, Scalar(0))
	s.SetKey(4, Scalar(1))
	diff(t, Scalar(0.15625), s.Sample(1), cmpopts.EquateApprox(0, 1e-15))
}

func TestTrackSampleQuat(t *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-12)
	z := Vec3{0, 0, 1}
	tr := NewTrack("rot", KindQuat, sequence.Linear)
	diff(t, IdentityQuat, tr.Sample(3))

	tr.SetKey(0, IdentityQuat)
	tr.SetKey(10, QuatFromAxisAngle(z, math.Pi/2))
	tr.SetKey(20, Quat{0, 0, 0, -2})

	diff(t, IdentityQuat, tr.Sample(-1), opt)
	diff(t, QuatFromAxisAngle(z, math.Pi/4), tr.Sample(5), opt)
	diff(t, QuatFromAxisAngle(z, math.Pi/2), tr.Sample(10), opt)
	diff(t, Quat{0, 0, 0, -1}, tr.Sample(30), opt)

	tr.Lerp = sequence.Discrete
	diff(t, IdentityQuat, tr.Sample(9), opt)
}

func TestRegistry(t *testing.T) {
	var (
		opacity float64
		rot     Quat
	)
	r := NewRegistry()
	if err := Register(r, "opacity", func(v Scalar) { opacity = float64(v) }); err != nil {
		t.Fatal(err)
	}
	if err := Register(r, "rot", func(v Quat) { rot = v }); err != nil {
		t.Fatal(err)
	}
	if err := Register(r, "rot", func(v Vec3) {}); err == nil {
		t.Error("registered target twice")
	}
	if k, ok := r.Kind("rot"); !ok || k != KindQuat {
		t.Errorf("got kind (%s, %t), want (quat, true)", k, ok)
	}

	var names []string
	for name := range r.Names() {
		names = append(names, name)
	}
	diff(t, []string{"opacity", "rot"}, names)

	if err := r.Apply("opacity", Scalar(0.5)); err != nil {
		t.Fatal(err)
	}
	diff(t, 0.5, opacity)
	if err := r.Apply("opacity", Vec2{}); err == nil {
		t.Error("applied vec2 to scalar target")
	}
	if err := r.Apply("scale", Scalar(1)); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("got error %v, want %v", err, ErrUnknownTarget)
	}

	op := NewTrack("opacity", KindScalar, sequence.Linear)
	op.SetKey(0, Scalar(0))
	op.SetKey(10, Scalar(1))
	missing := NewTrack("scale", KindScalar, sequence.Linear)
	rt := NewTrack("rot", KindQuat, sequence.Linear)
	rt.SetKey(0, QuatFromAxisAngle(Vec3{1, 0, 0}, 1))

	err := r.ApplyTracks(2, op, missing, rt)
	if !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("got error %v, want %v", err, ErrUnknownTarget)
	}
	diff(t, 0.2, opacity, cmpopts.EquateApprox(0, 1e-15))
	diff(t, QuatFromAxisAngle(Vec3{1, 0, 0}, 1), rot, cmpopts.EquateApprox(0, 1e-15))
}
