package animcurve

import (
	"testing"
)

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(FlipY), Pt(3, -4), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(a2).Transform(a1), px.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, py.Transform(a2).Transform(a1), py.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, pxy.Transform(a2).Transform(a1), pxy.Transform(a1.Mul(a2)), epsilon)
}

func TestDisplayTransform(t *testing.T) {
	const epsilon = 1e-12
	aff := DisplayTransform(Pt(0, -1), Pt(9, 1))

	// The time span is widened by one frame: frame 9 is at 0.9, not 1.
	assertNear(t, Pt(0, -1).Transform(aff), Pt(0, 0), epsilon)
	assertNear(t, Pt(9, 1).Transform(aff), Pt(0.9, 1), epsilon)
	assertNear(t, Pt(10, 0).Transform(aff), Pt(1, 0.5), epsilon)

	// Flat display ranges don't divide by zero.
	flat := DisplayTransform(Pt(0, 3), Pt(4, 3))
	if p := Pt(2, 3).Transform(flat); p.IsNaN() || p.IsInf() {
		t.Fatalf("got %s for a flat display range", p)
	}
}
