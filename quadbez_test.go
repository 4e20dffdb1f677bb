package animcurve

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQuadBezDifferentiate(t *testing.T) {
	q := QuadBez{
		Pt(0.0, 0.0),
		Pt(0.0, 0.5),
		Pt(1.0, 1.0),
	}
	deriv := q.Differentiate()
	const n = 10
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		const delta = 1e-6
		p := q.Eval(ts)
		p1 := q.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := Vec2(deriv.Eval(ts))
		if error := d.Sub(dApprox).Hypot(); error > delta*2 {
			t.Errorf("got difference of %g, want at most %g", error, delta*2)
		}
	}
}

func TestQuadbezExtrema(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-6)

	// y = x^2
	q := QuadBez{Pt(-1.0, 1.0), Pt(0.0, -1.0), Pt(1.0, 1.0)}
	extrema, n := q.Extrema()
	want := []float64{0.5}
	diff(t, want, extrema[:n], approx)

	q = QuadBez{Pt(0.0, 0.5), Pt(1.0, 1.0), Pt(0.5, 0.0)}
	extrema, n = q.Extrema()
	want = []float64{1.0 / 3.0, 2.0 / 3.0}
	diff(t, want, extrema[:n], approx)

	// Reverse direction
	q = QuadBez{Pt(0.5, 0.0), Pt(1.0, 1.0), Pt(0.0, 0.5)}
	extrema, n = q.Extrema()
	want = []float64{1.0 / 3.0, 2.0 / 3.0}
	diff(t, want, extrema[:n], approx)
}

func TestQuadBezBoundingBox(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}
	diff(t, Rect{0, 0, 2, 1}, q.BoundingBox(), cmpopts.EquateApprox(0, 1e-9))
}
