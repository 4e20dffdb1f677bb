package animcurve

import (
	"iter"
	"math"
	"sort"
)

// maxNewtonIterations bounds the root find in [CubicBez.FindTForX].
const maxNewtonIterations = 8

// maxFlattenDepth bounds the subdivision in [CubicBez.Flatten].
const maxFlattenDepth = 16

var _ ParametricCurve = CubicBez{}
var _ Extremer = CubicBez{}

// CubicBez is a cubic Bézier. Every non-step segment of a [Curve] is a cubic
// whose end points are the keyframes and whose inner control points are the
// keyframes' tangent handles.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// BoundingBox returns the tight bounding box of the cubic.
func (c CubicBez) BoundingBox() Rect {
	return BoundingBox(c)
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// FindTForX finds the parameter t at which the cubic's x coordinate equals x,
// using Newton–Raphson iteration.
//
// The initial guess linearly interpolates x between the end points. Iteration
// stops once the error in x drops below [Epsilon] or after 8 iterations. Every
// iterate is clamped to [0, 1], so the result is always a valid parameter even
// for cubics that aren't monotonic in x. If the derivative dx/dt vanishes
// before convergence, the root is found analytically instead.
func (c CubicBez) FindTForX(x float64) float64 {
	t, _ := c.findTForX(x)
	return t
}

// findTForX is FindTForX, additionally returning the number of Newton steps
// taken.
func (c CubicBez) findTForX(x float64) (float64, int) {
	var t float64
	if span := c.P3.X - c.P0.X; math.Abs(span) >= Epsilon {
		t = clamp01((x - c.P0.X) / span)
	}
	d := c.Differentiate()
	for i := range maxNewtonIterations {
		err := c.Eval(t).X - x
		if math.Abs(err) < Epsilon {
			return t, i
		}
		dx := d.Eval(t).X
		if math.Abs(dx) < Epsilon {
			if root, ok := c.solveTForX(x); ok {
				return root, i
			}
			return t, i
		}
		t = clamp01(t - err/dx)
	}
	return t, maxNewtonIterations
}

// solveTForX solves x(t) = x with [SolveCubic] and returns the smallest root
// in [0, 1].
func (c CubicBez) solveTForX(x float64) (float64, bool) {
	p0, p1, p2, p3 := c.P0.X, c.P1.X, c.P2.X, c.P3.X
	c3 := -p0 + 3*p1 - 3*p2 + p3
	c2 := 3*p0 - 6*p1 + 3*p2
	c1 := -3*p0 + 3*p1
	c0 := p0 - x
	roots, n := SolveCubic(c0, c1, c2, c3)
	best, ok := 0.0, false
	for _, t := range roots[:n] {
		if t >= -Epsilon && t <= 1+Epsilon && (!ok || t < best) {
			best, ok = clamp01(t), true
		}
	}
	return best, ok
}

// isFlat reports whether the inner control points lie within tolerance of
// the chord, in which case the cubic can be drawn as a line.
func (c CubicBez) isFlat(tolerance float64) bool {
	chord := c.P3.Sub(c.P0)
	l := chord.Hypot()
	if l < Epsilon {
		return c.P1.Distance(c.P0) <= tolerance && c.P2.Distance(c.P0) <= tolerance
	}
	d1 := math.Abs(chord.Cross(c.P1.Sub(c.P0))) / l
	d2 := math.Abs(chord.Cross(c.P2.Sub(c.P0))) / l
	return max(d1, d2) <= tolerance
}

// Flatten approximates the cubic with line segments, using de Casteljau
// subdivision. The iterator yields the end point of every line; the start
// point of the first line is c.P0.
func (c CubicBez) Flatten(tolerance float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		c.flatten(tolerance, 0, yield)
	}
}

func (c CubicBez) flatten(tolerance float64, depth int, yield func(Point) bool) bool {
	if depth >= maxFlattenDepth || c.isFlat(tolerance) {
		return yield(c.P3)
	}
	c0, c1 := c.Subdivide()
	return c0.flatten(tolerance, depth+1, yield) && c1.flatten(tolerance, depth+1, yield)
}
