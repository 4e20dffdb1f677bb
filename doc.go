// Package animcurve provides keyframed animation curves: a keyframe model with
// per-side tangent modes, a resolver that turns those modes into concrete
// tangent handles, and an evaluator that samples the resulting spline for
// playback and for drawing.
//
// # Curves and keyframes
//
// A [Curve] is an ordered list of [Keyframe] values. Each keyframe is a
// position in curve space, with time on the X axis and the animated value on
// the Y axis, plus two [Tangent] values that shape the curve approaching the
// keyframe (the in-tangent) and leaving it (the out-tangent). The first
// keyframe has no in-tangent and the last has no out-tangent.
//
// Curves are edited through methods such as [Curve.AddKeyframe],
// [Curve.MoveKeyframe] and [Curve.SetOutTangentOffset]. Edits that can't be
// applied, such as removing the first keyframe or moving a keyframe past its
// neighbor, are refused or clamped rather than reported as errors, so that an
// interactive editor can forward user input without validating it first.
//
// # Tangent modes
//
// A keyframe is either [Smooth], with linked tangents, or [Broken], with
// independent ones. Smooth tangents are [SmoothAuto], [SmoothFree] or
// [SmoothFlat]; broken tangents are [BrokenFree], [BrokenLinear] or
// [BrokenConstant]. The mode of a tangent is symbolic. After every edit,
// [Curve.Resolve] recomputes each tangent's direction and weight from its mode
// and the positions of the neighboring keyframes.
//
// Automatic tangents use clamped Catmull-Rom: the slope between the
// neighbors, forced to zero at local extrema and inflections, and otherwise
// limited so that the curve doesn't overshoot either neighbor.
//
// # Handles and weights
//
// A resolved tangent is a unit direction and a weight. Their product,
// [Tangent.Offset], is the offset of the tangent's handle from the keyframe,
// and the handle is the inner control point of the segment's cubic Bézier.
// Unweighted tangents are reset to a weight of a third of the segment's
// duration on every resolve; weighted tangents keep the weight the user gave
// them.
//
// # Evaluation
//
// Every segment between two keyframes is a cubic Bézier, except for segments
// that leave a keyframe with a constant out-tangent, which hold their start
// value. [Curve.SampleAtTime] finds the Bézier parameter for a time with
// Newton–Raphson iteration ([CubicBez.FindTForX]) and extrapolates flat
// outside the keyframes. [Curve.SampleForDrawing] instead walks the curve by
// parameter and normalizes the result to a display range, and [Curve.Path]
// returns the curve as a [BezPath] for rendering.
//
// # Geometry
//
// The package also contains the small set of 2D primitives the curve model is
// built on: [Point], [Vec2], [Rect], [Affine], [Line], [QuadBez], [CubicBez]
// and [BezPath], as well as the polynomial solvers [SolveQuadratic] and
// [SolveCubic].
//
// # Concurrency
//
// None of the types in this package do any locking. A Curve must not be
// mutated while it is being read from another goroutine. Use [Curve.Clone] to
// hand a snapshot to a concurrent reader.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package animcurve
