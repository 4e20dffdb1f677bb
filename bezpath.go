package animcurve

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
)

// PathElement is the element of a Bézier path.
//
// A valid path has MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case CubicToKind:
		kind = "CubicTo"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	default:
		return PathElement{}
	}
}

// EndPoint returns the point the element moves the pen to.
func (el PathElement) EndPoint() Point {
	if el.Kind == CubicToKind {
		return el.P2
	}
	return el.P0
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

// BezPath is a sequence of path elements. [Curve.Path] describes a whole
// keyframe curve as one.
type BezPath []PathElement

// Transform returns a new path with an affine transformation applied to the
// path.
func (p BezPath) Transform(aff Affine) BezPath {
	els := make([]PathElement, len(p))
	for i := range p {
		els[i] = p[i].Transform(aff)
	}
	return els
}

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

// MoveTo pushes a "move to" element onto the path.
func (p *BezPath) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

// LineTo pushes a "line to" element onto the path.
func (p *BezPath) LineTo(pt Point) { p.Push(LineTo(pt)) }

// CubicTo pushes a "cubic to" element onto the path.
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// Flatten approximates the path with lines. Cubic elements are replaced by
// LineTo elements within tolerance of the curve.
func (p BezPath) Flatten(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		var last Point
		for _, el := range p {
			switch el.Kind {
			case CubicToKind:
				c := CubicBez{last, el.P0, el.P1, el.P2}
				for pt := range c.Flatten(tolerance) {
					if !yield(LineTo(pt)) {
						return
					}
				}
			default:
				if !yield(el) {
					return
				}
			}
			last = el.EndPoint()
		}
	}
}

// BoundingBox returns the tight bounding box of the path.
func (p BezPath) BoundingBox() Rect {
	var bbox Rect
	var last Point
	first := true
	add := func(r Rect) {
		if first {
			first = false
			bbox = r
		} else {
			bbox = bbox.Union(r)
		}
	}
	for _, el := range p {
		switch el.Kind {
		case MoveToKind:
		case LineToKind:
			add(Line{last, el.P0}.BoundingBox())
		case CubicToKind:
			add(CubicBez{last, el.P0, el.P1, el.P2}.BoundingBox())
		}
		last = el.EndPoint()
	}
	if first && len(p) > 0 {
		return NewRectFromPoints(last, last)
	}
	return bbox
}

func (p BezPath) IsInf() bool {
	for i := range p {
		if p[i].P0.IsInf() || p[i].P1.IsInf() || p[i].P2.IsInf() {
			return true
		}
	}
	return false
}

func (p BezPath) IsNaN() bool {
	for i := range p {
		if p[i].P0.IsNaN() || p[i].P1.IsNaN() || p[i].P2.IsNaN() {
			return true
		}
	}
	return false
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts the path to a string of SVG path commands.
func (p BezPath) SVG(opts SVGOptions) string {
	return SVG(p.Elements(), opts)
}

func (p BezPath) WriteSVG(w io.Writer, opts SVGOptions) error {
	return WriteSVG(w, p.Elements(), opts)
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	space := []byte(" ")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	}
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			writef("M%s,%s", format(el.P0.X), format(el.P0.Y))
		case LineToKind:
			writef("L%s,%s", format(el.P0.X), format(el.P0.Y))
		case CubicToKind:
			writef("C%s,%s %s,%s %s,%s",
				format(el.P0.X), format(el.P0.Y),
				format(el.P1.X), format(el.P1.Y),
				format(el.P2.X), format(el.P2.Y))
		default:
			panic("unreachable")
		}
	}
	return err
}
