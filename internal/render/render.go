// Package render draws keyframe curves as SVG documents and PNG images.
package render

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/animcurve"
	"honnef.co/go/animcurve/sequence"
)

// ErrNothingToDraw is returned when no curve is visible.
var ErrNothingToDraw = errors.New("no visible curves")

// Options controls the size and style of the output.
type Options struct {
	Width, Height int
	Padding       int
	StrokeWidth   float64
	// DrawSamples is the number of points per segment of raster output.
	DrawSamples int
	Background  color.NRGBA
}

var white = color.NRGBA{0xff, 0xff, 0xff, 0xff}

func (opts Options) background() color.NRGBA {
	if opts.Background == (color.NRGBA{}) {
		return white
	}
	return opts.Background
}

// displayRange returns the display range of the visible curves of l.
func displayRange(l *sequence.CurveList) (lo, hi animcurve.Point, err error) {
	r, ok := l.DisplayRange()
	if !ok {
		return lo, hi, ErrNothingToDraw
	}
	return r.Min(), r.Max(), nil
}

// unitToPixels maps the unit square, as produced by
// [animcurve.NormalizeToDisplay], to the padded image area. Values grow
// upwards.
func (opts Options) unitToPixels() animcurve.Affine {
	w := float64(opts.Width - 2*opts.Padding)
	h := float64(opts.Height - 2*opts.Padding)
	return animcurve.Scale(w, -h).ThenTranslate(animcurve.Vec(float64(opts.Padding), float64(opts.Padding)+h))
}

// Layout returns the transform from curve space to pixels for drawing the
// visible curves of l.
func Layout(l *sequence.CurveList, opts Options) (animcurve.Affine, error) {
	lo, hi, err := displayRange(l)
	if err != nil {
		return animcurve.Affine{}, err
	}
	return opts.unitToPixels().Mul(animcurve.DisplayTransform(lo, hi)), nil
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SVG writes an SVG document showing every visible curve of l, with a dot on
// each keyframe. Curves are drawn from [animcurve.Curve.Path], so the output
// is exact.
func SVG(w io.Writer, l *sequence.CurveList, opts Options) error {
	aff, err := Layout(l, opts)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %[1]d %[2]d">`+"\n", opts.Width, opts.Height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(opts.background()))
	for _, e := range l.Visible() {
		col := hexColor(e.Color)
		fmt.Fprint(bw, `<g id="`)
		// Write errors are sticky in bw and returned by Flush.
		_ = xml.EscapeText(bw, []byte(e.Curve.Name))
		fmt.Fprint(bw, "\">\n")
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="%g" d="`, col, opts.StrokeWidth)
		e.Curve.Path().Transform(aff).WriteSVG(bw, animcurve.SVGOptions{MaxPrecision: 3})
		fmt.Fprint(bw, "\"/>\n")
		for _, pt := range e.Curve.Points() {
			pt = pt.Transform(aff)
			fmt.Fprintf(bw, `<circle cx="%.3f" cy="%.3f" r="%g" fill="%s"/>`+"\n", pt.X, pt.Y, 1.5*opts.StrokeWidth, col)
		}
		fmt.Fprint(bw, "</g>\n")
	}
	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// Image rasterizes every visible curve of l.
//
// Unlike [SVG], which draws the exact path, curves are sampled with
// [animcurve.Curve.SampleForDrawing], opts.DrawSamples points per segment,
// and the samples are joined with straight lines.
func Image(l *sequence.CurveList, opts Options) (*image.RGBA, error) {
	lo, hi, err := displayRange(l)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.background()), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(opts.Width, opts.Height, img, img.Bounds())
	dasher := rasterx.NewDasher(opts.Width, opts.Height, scanner)
	dasher.SetStroke(fixed.Int26_6(opts.StrokeWidth*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)

	toPixels := opts.unitToPixels()
	for _, e := range l.Visible() {
		segs := e.Curve.SegmentCount()
		n := max(segs*opts.DrawSamples, 1)
		dasher.Clear()
		dasher.SetColor(e.Color)
		for i := 0; i <= n; i++ {
			pt := e.Curve.SampleForDrawing(float64(i)/float64(n), lo, hi).Transform(toPixels)
			p := rasterx.ToFixedP(pt.X, pt.Y)
			if i == 0 {
				dasher.Start(p)
			} else {
				dasher.Line(p)
			}
		}
		dasher.Stop(false)
		dasher.Draw()
	}
	return img, nil
}

// PNG writes the output of [Image] as a PNG.
func PNG(w io.Writer, l *sequence.CurveList, opts Options) error {
	img, err := Image(l, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
