package sequence

import (
	"image/color"
	"iter"
	"slices"

	"honnef.co/go/animcurve"
)

// CurveEntry is a keyframe curve and the color it is drawn in.
type CurveEntry struct {
	Curve *animcurve.Curve
	Color color.NRGBA
}

// CurveList is an ordered list of keyframe curves.
type CurveList struct {
	entries []CurveEntry
}

// Add appends c and returns its index. A zero color is replaced by
// [DefaultColor].
func (l *CurveList) Add(c *animcurve.Curve, col color.NRGBA) int {
	if col == (color.NRGBA{}) {
		col = DefaultColor(len(l.entries))
	}
	l.entries = append(l.entries, CurveEntry{Curve: c, Color: col})
	return len(l.entries) - 1
}

// Remove removes curve i.
func (l *CurveList) Remove(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return true
}

func (l *CurveList) Len() int { return len(l.entries) }

// Curve returns curve i, or nil.
func (l *CurveList) Curve(i int) *animcurve.Curve {
	if i < 0 || i >= len(l.entries) {
		return nil
	}
	return l.entries[i].Curve
}

func (l *CurveList) Color(i int) color.NRGBA {
	if i < 0 || i >= len(l.entries) {
		return color.NRGBA{}
	}
	return l.entries[i].Color
}

// Lookup returns the first curve named name.
func (l *CurveList) Lookup(name string) (*animcurve.Curve, bool) {
	for _, e := range l.entries {
		if e.Curve.Name == name {
			return e.Curve, true
		}
	}
	return nil, false
}

// All returns an iterator over all entries.
func (l *CurveList) All() iter.Seq2[int, CurveEntry] {
	return slices.All(l.entries)
}

// Visible returns an iterator over the entries whose curves are visible.
func (l *CurveList) Visible() iter.Seq2[int, CurveEntry] {
	return func(yield func(int, CurveEntry) bool) {
		for i, e := range l.entries {
			if !e.Curve.Visible {
				continue
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// DisplayRange returns the smallest rectangle enclosing every visible curve,
// for use as the display range of [animcurve.Curve.SampleForDrawing]. It
// reports false if no curve is visible.
func (l *CurveList) DisplayRange() (animcurve.Rect, bool) {
	var r animcurve.Rect
	found := false
	for _, e := range l.Visible() {
		if e.Curve.KeyframeCount() == 0 {
			continue
		}
		bbox := e.Curve.BoundingBox()
		if !found {
			r = bbox
			found = true
		} else {
			r = r.Union(bbox)
		}
	}
	return r, found
}

func (l *CurveList) clone() []CurveEntry {
	out := make([]CurveEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = CurveEntry{Curve: e.Curve.Clone(), Color: e.Color}
	}
	return out
}
