// Package document reads and writes curve documents: keyframe curves and
// value tracks stored as YAML, TOML or CBOR.
//
// Curves are loaded by replaying edit operations on [animcurve.Curve], so a
// loaded curve obeys the same rules as one built interactively. Only tangent
// modes, weighted flags and the handles of free tangents are stored; everything
// else is recomputed by the resolver.
package document

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"honnef.co/go/animcurve"
	"honnef.co/go/animcurve/sequence"
	"honnef.co/go/animcurve/track"
)

// Version is the document version written by this package.
const Version = 1

type Document struct {
	Version   int         `yaml:"version" toml:"version" cbor:"version"`
	LastFrame float64     `yaml:"last_frame" toml:"last_frame" cbor:"last_frame"`
	Curves    []CurveSpec `yaml:"curves,omitempty" toml:"curves,omitempty" cbor:"curves,omitempty"`
	Tracks    []TrackSpec `yaml:"tracks,omitempty" toml:"tracks,omitempty" cbor:"tracks,omitempty"`
}

type CurveSpec struct {
	Name      string         `yaml:"name" toml:"name" cbor:"name"`
	Hidden    bool           `yaml:"hidden,omitempty" toml:"hidden,omitempty" cbor:"hidden,omitempty"`
	Color     string         `yaml:"color,omitempty" toml:"color,omitempty" cbor:"color,omitempty"` // #rrggbb
	Keyframes []KeyframeSpec `yaml:"keyframes" toml:"keyframes" cbor:"keyframes"`
}

type KeyframeSpec struct {
	Time  float64 `yaml:"time" toml:"time" cbor:"time"`
	Value float64 `yaml:"value" toml:"value" cbor:"value"`
	// Smooth is the smooth type of a smooth keyframe. Omitting both Smooth and
	// Broken makes the keyframe smooth and automatic.
	Smooth string `yaml:"smooth,omitempty" toml:"smooth,omitempty" cbor:"smooth,omitempty"`
	// Broken marks the keyframe broken. The modes of its sides are in In and
	// Out, and default to free.
	Broken bool         `yaml:"broken,omitempty" toml:"broken,omitempty" cbor:"broken,omitempty"`
	In     *TangentSpec `yaml:"in,omitempty" toml:"in,omitempty" cbor:"in,omitempty"`
	Out    *TangentSpec `yaml:"out,omitempty" toml:"out,omitempty" cbor:"out,omitempty"`
}

type TangentSpec struct {
	// Mode is the broken type of the side. It must be empty on smooth
	// keyframes.
	Mode     string `yaml:"mode,omitempty" toml:"mode,omitempty" cbor:"mode,omitempty"`
	Weighted bool   `yaml:"weighted,omitempty" toml:"weighted,omitempty" cbor:"weighted,omitempty"`
	// Offset is the handle's offset from the keyframe. Only free tangents
	// have one.
	Offset *[2]float64 `yaml:"offset,omitempty,flow" toml:"offset,omitempty" cbor:"offset,omitempty"`
}

type TrackSpec struct {
	Target string    `yaml:"target" toml:"target" cbor:"target"`
	Kind   string    `yaml:"kind" toml:"kind" cbor:"kind"`
	Lerp   string    `yaml:"lerp" toml:"lerp" cbor:"lerp"`
	Keys   []KeySpec `yaml:"keys" toml:"keys" cbor:"keys"`
}

type KeySpec struct {
	Frame float64   `yaml:"frame" toml:"frame" cbor:"frame"`
	Value []float64 `yaml:"value,flow" toml:"value" cbor:"value"`
}

// Scene is the in-memory form of a document.
type Scene struct {
	Curves *sequence.KeyframeSequence
	Tracks []*track.Track
}

// Build turns the document into a scene.
func (doc *Document) Build() (*Scene, error) {
	if doc.Version != 0 && doc.Version != Version {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	s := &Scene{Curves: sequence.NewKeyframeSequence(doc.LastFrame)}
	for _, cs := range doc.Curves {
		c, err := cs.build()
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", cs.Name, err)
		}
		col, err := parseColor(cs.Color)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", cs.Name, err)
		}
		s.Curves.Add(c, col)
	}
	for _, ts := range doc.Tracks {
		tr, err := ts.build()
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", ts.Target, err)
		}
		s.Tracks = append(s.Tracks, tr)
	}
	return s, nil
}

func (cs CurveSpec) build() (*animcurve.Curve, error) {
	if len(cs.Keyframes) < 2 {
		return nil, fmt.Errorf("need at least 2 keyframes, got %d", len(cs.Keyframes))
	}
	specs := slices.Clone(cs.Keyframes)
	slices.SortStableFunc(specs, func(a, b KeyframeSpec) int {
		return cmp.Compare(a.Time, b.Time)
	})
	first, last := specs[0], specs[len(specs)-1]
	c, err := animcurve.NewCurve(cs.Name, animcurve.Pt(first.Time, first.Value), animcurve.Pt(last.Time, last.Value))
	if err != nil {
		return nil, err
	}
	c.Visible = !cs.Hidden
	for _, ks := range specs[1 : len(specs)-1] {
		if _, err := c.AddKeyframe(ks.Time, ks.Value); err != nil {
			return nil, fmt.Errorf("keyframe at %v: %w", ks.Time, err)
		}
	}

	for i, ks := range specs {
		if err := ks.applyModes(c, i); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
	}
	// Constant tangents propagate to neighbors, so compare the result with
	// what was asked for once every mode is set.
	for i, ks := range specs {
		if err := ks.check(c, i); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
	}
	for i, ks := range specs {
		if err := ks.applyHandles(c, i); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
	}
	return c, nil
}

func (ks KeyframeSpec) sideMode(side animcurve.Side) string {
	ts := ks.In
	if side == animcurve.Out {
		ts = ks.Out
	}
	if ts == nil {
		return ""
	}
	return ts.Mode
}

func (ks KeyframeSpec) modes() (animcurve.SmoothType, animcurve.BrokenType, animcurve.BrokenType, error) {
	if !ks.Broken {
		if ks.sideMode(animcurve.In) != "" || ks.sideMode(animcurve.Out) != "" {
			return 0, 0, 0, fmt.Errorf("tangent modes on a smooth keyframe")
		}
		name := cmp.Or(ks.Smooth, "auto")
		typ, err := animcurve.ParseSmoothType(name)
		if err != nil || typ == animcurve.SmoothUnused {
			return 0, 0, 0, fmt.Errorf("invalid smooth type %q", name)
		}
		return typ, 0, 0, nil
	}
	if ks.Smooth != "" {
		return 0, 0, 0, fmt.Errorf("smooth type on a broken keyframe")
	}
	var out [2]animcurve.BrokenType
	for _, side := range []animcurve.Side{animcurve.In, animcurve.Out} {
		name := cmp.Or(ks.sideMode(side), "free")
		typ, err := animcurve.ParseBrokenType(name)
		if err != nil || typ == animcurve.BrokenUnused {
			return 0, 0, 0, fmt.Errorf("invalid %s tangent mode %q", side, name)
		}
		out[side] = typ
	}
	return 0, out[animcurve.In], out[animcurve.Out], nil
}

func (ks KeyframeSpec) applyModes(c *animcurve.Curve, i int) error {
	smooth, in, out, err := ks.modes()
	if err != nil {
		return err
	}
	if ks.Broken {
		c.SetKeyframeBrokenType(i, in, out)
	} else {
		c.SetKeyframeSmoothType(i, smooth)
	}
	return nil
}

func (ks KeyframeSpec) check(c *animcurve.Curve, i int) error {
	smooth, in, out, _ := ks.modes()
	k, _ := c.Keyframe(i)
	if i > 0 {
		prev, _ := c.Keyframe(i - 1)
		if prev.IsStep() != (k.Type == animcurve.Broken && k.In.Broken == animcurve.BrokenConstant) {
			return fmt.Errorf("constant tangents must come in pairs across a segment")
		}
	}
	if ks.Broken {
		if k.Type != animcurve.Broken || k.In.Broken != in || k.Out.Broken != out {
			return fmt.Errorf("constant tangents must come in pairs across a segment")
		}
	} else if k.Type != animcurve.Smooth || k.Out.Smooth != smooth {
		return fmt.Errorf("smooth keyframe next to a constant segment")
	}
	return nil
}

func (ks KeyframeSpec) applyHandles(c *animcurve.Curve, i int) error {
	k, _ := c.Keyframe(i)
	if ts := ks.In; ts != nil && ts.Weighted {
		if !c.SetInTangentWeighted(i, true) {
			return fmt.Errorf("first keyframe has no in-tangent")
		}
	}
	if ts := ks.Out; ts != nil && ts.Weighted {
		if !c.SetOutTangentWeighted(i, true) {
			return fmt.Errorf("last keyframe has no out-tangent")
		}
	}

	for _, side := range []animcurve.Side{animcurve.In, animcurve.Out} {
		ts := ks.In
		if side == animcurve.Out {
			ts = ks.Out
		}
		if ts == nil || ts.Offset == nil {
			continue
		}
		t := k.Tangent(side)
		if t.Smooth != animcurve.SmoothFree && t.Broken != animcurve.BrokenFree {
			return fmt.Errorf("%s tangent has an offset but isn't free", side)
		}
		off := animcurve.Vec(ts.Offset[0], ts.Offset[1])
		var ok bool
		if side == animcurve.In {
			ok = c.SetInTangentOffset(i, off)
		} else {
			ok = c.SetOutTangentOffset(i, off)
		}
		if !ok {
			return fmt.Errorf("keyframe has no %s tangent", side)
		}
	}
	return nil
}

func (ts TrackSpec) build() (*track.Track, error) {
	kind, err := track.ParseKind(ts.Kind)
	if err != nil {
		return nil, err
	}
	lerp, err := sequence.ParseLerpType(cmp.Or(ts.Lerp, "linear"))
	if err != nil {
		return nil, err
	}
	tr := track.NewTrack(ts.Target, kind, lerp)
	for _, ks := range ts.Keys {
		v, err := track.FromComponents(kind, ks.Value)
		if err != nil {
			return nil, fmt.Errorf("key at frame %v: %w", ks.Frame, err)
		}
		if _, err := tr.SetKey(ks.Frame, v); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

// FromScene returns the document describing s.
func FromScene(s *Scene) *Document {
	doc := &Document{Version: Version, LastFrame: s.Curves.LastFrame()}
	for _, e := range s.Curves.All() {
		doc.Curves = append(doc.Curves, curveSpec(e))
	}
	for _, tr := range s.Tracks {
		ts := TrackSpec{Target: tr.Target, Kind: tr.Kind().String(), Lerp: tr.Lerp.String()}
		for _, k := range tr.Keys() {
			ts.Keys = append(ts.Keys, KeySpec{Frame: k.Frame, Value: k.Value.Components()})
		}
		doc.Tracks = append(doc.Tracks, ts)
	}
	return doc
}

func curveSpec(e sequence.CurveEntry) CurveSpec {
	cs := CurveSpec{
		Name:   e.Curve.Name,
		Hidden: !e.Curve.Visible,
		Color:  formatColor(e.Color),
	}
	keys := e.Curve.Keyframes()
	for i, k := range keys {
		ks := KeyframeSpec{Time: k.Time(), Value: k.Value()}
		in, out := tangentSpec(k.In, i > 0), tangentSpec(k.Out, i < len(keys)-1)
		if k.Type == animcurve.Broken {
			ks.Broken = true
			in.Mode, out.Mode = k.In.Broken.String(), k.Out.Broken.String()
		} else {
			if k.Out.Smooth != animcurve.SmoothAuto {
				ks.Smooth = k.Out.Smooth.String()
			}
			// The in-handle is mirrored from the out-handle; only its weight
			// can differ.
			if i < len(keys)-1 && !in.Weighted {
				in.Offset = nil
			}
		}
		if in != (TangentSpec{}) {
			ks.In = &in
		}
		if out != (TangentSpec{}) {
			ks.Out = &out
		}
		cs.Keyframes = append(cs.Keyframes, ks)
	}
	return cs
}

func tangentSpec(t animcurve.Tangent, editable bool) TangentSpec {
	var ts TangentSpec
	if !editable {
		return ts
	}
	ts.Weighted = t.Weighted
	if t.Smooth == animcurve.SmoothFree || t.Broken == animcurve.BrokenFree {
		off := t.Offset()
		ts.Offset = &[2]float64{off.X, off.Y}
	}
	return ts
}

func parseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(s), "#%02x%02x%02x", &r, &g, &b); err != nil || len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func formatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
