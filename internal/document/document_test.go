package document

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"honnef.co/go/animcurve"
	"honnef.co/go/animcurve/sequence"
	"honnef.co/go/animcurve/track"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

const stepYAML = `version: 1
last_frame: 24
curves:
  - name: opacity
    color: "#ff8000"
    keyframes:
      - {time: 10, value: 9, broken: true, in: {mode: constant}}
      - {time: 0, value: 5, broken: true, out: {mode: constant}}
      - {time: 20, value: 0, smooth: flat}
tracks:
  - target: offset
    kind: vec2
    lerp: linear
    keys:
      - {frame: 0, value: [0, 0]}
      - {frame: 10, value: [10, -4]}
`

func TestBuildYAML(t *testing.T) {
	doc, err := Decode([]byte(stepYAML), YAML)
	if err != nil {
		t.Fatal(err)
	}
	s, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 24.0, s.Curves.LastFrame())
	diff(t, color.NRGBA{0xff, 0x80, 0, 0xff}, s.Curves.Color(0))
	c, ok := s.Curves.Lookup("opacity")
	if !ok {
		t.Fatal("curve opacity missing")
	}
	diff(t, []animcurve.Point{animcurve.Pt(0, 5), animcurve.Pt(10, 9), animcurve.Pt(20, 0)}, c.Points())
	if v := c.SampleAtTime(7); v != 5 {
		t.Errorf("got %v at step, want 5", v)
	}
	k, _ := c.Keyframe(2)
	diff(t, animcurve.SmoothFlat, k.In.Smooth)

	if len(s.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(s.Tracks))
	}
	diff(t, track.Vec2{5, -2}, s.Tracks[0].Sample(5))
}

func TestBuildTOML(t *testing.T) {
	const src = `
version = 1
last_frame = 10.0

[[curves]]
name = "x"
hidden = true

[[curves.keyframes]]
time = 0.0
value = 0.0

[[curves.keyframes]]
time = 10.0
value = 4.0
broken = true
in = { mode = "free", weighted = true, offset = [-5.0, 0.0] }
`
	doc, err := Decode([]byte(src), TOML)
	if err != nil {
		t.Fatal(err)
	}
	s, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	c := s.Curves.Curve(0)
	if c.Visible {
		t.Error("hidden curve is visible")
	}
	diff(t, sequence.DefaultColor(0), s.Curves.Color(0))
	k, _ := c.Keyframe(1)
	diff(t, animcurve.Tangent{
		Broken:    animcurve.BrokenFree,
		Direction: animcurve.Vec(-1, 0),
		Weight:    5,
		Weighted:  true,
	}, k.In)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"one keyframe", `{curves: [{name: a, keyframes: [{time: 0, value: 0}]}]}`},
		{"duplicate", `{curves: [{name: a, keyframes: [{time: 0, value: 0}, {time: 0, value: 1}, {time: 5, value: 0}]}]}`},
		{"unpaired constant", `{curves: [{name: a, keyframes: [{time: 0, value: 0, broken: true, out: {mode: constant}}, {time: 5, value: 1, smooth: auto}]}]}`},
		{"offset on auto", `{curves: [{name: a, keyframes: [{time: 0, value: 0, out: {offset: [1, 1]}}, {time: 5, value: 1}]}]}`},
		{"mode on smooth", `{curves: [{name: a, keyframes: [{time: 0, value: 0, out: {mode: linear}}, {time: 5, value: 1}]}]}`},
		{"bad smooth type", `{curves: [{name: a, keyframes: [{time: 0, value: 0, smooth: unused}, {time: 5, value: 1}]}]}`},
		{"bad color", `{curves: [{name: a, color: red, keyframes: [{time: 0, value: 0}, {time: 5, value: 1}]}]}`},
		{"bad kind", `{tracks: [{target: a, kind: mat4, lerp: linear, keys: []}]}`},
		{"short value", `{tracks: [{target: a, kind: vec3, lerp: linear, keys: [{frame: 0, value: [1, 2]}]}]}`},
		{"version", `{version: 7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.src), YAML)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := doc.Build(); err == nil {
				t.Error("Build succeeded")
			}
		})
	}
}

func TestDecodeUnknownFields(t *testing.T) {
	tests := []struct {
		f   Format
		src []byte
	}{
		{YAML, []byte("version: 1\nlast_frame: 10\nframerate: 30\n")},
		{TOML, []byte("version = 1\nframerate = 30\n")},
	}
	for _, tt := range tests {
		if _, err := Decode(tt.src, tt.f); err == nil {
			t.Errorf("%s: decoded unknown field", tt.f)
		}
	}

	data, err := cborEnc.Marshal(map[string]any{"version": 1, "framerate": 30})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data, CBOR); err == nil {
		t.Error("cbor: decoded unknown field")
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml":     YAML,
		"dir/b.YML":  YAML,
		"c.toml":     TOML,
		"d.cbor":     CBOR,
		"/tmp/e.yml": YAML,
	} {
		got, err := FormatOf(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
		}
		diff(t, want, got)
	}
	if _, err := FormatOf("curves.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got error %v, want %v", err, ErrUnknownFormat)
	}
}

// testScene builds a scene that uses every kind of tangent.
func testScene(t *testing.T) *Scene {
	t.Helper()
	c, err := animcurve.NewCurve("y", animcurve.Pt(0, 0), animcurve.Pt(40, 10))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []animcurve.Point{animcurve.Pt(10, 5), animcurve.Pt(20, -3), animcurve.Pt(30, 8)} {
		if _, err := c.AddKeyframe(p.X, p.Y); err != nil {
			t.Fatal(err)
		}
	}
	c.SetKeyframeSmoothType(0, animcurve.SmoothFlat)
	c.SetBothTangentsWeighted(1, true)
	c.SetOutTangentOffset(1, animcurve.Vec(4, 2))
	c.SetInTangentWeighted(1, true)
	c.SetKeyframeBrokenType(2, animcurve.BrokenLinear, animcurve.BrokenFree)
	c.SetOutTangentOffset(2, animcurve.Vec(2, -6))
	c.SetOutTangentBrokenType(3, animcurve.BrokenConstant)

	s := &Scene{Curves: sequence.NewKeyframeSequence(40)}
	s.Curves.Add(c, color.NRGBA{0x12, 0x34, 0x56, 0xff})
	rot := track.NewTrack("rot", track.KindQuat, sequence.Smooth)
	rot.SetKey(0, track.IdentityQuat)
	rot.SetKey(40, track.QuatFromAxisAngle(track.Vec3{0, 1, 0}, 2))
	s.Tracks = append(s.Tracks, rot)
	return s
}

func TestRoundTrip(t *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-9)
	want := testScene(t)
	for _, f := range []Format{YAML, TOML, CBOR} {
		t.Run(f.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene."+f.String())
			if err := Write(path, FromScene(want)); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, want.Curves.Curve(0).Keyframes(), got.Curves.Curve(0).Keyframes(), opt)
			diff(t, want.Curves.Color(0), got.Curves.Color(0))
			diff(t, want.Tracks[0].Keys(), got.Tracks[0].Keys(), opt)
			diff(t, want.Tracks[0].Lerp, got.Tracks[0].Lerp)
		})
	}
}

func TestRoundTripEndedStep(t *testing.T) {
	edits := []func(c *animcurve.Curve){
		func(c *animcurve.Curve) { c.SetInTangentBrokenType(1, animcurve.BrokenFree) },
		func(c *animcurve.Curve) { c.SetKeyframeSmoothType(1, animcurve.SmoothAuto) },
		func(c *animcurve.Curve) { c.SetOutTangentBrokenType(0, animcurve.BrokenLinear) },
	}
	want := &Scene{Curves: sequence.NewKeyframeSequence(10)}
	for _, edit := range edits {
		c, err := animcurve.NewCurve("c", animcurve.Pt(0, 5), animcurve.Pt(10, 9))
		if err != nil {
			t.Fatal(err)
		}
		c.SetOutTangentBrokenType(0, animcurve.BrokenConstant)
		edit(c)
		if v := c.SampleAtTime(7); v == 5 {
			t.Fatalf("got %v at 7 after ending the step", v)
		}
		want.Curves.Add(c, color.NRGBA{})
	}

	opt := cmpopts.EquateApprox(0, 1e-9)
	for _, f := range []Format{YAML, TOML, CBOR} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(FromScene(want), f)
			if err != nil {
				t.Fatal(err)
			}
			doc, err := Decode(data, f)
			if err != nil {
				t.Fatal(err)
			}
			got, err := doc.Build()
			if err != nil {
				t.Fatal(err)
			}
			for i := range len(edits) {
				diff(t, want.Curves.Curve(i).Keyframes(), got.Curves.Curve(i).Keyframes(), opt)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read("scene.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got error %v, want %v", err, ErrUnknownFormat)
	}
	if _, err := Read(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("read missing file")
	}
}
