package track

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"honnef.co/go/animcurve"
	"honnef.co/go/animcurve/sequence"
)

// Key is a value at a frame.
type Key struct {
	Frame float64
	Value Value
}

// Track animates one target. All keys have the track's kind and are sorted by
// frame.
type Track struct {
	Target string
	Lerp   sequence.LerpType

	kind Kind
	keys []Key
}

// NewTrack returns an empty track of the given kind.
func NewTrack(target string, kind Kind, lerp sequence.LerpType) *Track {
	return &Track{Target: target, Lerp: lerp, kind: kind}
}

func (tr *Track) Kind() Kind { return tr.kind }

// Keys returns a copy of the track's keys.
func (tr *Track) Keys() []Key { return slices.Clone(tr.keys) }

// SetKey sets the value at frame, replacing any key on the same frame, and
// returns the key's index.
func (tr *Track) SetKey(frame float64, v Value) (int, error) {
	if v == nil {
		return -1, errors.New("nil value")
	}
	if v.Kind() != tr.kind {
		return -1, fmt.Errorf("track %q: can't set %s key on %s track", tr.Target, v.Kind(), tr.kind)
	}
	i, found := slices.BinarySearchFunc(tr.keys, frame, func(k Key, frame float64) int {
		return cmp.Compare(k.Frame, frame)
	})
	if found {
		tr.keys[i].Value = v
		return i, nil
	}
	tr.keys = slices.Insert(tr.keys, i, Key{Frame: frame, Value: v})
	return i, nil
}

// RemoveKey removes key i.
func (tr *Track) RemoveKey(i int) bool {
	if i < 0 || i >= len(tr.keys) {
		return false
	}
	tr.keys = slices.Delete(tr.keys, i, i+1)
	return true
}

// Sample returns the track's value at time. A track without keys samples to
// the zero value of its kind, except for quaternion tracks, which sample to
// [IdentityQuat].
//
// Scalars and vectors are sampled component by component. Quaternions are
// interpolated with [Quat.Slerp] between the surrounding keys, with the
// track's lerp type shaping the interpolation parameter.
func (tr *Track) Sample(time float64) Value {
	if tr.kind == KindQuat {
		return tr.sampleQuat(time)
	}
	n := tr.kind.Components()
	out := make([]float64, n)
	pts := make([]animcurve.Point, len(tr.keys))
	for c := range n {
		for i, k := range tr.keys {
			pts[i] = animcurve.Pt(k.Frame, k.Value.Components()[c])
		}
		out[c] = sequence.SampleCurveForAnimation(pts, time, tr.Lerp)
	}
	v, err := FromComponents(tr.kind, out)
	if err != nil {
		panic(err)
	}
	return v
}

func (tr *Track) sampleQuat(time float64) Quat {
	n := len(tr.keys)
	switch {
	case n == 0:
		return IdentityQuat
	case time <= tr.keys[0].Frame:
		return tr.keys[0].Value.(Quat).Normalize()
	case time >= tr.keys[n-1].Frame:
		return tr.keys[n-1].Value.(Quat).Normalize()
	}
	i, _ := slices.BinarySearchFunc(tr.keys, time, func(k Key, time float64) int {
		return cmp.Compare(k.Frame, time)
	})
	// keys[i-1].Frame < time <= keys[i].Frame
	k0, k1 := tr.keys[i-1], tr.keys[i]
	// Sample a unit ramp to get the lerp type's interpolation parameter.
	ramp := []animcurve.Point{animcurve.Pt(k0.Frame, 0), animcurve.Pt(k1.Frame, 1)}
	t := sequence.SampleCurveForAnimation(ramp, time, tr.Lerp)
	return k0.Value.(Quat).Slerp(k1.Value.(Quat), t)
}
