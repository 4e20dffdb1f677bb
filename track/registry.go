package track

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// ErrUnknownTarget is returned when applying a value to a target that hasn't
// been registered.
var ErrUnknownTarget = errors.New("unknown target")

type target struct {
	kind Kind
	set  func(Value)
}

// Registry binds target names to setters. The zero value is not usable; use
// [NewRegistry].
type Registry struct {
	targets map[string]target
}

func NewRegistry() *Registry {
	return &Registry{targets: map[string]target{}}
}

// ConcreteValue is satisfied by the concrete [Value] types.
type ConcreteValue interface {
	Scalar | Vec2 | Vec3 | Vec4 | Quat
	Value
}

// Register binds name to set. The target's kind is that of V. Registering a
// name twice is an error.
func Register[V ConcreteValue](r *Registry, name string, set func(V)) error {
	if _, ok := r.targets[name]; ok {
		return fmt.Errorf("target %q already registered", name)
	}
	var zero V
	r.targets[name] = target{
		kind: zero.Kind(),
		set:  func(v Value) { set(v.(V)) },
	}
	return nil
}

// Kind returns the kind of a registered target.
func (r *Registry) Kind(name string) (Kind, bool) {
	t, ok := r.targets[name]
	return t.kind, ok
}

// Names returns the registered target names in sorted order.
func (r *Registry) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(r.targets)))
}

// Apply passes v to the setter bound to name.
func (r *Registry) Apply(name string, v Value) error {
	t, ok := r.targets[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTarget, name)
	}
	if v == nil || v.Kind() != t.kind {
		return fmt.Errorf("target %q has kind %s, got %v", name, t.kind, v)
	}
	t.set(v)
	return nil
}

// ApplyTracks samples each track at time and applies the result to the track's
// target. It applies as many tracks as it can and returns the joined errors of
// the rest.
func (r *Registry) ApplyTracks(time float64, tracks ...*Track) error {
	var errs []error
	for _, tr := range tracks {
		if err := r.Apply(tr.Target, tr.Sample(time)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
