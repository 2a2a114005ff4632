package resolver

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateSource is returned when a name is already registered for a role.
var ErrDuplicateSource = errors.New("source already registered")

// ErrInvalidSource is returned for empty names or nil collaborators.
var ErrInvalidSource = errors.New("invalid source")

type entry[T any] struct {
	name string
	kind SourceKind
	impl T
}

// registry is an ordered list of named collaborators. It is not safe for concurrent
// use on its own; the Resolver guards it.
type registry[T any] struct {
	entries []entry[T]
}

func (r *registry[T]) add(name string, kind SourceKind, impl T, isNil bool) error {
	if name == "" || isNil {
		return fmt.Errorf("%w: name %q", ErrInvalidSource, name)
	}
	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, name)
	}
	r.entries = append(r.entries, entry[T]{name: name, kind: kind, impl: impl})
	return nil
}

func (r *registry[T]) remove(name string) bool {
	i := r.index(name)
	if i < 0 {
		return false
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return true
}

func (r *registry[T]) index(name string) int {
	return slices.IndexFunc(r.entries, func(e entry[T]) bool { return e.name == name })
}

// snapshot returns a copy so callers can iterate without holding the lock.
func (r *registry[T]) snapshot() []entry[T] {
	return slices.Clone(r.entries)
}

// filter returns the entries of the given kind, preserving order.
func (r *registry[T]) filter(kind SourceKind) []entry[T] {
	var out []entry[T]
	for _, e := range r.entries {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (r *registry[T]) registrations(role Role, tagged bool) []Registration {
	out := make([]Registration, 0, len(r.entries))
	for i, e := range r.entries {
		reg := Registration{Name: e.name, Role: role, Position: i}
		if tagged {
			reg.Kind = e.kind.String()
		}
		out = append(out, reg)
	}
	return out
}
