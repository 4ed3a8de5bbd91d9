// Package kinds implements the operation-kind registry.
//
// A Registry maps every kind tag to exactly one class value. It is filled
// once from an ordered static table during package initialization and is
// read-only while trees are optimized, so it carries no locking.
package kinds

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	cerrors "github.com/serpent-lang/serpent/internal/errors"
)

// Kind uniquely identifies one node class, e.g. "str.split(sep,maxsplit)".
type Kind string

func (k Kind) String() string { return string(k) }

// Family returns the part before the first dot ("str" for "str.join").
func (k Kind) Family() string {
	if i := strings.IndexByte(string(k), '.'); i >= 0 {
		return string(k[:i])
	}
	return string(k)
}

// Method returns the method name without family and arity suffix.
func (k Kind) Method() string {
	s := string(k)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return s
}

// Registry is an append-only, ordered kind -> class mapping.
type Registry[C comparable] struct {
	version *semver.Version
	order   []Kind
	byKind  map[Kind]C
}

// NewRegistry creates an empty registry for a catalog of the given version.
func NewRegistry[C comparable](version *semver.Version) *Registry[C] {
	return &Registry[C]{
		version: version,
		byKind:  make(map[Kind]C),
	}
}

// Register binds kind to cls. Registering the identical class again is a
// no-op; binding an already registered kind to another class fails with a
// configuration error.
func (r *Registry[C]) Register(kind Kind, cls C) error {
	if existing, ok := r.byKind[kind]; ok {
		if existing == cls {
			return nil
		}
		return cerrors.DuplicateKind(string(kind), existing, cls)
	}
	r.byKind[kind] = cls
	r.order = append(r.order, kind)
	return nil
}

// MustRegister is Register for init-time tables.
func (r *Registry[C]) MustRegister(kind Kind, cls C) {
	if err := r.Register(kind, cls); err != nil {
		panic(err)
	}
}

// Lookup returns the class registered for kind.
func (r *Registry[C]) Lookup(kind Kind) (C, error) {
	cls, ok := r.byKind[kind]
	if !ok {
		var zero C
		return zero, cerrors.UnknownKind(string(kind))
	}
	return cls, nil
}

// Has reports whether kind is registered.
func (r *Registry[C]) Has(kind Kind) bool {
	_, ok := r.byKind[kind]
	return ok
}

// IterateByPrefix returns the classes whose kind starts with prefix, in
// registration order.
func (r *Registry[C]) IterateByPrefix(prefix string) []C {
	var out []C
	for _, k := range r.order {
		if strings.HasPrefix(string(k), prefix) {
			out = append(out, r.byKind[k])
		}
	}
	return out
}

// KindsByPrefix is IterateByPrefix returning the kinds themselves.
func (r *Registry[C]) KindsByPrefix(prefix string) []Kind {
	var out []Kind
	for _, k := range r.order {
		if strings.HasPrefix(string(k), prefix) {
			out = append(out, k)
		}
	}
	return out
}

// Kinds returns every kind in registration order.
func (r *Registry[C]) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// SortedKinds returns every kind in lexical order.
func (r *Registry[C]) SortedKinds() []Kind {
	out := r.Kinds()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered kinds.
func (r *Registry[C]) Len() int { return len(r.order) }

// Version returns the catalog version.
func (r *Registry[C]) Version() *semver.Version { return r.version }

// Satisfies checks the catalog version against a constraint such as
// ">=1.0.0, <2.0.0".
func (r *Registry[C]) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}
	return c.Check(r.version), nil
}
