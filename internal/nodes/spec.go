package nodes

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/builtins"
	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/pyexc"
	"github.com/serpent-lang/serpent/internal/shape"
)

// Fold functions take the constant child values in role order.
type (
	Fold1 func(a starlark.Value) (starlark.Value, error)
	Fold2 func(a, b starlark.Value) (starlark.Value, error)
	Fold3 func(a, b, c starlark.Value) (starlark.Value, error)
	Fold4 func(a, b, c, d starlark.Value) (starlark.Value, error)
)

// ComputeFunc replaces the generic compute of an operation.
type ComputeFunc func(o *Operation, tc TraceCollection) (Node, Node, *pyexc.Class)

// Spec describes one operation node class. Arity variants of a method are
// separate specs.
type Spec struct {
	Kind  kinds.Kind
	Roles Roles
	Shape shape.Tag
	// MayRaise is the operation's own policy, independent of children.
	MayRaise bool
	// Note documents a conservative MayRaise.
	Note string
	// Fold is a Fold1..Fold4 matching the number of roles, nil for leaves.
	Fold interface{}
	// IterLen is the fixed element count of the result, 0 when unknown.
	IterLen int
	// Compute overrides the generic compute when set.
	Compute ComputeFunc

	leaf bool
}

// Arity is the number of children.
func (s *Spec) Arity() int { return s.Roles.Len() }

// IsLeaf is true for the constant, variable and module kinds.
func (s *Spec) IsLeaf() bool { return s.leaf }

// MayRaiseExceptionOperation is the policy ignoring children and folds.
func (s *Spec) MayRaiseExceptionOperation() bool {
	return s.MayRaise || s.Compute != nil
}

func (s *Spec) String() string { return string(s.Kind) }

func foldArity(f interface{}) int {
	switch f.(type) {
	case Fold1:
		return 1
	case Fold2:
		return 2
	case Fold3:
		return 3
	case Fold4:
		return 4
	}
	return -1
}

func (s *Spec) validate() error {
	if s.Kind == "" {
		return cerrors.BadDescriptor("", "empty kind")
	}
	if !s.Shape.Valid() {
		return cerrors.BadDescriptor(string(s.Kind), fmt.Sprintf("invalid shape %v", s.Shape))
	}
	if s.leaf {
		return nil
	}
	if got := foldArity(s.Fold); got != s.Roles.Len() {
		return cerrors.BadDescriptor(string(s.Kind),
			fmt.Sprintf("fold takes %d values but the node has %d roles %s", got, s.Roles.Len(), s.Roles))
	}
	return nil
}

// Call runs the fold on values, which must match the arity.
func (s *Spec) Call(values []starlark.Value) (starlark.Value, error) {
	switch f := s.Fold.(type) {
	case Fold1:
		return f(values[0])
	case Fold2:
		return f(values[0], values[1])
	case Fold3:
		return f(values[0], values[1], values[2])
	case Fold4:
		return f(values[0], values[1], values[2], values[3])
	}
	return nil, fmt.Errorf("%w: %s has no fold", builtins.ErrNotFoldable, s.Kind)
}

// narrow derives the fold of a shorter arity variant from the fold of the
// full signature by passing Omitted for the missing trailing arguments.
func narrow(full interface{}, arity int) interface{} {
	n := foldArity(full)
	if n == arity {
		return full
	}
	call := (&Spec{Fold: full}).Call
	pad := func(args ...starlark.Value) (starlark.Value, error) {
		for len(args) < n {
			args = append(args, builtins.Omitted)
		}
		return call(args)
	}
	switch arity {
	case 1:
		return Fold1(func(a starlark.Value) (starlark.Value, error) { return pad(a) })
	case 2:
		return Fold2(func(a, b starlark.Value) (starlark.Value, error) { return pad(a, b) })
	case 3:
		return Fold3(func(a, b, c starlark.Value) (starlark.Value, error) { return pad(a, b, c) })
	}
	return nil
}
