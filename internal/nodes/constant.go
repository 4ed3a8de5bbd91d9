package nodes

import (
	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/builtins"
	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/pyexc"
	"github.com/serpent-lang/serpent/internal/shape"
)

// Constant is a leaf holding a compile-time value. Values are frozen on
// construction; folds that need to mutate work on copies.
type Constant struct {
	base
	value        starlark.Value
	userProvided bool
}

// NewConstant creates a constant. userProvided marks values written in the
// source, as opposed to values produced by folding.
func NewConstant(v starlark.Value, userProvided bool, span position.Span) *Constant {
	v.Freeze()
	return &Constant{base: base{span: span}, value: v, userProvided: userProvided}
}

// NewOmitted creates the placeholder for an argument left out in the source.
func NewOmitted(span position.Span) *Constant {
	return &Constant{base: base{span: span}, value: builtins.Omitted}
}

func (c *Constant) Kind() kinds.Kind {
	if builtins.IsOmitted(c.value) {
		return KindOmitted
	}
	return KindConstant
}

func (c *Constant) Value() starlark.Value { return c.value }
func (c *Constant) UserProvided() bool    { return c.userProvided }
func (c *Constant) IsOmitted() bool       { return builtins.IsOmitted(c.value) }

func (c *Constant) TypeShape() shape.Tag { return ShapeOf(c.value) }

func (c *Constant) IsCompileTimeConstant() bool         { return true }
func (c *Constant) CompileTimeConstant() starlark.Value { return c.value }
func (c *Constant) ChildNodes() []Node                  { return nil }
func (c *Constant) MayRaiseException(*pyexc.Class) bool { return false }

func (c *Constant) ReplaceChild(old, _ Node) error {
	return cerrors.ChildNotFound(string(c.Kind()), old)
}

func (c *Constant) ComputeExpression(TraceCollection) (Node, Node, *pyexc.Class) {
	return c, nil, nil
}

func (c *Constant) IterationLength() (int, bool) {
	if c.IsOmitted() {
		return 0, false
	}
	return builtins.Length(c.value)
}

func (c *Constant) String() string {
	return c.value.String()
}

// ShapeOf maps a constant value to its shape.
func ShapeOf(v starlark.Value) shape.Tag {
	switch v.(type) {
	case starlark.String:
		return shape.String
	case starlark.Bytes:
		return shape.Bytes
	case starlark.Bool:
		return shape.Bool
	case starlark.Int:
		return shape.Int
	case *starlark.List:
		return shape.List
	case starlark.Tuple:
		return shape.Tuple
	case *starlark.Dict:
		return shape.Dict
	case starlark.NoneType:
		return shape.NoneType
	}
	return shape.Unknown
}

// VariableRef is an opaque reference to an already resolved local. Its
// value is unknown at compile time.
type VariableRef struct {
	base
	name string
}

func NewVariableRef(name string, span position.Span) *VariableRef {
	return &VariableRef{base: base{span: span}, name: name}
}

func (v *VariableRef) Name() string                        { return v.name }
func (v *VariableRef) Kind() kinds.Kind                    { return KindVariableRef }
func (v *VariableRef) TypeShape() shape.Tag                { return shape.Unknown }
func (v *VariableRef) IsCompileTimeConstant() bool         { return false }
func (v *VariableRef) CompileTimeConstant() starlark.Value { return nil }
func (v *VariableRef) ChildNodes() []Node                  { return nil }
func (v *VariableRef) MayRaiseException(*pyexc.Class) bool { return false }
func (v *VariableRef) IterationLength() (int, bool)        { return 0, false }
func (v *VariableRef) String() string                      { return v.name }

func (v *VariableRef) ReplaceChild(old, _ Node) error {
	return cerrors.ChildNotFound(string(KindVariableRef), old)
}

func (v *VariableRef) ComputeExpression(TraceCollection) (Node, Node, *pyexc.Class) {
	return v, nil, nil
}
