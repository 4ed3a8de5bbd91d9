package nodes

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/pyexc"
	"github.com/serpent-lang/serpent/internal/shape"
)

// Operation is a node whose behavior is described by a Spec.
type Operation struct {
	base
	holder
	spec *Spec

	// raised is the class a constant fold of this node raised.
	raised *pyexc.Class

	// last fold attempt, for idempotent recomputation
	lastTC      TraceCollection
	lastVersion int
}

// NewOperation creates a node of spec with one child per role.
func NewOperation(spec *Spec, span position.Span, children ...Node) (*Operation, error) {
	o := &Operation{base: base{span: span}, spec: spec}
	if err := o.holder.init(o, spec.Kind, spec.Roles, children); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Operation) Kind() kinds.Kind     { return o.spec.Kind }
func (o *Operation) Spec() *Spec          { return o.spec }
func (o *Operation) TypeShape() shape.Tag { return o.spec.Shape }

func (o *Operation) IsCompileTimeConstant() bool         { return false }
func (o *Operation) CompileTimeConstant() starlark.Value { return nil }

// RaisedClass is the exception a constant fold of the node raised, if any.
func (o *Operation) RaisedClass() *pyexc.Class { return o.raised }

func (o *Operation) IterationLength() (int, bool) {
	if o.spec.IterLen > 0 {
		return o.spec.IterLen, true
	}
	return 0, false
}

func (o *Operation) MayRaiseExceptionOperation() bool {
	return o.spec.MayRaiseExceptionOperation()
}

func (o *Operation) MayRaiseException(exc *pyexc.Class) bool {
	for _, c := range o.children {
		if c.MayRaiseException(exc) {
			return true
		}
	}
	if o.spec.MayRaiseExceptionOperation() {
		return true
	}
	return o.raised != nil && o.raised.Related(exc)
}

// Description names the computation for diagnostics and logs.
func (o *Operation) Description() string {
	name := o.spec.Kind.Family() + "." + o.spec.Kind.Method()
	if o.spec.Kind.Family() == "builtin" {
		name = o.spec.Kind.Method()
	}
	return fmt.Sprintf("Built-in '%s' with constant values.", name)
}

// userProvided is inherited from the primary child.
func (o *Operation) userProvided() bool {
	if c, ok := o.children[0].(*Constant); ok {
		return c.UserProvided()
	}
	return false
}

func (o *Operation) ComputeExpression(tc TraceCollection) (Node, Node, *pyexc.Class) {
	if o.lastTC != nil && o.lastTC == tc && o.lastVersion == o.version {
		return o, nil, nil
	}
	o.lastTC, o.lastVersion = tc, o.version
	if o.spec.Compute != nil {
		return o.spec.Compute(o, tc)
	}
	return computeGeneric(o, tc)
}

func computeGeneric(o *Operation, tc TraceCollection) (Node, Node, *pyexc.Class) {
	if o.allConstant() {
		values := make([]starlark.Value, len(o.children))
		for i, c := range o.children {
			values[i] = c.CompileTimeConstant()
		}
		spec := o.spec
		result, exc := tc.GetCompileTimeComputationResult(o, func() (starlark.Value, error) {
			return spec.Call(values)
		}, o.Description(), o.userProvided())
		if exc != nil {
			o.raised = exc
			return o, nil, exc
		}
		if result != nil && result != Node(o) {
			return result, o, nil
		}
	}
	if o.MayRaiseException(pyexc.BaseException) {
		tc.OnExceptionRaiseExit(pyexc.BaseException)
	}
	return o, nil, nil
}

// computeNeverFold is used by codec operations: their result depends on
// the runtime codec registry.
func computeNeverFold(o *Operation, tc TraceCollection) (Node, Node, *pyexc.Class) {
	tc.OnExceptionRaiseExit(pyexc.BaseException)
	return o, nil, nil
}

func (o *Operation) String() string {
	parts := make([]string, len(o.children))
	for i, c := range o.children {
		parts[i] = c.String()
	}
	if o.spec.Kind.Family() == "builtin" {
		return o.spec.Kind.Method() + "(" + strings.Join(parts, ", ") + ")"
	}
	args := parts[1:]
	var shown []string
	for i, a := range args {
		if c, ok := o.children[i+1].(*Constant); ok && c.IsOmitted() {
			continue
		}
		shown = append(shown, o.spec.Roles.Name(i+1)+"="+a)
	}
	return fmt.Sprintf("%s.%s(%s)", parts[0], o.spec.Kind.Method(), strings.Join(shown, ", "))
}
