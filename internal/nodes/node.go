// Package nodes defines the expression nodes the optimizer rewrites.
//
// Every node has a kind from the registry, a source span, a parent link
// and a declared result shape. Operations get their behavior from a Spec
// descriptor: the child roles, the shape, the may-raise policy and the
// fold function executed when all children are constants.
//
// Trees are rewritten by one goroutine at a time. The registry is filled
// during package initialization and is read-only afterwards.
package nodes

import (
	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/pyexc"
	"github.com/serpent-lang/serpent/internal/shape"
)

// Leaf kinds.
const (
	KindConstant    kinds.Kind = "constant"
	KindOmitted     kinds.Kind = "constant.omitted"
	KindVariableRef kinds.Kind = "variable.ref"
	KindModule      kinds.Kind = "module"
)

// Node is the interface shared by every expression node.
type Node interface {
	// Kind identifies the node class. It never changes.
	Kind() kinds.Kind
	// SourceRef is the provenance of the node, fixed at construction.
	SourceRef() position.Span
	// Parent is the node that owns this one, nil for roots and detached nodes.
	Parent() Node

	TypeShape() shape.Tag
	IsCompileTimeConstant() bool
	// CompileTimeConstant is the value of a constant node, nil otherwise.
	CompileTimeConstant() starlark.Value

	// ChildNodes returns the children in role order.
	ChildNodes() []Node
	ReplaceChild(old, new Node) error

	// MayRaiseException reports whether evaluating the node may raise an
	// exception that a handler for exc would see.
	MayRaiseException(exc *pyexc.Class) bool

	// ComputeExpression gives the node a chance to simplify itself. It
	// returns the replacement node (the node itself when nothing changed),
	// the subtree the replacement made dead, and the exception class the
	// computation is known to raise.
	ComputeExpression(tc TraceCollection) (Node, Node, *pyexc.Class)

	// IterationLength is the number of elements iterating the result
	// yields, when that is known statically.
	IterationLength() (int, bool)

	String() string

	setParent(p Node)
}

// base carries the fields every node has.
type base struct {
	span   position.Span
	parent Node
}

func (b *base) SourceRef() position.Span { return b.span }
func (b *base) Parent() Node             { return b.parent }
func (b *base) setParent(p Node)         { b.parent = p }

// Walk visits n and its descendants depth first, children before parents.
// Returning false from fn stops the walk.
func Walk(n Node, fn func(Node) bool) bool {
	for _, c := range n.ChildNodes() {
		if !Walk(c, fn) {
			return false
		}
	}
	return fn(n)
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node) bool {
		total++
		return true
	})
	return total
}
