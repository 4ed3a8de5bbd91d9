package nodes_test

import (
	"errors"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/pyexc"
)

func kindOf(s string) kinds.Kind { return kinds.Kind(s) }

// countingCollection runs computations directly and counts them.
type countingCollection struct {
	calls int
	exits []*pyexc.Class
}

func newCountingCollection() *countingCollection { return &countingCollection{} }

func (c *countingCollection) GetCompileTimeComputationResult(n nodes.Node, computation nodes.Computation, _ string, user bool) (nodes.Node, *pyexc.Class) {
	c.calls++
	v, err := computation()
	if err != nil {
		var pe *pyexc.Error
		if errors.As(err, &pe) {
			c.exits = append(c.exits, pe.Class)
			return n, pe.Class
		}
		return n, nil
	}
	return nodes.NewConstant(v, user, n.SourceRef()), nil
}

func (c *countingCollection) OnExceptionRaiseExit(exc *pyexc.Class) {
	c.exits = append(c.exits, exc)
}

func bytesConst(s string) *nodes.Constant {
	return nodes.NewConstant(starlark.Bytes(s), true, noSpan)
}

func listConst(vs ...starlark.Value) *nodes.Constant {
	return nodes.NewConstant(starlark.NewList(vs), true, noSpan)
}
