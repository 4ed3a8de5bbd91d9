package nodes

import (
	"strings"

	"go.starlark.net/starlark"

	cerrors "github.com/serpent-lang/serpent/internal/errors"
	"github.com/serpent-lang/serpent/internal/kinds"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/pyexc"
	"github.com/serpent-lang/serpent/internal/shape"
)

// Module is the root of a tree: an ordered list of expression statements.
type Module struct {
	base
	name       string
	statements []Node
}

func NewModule(name string, span position.Span) *Module {
	return &Module{base: base{span: span}, name: name}
}

func (m *Module) Name() string { return m.name }

// Append adds a parentless statement.
func (m *Module) Append(n Node) error {
	role := "statement"
	if n == nil {
		return cerrors.InvalidChild(string(KindModule), role, "nil child")
	}
	if n.Parent() != nil {
		return cerrors.InvalidChild(string(KindModule), role, "child is owned by another node")
	}
	n.setParent(m)
	m.statements = append(m.statements, n)
	return nil
}

func (m *Module) Kind() kinds.Kind                    { return KindModule }
func (m *Module) TypeShape() shape.Tag                { return shape.Unknown }
func (m *Module) IsCompileTimeConstant() bool         { return false }
func (m *Module) CompileTimeConstant() starlark.Value { return nil }
func (m *Module) IterationLength() (int, bool)        { return 0, false }

func (m *Module) ChildNodes() []Node {
	return append([]Node(nil), m.statements...)
}

func (m *Module) ReplaceChild(old, new Node) error {
	for i, s := range m.statements {
		if s != old {
			continue
		}
		if new == nil {
			return cerrors.InvalidChild(string(KindModule), "statement", "nil child")
		}
		if new.Parent() != nil {
			return cerrors.InvalidChild(string(KindModule), "statement", "child is owned by another node")
		}
		old.setParent(nil)
		new.setParent(m)
		m.statements[i] = new
		return nil
	}
	return cerrors.ChildNotFound(string(KindModule), old)
}

func (m *Module) MayRaiseException(exc *pyexc.Class) bool {
	for _, s := range m.statements {
		if s.MayRaiseException(exc) {
			return true
		}
	}
	return false
}

// ComputeExpression leaves the module in place; its statements are
// computed individually by the optimizer.
func (m *Module) ComputeExpression(TraceCollection) (Node, Node, *pyexc.Class) {
	return m, nil, nil
}

func (m *Module) String() string {
	lines := make([]string, len(m.statements))
	for i, s := range m.statements {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}
