// Package astbridge converts expression syntax into node trees.
//
// Source is parsed with the Starlark parser, whose expression grammar is
// the subset of Python the node catalog covers: literals, attribute calls,
// len() and names. Constructs without a node (operators, comprehensions,
// non-constant displays) are rejected with ErrUnsupported.
package astbridge

import (
	"errors"
	"fmt"

	"go.starlark.net/syntax"

	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/position"
)

// ErrUnsupported marks syntax that has no node representation.
var ErrUnsupported = errors.New("unsupported expression")

// Converter turns parsed syntax of one file into nodes.
type Converter struct {
	file  *position.SourceFile
	exprs *ExpressionConverter
}

// NewConverter creates a converter for the source of filename.
func NewConverter(filename, src string) *Converter {
	c := &Converter{file: position.NewSourceFile(filename, src)}
	c.exprs = &ExpressionConverter{spans: c}
	return c
}

// File is the source the converter's spans refer to.
func (c *Converter) File() *position.SourceFile { return c.file }

// ParseExpr converts a single expression.
func ParseExpr(filename, src string) (nodes.Node, error) {
	return NewConverter(filename, src).Expr()
}

// ParseModule converts a file of expression statements into a module.
func ParseModule(name, filename, src string) (*nodes.Module, error) {
	return NewConverter(filename, src).Module(name)
}

// Expr parses the whole source as one expression.
func (c *Converter) Expr() (nodes.Node, error) {
	e, err := syntax.ParseExpr(c.file.Filename, c.file.Content, 0)
	if err != nil {
		return nil, err
	}
	return c.exprs.FromSyntax(e)
}

// Module parses the source as statements; each must be an expression.
func (c *Converter) Module(name string) (*nodes.Module, error) {
	f, err := syntax.Parse(c.file.Filename, c.file.Content, 0)
	if err != nil {
		return nil, err
	}
	m := nodes.NewModule(name, c.span(f))
	for _, stmt := range f.Stmts {
		es, ok := stmt.(*syntax.ExprStmt)
		if !ok {
			return nil, c.unsupported(stmt, "statement")
		}
		n, err := c.exprs.FromSyntax(es.X)
		if err != nil {
			return nil, err
		}
		if err := m.Append(n); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// span maps a syntax node to a source span. Starlark columns are
// 1-based; offsets are recomputed from the source text.
func (c *Converter) span(n syntax.Node) position.Span {
	start, end := n.Span()
	return position.Span{Start: c.pos(start), End: c.pos(end)}
}

func (c *Converter) pos(p syntax.Position) position.Position {
	if !p.IsValid() {
		return position.Position{}
	}
	return c.file.PositionOf(int(p.Line), int(p.Col))
}

func (c *Converter) unsupported(n syntax.Node, what string) error {
	start, _ := n.Span()
	return fmt.Errorf("%s: %w: %s", c.pos(start), ErrUnsupported, what)
}
