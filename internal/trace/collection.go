// Package trace implements the trace collection nodes consult while the
// optimizer computes them.
//
// A Collection runs constant computations on behalf of operation nodes and
// records where control may leave through an exception. One collection
// serves one pass over one module tree and is not safe for concurrent use.
package trace

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/serpent-lang/serpent/internal/builtins"
	"github.com/serpent-lang/serpent/internal/cli"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/pyexc"
)

// DefaultMaxConstantSize bounds the element count of folded constants.
const DefaultMaxConstantSize = 64 * 1024

// Stats counts what a collection saw.
type Stats struct {
	Folds          int
	Declines       int
	Raises         int
	ExceptionExits int
}

// Raise is a computation found to always raise.
type Raise struct {
	Span        position.Span
	Kind        string
	Class       *pyexc.Class
	Message     string
	Description string
}

// Collection is the reference nodes.TraceCollection.
type Collection struct {
	maxConstantSize int
	exits           map[*pyexc.Class]int
	raises          []Raise
	stats           Stats
}

// Option configures a Collection.
type Option func(*Collection)

// WithMaxConstantSize overrides DefaultMaxConstantSize.
func WithMaxConstantSize(n int) Option {
	return func(c *Collection) { c.maxConstantSize = n }
}

func New(opts ...Option) *Collection {
	c := &Collection{
		maxConstantSize: DefaultMaxConstantSize,
		exits:           make(map[*pyexc.Class]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ nodes.TraceCollection = (*Collection)(nil)

// GetCompileTimeComputationResult runs computation. A successful result
// becomes a constant carrying the node's span; an exception of the
// compiled program is recorded as an exit and reported with the node; any
// other failure leaves the node unchanged.
func (c *Collection) GetCompileTimeComputationResult(node nodes.Node, computation nodes.Computation, description string, userProvided bool) (nodes.Node, *pyexc.Class) {
	value, err := run(computation)
	if err != nil {
		var pe *pyexc.Error
		if errors.As(err, &pe) {
			c.stats.Raises++
			c.raises = append(c.raises, Raise{
				Span:        node.SourceRef(),
				Kind:        string(node.Kind()),
				Class:       pe.Class,
				Message:     pe.Message,
				Description: description,
			})
			c.OnExceptionRaiseExit(pe.Class)
			cli.LogRaise(string(node.Kind()), node.SourceRef().String(), pe.Class.Name)
			return node, pe.Class
		}
		c.stats.Declines++
		if !builtins.IsNotFoldable(err) {
			cli.Debug("computation failed", "kind", node.Kind(), "error", err)
		}
		return node, nil
	}
	if value == nil || c.oversize(value) {
		c.stats.Declines++
		return node, nil
	}
	c.stats.Folds++
	cli.LogFold(string(node.Kind()), node.SourceRef().String(), value.String())
	return nodes.NewConstant(value, userProvided, node.SourceRef()), nil
}

// run calls computation, turning a panic into an error so a defect in a
// fold cannot take the compiler down.
func run(computation nodes.Computation) (v starlark.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: computation panicked: %v", builtins.ErrNotFoldable, r)
		}
	}()
	return computation()
}

func (c *Collection) oversize(v starlark.Value) bool {
	n, ok := builtins.Length(v)
	if !ok {
		return false
	}
	if s, isStr := v.(starlark.String); isStr {
		n = len(s)
	}
	return n > c.maxConstantSize
}

// OnExceptionRaiseExit records a possible exception exit. Exits only
// accumulate.
func (c *Collection) OnExceptionRaiseExit(exc *pyexc.Class) {
	c.stats.ExceptionExits++
	c.exits[exc]++
}

// MayRaise reports whether an exit related to exc was recorded.
func (c *Collection) MayRaise(exc *pyexc.Class) bool {
	for k := range c.exits {
		if k.Related(exc) {
			return true
		}
	}
	return false
}

// Exits returns the recorded exit classes in hierarchy order.
func (c *Collection) Exits() []*pyexc.Class {
	var out []*pyexc.Class
	for _, k := range pyexc.All() {
		if c.exits[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

// Raises returns the computations found to always raise.
func (c *Collection) Raises() []Raise {
	return append([]Raise(nil), c.raises...)
}

func (c *Collection) Stats() Stats { return c.stats }
