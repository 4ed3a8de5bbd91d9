// Package optimize drives expression computation over module trees.
//
// A Pipeline repeats passes over a module until a pass changes nothing or
// the pass limit is reached. Each pass walks every statement children
// first, lets each node compute itself against a fresh trace collection
// and splices replacements into the tree.
package optimize

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/serpent-lang/serpent/internal/cli"
	"github.com/serpent-lang/serpent/internal/diagnostic"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/trace"
)

// DefaultMaxPasses bounds the fixpoint iteration.
const DefaultMaxPasses = 5

// Stats summarizes the optimization of one module.
type Stats struct {
	Module          string        `json:"module"`
	NodesVisited    int           `json:"nodes_visited"`
	ConstantsFolded int           `json:"constants_folded"`
	FoldRaises      int           `json:"fold_raises"`
	FoldDeclines    int           `json:"fold_declines"`
	ExceptionExits  int           `json:"exception_exits"`
	Passes          int           `json:"passes"`
	Duration        time.Duration `json:"duration_ns"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%s: passes=%d visited=%d folded=%d raises=%d declines=%d exits=%d time=%s",
		s.Module, s.Passes, s.NodesVisited, s.ConstantsFolded, s.FoldRaises, s.FoldDeclines, s.ExceptionExits, s.Duration)
}

// Result is what optimizing a module produced. The module is rewritten in
// place.
type Result struct {
	Module      *nodes.Module
	Stats       Stats
	Diagnostics []diagnostic.Diagnostic
}

// Pipeline holds the limits of an optimizer run. The zero value uses the
// defaults.
type Pipeline struct {
	MaxPasses       int
	MaxConstantSize int
}

func New(maxPasses, maxConstantSize int) *Pipeline {
	return &Pipeline{MaxPasses: maxPasses, MaxConstantSize: maxConstantSize}
}

func (p *Pipeline) maxPasses() int {
	if p.MaxPasses > 0 {
		return p.MaxPasses
	}
	return DefaultMaxPasses
}

func (p *Pipeline) collection() *trace.Collection {
	if p.MaxConstantSize > 0 {
		return trace.New(trace.WithMaxConstantSize(p.MaxConstantSize))
	}
	return trace.New()
}

// Optimize rewrites m until it stops changing. Diagnostics describe the
// computations that still raise in the final tree.
func (p *Pipeline) Optimize(ctx context.Context, m *nodes.Module) (*Result, error) {
	start := time.Now()
	res := &Result{Module: m, Stats: Stats{Module: m.Name()}}

	var last *trace.Collection
	for pass := 1; pass <= p.maxPasses(); pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w := &walker{tc: p.collection()}
		if _, err := w.compute(m); err != nil {
			return nil, fmt.Errorf("module %s: pass %d: %w", m.Name(), pass, err)
		}
		st := w.tc.Stats()
		res.Stats.Passes = pass
		res.Stats.NodesVisited += w.visited
		res.Stats.ConstantsFolded += st.Folds
		res.Stats.FoldDeclines += st.Declines
		res.Stats.ExceptionExits += st.ExceptionExits
		last = w.tc
		cli.LogPass(m.Name(), pass, w.changes)
		if w.changes == 0 {
			break
		}
	}

	for _, r := range last.Raises() {
		res.Diagnostics = append(res.Diagnostics,
			*diagnostic.AlwaysRaises(r.Span, r.Class.Name, r.Message, r.Description))
	}
	res.Stats.FoldRaises = len(res.Diagnostics)
	res.Stats.Duration = time.Since(start)
	cli.LogModule(m.Name(), res.Stats.Passes, res.Stats.ConstantsFolded)
	return res, nil
}

// OptimizeModules optimizes independent modules concurrently, at most
// workers at a time. Results are in the order of modules.
func (p *Pipeline) OptimizeModules(ctx context.Context, modules []*nodes.Module, workers int) ([]*Result, error) {
	results := make([]*Result, len(modules))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, m := range modules {
		i, m := i, m
		g.Go(func() error {
			r, err := p.Optimize(ctx, m)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// walker performs one pass over a tree.
type walker struct {
	tc      *trace.Collection
	visited int
	changes int
}

// compute computes the children of n, splices their replacements, then
// computes n itself and returns its replacement.
func (w *walker) compute(n nodes.Node) (nodes.Node, error) {
	for _, c := range n.ChildNodes() {
		repl, err := w.compute(c)
		if err != nil {
			return nil, err
		}
		if repl == c {
			continue
		}
		if err := n.ReplaceChild(c, repl); err != nil {
			return nil, err
		}
	}
	w.visited++
	repl, _, _ := n.ComputeExpression(w.tc)
	if repl != n {
		w.changes++
	}
	return repl, nil
}
