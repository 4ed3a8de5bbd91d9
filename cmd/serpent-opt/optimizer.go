package main

import (
	"context"
	"fmt"
	"io"

	"github.com/serpent-lang/serpent/internal/config"
	"github.com/serpent-lang/serpent/internal/diagnostic"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/optimize"
	"github.com/serpent-lang/serpent/internal/position"
	"github.com/serpent-lang/serpent/internal/treeio"
)

type optimizer struct {
	cfg    *config.Config
	opts   options
	stdout io.Writer
	stderr io.Writer
}

// runInputs optimizes every input, prints the results and reports the
// diagnostics. The exit code is 1 when a diagnostic counts as an error.
func (o *optimizer) runInputs(ctx context.Context, inputs []*input) int {
	for _, in := range inputs {
		if err := in.parse(); err != nil {
			fmt.Fprintf(o.stderr, "Error: %v\n", err)
			return 1
		}
	}
	modules := make([]*nodes.Module, len(inputs))
	sources := position.NewSourceMap()
	for i, in := range inputs {
		modules[i] = in.module
		if in.source != "" {
			sources.AddFile(in.filename, in.source)
		}
	}

	results, err := o.cfg.Pipeline().OptimizeModules(ctx, modules, o.cfg.Workers)
	if err != nil {
		fmt.Fprintf(o.stderr, "Error: %v\n", err)
		return 1
	}

	engine := diagnostic.NewEngine(diagnostic.Config{WarningsAsErrors: o.opts.werror})
	for _, r := range results {
		if err := o.print(r); err != nil {
			fmt.Fprintf(o.stderr, "Error: %v\n", err)
			return 1
		}
		if o.opts.stats {
			fmt.Fprintln(o.stderr, r.Stats)
		}
		for i := range r.Diagnostics {
			engine.Add(&r.Diagnostics[i])
		}
	}
	fmt.Fprint(o.stderr, engine.Format(position.NewHighlighter(sources)))
	if engine.HasErrors() {
		return 1
	}
	return 0
}

func (o *optimizer) print(r *optimize.Result) error {
	switch {
	case o.opts.jsonOutput:
		return treeio.Write(o.stdout, r.Module)
	case o.opts.dump:
		_, err := fmt.Fprint(o.stdout, nodes.Dump(r.Module))
		return err
	}
	for _, stmt := range r.Module.ChildNodes() {
		if _, err := fmt.Fprintln(o.stdout, o.statement(stmt)); err != nil {
			return err
		}
	}
	return nil
}

func (o *optimizer) statement(n nodes.Node) string {
	if !o.opts.shapes {
		return n.String()
	}
	return fmt.Sprintf("%s  # %s", n, n.TypeShape().Resolve(o.cfg.Runtime()))
}
