// Command serpent-opt folds the constant parts of Python expressions.
//
// Input is an expression given with -e, or files holding one expression
// per line (or a JSON tree when the name ends in .json). The optimized
// statements are printed one per line, or as a JSON tree with -json.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/serpent-lang/serpent/internal/cli"
	"github.com/serpent-lang/serpent/internal/config"
	"github.com/serpent-lang/serpent/internal/nodes"
)

const toolName = "serpent-opt"

type options struct {
	expr        string
	configPath  string
	jsonOutput  bool
	dump        bool
	shapes      bool
	stats       bool
	watch       bool
	repl        bool
	werror      bool
	showVersion bool
	files       []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.expr, "e", "", "optimize `expression` instead of files")
	fs.StringVar(&opts.configPath, "config", "", "configuration `file` (JSON)")
	fs.BoolVar(&opts.jsonOutput, "json", false, "write the optimized tree as JSON")
	fs.BoolVar(&opts.dump, "dump", false, "print the optimized tree structure")
	fs.BoolVar(&opts.shapes, "shapes", false, "annotate each statement with its result shape")
	fs.BoolVar(&opts.stats, "stats", false, "print optimizer statistics to stderr")
	fs.BoolVar(&opts.watch, "watch", false, "re-optimize the input files when they change")
	fs.BoolVar(&opts.repl, "repl", false, "start an interactive session")
	fs.BoolVar(&opts.werror, "Werror", false, "treat warnings as errors")
	fs.BoolVar(&opts.showVersion, "version", false, "show version information")
	maxPasses := fs.Int("passes", 0, "maximum optimizer passes (overrides config)")
	workers := fs.Int("workers", 0, "modules optimized in parallel (overrides config)")
	target := fs.String("target", "", "target runtime, python2 or python3 (overrides config)")
	verbose := fs.Bool("v", false, "log each optimizer pass")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [OPTIONS] [FILE...]\n\n", toolName)
		fmt.Fprintf(stderr, "Folds constant Python expressions and reports the ones that always raise.\n\n")
		fmt.Fprintf(stderr, "OPTIONS:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(stderr, "  %s -e '\"a,b\".split(\",\")'\n", toolName)
		fmt.Fprintf(stderr, "  %s -json exprs.py > tree.json\n", toolName)
		fmt.Fprintf(stderr, "  %s -watch exprs.py\n", toolName)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	opts.files = fs.Args()

	if opts.showVersion {
		cli.PrintVersion(stdout, toolName, nodes.CatalogVersion.String(), opts.jsonOutput)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.ApplyEnv()
	if *maxPasses > 0 {
		cfg.MaxPasses = *maxPasses
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *target != "" {
		cfg.Target = *target
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return 1
	}
	lc := cfg.LogConfig()
	lc.Output = stderr
	if _, err := cli.InitLogging(lc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	o := &optimizer{cfg: cfg, opts: opts, stdout: stdout, stderr: stderr}

	switch {
	case opts.repl:
		return o.repl(ctx, stdin)
	case opts.expr != "":
		if len(opts.files) > 0 {
			fmt.Fprintf(stderr, "Error: -e and file arguments are exclusive\n")
			return 2
		}
		return o.runInputs(ctx, []*input{exprInput(opts.expr)})
	case len(opts.files) == 0:
		fs.Usage()
		return 2
	case opts.watch:
		return o.watch(ctx, opts.files)
	}

	inputs, err := loadFiles(opts.files)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return o.runInputs(ctx, inputs)
}
