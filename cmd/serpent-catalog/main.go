// Command serpent-catalog lists the expression node kinds and checks the
// catalog version against a constraint.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/serpent-lang/serpent/internal/cli"
	"github.com/serpent-lang/serpent/internal/nodes"
	"github.com/serpent-lang/serpent/internal/shape"
)

const toolName = "serpent-catalog"

// entry is the listing of one kind.
type entry struct {
	Kind     string   `json:"kind"`
	Roles    []string `json:"roles"`
	Shape    string   `json:"shape"`
	MayRaise bool     `json:"may_raise"`
	Note     string   `json:"note,omitempty"`
	IterLen  int      `json:"iteration_length,omitempty"`
}

type listing struct {
	Version string  `json:"catalog_version"`
	Target  string  `json:"target"`
	Kinds   []entry `json:"kinds"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		prefix      = fs.String("prefix", "", "only list kinds starting with `prefix`, e.g. str. or dict.get")
		require     = fs.String("require", "", "fail unless the catalog version satisfies `constraint`")
		target      = fs.String("target", "python3", "runtime the result shapes are resolved for")
		jsonOutput  = fs.Bool("json", false, "output in JSON format")
		showVersion = fs.Bool("version", false, "show version information")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [OPTIONS]\n\n", toolName)
		fmt.Fprintf(stderr, "Lists the expression node kinds with their roles, result shape and raise policy.\n\n")
		fmt.Fprintf(stderr, "OPTIONS:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(stderr, "  %s -prefix str.split\n", toolName)
		fmt.Fprintf(stderr, "  %s -require '>=1.0.0, <2.0.0'\n", toolName)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		cli.PrintVersion(stdout, toolName, nodes.CatalogVersion.String(), *jsonOutput)
		return 0
	}

	if *require != "" {
		ok, err := nodes.Registry.Satisfies(*require)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid constraint: %v\n", err)
			return 2
		}
		if !ok {
			fmt.Fprintf(stderr, "catalog %s does not satisfy %s\n", nodes.CatalogVersion, *require)
			return 1
		}
	}

	rt, err := shape.ParseRuntime(*target)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	l := listing{Version: nodes.CatalogVersion.String(), Target: rt.String()}
	for _, s := range nodes.Registry.IterateByPrefix(*prefix) {
		l.Kinds = append(l.Kinds, entry{
			Kind:     string(s.Kind),
			Roles:    s.Roles.Names(),
			Shape:    s.Shape.Resolve(rt).String(),
			MayRaise: s.MayRaiseExceptionOperation(),
			Note:     s.Note,
			IterLen:  s.IterLen,
		})
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if err := writeTable(stdout, l); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func writeTable(w io.Writer, l listing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tROLES\tSHAPE\tRAISES\tLEN")
	for _, e := range l.Kinds {
		raises := "no"
		if e.MayRaise {
			raises = "yes"
			if e.Note != "" {
				raises += " (" + e.Note + ")"
			}
		}
		n := "-"
		if e.IterLen > 0 {
			n = fmt.Sprint(e.IterLen)
		}
		roles := "-"
		if len(e.Roles) > 0 {
			roles = fmt.Sprint(e.Roles)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Kind, roles, e.Shape, raises, n)
	}
	fmt.Fprintf(tw, "\n%d kinds, catalog %s, target %s\n", len(l.Kinds), l.Version, l.Target)
	return tw.Flush()
}
