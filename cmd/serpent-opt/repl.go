package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/serpent-lang/serpent/internal/cli"
	"github.com/serpent-lang/serpent/internal/nodes"
)

const (
	prompt      = "serpent> "
	historyName = ".serpent_history"
)

// lineReader yields input lines until ok is false.
type lineReader interface {
	ReadLine() (line string, ok bool)
	Close() error
}

type linerReader struct {
	ln      *liner.State
	history string
}

func newLinerReader(history string) *linerReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	return &linerReader{ln: ln, history: history}
}

func (r *linerReader) ReadLine() (string, bool) {
	line, err := r.ln.Prompt(prompt)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(line) != "" {
		r.ln.AppendHistory(line)
	}
	return line, true
}

func (r *linerReader) Close() error {
	if f, err := os.Create(r.history); err == nil {
		_, _ = r.ln.WriteHistory(f)
		_ = f.Close()
	}
	return r.ln.Close()
}

// scanReader serves piped input.
type scanReader struct{ s *bufio.Scanner }

func (r *scanReader) ReadLine() (string, bool) {
	if !r.s.Scan() {
		return "", false
	}
	return r.s.Text(), true
}

func (r *scanReader) Close() error { return nil }

func (o *optimizer) historyFile() string {
	if o.cfg.HistoryFile != "" {
		return o.cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return historyName
	}
	return filepath.Join(home, historyName)
}

func (o *optimizer) repl(ctx context.Context, stdin *os.File) int {
	var r lineReader
	if cli.IsTerminal(stdin) {
		fmt.Fprintf(o.stdout, "%s (node catalog %s). Type :help for commands.\n", toolName, nodes.CatalogVersion)
		r = newLinerReader(o.historyFile())
	} else {
		r = &scanReader{s: bufio.NewScanner(stdin)}
	}
	defer r.Close()
	return o.session(ctx, r)
}

// session evaluates lines until the input ends or :quit is entered.
func (o *optimizer) session(ctx context.Context, r lineReader) int {
	for ctx.Err() == nil {
		line, ok := r.ReadLine()
		if !ok {
			return 0
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			if o.command(o.stdout, line) {
				return 0
			}
			continue
		}
		o.runInputs(ctx, []*input{{filename: "<stdin>", source: line}})
	}
	return 0
}

// command handles a session command and reports whether to quit.
func (o *optimizer) command(w io.Writer, line string) bool {
	switch fields := strings.Fields(line); fields[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":dump":
		o.opts.dump = !o.opts.dump
		fmt.Fprintf(w, "tree dump %s\n", onOff(o.opts.dump))
	case ":shapes":
		o.opts.shapes = !o.opts.shapes
		fmt.Fprintf(w, "shape annotations %s\n", onOff(o.opts.shapes))
	case ":stats":
		o.opts.stats = !o.opts.stats
		fmt.Fprintf(w, "statistics %s\n", onOff(o.opts.stats))
	case ":kinds":
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[1]
		}
		for _, k := range nodes.Registry.KindsByPrefix(prefix) {
			fmt.Fprintln(w, k)
		}
	case ":help", ":h":
		fmt.Fprintln(w, "  :dump          toggle tree dumps")
		fmt.Fprintln(w, "  :shapes        toggle result shape annotations")
		fmt.Fprintln(w, "  :stats         toggle optimizer statistics")
		fmt.Fprintln(w, "  :kinds [PFX]   list node kinds")
		fmt.Fprintln(w, "  :quit          leave the session")
	default:
		fmt.Fprintf(w, "unknown command %s, type :help\n", fields[0])
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
