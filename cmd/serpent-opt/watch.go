package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/serpent-lang/serpent/internal/cli"
)

// settle is how long a file must stay quiet before it is re-read. Editors
// often write a file in several steps.
const settle = 100 * time.Millisecond

// watch optimizes files once and again whenever one of them changes.
// Directories are watched rather than the files so replacements by rename
// are seen.
func (o *optimizer) watch(ctx context.Context, files []string) int {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(o.stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fmt.Fprintf(o.stderr, "Error: %v\n", err)
			return 1
		}
		watched[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := w.Add(dir); err != nil {
				fmt.Fprintf(o.stderr, "Error: watching %s: %v\n", dir, err)
				return 1
			}
			dirs[dir] = true
		}
	}

	o.reload(ctx, files)

	pending := make(map[string]bool)
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return 0
		case ev, ok := <-w.Events:
			if !ok {
				return 0
			}
			if !watched[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			cli.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			timer.Reset(settle)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			pending = make(map[string]bool)
			o.reload(ctx, changed)
		case err, ok := <-w.Errors:
			if !ok {
				return 0
			}
			cli.Warn("watch error", "error", err)
		}
	}
}

func (o *optimizer) reload(ctx context.Context, files []string) {
	for _, f := range files {
		fmt.Fprintf(o.stderr, "== %s\n", f)
		in, err := loadFile(f)
		if err != nil {
			fmt.Fprintf(o.stderr, "Error: %v\n", err)
			continue
		}
		o.runInputs(ctx, []*input{in})
	}
}
