package position

import (
	"fmt"
	"strings"
)

// Highlighter renders spans under the source lines they cover.
type Highlighter struct {
	sources *SourceMap
	// Context is the number of lines shown around a span.
	Context int
}

func NewHighlighter(sources *SourceMap) *Highlighter {
	return &Highlighter{sources: sources}
}

// Highlight returns the lines of span with carets under the covered
// columns. It returns "" when the span or its file is unknown.
func (h *Highlighter) Highlight(span Span) string {
	if !span.IsValid() {
		return ""
	}
	f := h.sources.File(span.Start.Filename)
	if f == nil {
		return ""
	}
	first := span.Start.Line - h.Context
	if first < 1 {
		first = 1
	}
	last := span.End.Line + h.Context
	if last > len(f.Lines) {
		last = len(f.Lines)
	}

	var b strings.Builder
	for n := first; n <= last; n++ {
		line := f.Line(n)
		fmt.Fprintf(&b, "%4d | %s\n", n, line)
		if n < span.Start.Line || n > span.End.Line {
			continue
		}
		from, to := 1, len(line)+1
		if n == span.Start.Line {
			from = span.Start.Column
		}
		if n == span.End.Line {
			to = span.End.Column
		}
		if to <= from {
			to = from + 1
		}
		b.WriteString("     | ")
		for i := 1; i < from; i++ {
			// keep tabs so carets line up in the terminal
			if i <= len(line) && line[i-1] == '\t' {
				b.WriteByte('\t')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(strings.Repeat("^", to-from))
		b.WriteByte('\n')
	}
	return b.String()
}
