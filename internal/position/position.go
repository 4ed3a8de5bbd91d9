// Package position tracks where nodes came from in the source text.
//
// Spans are carried by every node and survive folding: a constant that
// replaces an operation keeps the operation's span, so diagnostics about
// folded code still point at what the user wrote.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position is a point in a source file. Line and Column are 1-based,
// Offset is a 0-based byte offset.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before orders positions by file, then offset.
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

// Span is the half-open range [Start, End).
type Span struct {
	Start Position
	End   Position
}

// IsValid is false for the zero Span used by synthesized nodes.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

func (s Span) String() string {
	if !s.IsValid() {
		return "<unknown>"
	}
	prefix := ""
	if s.Start.Filename != "" {
		prefix = filepath.Base(s.Start.Filename) + ":"
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s%d:%d-%d", prefix, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s%d:%d-%d:%d", prefix, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Contains reports whether pos lies inside s.
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() || s.Start.Filename != pos.Filename {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Union returns the smallest span covering s and other. Spans of different
// files do not combine; s is returned unchanged.
func (s Span) Union(other Span) Span {
	switch {
	case !s.IsValid():
		return other
	case !other.IsValid(), s.Start.Filename != other.Start.Filename:
		return s
	}
	out := s
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}

// SourceFile is the text a set of spans refers to.
type SourceFile struct {
	Filename string
	Content  string
	Lines    []string
}

func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  content,
		Lines:    strings.Split(content, "\n"),
	}
}

// Line returns line n (1-based), or "" when out of range.
func (sf *SourceFile) Line(n int) string {
	if n < 1 || n > len(sf.Lines) {
		return ""
	}
	return sf.Lines[n-1]
}

// Text returns the source covered by span.
func (sf *SourceFile) Text(span Span) string {
	if !span.IsValid() || span.Start.Filename != sf.Filename || span.End.Offset > len(sf.Content) {
		return ""
	}
	return sf.Content[span.Start.Offset:span.End.Offset]
}

// PositionAt converts a byte offset to a position. Columns count bytes.
func (sf *SourceFile) PositionAt(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}
	line := 1 + strings.Count(sf.Content[:offset], "\n")
	col := offset + 1
	if i := strings.LastIndexByte(sf.Content[:offset], '\n'); i >= 0 {
		col = offset - i
	}
	return Position{Filename: sf.Filename, Line: line, Column: col, Offset: offset}
}

// PositionOf builds the position of a 1-based line and column, filling in
// the byte offset. Columns past the end of the line are clamped.
func (sf *SourceFile) PositionOf(line, col int) Position {
	if line < 1 || line > len(sf.Lines) || col < 1 {
		return Position{}
	}
	offset := 0
	for _, l := range sf.Lines[:line-1] {
		offset += len(l) + 1
	}
	if limit := len(sf.Lines[line-1]) + 1; col > limit {
		col = limit
	}
	return Position{Filename: sf.Filename, Line: line, Column: col, Offset: offset + col - 1}
}

// SourceMap holds the files of one optimizer run.
type SourceMap struct {
	files map[string]*SourceFile
}

func NewSourceMap() *SourceMap {
	return &SourceMap{files: make(map[string]*SourceFile)}
}

func (sm *SourceMap) AddFile(filename, content string) *SourceFile {
	f := NewSourceFile(filename, content)
	sm.files[filename] = f
	return f
}

func (sm *SourceMap) File(filename string) *SourceFile {
	return sm.files[filename]
}
