// Package diagnostic collects the findings the optimizer reports to users.
//
// The optimizer never fails on code of the compiled program that would
// raise at runtime; it leaves the code in place and reports a warning here.
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/serpent-lang/serpent/internal/position"
)

// Level is the severity of a diagnostic.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Codes.
const (
	CodeAlwaysRaises = "W1001"
	CodeTooMany      = "E0001"
)

// Diagnostic is a single finding.
type Diagnostic struct {
	Code    string        `json:"code"`
	Level   Level         `json:"level"`
	Title   string        `json:"title"`
	Message string        `json:"message,omitempty"`
	Span    position.Span `json:"span"`
	Tags    []string      `json:"tags,omitempty"`
}

// Builder constructs a Diagnostic.
type Builder struct {
	d *Diagnostic
}

func New() *Builder {
	return &Builder{d: &Diagnostic{}}
}

func (b *Builder) Error() *Builder   { b.d.Level = LevelError; return b }
func (b *Builder) Warning() *Builder { b.d.Level = LevelWarning; return b }
func (b *Builder) Info() *Builder    { b.d.Level = LevelInfo; return b }

func (b *Builder) Code(code string) *Builder        { b.d.Code = code; return b }
func (b *Builder) Title(title string) *Builder      { b.d.Title = title; return b }
func (b *Builder) Message(msg string) *Builder      { b.d.Message = msg; return b }
func (b *Builder) Span(span position.Span) *Builder { b.d.Span = span; return b }
func (b *Builder) Tag(tag string) *Builder          { b.d.Tags = append(b.d.Tags, tag); return b }

func (b *Builder) Build() *Diagnostic { return b.d }

// AlwaysRaises reports an expression whose constant evaluation raises.
// description names the computation, message is the exception text.
func AlwaysRaises(span position.Span, class, message, description string) *Diagnostic {
	msg := description
	if message != "" {
		msg = fmt.Sprintf("%s %s: %s", description, class, message)
	}
	return New().
		Warning().
		Code(CodeAlwaysRaises).
		Title("expression always raises " + class).
		Message(msg).
		Span(span).
		Tag("raise").
		Build()
}

// Config controls which diagnostics an Engine keeps.
type Config struct {
	IgnoreCodes      []string
	MaxErrors        int
	WarningsAsErrors bool
}

// Engine accumulates diagnostics of one run.
type Engine struct {
	config      Config
	diagnostics []Diagnostic
	truncated   bool
}

func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Add records d unless it is ignored or the error limit was reached.
func (e *Engine) Add(d *Diagnostic) {
	if e.truncated {
		return
	}
	for _, code := range e.config.IgnoreCodes {
		if d.Code == code {
			return
		}
	}
	entry := *d
	if e.config.WarningsAsErrors && entry.Level == LevelWarning {
		entry.Level = LevelError
	}
	e.diagnostics = append(e.diagnostics, entry)

	if e.config.MaxErrors > 0 && e.ErrorCount() >= e.config.MaxErrors {
		e.truncated = true
		e.diagnostics = append(e.diagnostics, *New().
			Error().
			Code(CodeTooMany).
			Title("too many errors").
			Message(fmt.Sprintf("stopping after %d errors", e.config.MaxErrors)).
			Build())
	}
}

func (e *Engine) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), e.diagnostics...)
}

func (e *Engine) count(l Level) int {
	n := 0
	for _, d := range e.diagnostics {
		if d.Level == l {
			n++
		}
	}
	return n
}

func (e *Engine) ErrorCount() int   { return e.count(LevelError) }
func (e *Engine) WarningCount() int { return e.count(LevelWarning) }
func (e *Engine) HasErrors() bool   { return e.ErrorCount() > 0 }

// Sort orders diagnostics by file, line, column, then severity.
func (e *Engine) Sort() {
	sort.SliceStable(e.diagnostics, func(i, j int) bool {
		a, b := e.diagnostics[i].Span.Start, e.diagnostics[j].Span.Start
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return e.diagnostics[i].Level < e.diagnostics[j].Level
	})
}

// Format renders every diagnostic followed by a summary line. When h is
// not nil the source of each span is shown under its diagnostic.
func (e *Engine) Format(h *position.Highlighter) string {
	if len(e.diagnostics) == 0 {
		return ""
	}
	e.Sort()
	var b strings.Builder
	for _, d := range e.diagnostics {
		fmt.Fprintf(&b, "%s: %s[%s]: %s\n", d.Span, d.Level, d.Code, d.Title)
		if d.Message != "" {
			fmt.Fprintf(&b, "  %s\n", d.Message)
		}
		if h != nil {
			b.WriteString(h.Highlight(d.Span))
		}
	}
	var parts []string
	if n := e.ErrorCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", n))
	}
	if n := e.WarningCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", n))
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, "found %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}
