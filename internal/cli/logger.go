package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogConfig configures the process-wide logger.
type LogConfig struct {
	Level     string // debug, info, warn or error
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
}

// DefaultLogConfig logs info and above as text to stderr.
func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "info", Format: "text", Output: os.Stderr}
}

// Logger is the structured logger shared by the tools and library packages.
type Logger struct {
	*slog.Logger
}

var defaultLogger = &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// NewLogger builds a logger from cfg without installing it.
func NewLogger(cfg LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "", "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return &Logger{Logger: slog.New(handler)}, nil
}

// InitLogging installs the process-wide logger. Until it is called, log
// output is discarded so library packages stay quiet in tests.
func InitLogging(cfg LogConfig) (*Logger, error) {
	l, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	defaultLogger = l
	slog.SetDefault(l.Logger)
	return l, nil
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }

// Compiler-specific helpers

// LogPass logs the end of one optimization pass.
func LogPass(module string, pass, changes int) {
	Debug("optimization pass complete", "module", module, "pass", pass, "changes", changes)
}

// LogFold logs a successful constant fold.
func LogFold(kind, span, result string) {
	Debug("constant folded", "kind", kind, "span", span, "result", result)
}

// LogRaise logs a computation that is known to raise.
func LogRaise(kind, span, class string) {
	Debug("computation raises", "kind", kind, "span", span, "exception", class)
}

// LogModule logs the outcome of optimizing one module.
func LogModule(module string, passes, folded int) {
	Info("module optimized", "module", module, "passes", passes, "folded", folded)
}
