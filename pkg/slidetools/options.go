// Package slidetools runs slide automation action trees against PowerPoint decks.
package slidetools

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/expression"
)

// Level is the logging verbosity of a run.
type Level string

const (
	// LevelQuiet logs errors only.
	LevelQuiet Level = "error"
	// LevelNormal logs progress, warnings and errors.
	LevelNormal Level = "info"
	// LevelVerbose also logs debug output.
	LevelVerbose Level = "debug"
)

// Options configures a run.
type Options struct {
	// WorkingPath is the base directory for relative file names when the tree sets none.
	WorkingPath string
	// Level sets the verbosity of the default logger.
	Level Level
	// Output receives log lines. If nil, defaults to stderr.
	Output io.Writer
	// Logger overrides the default logger. Level and Output are ignored when set.
	Logger *log.Logger
	// Evaluator compiles conditions. If nil, expr-lang is used.
	Evaluator expression.Evaluator
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Level: LevelNormal,
	}
}

// NewLogger creates a logger with timestamp formatting that writes to w.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel maps the option level to a logger level. Unknown levels log at info.
func (o Options) logLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(string(o.Level)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// logger returns the configured logger or builds the default one.
func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	w := o.Output
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(w, o.logLevel())
}
