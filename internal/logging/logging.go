// Package logging builds the structured loggers used across fintrack.
package logging

import (
	"io"
	"log/slog"
)

// Field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPath      = "path"
	FieldLine      = "line"
	FieldMonth     = "month"
	FieldCategory  = "category"
	FieldKind      = "kind"
	FieldAmount    = "amount_minor"
	FieldCount     = "count"
	FieldHash      = "hash"
)

// Component names.
const (
	ComponentCLI     = "cli"
	ComponentTracker = "tracker"
	ComponentGit     = "git"
)

// Operation names.
const (
	OpAdd     = "add"
	OpLoad    = "load"
	OpSet     = "set"
	OpReport  = "report"
	OpCommit  = "commit"
	OpParse   = "parse"
	OpAnalyze = "analyze"
)

// New returns a text logger writing to w. Debug records are emitted only
// when verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Component returns l tagged with a component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With(FieldComponent, name)
}

// Err is the standard attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}
