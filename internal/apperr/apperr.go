// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr classifies json2csv failures into a small set of kinds so the
// CLI can map each one to its own exit code.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of a failure. Values are stable because they
// determine process exit codes.
type Kind uint8

const (
	// KindUnknown is for errors that were never classified.
	KindUnknown Kind = iota

	// KindUsage is for bad arguments, bad patterns, and invalid manifests.
	KindUsage

	// KindIO is for filesystem and database failures.
	KindIO

	// KindParse is for malformed JSON lines, CSV files, and manifests.
	KindParse
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return 1
	case KindIO:
		return 2
	case KindParse:
		return 3
	default:
		return 4
	}
}

// Error is a classified failure. Op describes what was being done, Path the
// file involved, and Line the 1-based input line when one applies.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Usage returns a usage error with the given message.
func Usage(format string, args ...any) error {
	return &Error{Kind: KindUsage, Err: fmt.Errorf(format, args...)}
}

// IO wraps err as an I/O failure of op on path.
func IO(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// Parse wraps err as a parse failure at path:line. A zero line omits the
// line number.
func Parse(path string, line int, err error) error {
	return &Error{Kind: KindParse, Op: "parsing", Path: path, Line: line, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode returns the exit code for err: zero for nil, otherwise the code of
// its kind.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
