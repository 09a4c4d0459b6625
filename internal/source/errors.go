package source

import (
	"errors"
	"fmt"
	"strings"
)

// Load failures. Every error returned by this package matches one of these
// with errors.Is.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrParse             = errors.New("parse failure")
	ErrMissingColumn     = errors.New("missing column")
)

// MissingColumnError reports required columns absent from the header row.
type MissingColumnError struct {
	Column     string   // first missing column, in RequiredColumns order
	Missing    []string // all missing columns
	Suggestion string   // closest header actually present, if any
}

func (e *MissingColumnError) Error() string {
	msg := fmt.Sprintf("missing column %q", e.Column)
	if len(e.Missing) > 1 {
		msg = fmt.Sprintf("missing columns %s", strings.Join(quoteAll(e.Missing), ", "))
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest header: %q)", e.Suggestion)
	}
	return msg
}

// Is makes errors.Is(err, ErrMissingColumn) true.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// ParseError reports a file that could not be read or a cell that could not
// be converted. Line is 1-based and counts the header; it is 0 when the
// failure is not tied to a row.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse failure")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ", value %q", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) true.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
