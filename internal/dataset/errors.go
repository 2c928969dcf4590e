package dataset

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported format")

// NotFoundError indicates the input path does not resolve to a file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError indicates malformed tabular content. Line is 1-based and counts
// the header; zero means the position is unknown.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("parse %s: line %d, column %q: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports a recognized column absent from the input.
// It is recoverable: callers log it and continue without that column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// IsFatal reports whether err should halt a run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var mc *MissingColumnError
	return !errors.As(err, &mc)
}
