package source

import (
	"fmt"
	"path/filepath"

	"go.starlark.net/syntax"
)

// ParseError reports that a file could not be parsed at all.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return "parse " + filepath.Base(e.File) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedError reports a construct that parses but falls outside
// the fixed grammar, such as a dict literal or a keyword argument.
type UnsupportedError struct {
	Construct string
	Pos       syntax.Position
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", e.Pos, e.Construct)
}

// FunctionNotFoundError reports a lookup for a top-level def the
// program does not contain.
type FunctionNotFoundError struct {
	Name string
	File string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("no function %q in %s", e.Name, filepath.Base(e.File))
}
