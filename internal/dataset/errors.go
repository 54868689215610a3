package dataset

import (
	"fmt"
	"strings"
)

// NotFoundError reports a missing input file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: file not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// SchemaError reports a header row that does not match the expected columns.
type SchemaError struct {
	Path string
	Want []string
	Got  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: header mismatch: want %q, got %q",
		e.Path, strings.Join(e.Want, "\t"), strings.Join(e.Got, "\t"))
}

// MalformedRowError reports a data line with the wrong number of fields.
type MalformedRowError struct {
	Path   string
	Line   int
	Fields int
	Want   int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: line %d: expected %d tab-separated fields, got %d",
		e.Path, e.Line, e.Want, e.Fields)
}

// FieldError reports a field value that violates its column kind.
type FieldError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: line %d: column %q: %s: %q",
		e.Path, e.Line, e.Column, e.Reason, e.Value)
}
