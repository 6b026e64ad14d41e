package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches any *FormatError via errors.Is.
	ErrFormat = errors.New("invalid crop parameter format")
	// ErrNotFound matches any *NotFoundError via errors.Is.
	ErrNotFound = errors.New("crop parameter file not found")
)

// FormatError reports a structural or field-level parse failure.
// Row and Column are zero-based positions in the parameter matrix, or -1
// when the failure is not tied to a cell.
type FormatError struct {
	Row    int
	Column int
	Field  string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("crop parameters: row %d column %d (%s): invalid value %q: %v", e.Row, e.Column, e.Field, e.Value, e.Err)
	case e.Row >= 0:
		return fmt.Sprintf("crop parameters: row %d: %v", e.Row, e.Err)
	default:
		return fmt.Sprintf("crop parameters: %v", e.Err)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFormat) match without exposing the concrete type.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NotFoundError reports that the crop parameter file could not be opened.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("open crop parameters %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
