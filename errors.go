package sentiplot

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField   = errors.New("missing field")
	ErrMissingRow     = errors.New("missing row")
	ErrFieldType      = errors.New("unexpected field type")
	ErrDuplicateField = errors.New("duplicate field")
	ErrLengthMismatch = errors.New("column length does not match row count")
)

// MissingFieldError reports a named column absent from a Frame.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// MissingRowError reports a named row absent from a Summary.
type MissingRowError struct {
	Row string
}

func (e *MissingRowError) Error() string {
	return fmt.Sprintf("missing row %q", e.Row)
}

func (e *MissingRowError) Is(target error) bool { return target == ErrMissingRow }

// FieldTypeError reports a column whose kind differs from what an operation needs.
type FieldTypeError struct {
	Field string
	Want  Kind
	Got   Kind
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q is %s, want %s", e.Field, e.Got, e.Want)
}

func (e *FieldTypeError) Is(target error) bool { return target == ErrFieldType }

// DuplicateFieldError reports an attempt to add a column whose name is taken.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

func (e *DuplicateFieldError) Is(target error) bool { return target == ErrDuplicateField }
