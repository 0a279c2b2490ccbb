// Package errors defines the typed error taxonomy shared by every
// pipeline stage (spec.md §7). Each stage returns only the kinds it
// owns; no stage fabricates a kind it does not own.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which stage an error originated from and whether
// the caller can usefully retry.
type Kind string

const (
	// Validator-owned.
	ValidationError Kind = "validation_error"
	// Spec Extractor-owned.
	LayoutOverflow Kind = "layout_overflow"
	// CSG Engine-owned.
	BadSpec      Kind = "bad_spec"
	CSGTimeout   Kind = "csg_timeout"
	CSGDegraded  Kind = "csg_degraded"
	CSGFailed    Kind = "csg_failed"
	// STL Serializer-owned.
	SerializerError Kind = "serializer_error"

	// Ambient, non-pipeline kinds (teacher's own taxonomy) for
	// concerns the spec leaves to the host, such as file and
	// scratch-directory I/O.
	IOError  Kind = "io_error"
	STLError Kind = "stl_error"
)

// Error is a typed error carrying the stage-owned Kind, a message,
// and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Reason  string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New constructs a typed error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Wrap attaches additional context to err without losing its Kind
// when err is itself a *Error; otherwise it produces a plain wrapped
// error via fmt.Errorf.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return &Error{Kind: typed.Kind, Message: message, Field: typed.Field, Reason: typed.Reason, cause: err}
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Validation builds a ValidationError carrying the offending field
// and the taxonomy reason from spec.md §4.1.
func Validation(field, reason, message string) *Error {
	return &Error{Kind: ValidationError, Message: message, Field: field, Reason: reason}
}

// LayoutOverflowAt builds the layout_overflow error spec.md §4.3 and
// §8 V4 require: it never carries a partial spec alongside it.
func LayoutOverflowAt(row, column int) *Error {
	return &Error{
		Kind:    LayoutOverflow,
		Message: fmt.Sprintf("line %d exceeds grid at column %d", row, column),
		Field:   "lines",
		Reason:  "layout_overflow",
	}
}

// Is reports whether err (or any error it wraps) has the given Kind.
func Is(err error, kind Kind) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind == kind
	}
	return false
}
