// Package domerr defines the stable, named error taxonomy every
// mutating entry point in this module returns through (spec §7). Kinds
// are compared with errors.Is; Error wraps a cause built with
// github.com/pkg/errors, which records a stack trace where the Kind was
// raised. Formatting an *Error (with %v or %+v) prints only its Kind and
// message; the trace is printed by formatting the cause returned by
// errors.Unwrap with %+v.
package domerr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind is one of the stable, host-mappable error categories.
type Kind string

const (
	HierarchyRequest             Kind = "HierarchyRequest"
	WrongDocument                Kind = "WrongDocument"
	NotFound                     Kind = "NotFound"
	InvalidCharacter              Kind = "InvalidCharacter"
	Syntax                       Kind = "Syntax"
	InUseAttribute               Kind = "InUseAttribute"
	NotSupported                 Kind = "NotSupported"
	InvalidState                 Kind = "InvalidState"
	InvalidCustomElementName     Kind = "InvalidCustomElementName"
	ReservedCustomElementName    Kind = "ReservedCustomElementName"
	CustomElementAlreadyDefined  Kind = "CustomElementAlreadyDefined"
	RegistryDefinitionRunning    Kind = "RegistryDefinitionRunning"
	ConstructorThrew             Kind = "ConstructorThrew"
	TooManyListeners             Kind = "TooManyListeners"
	OutOfMemory                  Kind = "OutOfMemory"
)

// Error is the concrete error type every API in this module returns.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is a *Error with the same Kind, so callers
// can write errors.Is(err, domerr.New(domerr.NotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an Error of the given Kind with a message, recording a
// stack trace at the call site via pkg/errors.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		cause:   pkgerrors.New(string(kind)),
	}
}

// Wrap constructs an Error of the given Kind around an existing cause
// (e.g. a panic recovered from a custom-element constructor), preserving
// it for errors.Unwrap/errors.As.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		cause:   pkgerrors.Wrap(cause, string(kind)),
	}
}

// Of reports the Kind of err if it is (or wraps) a *Error.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
