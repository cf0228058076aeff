package oas

import (
	"errors"
	"fmt"
)

// Sentinel errors for reference resolution failures.
// These errors can be used with errors.Is() for error checking; the
// *RefError wrapping them carries the offending category and name.
var (
	// ErrNotFound indicates a local reference names a definition that is
	// absent from the Components table.
	ErrNotFound = errors.New("reference target not found")

	// ErrRemoteReference indicates a reference points outside the current
	// document. The engine performs no I/O and never attempts to fetch it.
	ErrRemoteReference = errors.New("remote reference not resolvable")

	// ErrRecursiveReference indicates a definition was reached again while
	// it was still being resolved.
	ErrRecursiveReference = errors.New("recursive reference")

	// ErrTypeMismatch indicates a reference resolves to a definition of a
	// different category than the reference site expects.
	ErrTypeMismatch = errors.New("reference category mismatch")
)

// RefError describes a reference that could not be resolved. It wraps one of
// the sentinel errors above and names the exact reference that failed, so a
// caller can point a user directly at the broken spot in the document.
//
// RefError supports error unwrapping and is compatible with errors.Is() and
// errors.As().
type RefError struct {
	// Category is the components category the reference names
	// (e.g. "schemas", "examples").
	Category string

	// Name is the definition name within the category.
	Name string

	// Locator is the raw reference string for remote references.
	Locator string

	// Expected and Actual are set for category mismatches: Expected is the
	// category the reference site requires, Actual the category the
	// reference points at.
	Expected string
	Actual   string

	// Err is the sentinel error identifying the failure kind.
	Err error
}

// Error implements the error interface.
func (e *RefError) Error() string {
	switch {
	case errors.Is(e.Err, ErrRemoteReference):
		return fmt.Sprintf("oas: %v: %q", e.Err, e.Locator)
	case errors.Is(e.Err, ErrTypeMismatch):
		return fmt.Sprintf("oas: %v: %s/%s (expected %s, got %s)",
			e.Err, e.Category, e.Name, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("oas: %v: %s/%s", e.Err, e.Category, e.Name)
	}
}

// Unwrap returns the sentinel error, allowing errors.Is() to match the
// failure kind through any amount of wrapping.
func (e *RefError) Unwrap() error {
	return e.Err
}
