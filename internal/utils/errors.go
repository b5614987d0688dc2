// Package utils provides small helpers shared across the codec, derive, and
// shape packages: contextual error wrapping, overflow-safe range checks, and
// pooled scratch buffers.
package utils

import "fmt"

// WireError is a contextual error produced while walking the wire format —
// it names the position in the encode/decode process where the underlying
// cause occurred (e.g. "reading field \"pancakes\"" or "decoding Nat0 tag").
type WireError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *WireError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error, returning nil if cause is nil so
// callers can wrap unconditionally at the end of a function.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &WireError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Is/errors.As.
func (e *WireError) Unwrap() error {
	return e.Cause
}
