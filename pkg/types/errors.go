package types

import (
	"errors"
	"fmt"
)

// Call-level error families. These are disjoint from per-element
// BatchElementError values: they describe the call itself, never the
// outcome of an individual batch element.
var (
	// ErrInvalidInput signals a host programming error: mismatched
	// parallel sequence lengths, nil batch elements, invalid page
	// sizes, or invalid construction arguments. Always raised before
	// any back-end method is invoked.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented signals that a required capability is absent
	// from the active implementation(s). Surfaced synchronously, never
	// through a per-element error callback.
	ErrNotImplemented = errors.New("not implemented")

	// ErrConfiguration signals that a manager failed to meet baseline
	// required-capability preconditions after Initialize.
	ErrConfiguration = errors.New("configuration error")
)

// ErrorCode classifies a per-element batch failure.
type ErrorCode int

// The closed set of per-element error codes.
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeInvalidEntityReference
	ErrorCodeMalformedEntityReference
	ErrorCodeEntityAccessError
	ErrorCodeEntityResolutionError
	ErrorCodeInvalidPreflightHint
	ErrorCodeInvalidTraitSet
)

// errorCodeNames maps codes to their display names.
var errorCodeNames = map[ErrorCode]string{
	ErrorCodeUnknown:                  "unknown",
	ErrorCodeInvalidEntityReference:   "invalid entity reference",
	ErrorCodeMalformedEntityReference: "malformed entity reference",
	ErrorCodeEntityAccessError:        "entity access error",
	ErrorCodeEntityResolutionError:    "entity resolution error",
	ErrorCodeInvalidPreflightHint:     "invalid preflight hint",
	ErrorCodeInvalidTraitSet:          "invalid trait set",
}

// String returns the display name of the error code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return errorCodeNames[ErrorCodeUnknown]
}

// BatchElementError is a per-element, data-level failure within a batch
// call. It is an immutable value; equality is structural (code and
// message both match).
type BatchElementError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e BatchElementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// BatchElementFailure is the call-fatal projection of a
// BatchElementError, constructed at the dispatch boundary when an
// operation runs in its failing-return form. It carries the index of
// the failing element plus the access mode and entity reference in
// effect for that element.
type BatchElementFailure struct {
	Index  int
	Err    BatchElementError
	Access Access
	Ref    string
}

// Error renders the error code display name, message, index, access
// mode and the entity reference involved.
func (f *BatchElementFailure) Error() string {
	return fmt.Sprintf("%s: %s [index=%d access=%s ref=%s]",
		f.Err.Code, f.Err.Message, f.Index, f.Access, f.Ref)
}

// Unwrap exposes the underlying BatchElementError for errors.Is/As.
func (f *BatchElementFailure) Unwrap() error {
	return f.Err
}
