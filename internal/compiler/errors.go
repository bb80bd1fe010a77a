package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnrecognizedKind is returned for a field type outside the known kinds.
	ErrUnrecognizedKind = errors.New("unrecognized field type")
	// ErrMissingNestedKind is returned for an object field whose object_type is blank.
	ErrMissingNestedKind = errors.New("missing object_type")
	// ErrUnresolvedReuseTarget is returned when a reuse path cannot be walked.
	ErrUnresolvedReuseTarget = errors.New("unresolved reuse target")
	// ErrDocumentConflict is returned when a document name is compiled twice with different content.
	ErrDocumentConflict = errors.New("document compiled twice with different content")
	// ErrInvalidName is returned for names that derive an empty identifier.
	ErrInvalidName = errors.New("invalid name")
	// ErrFinalized is returned when the compiler is used after Finalize.
	ErrFinalized = errors.New("compiler already finalized")
)

// ReuseError reports a reuse directive whose target path could not be walked.
// It matches ErrUnresolvedReuseTarget with errors.Is.
type ReuseError struct {
	// Source is the name of the reused document.
	Source string
	// Path is the full dot-delimited target path.
	Path string
	// Segment is the first segment that failed to resolve.
	Segment string
	// Err is the underlying lookup failure.
	Err error
	// Suggestions lists member names close to Segment, best first.
	Suggestions []string
}

func (e *ReuseError) Error() string {
	msg := fmt.Sprintf("unable to reuse %s under key %q: segment %q: %v", e.Source, e.Path, e.Segment, e.Err)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return msg
}

func (e *ReuseError) Unwrap() []error {
	return []error{ErrUnresolvedReuseTarget, e.Err}
}
