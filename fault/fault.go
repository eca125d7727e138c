// Package fault classifies pipeline failures so callers can tell bad input
// apart from broken program invariants. Malformed input may be skipped or
// reported and the rest of a document still processed; an invariant failure
// means the pipeline itself is wrong and the whole operation must stop.
package fault

import (
	"errors"
	"fmt"
)

// Kind describes what went wrong.
type Kind int

const (
	// Malformed marks errors caused by bad input: unbalanced markup,
	// unknown CSS units, documents nested beyond the depth limit.
	Malformed Kind = iota
	// Invariant marks broken internal preconditions, for example a block
	// layout pass reaching a box that carries no style. Never recoverable.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed input"
	case Invariant:
		return "invariant violation"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Malformedf creates a Malformed error. The format string accepts %w.
func Malformedf(format string, args ...any) error {
	return &Error{Kind: Malformed, Err: fmt.Errorf(format, args...)}
}

// Invariantf creates an Invariant error. The format string accepts %w.
func Invariantf(format string, args ...any) error {
	return &Error{Kind: Invariant, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the classification from err. The second result is false
// when err carries no fault classification anywhere in its chain.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// IsMalformed reports whether err is classified as bad input.
func IsMalformed(err error) bool {
	k, ok := KindOf(err)
	return ok && k == Malformed
}

// IsInvariant reports whether err is classified as an invariant violation.
func IsInvariant(err error) bool {
	k, ok := KindOf(err)
	return ok && k == Invariant
}
