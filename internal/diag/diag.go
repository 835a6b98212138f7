// Package diag carries the error taxonomy of spec.md §7 (ParseError,
// NameError, ArityError, TypeError, DuplicateDefinition, BadReload, and host
// RuntimeError) and formats them with source context, modeled on the
// teacher's internal/errors package.
package diag

import (
	"fmt"

	"github.com/cwbudde/go-hotlisp/internal/token"
)

// Kind names one of the error categories of spec.md §7.
type Kind int

const (
	ParseError Kind = iota
	NameError
	ArityError
	TypeError
	DuplicateDefinition
	BadReload
	RuntimeError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case NameError:
		return "NameError"
	case ArityError:
		return "ArityError"
	case TypeError:
		return "TypeError"
	case DuplicateDefinition:
		return "DuplicateDefinition"
	case BadReload:
		return "BadReload"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "UnknownError"
	}
}

// Error is a single diagnostic: a Kind, a human message, and (when known)
// the source position it occurred at.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	HasPos  bool
}

func (e *Error) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error without a source position.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds an Error anchored to a source position.
func NewAt(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// Is reports whether err is a *Error of the given Kind, following spec.md's
// "errors terminate evaluation and propagate" policy (§7): callers mostly
// need to know which kind they're looking at, not unwrap a chain.
func Is(err error, kind Kind) bool {
	de, ok := err.(*Error)
	return ok && de.Kind == kind
}
