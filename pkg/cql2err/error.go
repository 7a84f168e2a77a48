// Package cql2err defines the error taxonomy shared by every package in this
// module: parsing, evaluation, SQL translation, and geometry validation all
// raise *cql2err.Error so callers can branch on Kind without inspecting
// message text.
package cql2err

import (
	"fmt"

	"github.com/geocql/cql2/pkg/token"
)

// Kind classifies why an operation in this module failed.
type Kind int

const (
	// KindSyntax covers malformed text or JSON filter input.
	KindSyntax Kind = iota
	// KindType covers a Queryable of the wrong DataType reaching an
	// operator or function that cannot accept it.
	KindType
	// KindUnknownFunction covers a function call naming a function absent
	// from the evaluation Context.
	KindUnknownFunction
	// KindArity covers a CQL2-JSON operator given the wrong number of
	// arguments.
	KindArity
	// KindCRS covers a geometry whose coordinates fall outside a CRS's
	// area of use, or an unrecognized CRS code.
	KindCRS
	// KindSQL covers a filter expression that cannot be translated to SQL
	// under the requested dialect (e.g. a function with no SQL mapping).
	KindSQL
	// KindRuntime covers everything else raised while evaluating or
	// translating a well-typed expression.
	KindRuntime
	// KindPrecisionLoss covers an integer literal whose magnitude exceeds
	// ±(2⁵³−1), the largest integer a float64 can represent exactly.
	KindPrecisionLoss
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindType:
		return "type"
	case KindUnknownFunction:
		return "unknown-function"
	case KindArity:
		return "arity"
	case KindCRS:
		return "crs"
	case KindSQL:
		return "sql"
	case KindRuntime:
		return "runtime"
	case KindPrecisionLoss:
		return "precision-loss"
	default:
		return "unknown"
	}
}

// Error is the concrete error type raised across this module.
type Error struct {
	Kind    Kind
	Message string
	Pos     *token.Position
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s error at line %d, column %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no source position.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At builds an Error anchored to a source position.
func At(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: &pos}
}

// Wrap builds an Error that carries cause as its Unwrap target.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}
