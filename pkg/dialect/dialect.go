// Package dialect declares the per-database differences pkg/sqltranslate's
// emitter needs in order to target a specific SQL engine: identifier
// quoting, string-literal collation, the unbounded-interval sentinel,
// whether array predicates render as native infix operators or prefix
// function calls, and which spatial predicates need a precision-reduction
// wrapper ahead of the comparison.
package dialect

import (
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// ArrayOpStyle distinguishes how a dialect spells an A_* array predicate.
type ArrayOpStyle int

const (
	// ArrayOpInfix renders "lhs op rhs", e.g. PostgreSQL's native array
	// operators (@>, <@, &&).
	ArrayOpInfix ArrayOpStyle = iota
	// ArrayOpPrefix renders "op(lhs, rhs)" for engines with no native array
	// comparison operators of their own.
	ArrayOpPrefix
)

// Dialect collects every knob pkg/sqltranslate needs so its emitter can stay
// a single AST walk with no per-engine branching inside it.
type Dialect struct {
	// Name identifies the dialect for error messages and the CLI's
	// --dialect flag ("sqlite", "postgres").
	Name string

	// QuoteIdent renders a Resource property name as a column reference.
	QuoteIdent func(name string) string

	// StringLiteral renders a string Queryable as a SQL literal, applying
	// whatever collation clause this dialect uses for CASEI/ACCENTI.
	StringLiteral func(q value.QString) string

	// Unbounded is the SQL rendering of the interval `..` sentinel.
	Unbounded string

	// ArrayOps selects infix-operator vs. prefix-function rendering for
	// A_* predicates.
	ArrayOps ArrayOpStyle

	// ArraySymbol returns the operator (ArrayOpInfix) or function name
	// (ArrayOpPrefix) this dialect uses for an A_* op.
	ArraySymbol func(op ir.Op) string

	// ReducesPrecision reports whether op's operands need wrapping in a
	// precision-reduction call before comparison. Some spatial predicates
	// disagree with their GEOS-computed counterpart near polygon
	// boundaries unless both sides are rounded to the same precision
	// first.
	ReducesPrecision func(op ir.Op) bool

	// ReducePrecisionFunc wraps one operand's SQL with this dialect's
	// precision-reduction call, using precision as the decimal-digit
	// count (matching the geometry codec's own rounding).
	ReducePrecisionFunc func(operandSQL string, precision int) string

	// Power renders the `^` exponentiation operator; some engines have a
	// native infix operator, others require a function call.
	Power func(lhsSQL, rhsSQL string) string

	// IntDiv renders CQL2's integer-division operator.
	IntDiv func(lhsSQL, rhsSQL string) string

	// GeomSRID resolves the numeric SRID a geometry literal should carry
	// in its ST_GeomFromText call, given the configured default CRS code.
	GeomSRID func(crsCode string) (int, error)

	// CollateName names the COLLATE clause's collation for a CASEI/ACCENTI
	// wrapping a non-literal expression (a string literal instead folds its
	// flags into the literal itself, rendered by StringLiteral).
	CollateName func(ci, ai bool) string
}
