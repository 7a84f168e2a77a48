// Package sqltranslate renders a reduced CQL2 filter as a SQL WHERE-clause
// fragment, parameterized by a pkg/dialect.Dialect so the same AST walk
// targets Spatialite/GeoPackage and PostGIS/PostgreSQL alike.
package sqltranslate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/geocql/cql2/internal/config"
	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/dialect"
	"github.com/geocql/cql2/pkg/eval"
	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/reduce"
)

var spatialFuncNames = map[ir.Op]string{
	ir.SIntersects: "ST_Intersects",
	ir.SEquals:     "ST_Equals",
	ir.SDisjoint:   "ST_Disjoint",
	ir.STouches:    "ST_Touches",
	ir.SWithin:     "ST_Within",
	ir.SOverlaps:   "ST_Overlaps",
	ir.SCrosses:    "ST_Crosses",
	ir.SContains:   "ST_Contains",
}

var arithmeticInfix = map[ir.Op]string{
	ir.Plus:  "+",
	ir.Minus: "-",
	ir.Mult:  "*",
	ir.Div:   "/",
	ir.Mod:   "%",
}

var comparisonInfix = map[ir.Op]string{
	ir.Eq:  "=",
	ir.Neq: "<>",
	ir.Lt:  "<",
	ir.Lte: "<=",
	ir.Gt:  ">",
	ir.Gte: ">=",
	ir.And: "AND",
	ir.Or:  "OR",
}

// Translate reduces expr as far as it folds and renders the result as a SQL
// WHERE-clause fragment under d.
func Translate(expr ir.Expr, d *dialect.Dialect, ctx *eval.Context) (string, error) {
	reduced, err := reduce.Reduce(expr, ctx)
	if err != nil {
		return "", err
	}
	t := &translator{dialect: d, precision: config.Get().DefaultPrecision}
	return t.emit(reduced)
}

type translator struct {
	dialect   *dialect.Dialect
	precision int
}

func (t *translator) emit(n ir.Expr) (string, error) {
	switch x := n.(type) {
	case *ir.NullLit:
		return "NULL", nil
	case *ir.UnboundedLit:
		return t.dialect.Unbounded, nil
	case *ir.BoolLit:
		if x.Value {
			return "TRUE", nil
		}
		return "FALSE", nil
	case *ir.NumLit:
		return strconv.FormatFloat(x.Value, 'g', -1, 64), nil
	case *ir.StrLit:
		return t.dialect.StringLiteral(x.Value), nil
	case *ir.DateLit:
		return "'" + x.Value.When.Format("2006-01-02") + "'", nil
	case *ir.TimestampLit:
		return "'" + x.Value.When.Format(time.RFC3339) + "'", nil
	case *ir.SpatialLit:
		return t.geometrySQL(x.Value)
	case *ir.Ident:
		return t.dialect.QuoteIdent(x.Name), nil
	case *ir.Unary:
		return t.emitUnary(x)
	case *ir.Binary:
		return t.emitBinary(x)
	case *ir.Call:
		return t.emitCall(x)
	case *ir.ArrayLit:
		return t.emitArray(x)
	case *ir.IntervalLit:
		return "", cql2err.New(cql2err.KindSQL, "a bare interval has no SQL rendering outside a temporal predicate")
	default:
		return "", cql2err.New(cql2err.KindSQL, "%T cannot be translated to SQL", n)
	}
}

func (t *translator) geometrySQL(g geom.Geometry) (string, error) {
	srid, err := t.dialect.GeomSRID(config.Get().DefaultCRS)
	if err != nil {
		return "", cql2err.Wrap(cql2err.KindSQL, err, "resolving SRID for geometry literal")
	}
	return fmt.Sprintf("ST_GeomFromText('%s', %d)", g.WKT(t.precision), srid), nil
}

// isLiteralOrIdent reports whether n needs no parenthesization when it
// appears as an operand of a binary operator: a scalar literal, a property
// reference, or an array whose every element is itself such a value.
func isLiteralOrIdent(n ir.Expr) bool {
	if _, ok := ir.AsLiteral(n); ok {
		return true
	}
	if _, ok := ir.AsIdent(n); ok {
		return true
	}
	if arr, ok := n.(*ir.ArrayLit); ok {
		for _, item := range arr.Items {
			if _, ok := ir.AsLiteral(item); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func (t *translator) emitUnary(x *ir.Unary) (string, error) {
	if x.Op.IsNullable() {
		lhs, err := t.emit(x.X)
		if err != nil {
			return "", err
		}
		if !isLiteralOrIdent(x.X) {
			lhs = "(" + lhs + ")"
		}
		kw := "IS NULL"
		if x.Op == ir.IsNotNull {
			kw = "IS NOT NULL"
		}
		return fmt.Sprintf("%s %s", lhs, kw), nil
	}

	switch x.Op {
	case ir.Neg, ir.Minus:
		rhs, err := t.emit(x.X)
		if err != nil {
			return "", err
		}
		sym := "NOT"
		if x.Op == ir.Minus {
			sym = "-"
		}
		if isLiteralOrIdent(x.X) {
			return fmt.Sprintf("%s %s", sym, rhs), nil
		}
		return fmt.Sprintf("%s (%s)", sym, rhs), nil
	case ir.CaseI:
		return t.emitCaseAccent(x, true)
	case ir.AccentI:
		return t.emitCaseAccent(x, false)
	default:
		return "", cql2err.New(cql2err.KindSQL, "unexpected unary operator %s", x.Op)
	}
}

// emitCaseAccent handles CASEI/ACCENTI wrapping a plain expression (not a
// string literal, which already folds its flags into the StrLit itself):
// the pair nests as a single COLLATE clause rather than two, since this
// dialect's combined case+accent collation is its own named collation, not
// a composition of the single-purpose ones.
func (t *translator) emitCaseAccent(x *ir.Unary, outerIsCase bool) (string, error) {
	inner := x.X
	var ci, ai bool
	if outerIsCase {
		ci = true
	} else {
		ai = true
	}
	if u, ok := inner.(*ir.Unary); ok && (u.Op == ir.CaseI || u.Op == ir.AccentI) {
		if u.Op == ir.CaseI {
			ci = true
		} else {
			ai = true
		}
		inner = u.X
	}
	rhs, err := t.emit(inner)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s COLLATE %s", rhs, t.dialect.CollateName(ci, ai)), nil
}

func (t *translator) emitBinary(x *ir.Binary) (string, error) {
	switch {
	case x.Op == ir.IsBetween || x.Op == ir.IsNotBetween:
		return t.emitBetween(x)
	case x.Op.IsSpatial():
		return t.emitSpatial(x)
	case x.Op.IsTemporal():
		return t.emitTemporal(x)
	case x.Op.IsArray():
		return t.emitArrayPredicate(x)
	case x.Op == ir.IsLike || x.Op == ir.IsNotLike:
		return t.emitLike(x)
	case x.Op == ir.IsInList || x.Op == ir.IsNotInList:
		return t.emitDefaultDyadic(x, "IN")
	default:
		return t.emitDefaultDyadic(x, "")
	}
}

func (t *translator) emitBetween(x *ir.Binary) (string, error) {
	arr, ok := x.RHS.(*ir.ArrayLit)
	if !ok || len(arr.Items) != 2 {
		return "", cql2err.New(cql2err.KindSQL, "[NOT] BETWEEN's right-hand side must be a 2-element array")
	}
	lhs, err := t.emit(x.LHS)
	if err != nil {
		return "", err
	}
	lo, err := t.emit(arr.Items[0])
	if err != nil {
		return "", err
	}
	hi, err := t.emit(arr.Items[1])
	if err != nil {
		return "", err
	}
	kw := "BETWEEN"
	if x.Op == ir.IsNotBetween {
		kw = "NOT BETWEEN"
	}
	return fmt.Sprintf("%s %s %s AND %s", lhs, kw, lo, hi), nil
}

func (t *translator) emitSpatial(x *ir.Binary) (string, error) {
	if t.dialect.ReducesPrecision(x.Op) {
		return t.reducePrecisionCall(x.Op, x.LHS, x.RHS)
	}
	lhs, err := t.emit(x.LHS)
	if err != nil {
		return "", err
	}
	rhs, err := t.emit(x.RHS)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s)", spatialFuncNames[x.Op], lhs, rhs), nil
}

// reducePrecisionCall wraps whichever operand is a bare column reference in
// the dialect's precision-reduction call, matching the GeoPackage data
// source's documented workaround: a table column's stored geometry needs
// rounding to the same precision WKT rendering uses before comparing it to
// a literal, or a handful of boundary-touching predicates disagree with
// their GEOS-computed counterpart.
func (t *translator) reducePrecisionCall(op ir.Op, a, b ir.Expr) (string, error) {
	_, aIsIdent := ir.AsIdent(a)
	_, bIsIdent := ir.AsIdent(b)

	lhs, err := t.emit(a)
	if err != nil {
		return "", err
	}
	rhs, err := t.emit(b)
	if err != nil {
		return "", err
	}
	switch {
	case aIsIdent && !bIsIdent:
		lhs = t.dialect.ReducePrecisionFunc(lhs, t.precision)
	case bIsIdent && !aIsIdent:
		rhs = t.dialect.ReducePrecisionFunc(rhs, t.precision)
	}
	return fmt.Sprintf("%s(%s, %s)", spatialFuncNames[op], lhs, rhs), nil
}

func (t *translator) emitArrayPredicate(x *ir.Binary) (string, error) {
	lhs, err := t.emit(x.LHS)
	if err != nil {
		return "", err
	}
	rhs, err := t.emit(x.RHS)
	if err != nil {
		return "", err
	}
	sym := t.dialect.ArraySymbol(x.Op)
	if t.dialect.ArrayOps == dialect.ArrayOpPrefix {
		return fmt.Sprintf("%s(%s, %s)", sym, lhs, rhs), nil
	}
	return fmt.Sprintf("%s %s %s", lhs, sym, rhs), nil
}

func (t *translator) emitLike(x *ir.Binary) (string, error) {
	lhs, err := t.emit(x.LHS)
	if err != nil {
		return "", err
	}
	rhs, err := t.emit(x.RHS)
	if err != nil {
		return "", err
	}
	kw := "LIKE"
	if x.Op == ir.IsNotLike {
		kw = "NOT LIKE"
	}
	if !isLiteralOrIdent(x.LHS) {
		lhs = "(" + lhs + ")"
	}
	return fmt.Sprintf("%s %s (%s)", lhs, kw, rhs), nil
}

func (t *translator) emitDefaultDyadic(x *ir.Binary, overrideSym string) (string, error) {
	lhs, err := t.emit(x.LHS)
	if err != nil {
		return "", err
	}
	rhs, err := t.emit(x.RHS)
	if err != nil {
		return "", err
	}

	// Exp and IntDiv render as a full function call in at least one
	// dialect, so they bypass infix parenthesization entirely.
	switch x.Op {
	case ir.Exp:
		return t.dialect.Power(lhs, rhs), nil
	case ir.IntDiv:
		return t.dialect.IntDiv(lhs, rhs), nil
	}

	sym := overrideSym
	if sym == "" {
		var ok bool
		sym, ok = arithmeticInfix[x.Op]
		if !ok {
			sym, ok = comparisonInfix[x.Op]
		}
		if !ok {
			return "", cql2err.New(cql2err.KindSQL, "operator %s has no SQL rendering", x.Op)
		}
	}

	if !isLiteralOrIdent(x.LHS) {
		lhs = "(" + lhs + ")"
	}
	if !isLiteralOrIdent(x.RHS) {
		rhs = "(" + rhs + ")"
	}
	return fmt.Sprintf("%s %s %s", lhs, sym, rhs), nil
}

func (t *translator) emitCall(x *ir.Call) (string, error) {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		s, err := t.emit(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return fmt.Sprintf("%s(%s)", x.Name, strings.Join(args, ", ")), nil
}

func (t *translator) emitArray(x *ir.ArrayLit) (string, error) {
	items := make([]string, len(x.Items))
	for i, it := range x.Items {
		s, err := t.emit(it)
		if err != nil {
			return "", err
		}
		items[i] = s
	}
	return "(" + strings.Join(items, ", ") + ")", nil
}
