package cqltext

import (
	"errors"
	"testing"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBooleanLiterals(t *testing.T) {
	got, err := Parse("TRUE")
	require.NoError(t, err)
	assert.Equal(t, &ir.BoolLit{Value: true}, got)

	got, err = Parse("falsE")
	require.NoError(t, err)
	assert.Equal(t, &ir.BoolLit{Value: false}, got)
}

func TestParseComparisonAndPrecedence(t *testing.T) {
	got, err := Parse("price < 100 AND category = 'books' OR featured = TRUE")
	require.NoError(t, err)

	// OR binds loosest: top node is Or(And(...), Eq(...))
	top, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Or, top.Op)

	and, ok := top.LHS.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.And, and.Op)
}

func TestParseNotBindsTighterThanAnd(t *testing.T) {
	got, err := Parse("NOT TRUE AND FALSE")
	require.NoError(t, err)
	top, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.And, top.Op)
	not, ok := top.LHS.(*ir.Unary)
	require.True(t, ok)
	assert.Equal(t, ir.Neg, not.Op)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	got, err := Parse("1038290-2*2^0 = 1038288")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Eq, bin.Op)

	minus, ok := bin.LHS.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Minus, minus.Op)
	assert.Equal(t, &ir.NumLit{Value: 1038290}, minus.LHS)

	mult, ok := minus.RHS.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Mult, mult.Op)

	pow, ok := mult.RHS.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Exp, pow.Op)
}

func TestParseQuotedIdentifier(t *testing.T) {
	got, err := Parse(`"eo:cloud_cover" < 20`)
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Lt, bin.Op)
	ident, ok := bin.LHS.(*ir.Ident)
	require.True(t, ok)
	assert.Equal(t, `"eo:cloud_cover"`, ident.Name)
}

func TestParseLikeCaseInsensitive(t *testing.T) {
	got, err := Parse("CASEI(name) LIKE CASEI('SPRING%')")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.IsLike, bin.Op)
	unary, ok := bin.LHS.(*ir.Unary)
	require.True(t, ok)
	assert.Equal(t, ir.CaseI, unary.Op)
}

func TestParseBetween(t *testing.T) {
	got, err := Parse("depth BETWEEN 100 AND 150")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.IsBetween, bin.Op)
	arr, ok := bin.RHS.(*ir.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Items, 2)
}

func TestParseNotBetween(t *testing.T) {
	got, err := Parse("depth NOT BETWEEN 100 AND 150")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.IsNotBetween, bin.Op)
}

func TestParseInList(t *testing.T) {
	got, err := Parse("status IN ('active', 'inactive')")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.IsInList, bin.Op)
	arr, ok := bin.RHS.(*ir.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Items, 2)
}

func TestParseIsNull(t *testing.T) {
	got, err := Parse("geometry IS NULL")
	require.NoError(t, err)
	unary, ok := got.(*ir.Unary)
	require.True(t, ok)
	assert.Equal(t, ir.IsNull, unary.Op)
}

func TestParseIsNotNull(t *testing.T) {
	got, err := Parse("geometry IS NOT NULL")
	require.NoError(t, err)
	unary, ok := got.(*ir.Unary)
	require.True(t, ok)
	assert.Equal(t, ir.IsNotNull, unary.Op)
}

func TestParseSpatialPredicate(t *testing.T) {
	got, err := Parse("S_INTERSECTS(geometry, POINT(30 10))")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.SIntersects, bin.Op)
	assert.IsType(t, &ir.Ident{}, bin.LHS)
	spatial, ok := bin.RHS.(*ir.SpatialLit)
	require.True(t, ok)
	assert.Equal(t, "POINT (30 10)", spatial.Value.WKT(-1))
}

func TestParseSpatialPredicateWithPolygon(t *testing.T) {
	got, err := Parse("S_WITHIN(geometry, POLYGON((0 0, 0 10, 10 10, 10 0, 0 0)))")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.SWithin, bin.Op)
	_, ok = bin.RHS.(*ir.SpatialLit)
	require.True(t, ok)
}

func TestParseTemporalDuring(t *testing.T) {
	got, err := Parse("T_DURING(INTERVAL(starts_at, ends_at), INTERVAL(DATE('2005-01-10'), DATE('2010-02-10')))")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.TDuring, bin.Op)
	lhs, ok := bin.LHS.(*ir.IntervalLit)
	require.True(t, ok)
	assert.IsType(t, &ir.Ident{}, lhs.Lo)
	rhs, ok := bin.RHS.(*ir.IntervalLit)
	require.True(t, ok)
	assert.IsType(t, &ir.DateLit{}, rhs.Lo)
}

func TestParseTemporalWithUnboundedInterval(t *testing.T) {
	got, err := Parse("T_BEFORE(observed_at, INTERVAL('..', TIMESTAMP('2020-01-01T00:00:00Z')))")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.TBefore, bin.Op)
	interval, ok := bin.RHS.(*ir.IntervalLit)
	require.True(t, ok)
	assert.IsType(t, &ir.UnboundedLit{}, interval.Lo)
}

func TestParseArrayPredicate(t *testing.T) {
	got, err := Parse("A_CONTAINS(tags, ('a', 'b'))")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.AContains, bin.Op)
	arr, ok := bin.RHS.(*ir.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Items, 2)
}

func TestParseFunctionCall(t *testing.T) {
	got, err := Parse("max(depth, 10) > 5")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	call, ok := bin.LHS.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, "max", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseNestedParens(t *testing.T) {
	got, err := Parse("(price < 100 OR price > 500) AND in_stock = TRUE")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.And, bin.Op)
	assert.IsType(t, &ir.Binary{}, bin.LHS)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("TRUE TRUE")
	assert.Error(t, err)
}

func TestParseUnterminatedStringErrors(t *testing.T) {
	_, err := Parse("name = 'oops")
	assert.Error(t, err)
}

func TestParseIntegerLiteralAtSafeBoundary(t *testing.T) {
	got, err := Parse("count = 9007199254740991")
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	lit, ok := bin.RHS.(*ir.NumLit)
	require.True(t, ok)
	assert.Equal(t, 9007199254740991.0, lit.Value)
}

func TestParseIntegerLiteralBeyondSafeBoundaryErrors(t *testing.T) {
	_, err := Parse("count = 9007199254740992")
	require.Error(t, err)
	var cerr *cql2err.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cql2err.KindPrecisionLoss, cerr.Kind)
}

func TestParseNegativeIntegerLiteralBeyondSafeBoundaryErrors(t *testing.T) {
	_, err := Parse("count = -9007199254740992")
	require.Error(t, err)
	var cerr *cql2err.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cql2err.KindPrecisionLoss, cerr.Kind)
}
