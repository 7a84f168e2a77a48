package cqljson

import (
	"errors"
	"testing"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinaryComparison(t *testing.T) {
	got, err := Parse([]byte(`{"op":"<","args":[{"property":"price"},100]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Binary{Op: ir.Lt, LHS: &ir.Ident{Name: "price"}, RHS: &ir.NumLit{Value: 100}}, got)
}

func TestParseAndOrFoldsLeftAssociative(t *testing.T) {
	got, err := Parse([]byte(`{"op":"or","args":[
		{"op":"=","args":[{"property":"a"},1]},
		{"op":"=","args":[{"property":"b"},2]},
		{"op":"=","args":[{"property":"c"},3]}
	]}`))
	require.NoError(t, err)

	top, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Or, top.Op)
	inner, ok := top.LHS.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.Or, inner.Op)
	assert.Equal(t, &ir.Ident{Name: "a"}, inner.LHS.(*ir.Binary).LHS)
}

func TestParseNotWrappingIsNullBecomesIsNotNull(t *testing.T) {
	got, err := Parse([]byte(`{"op":"not","args":[{"op":"isNull","args":[{"property":"geometry"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Unary{Op: ir.IsNotNull, X: &ir.Ident{Name: "geometry"}}, got)
}

func TestParseNotWrappingLikeBecomesIsNotLike(t *testing.T) {
	got, err := Parse([]byte(`{"op":"not","args":[
		{"op":"like","args":[{"property":"name"},"foo%"]}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Binary{
		Op:  ir.IsNotLike,
		LHS: &ir.Ident{Name: "name"},
		RHS: &ir.StrLit{Value: value.PlainString("foo%")},
	}, got)
}

func TestParseNotWrappingGeneralExpressionIsPlainNegation(t *testing.T) {
	got, err := Parse([]byte(`{"op":"not","args":[true]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Unary{Op: ir.Neg, X: &ir.BoolLit{Value: true}}, got)
}

func TestParseCaseiOnStringLiteralFoldsFlag(t *testing.T) {
	got, err := Parse([]byte(`{"op":"=","args":[
		{"op":"casei","args":[{"property":"name"}]},
		{"op":"casei","args":["alice"]}
	]}`))
	require.NoError(t, err)

	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, &ir.Unary{Op: ir.CaseI, X: &ir.Ident{Name: "name"}}, bin.LHS)
	assert.Equal(t, &ir.StrLit{Value: value.PlainString("alice").AndICase()}, bin.RHS)
}

func TestParseBetween(t *testing.T) {
	got, err := Parse([]byte(`{"op":"between","args":[{"property":"depth"},100,150]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Binary{
		Op:  ir.IsBetween,
		LHS: &ir.Ident{Name: "depth"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 100}, &ir.NumLit{Value: 150}}},
	}, got)
}

func TestParseInList(t *testing.T) {
	got, err := Parse([]byte(`{"op":"in","args":[{"property":"status"},["active","inactive"]]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Binary{
		Op:  ir.IsInList,
		LHS: &ir.Ident{Name: "status"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{
			&ir.StrLit{Value: value.PlainString("active")},
			&ir.StrLit{Value: value.PlainString("inactive")},
		}},
	}, got)
}

func TestParseSpatialPredicate(t *testing.T) {
	got, err := Parse([]byte(`{"op":"s_intersects","args":[
		{"property":"geometry"},
		{"type":"Point","coordinates":[1.5,2.5]}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Binary{
		Op:  ir.SIntersects,
		LHS: &ir.Ident{Name: "geometry"},
		RHS: &ir.SpatialLit{Value: geom.NewPoint([]float64{1.5, 2.5}, -1)},
	}, got)
}

func TestParsePolygonGeometry(t *testing.T) {
	got, err := Parse([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`))
	require.NoError(t, err)
	lit, ok := got.(*ir.SpatialLit)
	require.True(t, ok)
	assert.Equal(t, geom.Polygon, lit.Value.Kind)
	assert.Len(t, lit.Value.Rings, 1)
	assert.Len(t, lit.Value.Rings[0], 5)
}

func TestParseBBox(t *testing.T) {
	got, err := Parse([]byte(`{"bbox":[-180,-90,180,90]}`))
	require.NoError(t, err)
	lit, ok := got.(*ir.SpatialLit)
	require.True(t, ok)
	assert.Equal(t, geom.BBox, lit.Value.Kind)
}

func TestParseTemporalPredicateWithInterval(t *testing.T) {
	got, err := Parse([]byte(`{"op":"t_before","args":[
		{"property":"observed_at"},
		{"interval":["..","2020-01-01"]}
	]}`))
	require.NoError(t, err)

	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.TBefore, bin.Op)

	interval, ok := bin.RHS.(*ir.IntervalLit)
	require.True(t, ok)
	assert.IsType(t, &ir.UnboundedLit{}, interval.Lo)

	date, ok := interval.Hi.(*ir.DateLit)
	require.True(t, ok)
	want, err := value.NewDateBound("2020-01-01")
	require.NoError(t, err)
	assert.True(t, want.Equal(date.Value))
}

func TestParseTimestampInstant(t *testing.T) {
	got, err := Parse([]byte(`{"timestamp":"2020-06-15T12:30:00Z"}`))
	require.NoError(t, err)
	lit, ok := got.(*ir.TimestampLit)
	require.True(t, ok)
	assert.Equal(t, value.BoundTimestamp, lit.Value.Kind)
}

func TestParseFunctionRef(t *testing.T) {
	got, err := Parse([]byte(`{"op":"my_func","args":[{"property":"a"},1]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Call{Name: "my_func", Args: []ir.Expr{&ir.Ident{Name: "a"}, &ir.NumLit{Value: 1}}}, got)
}

func TestParseArithmeticUsesSymbolNotVariantName(t *testing.T) {
	got, err := Parse([]byte(`{"op":"^","args":[2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, &ir.Binary{Op: ir.Exp, LHS: &ir.NumLit{Value: 2}, RHS: &ir.NumLit{Value: 3}}, got)
}

func TestParseRejectsWrongArity(t *testing.T) {
	_, err := Parse([]byte(`{"op":"isNull","args":[{"property":"a"},{"property":"b"}]}`))
	require.Error(t, err)
}

func TestParseIntegerLiteralAtSafeBoundary(t *testing.T) {
	got, err := Parse([]byte(`{"op":"=","args":[{"property":"count"},9007199254740991]}`))
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok)
	lit, ok := bin.RHS.(*ir.NumLit)
	require.True(t, ok)
	assert.Equal(t, 9007199254740991.0, lit.Value)
}

func TestParseIntegerLiteralBeyondSafeBoundaryErrors(t *testing.T) {
	_, err := Parse([]byte(`{"op":"=","args":[{"property":"count"},9007199254740992]}`))
	require.Error(t, err)
	var cerr *cql2err.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cql2err.KindPrecisionLoss, cerr.Kind)
}

func TestParseNegativeIntegerLiteralBeyondSafeBoundaryErrors(t *testing.T) {
	_, err := Parse([]byte(`{"op":"=","args":[{"property":"count"},-9007199254740992]}`))
	require.Error(t, err)
	var cerr *cql2err.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cql2err.KindPrecisionLoss, cerr.Kind)
}
