package reduce

import (
	"testing"

	"github.com/geocql/cql2/pkg/eval"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() *eval.Context {
	return eval.NewContext(nil, nil)
}

func TestReduceArithmeticFoldsToConstant(t *testing.T) {
	// 1038290-2*2^0 == 1038288
	expr := &ir.Binary{
		Op:  ir.Minus,
		LHS: &ir.NumLit{Value: 1038290},
		RHS: &ir.Binary{
			Op:  ir.Mult,
			LHS: &ir.NumLit{Value: 2},
			RHS: &ir.Binary{Op: ir.Exp, LHS: &ir.NumLit{Value: 2}, RHS: &ir.NumLit{Value: 0}},
		},
	}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	n, ok := got.(*ir.NumLit)
	require.True(t, ok, "expected a NumLit, got %T", got)
	assert.Equal(t, float64(1038288), n.Value)
}

func TestReduceAndKleeneTable(t *testing.T) {
	cases := []struct {
		lhs, rhs ir.Expr
		want     ir.Expr
	}{
		{&ir.BoolLit{Value: true}, &ir.BoolLit{Value: true}, &ir.BoolLit{Value: true}},
		{&ir.BoolLit{Value: false}, &ir.NullLit{}, &ir.BoolLit{Value: false}},
		{&ir.NullLit{}, &ir.BoolLit{Value: true}, &ir.NullLit{}},
		{&ir.NullLit{}, &ir.NullLit{}, &ir.NullLit{}},
	}
	for _, c := range cases {
		got, err := Reduce(&ir.Binary{Op: ir.And, LHS: c.lhs, RHS: c.rhs}, testCtx())
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestReduceOrKleeneTable(t *testing.T) {
	cases := []struct {
		lhs, rhs ir.Expr
		want     ir.Expr
	}{
		{&ir.BoolLit{Value: false}, &ir.BoolLit{Value: false}, &ir.BoolLit{Value: false}},
		{&ir.BoolLit{Value: true}, &ir.NullLit{}, &ir.BoolLit{Value: true}},
		{&ir.NullLit{}, &ir.BoolLit{Value: false}, &ir.NullLit{}},
		{&ir.NullLit{}, &ir.NullLit{}, &ir.NullLit{}},
	}
	for _, c := range cases {
		got, err := Reduce(&ir.Binary{Op: ir.Or, LHS: c.lhs, RHS: c.rhs}, testCtx())
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestReduceAndOrLeavesUnresolvableSideAlone(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.And,
		LHS: &ir.Ident{Name: "flag"},
		RHS: &ir.BoolLit{Value: true},
	}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	bin, ok := got.(*ir.Binary)
	require.True(t, ok, "expected the binary to survive unfolded, got %T", got)
	assert.Equal(t, ir.And, bin.Op)
	assert.IsType(t, &ir.Ident{}, bin.LHS)
}

func TestReduceComparisonFoldsToBool(t *testing.T) {
	expr := &ir.Binary{Op: ir.Gt, LHS: &ir.NumLit{Value: 10}, RHS: &ir.NumLit{Value: 3}}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	assert.Equal(t, &ir.BoolLit{Value: true}, got)
}

func TestReduceLikeFoldsToBool(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.IsLike,
		LHS: &ir.StrLit{Value: value.PlainString("Springfield")},
		RHS: &ir.StrLit{Value: value.PlainString("Spring%")},
	}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	assert.Equal(t, &ir.BoolLit{Value: true}, got)
}

func TestReduceBetweenFoldsToBool(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.IsBetween,
		LHS: &ir.NumLit{Value: 120},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 100}, &ir.NumLit{Value: 150}}},
	}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	assert.Equal(t, &ir.BoolLit{Value: true}, got)
}

func TestReduceComparisonWithNullOperandFoldsToNull(t *testing.T) {
	expr := &ir.Binary{Op: ir.Eq, LHS: &ir.NullLit{}, RHS: &ir.NumLit{Value: 3}}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	assert.Equal(t, &ir.NullLit{}, got)
}

func TestReduceLeavesSpatialPredicateWithNoEngine(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.SIntersects,
		LHS: &ir.Ident{Name: "geometry"},
		RHS: &ir.Ident{Name: "geometry"},
	}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	assert.Equal(t, expr, got)
}

func TestReduceUnaryNot(t *testing.T) {
	got := reduceUnary(ir.Neg, &ir.BoolLit{Value: false})
	assert.Equal(t, &ir.BoolLit{Value: true}, got)
}

func TestReduceUnaryDoubleCaseIIsNotDoubleWrapped(t *testing.T) {
	once := &ir.Unary{Op: ir.CaseI, X: &ir.Ident{Name: "name"}}
	twice := reduceUnary(ir.CaseI, once)
	assert.Equal(t, once, twice)
}

func TestReduceCallOnlyReducesArguments(t *testing.T) {
	expr := &ir.Call{
		Name: "max",
		Args: []ir.Expr{
			&ir.Binary{Op: ir.Plus, LHS: &ir.NumLit{Value: 1}, RHS: &ir.NumLit{Value: 2}},
			&ir.NumLit{Value: 7},
		},
	}
	got, err := Reduce(expr, testCtx())
	require.NoError(t, err)
	call, ok := got.(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, &ir.NumLit{Value: 3}, call.Args[0])
}
