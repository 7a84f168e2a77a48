package eval

import (
	"testing"

	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return NewEvaluator(NewContext(nil, nil))
}

func mustBound(t *testing.T, s string) value.Bound {
	t.Helper()
	b, err := value.NewDateBound(s)
	require.NoError(t, err)
	return b
}

func TestEvaluateAndOrKleeneTables(t *testing.T) {
	ev := newTestEvaluator(t)

	t.Run("AND", func(t *testing.T) {
		cases := []struct {
			lhs, rhs ir.Expr
			want     Outcome
		}{
			{&ir.BoolLit{Value: true}, &ir.BoolLit{Value: true}, True},
			{&ir.BoolLit{Value: true}, &ir.BoolLit{Value: false}, False},
			{&ir.BoolLit{Value: false}, &ir.NullLit{}, False},
			{&ir.NullLit{}, &ir.BoolLit{Value: true}, Unknown},
			{&ir.NullLit{}, &ir.NullLit{}, Unknown},
		}
		for _, c := range cases {
			expr := &ir.Binary{Op: ir.And, LHS: c.lhs, RHS: c.rhs}
			got, err := ev.Evaluate(expr, value.NewResource())
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		}
	})

	t.Run("OR", func(t *testing.T) {
		cases := []struct {
			lhs, rhs ir.Expr
			want     Outcome
		}{
			{&ir.BoolLit{Value: false}, &ir.BoolLit{Value: false}, False},
			{&ir.BoolLit{Value: true}, &ir.NullLit{}, True},
			{&ir.BoolLit{Value: false}, &ir.NullLit{}, Unknown},
			{&ir.NullLit{}, &ir.BoolLit{Value: false}, Unknown},
			{&ir.NullLit{}, &ir.NullLit{}, Unknown},
		}
		for _, c := range cases {
			expr := &ir.Binary{Op: ir.Or, LHS: c.lhs, RHS: c.rhs}
			got, err := ev.Evaluate(expr, value.NewResource())
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		}
	})
}

func TestEvaluateComparisonNullPropagation(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Binary{Op: ir.Gt, LHS: &ir.Ident{Name: "missing"}, RHS: &ir.NumLit{Value: 10}}
	got, err := ev.Evaluate(expr, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)
}

func TestEvaluateIdentQuotedFallback(t *testing.T) {
	ev := newTestEvaluator(t)
	resource := value.Resource{"eo:cloud_cover": value.NewNum(12)}
	expr := &ir.Binary{Op: ir.Lt, LHS: &ir.Ident{Name: `"eo:cloud_cover"`}, RHS: &ir.NumLit{Value: 20}}
	got, err := ev.Evaluate(expr, resource)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateLike(t *testing.T) {
	ev := newTestEvaluator(t)
	resource := value.Resource{"name": value.NewStr(value.PlainString("Springfield"))}
	expr := &ir.Binary{
		Op:  ir.IsLike,
		LHS: &ir.Ident{Name: "name"},
		RHS: &ir.StrLit{Value: value.PlainString("Spring%")},
	}
	got, err := ev.Evaluate(expr, resource)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateLikeEscapedLiteral(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Binary{
		Op:  ir.IsLike,
		LHS: &ir.Ident{Name: "code"},
		RHS: &ir.StrLit{Value: value.PlainString(`A\%`)},
	}

	notPercent := value.Resource{"code": value.NewStr(value.PlainString("AX"))}
	got, err := ev.Evaluate(expr, notPercent)
	require.NoError(t, err)
	assert.Equal(t, False, got)

	literalPercent := value.Resource{"code": value.NewStr(value.PlainString("A%"))}
	got, err = ev.Evaluate(expr, literalPercent)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateBetween(t *testing.T) {
	ev := newTestEvaluator(t)
	resource := value.Resource{"depth": value.NewNum(120)}
	expr := &ir.Binary{
		Op:  ir.IsBetween,
		LHS: &ir.Ident{Name: "depth"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 100}, &ir.NumLit{Value: 150}}},
	}
	got, err := ev.Evaluate(expr, resource)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateInList(t *testing.T) {
	ev := newTestEvaluator(t)
	resource := value.Resource{"status": value.NewStr(value.PlainString("active"))}
	expr := &ir.Binary{
		Op:  ir.IsInList,
		LHS: &ir.Ident{Name: "status"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{
			&ir.StrLit{Value: value.PlainString("active")},
			&ir.StrLit{Value: value.PlainString("inactive")},
		}},
	}
	got, err := ev.Evaluate(expr, resource)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateArithmetic(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Binary{
		Op:  ir.Eq,
		LHS: &ir.Binary{Op: ir.Plus, LHS: &ir.NumLit{Value: 1038290}, RHS: &ir.Unary{Op: ir.Minus, X: &ir.NumLit{Value: 2}}},
		RHS: &ir.NumLit{Value: 1038288},
	}
	got, err := ev.Evaluate(expr, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateTemporalDuring(t *testing.T) {
	ev := newTestEvaluator(t)
	resource := value.Resource{
		"starts_at": value.NewInstant(mustBound(t, "2006-01-10")),
		"ends_at":   value.NewInstant(mustBound(t, "2009-01-10")),
	}
	expr := &ir.Binary{
		Op: ir.TDuring,
		LHS: &ir.IntervalLit{
			Lo: &ir.Ident{Name: "starts_at"},
			Hi: &ir.Ident{Name: "ends_at"},
		},
		RHS: &ir.IntervalLit{
			Lo: &ir.DateLit{Value: mustBound(t, "2005-01-10")},
			Hi: &ir.DateLit{Value: mustBound(t, "2010-02-10")},
		},
	}
	got, err := ev.Evaluate(expr, resource)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateArrayOverlapsIsPositional(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Binary{
		Op: ir.AOverlaps,
		LHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 1}, &ir.NumLit{Value: 2}}},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 9}, &ir.NumLit{Value: 2}}},
	}
	got, err := ev.Evaluate(expr, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, True, got)

	// Same multiset, different positions: zip semantics do not match a
	// shared-member test.
	expr2 := &ir.Binary{
		Op: ir.AOverlaps,
		LHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 1}, &ir.NumLit{Value: 2}}},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 2}, &ir.NumLit{Value: 1}}},
	}
	got2, err := ev.Evaluate(expr2, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, False, got2)
}

func TestEvaluateUnknownFunctionLogsAndNulls(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Call{Name: "not_a_real_function", Args: nil}
	got, err := ev.Evaluate(expr, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)
}

func TestEvaluateBuiltinArithmeticFunctions(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Binary{
		Op:  ir.Eq,
		LHS: &ir.Call{Name: "max", Args: []ir.Expr{&ir.NumLit{Value: 3}, &ir.NumLit{Value: 7}}},
		RHS: &ir.NumLit{Value: 7},
	}
	got, err := ev.Evaluate(expr, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestEvaluateWrongArityLogsAndNulls(t *testing.T) {
	ev := newTestEvaluator(t)
	expr := &ir.Call{Name: "max", Args: []ir.Expr{&ir.NumLit{Value: 3}}}
	got, err := ev.Evaluate(expr, value.NewResource())
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)
}
