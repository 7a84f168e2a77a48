package sqltranslate

import (
	"testing"

	"github.com/geocql/cql2/pkg/dialects/postgres"
	"github.com/geocql/cql2/pkg/dialects/sqlite"
	"github.com/geocql/cql2/pkg/eval"
	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() *eval.Context { return eval.NewContext(nil, nil) }

func TestTranslateSimpleComparison(t *testing.T) {
	expr := &ir.Binary{Op: ir.Lt, LHS: &ir.Ident{Name: "price"}, RHS: &ir.NumLit{Value: 100}}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"price" < 100`, got)
}

func TestTranslateQuotesIdentifierDifferentlyPerDialect(t *testing.T) {
	expr := &ir.Ident{Name: "geometry"}
	pg, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"geometry"`, pg)

	lite, err := Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, "geometry", lite)
}

func TestTranslateStringLiteralCollation(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.Eq,
		LHS: &ir.Ident{Name: "name"},
		RHS: &ir.StrLit{Value: value.PlainString("Alice").AndICase()},
	}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"name" = 'Alice' COLLATE "cql2_ci"`, got)

	got, err = Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `name = 'Alice' COLLATE CQL2_CI`, got)
}

func TestTranslateCaseAccentOnIdentifierUsesDialectCollation(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.Eq,
		LHS: &ir.Unary{Op: ir.CaseI, X: &ir.Unary{Op: ir.AccentI, X: &ir.Ident{Name: "name"}}},
		RHS: &ir.StrLit{Value: value.PlainString("alice")},
	}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `("name" COLLATE "cql2_ci_ai") = 'alice' COLLATE "pg_unicode_fast"`, got)

	got, err = Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `(name COLLATE CQL2_CI_AI) = 'alice'`, got)
}

func TestTranslateAndOr(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.Or,
		LHS: &ir.Binary{Op: ir.Lt, LHS: &ir.Ident{Name: "price"}, RHS: &ir.NumLit{Value: 100}},
		RHS: &ir.Binary{Op: ir.Eq, LHS: &ir.Ident{Name: "featured"}, RHS: &ir.BoolLit{Value: true}},
	}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `("price" < 100) OR ("featured" = TRUE)`, got)
}

func TestTranslateBetween(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.IsBetween,
		LHS: &ir.Ident{Name: "depth"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.NumLit{Value: 100}, &ir.NumLit{Value: 150}}},
	}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"depth" BETWEEN 100 AND 150`, got)
}

func TestTranslateInList(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.IsInList,
		LHS: &ir.Ident{Name: "status"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{
			&ir.StrLit{Value: value.PlainString("active")},
			&ir.StrLit{Value: value.PlainString("inactive")},
		}},
	}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"status" IN ('active' COLLATE "pg_unicode_fast", 'inactive' COLLATE "pg_unicode_fast")`, got)
}

func TestTranslateArrayPredicateStyleDiffersPerDialect(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.AContains,
		LHS: &ir.Ident{Name: "tags"},
		RHS: &ir.ArrayLit{Items: []ir.Expr{&ir.StrLit{Value: value.PlainString("a")}}},
	}
	pg, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"tags" @> ('a' COLLATE "pg_unicode_fast")`, pg)

	lite, err := Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `A_CONTAINS(tags, ('a'))`, lite)
}

func TestTranslateSpatialPredicate(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.SIntersects,
		LHS: &ir.Ident{Name: "geometry"},
		RHS: &ir.SpatialLit{Value: testPoint()},
	}
	got, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Contains(t, got, "ST_Intersects(")
	assert.Contains(t, got, "ST_GeomFromText(")
}

func TestTranslateSpatialPredicateNeedingPrecisionReduction(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.SWithin,
		LHS: &ir.Ident{Name: "geometry"},
		RHS: &ir.SpatialLit{Value: testPoint()},
	}
	got, err := Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Contains(t, got, "ST_ReducePrecision(geometry,")
}

func TestTranslateUnboundedIntervalLimit(t *testing.T) {
	expr := &ir.Binary{
		Op:  ir.TBefore,
		LHS: &ir.Ident{Name: "observed_at"},
		RHS: &ir.IntervalLit{Lo: &ir.UnboundedLit{}, Hi: &ir.DateLit{Value: mustDateBound(t, "2020-01-01")}},
	}
	got, err := Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Contains(t, got, "'..'")
}

func TestTranslateArithmeticPowerDiffersPerDialect(t *testing.T) {
	// A column operand keeps Translate's reduce pass from folding the power.
	expr := &ir.Binary{Op: ir.Exp, LHS: &ir.Ident{Name: "base"}, RHS: &ir.NumLit{Value: 3}}
	pg, err := Translate(expr, postgres.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, `"base" ^ 3`, pg)

	lite, err := Translate(expr, sqlite.Dialect, testCtx())
	require.NoError(t, err)
	assert.Equal(t, "POWER(base, 3)", lite)
}

func testPoint() geom.Geometry {
	return geom.NewPoint([]float64{1.5, 2.5}, 6)
}

func mustDateBound(t *testing.T, s string) value.Bound {
	t.Helper()
	b, err := value.NewDateBound(s)
	require.NoError(t, err)
	return b
}
