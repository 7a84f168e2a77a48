// Package reduce partially evaluates a pkg/ir Expression tree, folding any
// sub-expression whose operands are already literals into a single literal
// node — for example `1038290-2*2^0` becomes the literal `1038288`. This
// runs ahead of pkg/eval (to simplify a filter before repeated evaluation
// against many Resources) and ahead of pkg/sqltranslate (so the emitted SQL
// doesn't carry dead arithmetic).
package reduce

import (
	"fmt"

	"github.com/geocql/cql2/pkg/eval"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// Reduce folds expr as far as constant-propagation allows. ctx supplies the
// spatial engine an S_* predicate fold may need; pass
// eval.NewContext(nil, nil) when the filter at hand has no spatial
// predicates, or folding them is not wanted (a nil Engine makes Reduce
// leave S_* sub-expressions unreduced rather than fail).
func Reduce(expr ir.Expr, ctx *eval.Context) (ir.Expr, error) {
	switch n := expr.(type) {
	case *ir.NullLit, *ir.UnboundedLit, *ir.BoolLit, *ir.NumLit, *ir.StrLit,
		*ir.DateLit, *ir.TimestampLit, *ir.SpatialLit, *ir.Ident:
		return expr, nil

	case *ir.Unary:
		x, err := Reduce(n.X, ctx)
		if err != nil {
			return nil, err
		}
		return reduceUnary(n.Op, x), nil

	case *ir.Binary:
		lhs, err := Reduce(n.LHS, ctx)
		if err != nil {
			return nil, err
		}
		rhs, err := Reduce(n.RHS, ctx)
		if err != nil {
			return nil, err
		}
		return reduceBinary(n.Op, lhs, rhs, ctx)

	case *ir.Call:
		args := make([]ir.Expr, len(n.Args))
		for i, a := range n.Args {
			r, err := Reduce(a, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return &ir.Call{Name: n.Name, Args: args}, nil

	case *ir.ArrayLit:
		items := make([]ir.Expr, len(n.Items))
		for i, it := range n.Items {
			r, err := Reduce(it, ctx)
			if err != nil {
				return nil, err
			}
			items[i] = r
		}
		return &ir.ArrayLit{Items: items}, nil

	case *ir.IntervalLit:
		lo, err := Reduce(n.Lo, ctx)
		if err != nil {
			return nil, err
		}
		hi, err := Reduce(n.Hi, ctx)
		if err != nil {
			return nil, err
		}
		return &ir.IntervalLit{Lo: lo, Hi: hi}, nil

	default:
		return expr, nil
	}
}

func reduceUnary(op ir.Op, x ir.Expr) ir.Expr {
	switch op {
	case ir.Minus:
		switch t := x.(type) {
		case *ir.NullLit:
			return &ir.NullLit{}
		case *ir.NumLit:
			return &ir.NumLit{Value: -t.Value}
		}
	case ir.Neg:
		switch t := x.(type) {
		case *ir.NullLit:
			return &ir.NullLit{}
		case *ir.BoolLit:
			return &ir.BoolLit{Value: !t.Value}
		}
	case ir.IsNull:
		if isNullLit(x) {
			return &ir.BoolLit{Value: true}
		}
	case ir.IsNotNull:
		if isNullLit(x) {
			return &ir.BoolLit{Value: false}
		}
	case ir.CaseI:
		switch t := x.(type) {
		case *ir.StrLit:
			return &ir.StrLit{Value: t.Value.AndICase()}
		case *ir.Unary:
			// ignoring case multiple times is superfluous.
			if t.Op == ir.CaseI {
				return t
			}
		}
	case ir.AccentI:
		switch t := x.(type) {
		case *ir.StrLit:
			return &ir.StrLit{Value: t.Value.AndIAccent()}
		case *ir.Unary:
			// so is ignoring accents twice.
			if t.Op == ir.AccentI {
				return t
			}
		}
	}
	return &ir.Unary{Op: op, X: x}
}

func reduceBinary(op ir.Op, lhs, rhs ir.Expr, ctx *eval.Context) (ir.Expr, error) {
	if op == ir.And {
		return reduceAnd(lhs, rhs), nil
	}
	if op == ir.Or {
		return reduceOr(lhs, rhs), nil
	}

	lv, lok := ir.AsLiteral(lhs)
	rv, rok := ir.AsLiteral(rhs)
	// BETWEEN's range and IN's list arrive as an ArrayLit; it folds when
	// every item is a literal.
	if arr, isArr := rhs.(*ir.ArrayLit); isArr && op.IsExtendedComparison() {
		items := make([]value.Q, 0, len(arr.Items))
		for _, it := range arr.Items {
			if q, ok := ir.AsLiteral(it); ok {
				items = append(items, q)
			}
		}
		rv, rok = value.NewList(items), len(items) == len(arr.Items)
	}
	if !lok || !rok {
		return &ir.Binary{Op: op, LHS: lhs, RHS: rhs}, nil
	}
	// A spatial predicate needs a real spatial engine to fold; without one,
	// leave it for pkg/eval or pkg/sqltranslate to handle at their own time.
	if op.IsSpatial() && ctx.Engine() == nil {
		return &ir.Binary{Op: op, LHS: lhs, RHS: rhs}, nil
	}
	if lv.IsNull() || rv.IsNull() {
		return &ir.NullLit{}, nil
	}

	q, err := ctx.EvalBinaryOp(op, lv, rv)
	if err != nil {
		return nil, err
	}
	return literalFromQ(q)
}

func reduceAnd(lhs, rhs ir.Expr) ir.Expr {
	lb, lIsBool := asBoolLit(lhs)
	rb, rIsBool := asBoolLit(rhs)
	lIsNull := isNullLit(lhs)
	rIsNull := isNullLit(rhs)

	switch {
	case lIsNull && rIsNull:
		return &ir.NullLit{}
	case lIsNull && rIsBool && rb:
		return &ir.NullLit{}
	case lIsNull && rIsBool && !rb:
		return &ir.BoolLit{Value: false}
	case lIsBool && lb && rIsNull:
		return &ir.NullLit{}
	case lIsBool && !lb && rIsNull:
		return &ir.BoolLit{Value: false}
	case lIsBool && rIsBool:
		return &ir.BoolLit{Value: lb && rb}
	default:
		return &ir.Binary{Op: ir.And, LHS: lhs, RHS: rhs}
	}
}

func reduceOr(lhs, rhs ir.Expr) ir.Expr {
	lb, lIsBool := asBoolLit(lhs)
	rb, rIsBool := asBoolLit(rhs)
	lIsNull := isNullLit(lhs)
	rIsNull := isNullLit(rhs)

	switch {
	case lIsNull && rIsNull:
		return &ir.NullLit{}
	case lIsNull && rIsBool && rb:
		return &ir.BoolLit{Value: true}
	case lIsNull && rIsBool && !rb:
		return &ir.NullLit{}
	case lIsBool && lb && rIsNull:
		return &ir.BoolLit{Value: true}
	case lIsBool && !lb && rIsNull:
		return &ir.NullLit{}
	case lIsBool && rIsBool:
		return &ir.BoolLit{Value: lb || rb}
	default:
		return &ir.Binary{Op: ir.Or, LHS: lhs, RHS: rhs}
	}
}

func asBoolLit(e ir.Expr) (bool, bool) {
	b, ok := e.(*ir.BoolLit)
	if !ok {
		return false, false
	}
	return b.Value, true
}

func isNullLit(e ir.Expr) bool {
	_, ok := e.(*ir.NullLit)
	return ok
}

func literalFromQ(q value.Q) (ir.Expr, error) {
	if q.IsNull() {
		return &ir.NullLit{}, nil
	}
	dt, ok := q.LiteralType()
	if !ok {
		return nil, fmt.Errorf("cannot express %s as a literal expression", q)
	}
	switch dt {
	case value.DataBool:
		b, _ := q.ToBool()
		return &ir.BoolLit{Value: b}, nil
	case value.DataNum:
		n, _ := q.ToNum()
		return &ir.NumLit{Value: n}, nil
	case value.DataStr:
		s, _ := q.ToStr()
		return &ir.StrLit{Value: s}, nil
	case value.DataGeom:
		g, _ := q.ToGeom()
		return &ir.SpatialLit{Value: g}, nil
	case value.DataDate:
		b, _ := q.ToBound()
		return &ir.DateLit{Value: b}, nil
	case value.DataTimestamp:
		b, _ := q.ToBound()
		return &ir.TimestampLit{Value: b}, nil
	default:
		return nil, fmt.Errorf("cannot express %s as a literal expression", q)
	}
}
