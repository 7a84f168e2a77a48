package eval

import (
	"math"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// evalAnd and evalOr implement CQL2's Kleene AND/OR truth tables
// (https://docs.ogc.org/is/21-065r2/21-065r2.html#basic-cql2_filter-expression).
func (e *Evaluator) evalAnd(n *ir.Binary, feature value.Resource) (value.Q, error) {
	zx, err := e.evalValue(n.LHS, feature)
	if err != nil {
		return value.Q{}, err
	}
	zy, err := e.evalValue(n.RHS, feature)
	if err != nil {
		return value.Q{}, err
	}
	a, err := triBool(zx)
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "unexpected AND operand")
	}
	b, err := triBool(zy)
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "unexpected AND operand")
	}
	switch {
	case a != nil && b != nil:
		return value.NewBool(*a && *b), nil
	case a != nil && !*a:
		return value.NewBool(false), nil
	case b != nil && !*b:
		return value.NewBool(false), nil
	default:
		return value.Null, nil
	}
}

func (e *Evaluator) evalOr(n *ir.Binary, feature value.Resource) (value.Q, error) {
	zx, err := e.evalValue(n.LHS, feature)
	if err != nil {
		return value.Q{}, err
	}
	zy, err := e.evalValue(n.RHS, feature)
	if err != nil {
		return value.Q{}, err
	}
	a, err := triBool(zx)
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "unexpected OR operand")
	}
	b, err := triBool(zy)
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "unexpected OR operand")
	}
	switch {
	case a != nil && b != nil:
		return value.NewBool(*a || *b), nil
	case a != nil && *a:
		return value.NewBool(true), nil
	case b != nil && *b:
		return value.NewBool(true), nil
	default:
		return value.Null, nil
	}
}

// triBool reports q as a *bool (nil meaning Null), or an error if q is
// neither Null nor Bool.
func triBool(q value.Q) (*bool, error) {
	if q.IsNull() {
		return nil, nil
	}
	b, err := q.ToBool()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// evalComparison implements `=`, `<>`, `<`, `>`, `<=`, `>=` per Requirement
// 3C/3D of the comparison-predicates clause: Null on either side yields
// Null, and the operands must share a type.
func evalComparison(op ir.Op, zx, zy value.Q) (value.Q, error) {
	if zx.IsNull() || zy.IsNull() {
		return value.Null, nil
	}
	if !value.SameType(zx, zy) {
		return value.Q{}, cql2err.New(cql2err.KindType, "cannot compare %s and %s", zx, zy)
	}
	switch op {
	case ir.Eq:
		return value.NewBool(zx.Equal(zy)), nil
	case ir.Neq:
		return value.NewBool(!zx.Equal(zy)), nil
	case ir.Lt, ir.Gt, ir.Lte, ir.Gte:
		cmp, ok := zx.Compare(zy)
		if !ok {
			return value.Q{}, cql2err.New(cql2err.KindType, "%s is not orderable", zx)
		}
		switch op {
		case ir.Lt:
			return value.NewBool(cmp < 0), nil
		case ir.Gt:
			return value.NewBool(cmp > 0), nil
		case ir.Lte:
			return value.NewBool(cmp <= 0), nil
		default:
			return value.NewBool(cmp >= 0), nil
		}
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected comparison operator %s", op)
	}
}

// evalExtendedComparison implements LIKE, BETWEEN, and IN (and their
// negations).
func evalExtendedComparison(op ir.Op, zx, zy value.Q) (value.Q, error) {
	if zx.IsNull() || zy.IsNull() {
		return value.Null, nil
	}
	switch op {
	case ir.IsLike, ir.IsNotLike:
		input, err := zx.ToStr()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "LIKE expects a string operand")
		}
		pattern, err := zy.ToStr()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "LIKE expects a string pattern")
		}
		matched := value.Like(input, pattern)
		if op == ir.IsNotLike {
			matched = !matched
		}
		return value.NewBool(matched), nil

	case ir.IsBetween, ir.IsNotBetween:
		a, err := zx.ToNum()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "BETWEEN expects a numeric operand")
		}
		bounds, err := zy.ToList()
		if err != nil || len(bounds) != 2 {
			return value.Q{}, cql2err.New(cql2err.KindType, "BETWEEN expects a 2-element range")
		}
		if bounds[0].IsNull() || bounds[1].IsNull() {
			return value.Null, nil
		}
		lo, err := bounds[0].ToNum()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "BETWEEN range must be numeric")
		}
		hi, err := bounds[1].ToNum()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "BETWEEN range must be numeric")
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		inRange := a >= lo && a <= hi
		if op == ir.IsNotBetween {
			inRange = !inRange
		}
		return value.NewBool(inRange), nil

	case ir.IsInList, ir.IsNotInList:
		if _, ok := zx.LiteralType(); !ok {
			return value.Q{}, cql2err.New(cql2err.KindType, "[NOT] IN left-hand side is not a literal value")
		}
		list, err := zy.ToList()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "[NOT] IN expects a list")
		}
		found, err := zx.ContainedBy(list)
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "incompatible [NOT] IN predicate types")
		}
		if op == ir.IsNotInList {
			found = !found
		}
		return value.NewBool(found), nil

	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected extended comparison operator %s", op)
	}
}

// evalArithmetic implements +, -, *, /, div, %, ^. Despite what the names
// suggest, IntDiv computes a Euclidean remainder and Mod computes Go's %.
func evalArithmetic(op ir.Op, zx, zy value.Q) (value.Q, error) {
	if zx.IsNull() || zy.IsNull() {
		return value.Null, nil
	}
	a, err := zx.ToNum()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "arithmetic expects numeric operands")
	}
	b, err := zy.ToNum()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "arithmetic expects numeric operands")
	}
	switch op {
	case ir.Plus:
		return value.NewNum(a + b), nil
	case ir.Minus:
		return value.NewNum(a - b), nil
	case ir.Mult:
		return value.NewNum(a * b), nil
	case ir.Div:
		return value.NewNum(a / b), nil
	case ir.IntDiv:
		return value.NewNum(remEuclid(a, b)), nil
	case ir.Mod:
		return value.NewNum(math.Mod(a, b)), nil
	case ir.Exp:
		return value.NewNum(math.Round(math.Pow(a, b))), nil
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected arithmetic operator %s", op)
	}
}

func remEuclid(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		if b < 0 {
			r -= b
		} else {
			r += b
		}
	}
	return r
}

// evalSpatial implements the S_* predicates by delegating to the Context's
// geom.Engine.
func (e *Evaluator) evalSpatial(op ir.Op, zx, zy value.Q) (value.Q, error) {
	if zx.IsNull() || zy.IsNull() {
		return value.Null, nil
	}
	a, err := zx.ToGeom()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "spatial predicate expects a geometry operand")
	}
	b, err := zy.ToGeom()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "spatial predicate expects a geometry operand")
	}
	engine := e.ctx.Engine()
	if engine == nil {
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "%s requires a spatial engine; none is configured", op)
	}
	var result bool
	switch op {
	case ir.SIntersects:
		result, err = engine.Intersects(a, b)
	case ir.SEquals:
		result, err = engine.Equals(a, b)
	case ir.SDisjoint:
		result, err = engine.Disjoint(a, b)
	case ir.STouches:
		result, err = engine.Touches(a, b)
	case ir.SWithin:
		result, err = engine.Within(a, b)
	case ir.SOverlaps:
		result, err = engine.Overlaps(a, b)
	case ir.SCrosses:
		result, err = engine.Crosses(a, b)
	case ir.SContains:
		result, err = engine.Contains(a, b)
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected spatial operator %s", op)
	}
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindRuntime, err, "%s failed", op)
	}
	return value.NewBool(result), nil
}

// evalArray implements A_EQUALS/A_CONTAINS/A_CONTAINEDBY/A_OVERLAPS.
// A_OVERLAPS uses positional (zip) semantics, comparing elements pairwise
// by index rather than testing for any shared member.
func evalArray(op ir.Op, zx, zy value.Q) (value.Q, error) {
	a, err := zx.ToList()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "array predicate expects a list operand")
	}
	b, err := zy.ToList()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "array predicate expects a list operand")
	}
	switch op {
	case ir.AEquals:
		return value.NewBool(listEqual(a, b)), nil
	case ir.AContains:
		for _, p := range b {
			if !listContains(a, p) {
				return value.NewBool(false), nil
			}
		}
		return value.NewBool(true), nil
	case ir.AContainedBy:
		for _, p := range a {
			if !listContains(b, p) {
				return value.NewBool(false), nil
			}
		}
		return value.NewBool(true), nil
	case ir.AOverlaps:
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		for i := 0; i < n; i++ {
			if a[i].Equal(b[i]) {
				return value.NewBool(true), nil
			}
		}
		return value.NewBool(false), nil
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected array operator %s", op)
	}
}

func listContains(list []value.Q, item value.Q) bool {
	for _, v := range list {
		if v.Equal(item) {
			return true
		}
	}
	return false
}

func listEqual(a, b []value.Q) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
