package eval

import (
	"log/slog"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// Outcome is the three-valued result of evaluating a CQL2 filter:
// True/False/Unknown, matching the T/F/N spelling used in this module's
// debug output and CLI.
type Outcome int

const (
	Unknown Outcome = iota
	True
	False
)

func (o Outcome) String() string {
	switch o {
	case True:
		return "T"
	case False:
		return "F"
	default:
		return "N"
	}
}

// Evaluator runs an ir.Expr against a value.Resource within a Context.
type Evaluator struct {
	ctx *Context
}

// NewEvaluator builds an Evaluator bound to ctx.
func NewEvaluator(ctx *Context) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// Evaluate runs expr against resource and collapses the result to a
// three-valued Outcome. The root of a filter must evaluate to a boolean or
// Null; anything else is a type error.
func (e *Evaluator) Evaluate(expr ir.Expr, resource value.Resource) (Outcome, error) {
	q, err := e.evalValue(expr, resource)
	if err != nil {
		return Unknown, err
	}
	if q.IsNull() {
		return Unknown, nil
	}
	b, err := q.ToBool()
	if err != nil {
		return Unknown, cql2err.Wrap(cql2err.KindType, err, "filter did not evaluate to a boolean")
	}
	if b {
		return True, nil
	}
	return False, nil
}

// evalValue evaluates expr to its runtime Queryable, the building block
// Evaluate and every compound operator's operand evaluation is defined in
// terms of.
func (e *Evaluator) evalValue(n ir.Expr, feature value.Resource) (value.Q, error) {
	switch t := n.(type) {
	case *ir.NullLit:
		return value.Null, nil
	case *ir.UnboundedLit:
		return value.NewInstant(value.UnboundedBound), nil
	case *ir.BoolLit:
		return value.NewBool(t.Value), nil
	case *ir.NumLit:
		return value.NewNum(t.Value), nil
	case *ir.StrLit:
		return value.NewStr(t.Value), nil
	case *ir.DateLit:
		return value.NewInstant(t.Value), nil
	case *ir.TimestampLit:
		return value.NewInstant(t.Value), nil
	case *ir.SpatialLit:
		if c := e.ctx.CRS(); c != nil {
			if err := c.CheckGeometry(t.Value); err != nil {
				return value.Q{}, cql2err.Wrap(cql2err.KindCRS, err, "geometry literal failed CRS check")
			}
		}
		return value.NewGeom(t.Value), nil
	case *ir.Ident:
		v := feature.Get(t.Name)
		if v.IsNull() {
			slog.Debug("no queryable in resource", "name", t.Name)
		}
		return v, nil
	case *ir.Unary:
		return e.evalUnary(t, feature)
	case *ir.Binary:
		return e.evalBinary(t, feature)
	case *ir.Call:
		return e.evalCall(t, feature)
	case *ir.ArrayLit:
		items := make([]value.Q, len(t.Items))
		for i, it := range t.Items {
			v, err := e.evalValue(it, feature)
			if err != nil {
				return value.Q{}, err
			}
			items[i] = v
		}
		return value.NewList(items), nil
	case *ir.IntervalLit:
		return e.evalInterval(t, feature)
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected expression node %T", n)
	}
}

func (e *Evaluator) evalUnary(n *ir.Unary, feature value.Resource) (value.Q, error) {
	zx, err := e.evalValue(n.X, feature)
	if err != nil {
		return value.Q{}, err
	}
	switch n.Op {
	case ir.Minus:
		if zx.IsNull() {
			return value.Null, nil
		}
		x, err := zx.ToNum()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "unary - expects a number")
		}
		return value.NewNum(-x), nil
	case ir.Neg:
		if zx.IsNull() {
			return value.Null, nil
		}
		b, err := zx.ToBool()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "NOT expects a boolean")
		}
		return value.NewBool(!b), nil
	case ir.CaseI:
		s, err := zx.ToStr()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "CASEI expects a string")
		}
		return value.NewStr(s.AndICase()), nil
	case ir.AccentI:
		s, err := zx.ToStr()
		if err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "ACCENTI expects a string")
		}
		return value.NewStr(s.AndIAccent()), nil
	case ir.IsNull:
		return value.NewBool(zx.IsNull()), nil
	case ir.IsNotNull:
		return value.NewBool(!zx.IsNull()), nil
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected unary operator %s", n.Op)
	}
}

func (e *Evaluator) evalBinary(n *ir.Binary, feature value.Resource) (value.Q, error) {
	switch n.Op {
	case ir.And:
		return e.evalAnd(n, feature)
	case ir.Or:
		return e.evalOr(n, feature)
	}

	zx, err := e.evalValue(n.LHS, feature)
	if err != nil {
		return value.Q{}, err
	}
	zy, err := e.evalValue(n.RHS, feature)
	if err != nil {
		return value.Q{}, err
	}

	switch {
	case n.Op.IsComparison():
		return evalComparison(n.Op, zx, zy)
	case n.Op.IsExtendedComparison():
		return evalExtendedComparison(n.Op, zx, zy)
	case n.Op.IsArithmetic():
		return evalArithmetic(n.Op, zx, zy)
	case n.Op.IsSpatial():
		return e.evalSpatial(n.Op, zx, zy)
	case n.Op.IsTemporal():
		return evalTemporal(n.Op, zx, zy)
	case n.Op.IsArray():
		return evalArray(n.Op, zx, zy)
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected binary operator %s", n.Op)
	}
}

func (e *Evaluator) evalInterval(n *ir.IntervalLit, feature value.Resource) (value.Q, error) {
	lo, err := e.evalValue(n.Lo, feature)
	if err != nil {
		return value.Q{}, err
	}
	hi, err := e.evalValue(n.Hi, feature)
	if err != nil {
		return value.Q{}, err
	}
	loBound, loOK := asBound(lo)
	hiBound, hiOK := asBound(hi)
	if !loOK || !hiOK {
		return value.Null, nil
	}
	return value.NewInterval(loBound, hiBound), nil
}

func asBound(q value.Q) (value.Bound, bool) {
	b, err := q.ToBound()
	if err != nil {
		return value.Bound{}, false
	}
	return b, true
}
