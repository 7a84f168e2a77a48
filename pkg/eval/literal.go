package eval

import (
	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// EvalBinaryOp evaluates a non-AND/OR binary operator over two already
// computed operands. It is exported so pkg/reduce can fold a literal binary
// sub-expression into its result without re-walking an ir.Expr tree through
// an Evaluator.
func (c *Context) EvalBinaryOp(op ir.Op, lhs, rhs value.Q) (value.Q, error) {
	switch {
	case op.IsComparison():
		return evalComparison(op, lhs, rhs)
	case op.IsExtendedComparison():
		return evalExtendedComparison(op, lhs, rhs)
	case op.IsArithmetic():
		return evalArithmetic(op, lhs, rhs)
	case op.IsSpatial():
		ev := &Evaluator{ctx: c}
		return ev.evalSpatial(op, lhs, rhs)
	case op.IsTemporal():
		return evalTemporal(op, lhs, rhs)
	case op.IsArray():
		return evalArray(op, lhs, rhs)
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected binary operator %s", op)
	}
}
