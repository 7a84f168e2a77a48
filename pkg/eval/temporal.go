package eval

import (
	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// evalTemporal implements the 13 Allen interval relations plus the 5
// operators that also accept a bare Instant on either side (T_AFTER,
// T_BEFORE, T_DISJOINT, T_EQUALS, T_INTERSECTS).
func evalTemporal(op ir.Op, zx, zy value.Q) (value.Q, error) {
	if zx.IsNull() || zy.IsNull() {
		return value.Null, nil
	}
	if op.IsInstantOrInterval() {
		result, err := evalInstantOrInterval(op, zx, zy)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewBool(result), nil
	}

	lo1, hi1, err := zx.ToInterval()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "%s expects an interval operand", op)
	}
	lo2, hi2, err := zy.ToInterval()
	if err != nil {
		return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "%s expects an interval operand", op)
	}
	switch op {
	case ir.TContains:
		return value.NewBool(lo1.Compare(lo2) < 0 && hi1.Compare(hi2) > 0), nil
	case ir.TDuring:
		return value.NewBool(lo1.Compare(lo2) > 0 && hi1.Compare(hi2) < 0), nil
	case ir.TFinishedBy:
		return value.NewBool(lo1.Compare(lo2) < 0 && hi1.Equal(hi2)), nil
	case ir.TFinishes:
		return value.NewBool(lo1.Compare(lo2) > 0 && hi1.Equal(hi2)), nil
	case ir.TMeets:
		return value.NewBool(hi1.Equal(lo2)), nil
	case ir.TMetBy:
		return value.NewBool(lo1.Equal(hi2)), nil
	case ir.TOverlappedBy:
		return value.NewBool(lo1.Compare(lo2) > 0 && lo1.Compare(hi2) < 0 && hi1.Compare(hi2) > 0), nil
	case ir.TOverlaps:
		return value.NewBool(lo1.Compare(lo2) < 0 && hi1.Compare(lo2) > 0 && hi1.Compare(hi2) < 0), nil
	case ir.TStartedBy:
		return value.NewBool(lo1.Equal(lo2) && hi1.Compare(hi2) > 0), nil
	case ir.TStarts:
		return value.NewBool(lo1.Equal(lo2) && hi1.Compare(hi2) < 0), nil
	default:
		return value.Q{}, cql2err.New(cql2err.KindRuntime, "unexpected interval operator %s", op)
	}
}

// evalInstantOrInterval handles the 5 operators that accept any mix of
// Instant and Interval operands, reducing both sides to the (b0,b1,b2,b3)
// bound quadruple the comparisons are phrased over: b0/b1 are the left
// operand's start/end (b1 unused when it's an Instant), b2/b3 the right
// operand's.
func evalInstantOrInterval(op ir.Op, zx, zy value.Q) (bool, error) {
	aInstant := zx.IsInstant()
	bInstant := zy.IsInstant()

	var b0, b1, b2, b3 value.Bound
	switch {
	case aInstant && bInstant:
		t1, err := zx.ToBound()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects a bounded instant", op)
		}
		t2, err := zy.ToBound()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects a bounded instant", op)
		}
		b0, b2 = t1, t2
	case aInstant && !bInstant:
		t1, err := zx.ToBound()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects a bounded instant", op)
		}
		lo, hi, err := zy.ToInterval()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects an interval operand", op)
		}
		b0, b2, b3 = t1, lo, hi
	case !aInstant && bInstant:
		lo, hi, err := zx.ToInterval()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects an interval operand", op)
		}
		t2, err := zy.ToBound()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects a bounded instant", op)
		}
		b0, b1, b2 = lo, hi, t2
	default:
		lo1, hi1, err := zx.ToInterval()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects an interval operand", op)
		}
		lo2, hi2, err := zy.ToInterval()
		if err != nil {
			return false, cql2err.Wrap(cql2err.KindType, err, "%s expects an interval operand", op)
		}
		b0, b1, b2, b3 = lo1, hi1, lo2, hi2
	}

	switch op {
	case ir.TAfter:
		switch {
		case aInstant && bInstant:
			return b0.Compare(b2) > 0, nil
		case aInstant && !bInstant:
			return b0.Compare(b3) > 0, nil
		case !aInstant && bInstant:
			return b0.Compare(b2) > 0, nil
		default:
			return b0.Compare(b3) > 0, nil
		}
	case ir.TBefore:
		switch {
		case aInstant && bInstant:
			return b0.Compare(b2) < 0, nil
		case aInstant && !bInstant:
			return b0.Compare(b2) < 0, nil
		case !aInstant && bInstant:
			return b1.Compare(b2) < 0, nil
		default:
			return b1.Compare(b2) < 0, nil
		}
	case ir.TDisjoint:
		switch {
		case aInstant && bInstant:
			return !b0.Equal(b2), nil
		case aInstant && !bInstant:
			return b0.Compare(b2) < 0 || b0.Compare(b3) > 0, nil
		case !aInstant && bInstant:
			return b1.Compare(b2) < 0 || b0.Compare(b2) > 0, nil
		default:
			return b1.Compare(b2) < 0 || b0.Compare(b3) > 0, nil
		}
	case ir.TEquals:
		switch {
		case aInstant && bInstant:
			return b0.Equal(b2), nil
		case aInstant && !bInstant:
			return b0.Equal(b2) && b0.Equal(b3), nil
		case !aInstant && bInstant:
			return b0.Equal(b2) && b1.Equal(b2), nil
		default:
			return b0.Equal(b2) && b1.Equal(b3), nil
		}
	case ir.TIntersects:
		switch {
		case aInstant && bInstant:
			return b0.Equal(b2), nil
		case aInstant && !bInstant:
			return !(b0.Compare(b2) < 0 || b0.Compare(b3) > 0), nil
		case !aInstant && bInstant:
			return !(b1.Compare(b2) < 0 || b0.Compare(b2) > 0), nil
		default:
			return !(b1.Compare(b2) < 0 || b0.Compare(b3) > 0), nil
		}
	default:
		return false, cql2err.New(cql2err.KindRuntime, "unexpected temporal operator %s", op)
	}
}
