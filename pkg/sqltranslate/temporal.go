package sqltranslate

import (
	"fmt"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
)

// unfoldExpressions splits a and b into their lo/hi bound expressions: an
// Instant (or any non-interval operand) stands for both its own lo and hi,
// an IntervalLit contributes its own Lo/Hi. This mirrors how the original's
// mixed instant/interval temporal predicates compare whichever bound is
// relevant without needing a separate code path per operand shape.
func unfoldExpressions(a, b ir.Expr) (aIsInterval, bIsInterval bool, e0, e1, e2, e3 ir.Expr) {
	if iv, ok := a.(*ir.IntervalLit); ok {
		aIsInterval = true
		e0, e1 = iv.Lo, iv.Hi
	} else {
		e0, e1 = a, a
	}
	if iv, ok := b.(*ir.IntervalLit); ok {
		bIsInterval = true
		e2, e3 = iv.Lo, iv.Hi
	} else {
		e2, e3 = b, b
	}
	return
}

func unfoldIntervals(a, b ir.Expr) (e0, e1, e2, e3 ir.Expr, err error) {
	ai, ok := a.(*ir.IntervalLit)
	if !ok {
		return nil, nil, nil, nil, cql2err.New(cql2err.KindSQL, "expected an interval operand, got %T", a)
	}
	bi, ok := b.(*ir.IntervalLit)
	if !ok {
		return nil, nil, nil, nil, cql2err.New(cql2err.KindSQL, "expected an interval operand, got %T", b)
	}
	return ai.Lo, ai.Hi, bi.Lo, bi.Hi, nil
}

// checkIDs appends "<col> IS NOT NULL" guards for every exprs entry that is
// a bare column reference. A mixed instant/interval predicate only folds
// some of its four endpoint expressions into the rendered SQL; any
// endpoint identifier left out of the comparison must still be
// non-NULL for the comparison to hold, since an unbounded interval limit
// stored as a NULL column would otherwise make the surrounding condition
// silently true.
func (t *translator) checkIDs(base string, exprs ...ir.Expr) (string, error) {
	var guards []string
	for _, e := range exprs {
		name, ok := ir.AsIdent(e)
		if !ok {
			continue
		}
		guards = append(guards, fmt.Sprintf("%s IS NOT NULL", t.dialect.QuoteIdent(name)))
	}
	if len(guards) == 0 {
		return base, nil
	}
	sql := "(" + base + ")"
	for _, g := range guards {
		sql += " AND " + g
	}
	return sql, nil
}

func (t *translator) sql2(e0, e1 ir.Expr) (string, string, error) {
	s0, err := t.emit(e0)
	if err != nil {
		return "", "", err
	}
	s1, err := t.emit(e1)
	if err != nil {
		return "", "", err
	}
	return s0, s1, nil
}

func (t *translator) sql4(e0, e1, e2, e3 ir.Expr) (string, string, string, string, error) {
	s0, s1, err := t.sql2(e0, e1)
	if err != nil {
		return "", "", "", "", err
	}
	s2, s3, err := t.sql2(e2, e3)
	if err != nil {
		return "", "", "", "", err
	}
	return s0, s1, s2, s3, nil
}

func (t *translator) emitTemporal(x *ir.Binary) (string, error) {
	switch x.Op {
	case ir.TAfter:
		return t.tAfter(x.LHS, x.RHS)
	case ir.TBefore:
		return t.tBefore(x.LHS, x.RHS)
	case ir.TDisjoint:
		return t.tDisjoint(x.LHS, x.RHS)
	case ir.TEquals:
		return t.tEquals(x.LHS, x.RHS)
	case ir.TIntersects:
		return t.tIntersects(x.LHS, x.RHS)
	case ir.TContains:
		return t.tContains(x.LHS, x.RHS)
	case ir.TDuring:
		return t.tDuring(x.LHS, x.RHS)
	case ir.TFinishedBy:
		return t.tFinishedBy(x.LHS, x.RHS)
	case ir.TFinishes:
		return t.tFinishes(x.LHS, x.RHS)
	case ir.TMeets:
		return t.tMeets(x.LHS, x.RHS)
	case ir.TMetBy:
		return t.tMetBy(x.LHS, x.RHS)
	case ir.TOverlappedBy:
		return t.tOverlappedBy(x.LHS, x.RHS)
	case ir.TOverlaps:
		return t.tOverlaps(x.LHS, x.RHS)
	case ir.TStartedBy:
		return t.tStartedBy(x.LHS, x.RHS)
	case ir.TStarts:
		return t.tStarts(x.LHS, x.RHS)
	default:
		return "", cql2err.New(cql2err.KindSQL, "unexpected temporal operator %s", x.Op)
	}
}

func (t *translator) tAfter(a, b ir.Expr) (string, error) {
	aIsInterval, bIsInterval, e0, e1, e2, e3 := unfoldExpressions(a, b)
	switch {
	case !aIsInterval && !bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s > %s", s0, s2), nil
	case !aIsInterval && bIsInterval:
		s0, s3, err := t.sql2(e0, e3)
		if err != nil {
			return "", err
		}
		return t.checkIDs(fmt.Sprintf("%s > %s", s0, s3), e2)
	case aIsInterval && !bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return t.checkIDs(fmt.Sprintf("%s > %s", s0, s2), e1)
	default:
		s0, s3, err := t.sql2(e0, e3)
		if err != nil {
			return "", err
		}
		return t.checkIDs(fmt.Sprintf("%s > %s", s0, s3), e1, e2)
	}
}

func (t *translator) tBefore(a, b ir.Expr) (string, error) {
	aIsInterval, bIsInterval, e0, e1, e2, e3 := unfoldExpressions(a, b)
	switch {
	case !aIsInterval && !bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s < %s", s0, s2), nil
	case !aIsInterval && bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return t.checkIDs(fmt.Sprintf("%s < %s", s0, s2), e3)
	case aIsInterval && !bIsInterval:
		s1, s2, err := t.sql2(e1, e2)
		if err != nil {
			return "", err
		}
		return t.checkIDs(fmt.Sprintf("%s < %s", s1, s2), e0)
	default:
		s1, s2, err := t.sql2(e1, e2)
		if err != nil {
			return "", err
		}
		return t.checkIDs(fmt.Sprintf("%s < %s", s1, s2), e0, e3)
	}
}

func (t *translator) tDisjoint(a, b ir.Expr) (string, error) {
	aIsInterval, bIsInterval, e0, e1, e2, e3 := unfoldExpressions(a, b)
	switch {
	case !aIsInterval && !bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s <> %s", s0, s2), nil
	case !aIsInterval && bIsInterval:
		s0, s2, s3, err3 := t.sqlTriple(e0, e2, e3)
		if err3 != nil {
			return "", err3
		}
		sql1, err := t.checkIDs(fmt.Sprintf("%s < %s", s0, s2), e3)
		if err != nil {
			return "", err
		}
		sql2, err := t.checkIDs(fmt.Sprintf("%s > %s", s0, s3), e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s) OR (%s)", sql1, sql2), nil
	case aIsInterval && !bIsInterval:
		s0, s1, s2, err3 := t.sqlTriple(e0, e1, e2)
		if err3 != nil {
			return "", err3
		}
		sql1, err := t.checkIDs(fmt.Sprintf("%s < %s", s1, s2), e0)
		if err != nil {
			return "", err
		}
		sql2, err := t.checkIDs(fmt.Sprintf("%s > %s", s0, s2), e1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s) OR (%s)", sql1, sql2), nil
	default:
		s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
		if err != nil {
			return "", err
		}
		sql1, err := t.checkIDs(fmt.Sprintf("%s < %s", s1, s2), e0, e3)
		if err != nil {
			return "", err
		}
		sql2, err := t.checkIDs(fmt.Sprintf("%s > %s", s0, s3), e1, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s) OR (%s)", sql1, sql2), nil
	}
}

func (t *translator) sqlTriple(e0, e1, e2 ir.Expr) (string, string, string, error) {
	s0, s1, err := t.sql2(e0, e1)
	if err != nil {
		return "", "", "", err
	}
	s2, err := t.emit(e2)
	if err != nil {
		return "", "", "", err
	}
	return s0, s1, s2, nil
}

func (t *translator) tEquals(a, b ir.Expr) (string, error) {
	aIsInterval, bIsInterval, e0, e1, e2, e3 := unfoldExpressions(a, b)
	switch {
	case !aIsInterval && !bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", s0, s2), nil
	case !aIsInterval && bIsInterval:
		s0, s2, s3, err := t.sqlTriple(e0, e2, e3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s = %s) AND (%s = %s)", s0, s2, s0, s3), nil
	case aIsInterval && !bIsInterval:
		s0, s1, s2, err := t.sqlTriple(e0, e1, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s = %s) AND (%s = %s)", s0, s2, s1, s2), nil
	default:
		s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s = %s) AND (%s = %s)", s0, s2, s1, s3), nil
	}
}

func (t *translator) tIntersects(a, b ir.Expr) (string, error) {
	aIsInterval, bIsInterval, e0, e1, e2, e3 := unfoldExpressions(a, b)
	switch {
	case !aIsInterval && !bIsInterval:
		s0, s2, err := t.sql2(e0, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", s0, s2), nil
	case !aIsInterval && bIsInterval:
		s0, s2, s3, err := t.sqlTriple(e0, e2, e3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT((%s < %s) OR (%s > %s))", s0, s2, s0, s3), nil
	case aIsInterval && !bIsInterval:
		s0, s1, s2, err := t.sqlTriple(e0, e1, e2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT((%s < %s) OR (%s > %s))", s1, s2, s0, s2), nil
	default:
		s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT((%s < %s) OR (%s > %s))", s1, s2, s0, s3), nil
	}
}

func (t *translator) tContains(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s < %s) AND (%s > %s)", s0, s2, s1, s3), nil
}

func (t *translator) tDuring(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s > %s) AND (%s < %s)", s0, s2, s1, s3), nil
}

func (t *translator) tFinishedBy(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s < %s) AND (%s = %s)", s0, s2, s1, s3), nil
}

func (t *translator) tFinishes(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s > %s) AND (%s = %s)", s0, s2, s1, s3), nil
}

func (t *translator) tMeets(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s1, s2, err := t.sql2(e1, e2)
	if err != nil {
		return "", err
	}
	return t.checkIDs(fmt.Sprintf("%s = %s", s1, s2), e0, e3)
}

func (t *translator) tMetBy(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s3, err := t.sql2(e0, e3)
	if err != nil {
		return "", err
	}
	return t.checkIDs(fmt.Sprintf("%s = %s", s0, s3), e1, e2)
}

func (t *translator) tOverlappedBy(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s > %s) AND (%s < %s) AND (%s > %s)", s0, s2, s0, s3, s1, s3), nil
}

func (t *translator) tOverlaps(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s < %s) AND (%s > %s) AND (%s < %s)", s0, s2, s1, s2, s1, s3), nil
}

func (t *translator) tStartedBy(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s = %s) AND (%s > %s)", s0, s2, s1, s3), nil
}

func (t *translator) tStarts(a, b ir.Expr) (string, error) {
	e0, e1, e2, e3, err := unfoldIntervals(a, b)
	if err != nil {
		return "", err
	}
	s0, s1, s2, s3, err := t.sql4(e0, e1, e2, e3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s = %s) AND (%s < %s)", s0, s2, s1, s3), nil
}
