package cqltext

import (
	"strconv"
	"strings"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/token"
	"github.com/geocql/cql2/pkg/value"
)

// Parse parses a CQL2 text-encoding filter into an Expression tree.
func Parse(src string) (ir.Expr, error) {
	toks, err := newLexer(src).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: src}
	expr, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.EOF {
		return nil, p.errorf("unexpected trailing input %q", p.cur().Literal)
	}
	return expr, nil
}

type parser struct {
	toks []token.Token
	pos  int
	src  string
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return cql2err.At(cql2err.KindSyntax, p.cur().Pos, format, args...)
}

func (p *parser) expect(tt token.Type) (token.Token, error) {
	if p.cur().Type != tt {
		return token.Token{}, p.errorf("expected %s, found %q", tt, p.cur().Literal)
	}
	return p.advance(), nil
}

// ===== boolean grammar: OR > AND > NOT > primary =====

func (p *parser) parseBooleanExpression() (ir.Expr, error) {
	lhs, err := p.parseBooleanTerm()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.OR {
		p.advance()
		rhs, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}
		lhs = &ir.Binary{Op: ir.Or, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *parser) parseBooleanTerm() (ir.Expr, error) {
	lhs, err := p.parseBooleanFactor()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.AND {
		p.advance()
		rhs, err := p.parseBooleanFactor()
		if err != nil {
			return nil, err
		}
		lhs = &ir.Binary{Op: ir.And, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *parser) parseBooleanFactor() (ir.Expr, error) {
	if p.cur().Type == token.NOT {
		p.advance()
		x, err := p.parseBooleanPrimary()
		if err != nil {
			return nil, err
		}
		return &ir.Unary{Op: ir.Neg, X: x}, nil
	}
	return p.parseBooleanPrimary()
}

func (p *parser) parseBooleanPrimary() (ir.Expr, error) {
	if p.cur().Type == token.LPAREN {
		p.advance()
		x, err := p.parseBooleanExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	}
	if p.cur().Type == token.TRUE {
		p.advance()
		return &ir.BoolLit{Value: true}, nil
	}
	if p.cur().Type == token.FALSE {
		p.advance()
		return &ir.BoolLit{Value: false}, nil
	}
	return p.parsePredicate()
}

// ===== predicates: comparison, spatial, temporal, array, or a bare operand
// that turns out to be IS [NOT] NULL, LIKE, BETWEEN, or IN =====

func (p *parser) parsePredicate() (ir.Expr, error) {
	if op, ok := spatialFunction(p.cur()); ok && p.peek(1).Type == token.LPAREN {
		return p.parseDyadicFunctionLike(op, p.parseGeomOperand)
	}
	if op, ok := temporalFunction(p.cur()); ok && p.peek(1).Type == token.LPAREN {
		return p.parseDyadicFunctionLike(op, p.parseTemporalOperand)
	}
	if op, ok := arrayFunction(p.cur()); ok && p.peek(1).Type == token.LPAREN {
		return p.parseDyadicFunctionLike(op, p.parseArrayOperand)
	}

	x, err := p.parseScalarExpression()
	if err != nil {
		return nil, err
	}

	switch p.cur().Type {
	case token.IS:
		p.advance()
		neg := false
		if p.cur().Type == token.NOT {
			neg = true
			p.advance()
		}
		if _, err := p.expect(token.NULL); err != nil {
			return nil, err
		}
		op := ir.IsNull
		if neg {
			op = ir.IsNotNull
		}
		return &ir.Unary{Op: op, X: x}, nil

	case token.NOT:
		p.advance()
		return p.parseNegatedExtendedComparison(x)

	case token.LIKE:
		p.advance()
		y, err := p.parseScalarExpression()
		if err != nil {
			return nil, err
		}
		return &ir.Binary{Op: ir.IsLike, LHS: x, RHS: y}, nil

	case token.BETWEEN:
		p.advance()
		return p.parseBetween(x, ir.IsBetween)

	case token.IN:
		p.advance()
		return p.parseInList(x, ir.IsInList)
	}

	return x, nil
}

func (p *parser) parseNegatedExtendedComparison(x ir.Expr) (ir.Expr, error) {
	switch p.cur().Type {
	case token.LIKE:
		p.advance()
		y, err := p.parseScalarExpression()
		if err != nil {
			return nil, err
		}
		return &ir.Binary{Op: ir.IsNotLike, LHS: x, RHS: y}, nil
	case token.BETWEEN:
		p.advance()
		return p.parseBetween(x, ir.IsNotBetween)
	case token.IN:
		p.advance()
		return p.parseInList(x, ir.IsNotInList)
	}
	return nil, p.errorf("expected LIKE, BETWEEN, or IN after NOT, found %q", p.cur().Literal)
}

func (p *parser) parseBetween(x ir.Expr, op ir.Op) (ir.Expr, error) {
	lo, err := p.parseNumericExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AND); err != nil {
		return nil, err
	}
	hi, err := p.parseNumericExpression()
	if err != nil {
		return nil, err
	}
	return &ir.Binary{Op: op, LHS: x, RHS: &ir.ArrayLit{Items: []ir.Expr{lo, hi}}}, nil
}

func (p *parser) parseInList(x ir.Expr, op ir.Op) (ir.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var items []ir.Expr
	for {
		item, err := p.parseScalarExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.cur().Type != token.COMMA {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ir.Binary{Op: op, LHS: x, RHS: &ir.ArrayLit{Items: items}}, nil
}

func (p *parser) parseDyadicFunctionLike(op ir.Op, operand func() (ir.Expr, error)) (ir.Expr, error) {
	p.advance() // function-like keyword
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	x, err := operand()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	y, err := operand()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ir.Binary{Op: op, LHS: x, RHS: y}, nil
}

// parseScalarExpression handles any operand that can appear on either side
// of a basic comparison or inside LIKE/BETWEEN/IN: booleans, strings
// (with CASEI/ACCENTI), temporal instants, arithmetic, functions, and
// identifiers — followed by an optional trailing comparison operator.
func (p *parser) parseScalarExpression() (ir.Expr, error) {
	x, err := p.parseScalarOperand()
	if err != nil {
		return nil, err
	}
	if op, ok := comparisonOperator(p.cur()); ok {
		p.advance()
		y, err := p.parseScalarOperand()
		if err != nil {
			return nil, err
		}
		return &ir.Binary{Op: op, LHS: x, RHS: y}, nil
	}
	return x, nil
}

func (p *parser) parseScalarOperand() (ir.Expr, error) {
	switch p.cur().Type {
	case token.TRUE:
		p.advance()
		return &ir.BoolLit{Value: true}, nil
	case token.FALSE:
		p.advance()
		return &ir.BoolLit{Value: false}, nil
	case token.STRING:
		t := p.advance()
		return &ir.StrLit{Value: value.PlainString(t.Literal)}, nil
	case token.CASEI, token.ACCENTI:
		return p.parseCharacterClause()
	}
	if lit, ok, err := p.tryTemporalInstant(); ok || err != nil {
		return lit, err
	}
	return p.parseArithmeticExpression()
}

func (p *parser) parseCharacterClause() (ir.Expr, error) {
	wrap := p.advance().Type
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	x, err := p.parseScalarOperand()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	op := ir.CaseI
	if wrap == token.ACCENTI {
		op = ir.AccentI
	}
	if s, ok := x.(*ir.StrLit); ok {
		if op == ir.CaseI {
			return &ir.StrLit{Value: s.Value.AndICase()}, nil
		}
		return &ir.StrLit{Value: s.Value.AndIAccent()}, nil
	}
	return &ir.Unary{Op: op, X: x}, nil
}

func (p *parser) parseNumericExpression() (ir.Expr, error) {
	return p.parseArithmeticExpression()
}

// ===== arithmetic: + - (lowest) > * / % div (mid) > ^ (highest) > unary - =====

func (p *parser) parseArithmeticExpression() (ir.Expr, error) {
	x, err := p.parseArithmeticTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op ir.Op
		switch p.cur().Type {
		case token.PLUS:
			op = ir.Plus
		case token.MINUS:
			op = ir.Minus
		default:
			return x, nil
		}
		p.advance()
		y, err := p.parseArithmeticTerm()
		if err != nil {
			return nil, err
		}
		x = &ir.Binary{Op: op, LHS: x, RHS: y}
	}
}

func (p *parser) parseArithmeticTerm() (ir.Expr, error) {
	x, err := p.parsePowerTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op ir.Op
		switch {
		case p.cur().Type == token.STAR:
			op = ir.Mult
		case p.cur().Type == token.SLASH:
			op = ir.Div
		case p.cur().Type == token.PERCENT:
			op = ir.Mod
		case p.cur().Type == token.IDENT && strings.EqualFold(p.cur().Literal, "div"):
			op = ir.IntDiv
		default:
			return x, nil
		}
		p.advance()
		y, err := p.parsePowerTerm()
		if err != nil {
			return nil, err
		}
		x = &ir.Binary{Op: op, LHS: x, RHS: y}
	}
}

func (p *parser) parsePowerTerm() (ir.Expr, error) {
	x, err := p.parseArithmeticFactor()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.CARET {
		p.advance()
		y, err := p.parseArithmeticFactor()
		if err != nil {
			return nil, err
		}
		return &ir.Binary{Op: ir.Exp, LHS: x, RHS: y}, nil
	}
	return x, nil
}

func (p *parser) parseArithmeticFactor() (ir.Expr, error) {
	if p.cur().Type == token.LPAREN {
		p.advance()
		x, err := p.parseArithmeticExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	}
	if p.cur().Type == token.MINUS {
		p.advance()
		x, err := p.parseArithmeticOperand()
		if err != nil {
			return nil, err
		}
		return &ir.Unary{Op: ir.Minus, X: x}, nil
	}
	if p.cur().Type == token.PLUS {
		p.advance()
		return p.parseArithmeticOperand()
	}
	return p.parseArithmeticOperand()
}

func (p *parser) parseArithmeticOperand() (ir.Expr, error) {
	if p.cur().Type == token.NUMBER {
		return p.parseNumberLit()
	}
	if p.cur().Type == token.IDENT && p.peek(1).Type == token.LPAREN {
		return p.parseFunctionCall()
	}
	if p.cur().Type == token.IDENT {
		t := p.advance()
		return &ir.Ident{Name: t.Literal}, nil
	}
	return nil, p.errorf("expected a number, function call, or property name, found %q", p.cur().Literal)
}

func (p *parser) parseNumberLit() (ir.Expr, error) {
	t, err := p.expect(token.NUMBER)
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseFloat(t.Literal, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", t.Literal)
	}
	if isIntegerLiteral(t.Literal) && !value.IsSafeInteger(n) {
		return nil, cql2err.At(cql2err.KindPrecisionLoss, t.Pos,
			"integer literal %q exceeds ±(2^53-1) and cannot be represented without precision loss", t.Literal)
	}
	return &ir.NumLit{Value: n}, nil
}

// isIntegerLiteral reports whether a numeric token's source text was
// written as a plain integer (no fraction or exponent), the only shape
// the precision-loss guard applies to.
func isIntegerLiteral(literal string) bool {
	return !strings.ContainsAny(literal, ".eE")
}

func (p *parser) parseFunctionCall() (ir.Expr, error) {
	name := p.advance().Literal
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ir.Expr
	if p.cur().Type != token.RPAREN {
		for {
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ir.Call{Name: name, Args: args}, nil
}

// parseArgument accepts anything a function argument may be: a nested
// boolean expression, a scalar, an array literal, or a bare operand.
func (p *parser) parseArgument() (ir.Expr, error) {
	if p.cur().Type == token.LBRACKET {
		return p.parseArrayLit()
	}
	return p.parseScalarExpression()
}

func (p *parser) parseArrayLit() (ir.Expr, error) {
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var items []ir.Expr
	if p.cur().Type != token.RBRACKET {
		for {
			item, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.cur().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ir.ArrayLit{Items: items}, nil
}

// ===== temporal, spatial, array operands =====

func (p *parser) tryTemporalInstant() (ir.Expr, bool, error) {
	cur := p.cur()
	if cur.Type != token.IDENT {
		return nil, false, nil
	}
	upper := strings.ToUpper(cur.Literal)
	if upper != "DATE" && upper != "TIMESTAMP" && upper != "INTERVAL" {
		return nil, false, nil
	}
	if p.peek(1).Type != token.LPAREN {
		return nil, false, nil
	}
	switch upper {
	case "DATE":
		p.advance()
		p.advance() // (
		s, err := p.expect(token.STRING)
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, true, err
		}
		b, err := value.NewDateBound(s.Literal)
		if err != nil {
			return nil, true, p.errorf("invalid date literal %q: %v", s.Literal, err)
		}
		return &ir.DateLit{Value: b}, true, nil
	case "TIMESTAMP":
		p.advance()
		p.advance()
		s, err := p.expect(token.STRING)
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, true, err
		}
		b, err := value.NewTimestampBound(s.Literal)
		if err != nil {
			return nil, true, p.errorf("invalid timestamp literal %q: %v", s.Literal, err)
		}
		return &ir.TimestampLit{Value: b}, true, nil
	default: // INTERVAL
		p.advance()
		p.advance()
		lo, err := p.parseIntervalLimb()
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, true, err
		}
		hi, err := p.parseIntervalLimb()
		if err != nil {
			return nil, true, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, true, err
		}
		return &ir.IntervalLit{Lo: lo, Hi: hi}, true, nil
	}
}

func (p *parser) parseIntervalLimb() (ir.Expr, error) {
	if p.cur().Type == token.STRING && p.cur().Literal == ".." {
		p.advance()
		return &ir.UnboundedLit{}, nil
	}
	if lit, ok, err := p.tryTemporalInstant(); ok || err != nil {
		return lit, err
	}
	if p.cur().Type == token.IDENT && p.peek(1).Type == token.LPAREN {
		return p.parseFunctionCall()
	}
	if p.cur().Type == token.IDENT {
		t := p.advance()
		return &ir.Ident{Name: t.Literal}, nil
	}
	return nil, p.errorf("expected a temporal literal, function call, or property name, found %q", p.cur().Literal)
}

func (p *parser) parseTemporalOperand() (ir.Expr, error) {
	if lit, ok, err := p.tryTemporalInstant(); ok || err != nil {
		return lit, err
	}
	if p.cur().Type == token.IDENT && p.peek(1).Type == token.LPAREN {
		return p.parseFunctionCall()
	}
	if p.cur().Type == token.IDENT {
		t := p.advance()
		return &ir.Ident{Name: t.Literal}, nil
	}
	return nil, p.errorf("expected a temporal operand, found %q", p.cur().Literal)
}

func (p *parser) parseGeomOperand() (ir.Expr, error) {
	if isWKTStart(p.cur()) {
		return p.parseWKT()
	}
	if p.cur().Type == token.IDENT && p.peek(1).Type == token.LPAREN {
		return p.parseFunctionCall()
	}
	if p.cur().Type == token.IDENT {
		t := p.advance()
		return &ir.Ident{Name: t.Literal}, nil
	}
	return nil, p.errorf("expected a geometry operand, found %q", p.cur().Literal)
}

// isWKTStart reports whether cur begins a WKT geometry tag (POINT,
// LINESTRING, POLYGON, their MULTI* forms, GEOMETRYCOLLECTION, or BBOX).
func isWKTStart(t token.Token) bool {
	if t.Type != token.IDENT {
		return false
	}
	switch strings.ToUpper(t.Literal) {
	case "POINT", "LINESTRING", "POLYGON", "MULTIPOINT", "MULTILINESTRING",
		"MULTIPOLYGON", "GEOMETRYCOLLECTION", "BBOX":
		return true
	}
	return false
}

// parseWKT hands the remaining input to pkg/geom's own WKT decoder, which
// owns the full tagged-text grammar (POINT/LINESTRING/POLYGON/MULTI*/
// GEOMETRYCOLLECTION/BBOX). This re-lexes the slice of source text the
// geometry literal spans rather than re-deriving WKT grammar rules here.
func (p *parser) parseWKT() (ir.Expr, error) {
	start := p.cur().Pos.Offset
	depth := 0
	seenParen := false
	for {
		t := p.cur()
		if t.Type == token.EOF {
			return nil, p.errorf("unterminated geometry literal")
		}
		if t.Type == token.LPAREN {
			depth++
			seenParen = true
			p.advance()
			continue
		}
		if t.Type == token.RPAREN {
			depth--
			p.advance()
			if seenParen && depth == 0 {
				break
			}
			continue
		}
		p.advance()
		if seenParen && depth == 0 {
			break
		}
	}
	end := p.toks[p.pos-1].Pos.Offset + len(p.toks[p.pos-1].Literal)
	src := p.sourceSlice(start, end)
	g, err := geom.ParseWKT(src, -1)
	if err != nil {
		return nil, p.errorf("invalid geometry literal: %v", err)
	}
	return &ir.SpatialLit{Value: g}, nil
}

// sourceSlice returns a span of p.src, the input Parse stored before parsing
// began; it lets parseWKT recover the exact source text a geometry literal spanned, since pkg/geom
// parses WKT from raw text rather than from a token stream.
func (p *parser) sourceSlice(start, end int) string {
	if end > len(p.src) || start > end {
		return p.src[start:]
	}
	return p.src[start:end]
}

func (p *parser) parseArrayOperand() (ir.Expr, error) {
	if p.cur().Type == token.LPAREN {
		return p.parseParenArray()
	}
	if p.cur().Type == token.IDENT && p.peek(1).Type == token.LPAREN {
		return p.parseFunctionCall()
	}
	if p.cur().Type == token.IDENT {
		t := p.advance()
		return &ir.Ident{Name: t.Literal}, nil
	}
	return nil, p.errorf("expected an array operand, found %q", p.cur().Literal)
}

// parseParenArray parses CQL2's array-predicate operand syntax,
// `(elem, elem, ...)`, distinct from a function argument list because its
// elements can themselves be booleans, arrays, or any scalar.
func (p *parser) parseParenArray() (ir.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var items []ir.Expr
	if p.cur().Type != token.RPAREN {
		for {
			item, err := p.parseArrayElement()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.cur().Type != token.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ir.ArrayLit{Items: items}, nil
}

func (p *parser) parseArrayElement() (ir.Expr, error) {
	if p.cur().Type == token.LPAREN {
		return p.parseParenArray()
	}
	return p.parseScalarExpression()
}

// ===== lookup tables mapping a leading token to its Op =====

var spatialKeywords = map[string]ir.Op{
	"S_INTERSECTS": ir.SIntersects, "S_EQUALS": ir.SEquals, "S_DISJOINT": ir.SDisjoint,
	"S_TOUCHES": ir.STouches, "S_WITHIN": ir.SWithin, "S_OVERLAPS": ir.SOverlaps,
	"S_CROSSES": ir.SCrosses, "S_CONTAINS": ir.SContains,
}

var temporalKeywords = map[string]ir.Op{
	"T_AFTER": ir.TAfter, "T_BEFORE": ir.TBefore, "T_CONTAINS": ir.TContains,
	"T_DISJOINT": ir.TDisjoint, "T_DURING": ir.TDuring, "T_EQUALS": ir.TEquals,
	"T_FINISHEDBY": ir.TFinishedBy, "T_FINISHES": ir.TFinishes, "T_INTERSECTS": ir.TIntersects,
	"T_MEETS": ir.TMeets, "T_METBY": ir.TMetBy, "T_OVERLAPPEDBY": ir.TOverlappedBy,
	"T_OVERLAPS": ir.TOverlaps, "T_STARTEDBY": ir.TStartedBy, "T_STARTS": ir.TStarts,
}

var arrayKeywords = map[string]ir.Op{
	"A_EQUALS": ir.AEquals, "A_CONTAINS": ir.AContains,
	"A_CONTAINEDBY": ir.AContainedBy, "A_OVERLAPS": ir.AOverlaps,
}

func spatialFunction(t token.Token) (ir.Op, bool) {
	if t.Type != token.IDENT {
		return 0, false
	}
	op, ok := spatialKeywords[strings.ToUpper(t.Literal)]
	return op, ok
}

func temporalFunction(t token.Token) (ir.Op, bool) {
	if t.Type != token.IDENT {
		return 0, false
	}
	op, ok := temporalKeywords[strings.ToUpper(t.Literal)]
	return op, ok
}

func arrayFunction(t token.Token) (ir.Op, bool) {
	if t.Type != token.IDENT {
		return 0, false
	}
	op, ok := arrayKeywords[strings.ToUpper(t.Literal)]
	return op, ok
}

func comparisonOperator(t token.Token) (ir.Op, bool) {
	switch t.Type {
	case token.EQ:
		return ir.Eq, true
	case token.NEQ:
		return ir.Neq, true
	case token.LT:
		return ir.Lt, true
	case token.LTE:
		return ir.Lte, true
	case token.GT:
		return ir.Gt, true
	case token.GTE:
		return ir.Gte, true
	}
	return 0, false
}
