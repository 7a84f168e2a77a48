// Package cqljson decodes the CQL2-JSON encoding (OGC 21-065r2 Annex B) into
// the shared Expression tree. The wire form mirrors the IR directly: every
// operator node is `{"op": <tag>, "args": [...]}`, property references are
// `{"property": "name"}`, and literals take the shape their type demands
// (GeoJSON for geometry, `{"date"|"timestamp": "..."}` for temporal
// instants, `{"interval": [lo, hi]}`, `{"bbox": [...]}`).
//
// Unlike the text grammar, the JSON encoding has no dedicated "IS NOT NULL",
// "NOT LIKE", "NOT BETWEEN", or "NOT IN" token: a NotExpression wraps the
// corresponding positive predicate instead, so Parse reconstructs the
// canonical negated Op the same way the text parser would have produced it
// directly.
package cqljson

import (
	"bytes"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
	json "github.com/goccy/go-json"
)

// Parse decodes a CQL2-JSON filter into an Expression tree.
func Parse(data []byte) (ir.Expr, error) {
	return decodeValue(json.RawMessage(data))
}

var comparisonOps = map[string]ir.Op{
	"=": ir.Eq, "<>": ir.Neq, "<": ir.Lt, ">": ir.Gt, "<=": ir.Lte, ">=": ir.Gte,
}

var arithmeticOps = map[string]ir.Op{
	"+": ir.Plus, "-": ir.Minus, "*": ir.Mult, "/": ir.Div, "^": ir.Exp, "%": ir.Mod, "div": ir.IntDiv,
}

var spatialOps = map[string]ir.Op{
	"s_contains": ir.SContains, "s_crosses": ir.SCrosses, "s_disjoint": ir.SDisjoint,
	"s_equals": ir.SEquals, "s_intersects": ir.SIntersects, "s_overlaps": ir.SOverlaps,
	"s_touches": ir.STouches, "s_within": ir.SWithin,
}

var temporalOps = map[string]ir.Op{
	"t_after": ir.TAfter, "t_before": ir.TBefore, "t_contains": ir.TContains,
	"t_disjoint": ir.TDisjoint, "t_during": ir.TDuring, "t_equals": ir.TEquals,
	"t_finishedBy": ir.TFinishedBy, "t_finishes": ir.TFinishes, "t_intersects": ir.TIntersects,
	"t_meets": ir.TMeets, "t_metBy": ir.TMetBy, "t_overlappedBy": ir.TOverlappedBy,
	"t_overlaps": ir.TOverlaps, "t_startedBy": ir.TStartedBy, "t_starts": ir.TStarts,
}

var arrayOps = map[string]ir.Op{
	"a_containedBy": ir.AContainedBy, "a_contains": ir.AContains,
	"a_equals": ir.AEquals, "a_overlaps": ir.AOverlaps,
}

func decodeValue(raw json.RawMessage) (ir.Expr, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, cql2err.New(cql2err.KindSyntax, "empty JSON value")
	}
	switch trimmed[0] {
	case '{':
		return decodeObject(trimmed)
	case '[':
		return decodeArray(trimmed)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding string literal")
		}
		return &ir.StrLit{Value: value.PlainString(s)}, nil
	case 'n':
		return &ir.NullLit{}, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding boolean literal")
		}
		return &ir.BoolLit{Value: b}, nil
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding numeric literal")
		}
		if bytes.IndexAny(trimmed, ".eE") < 0 && !value.IsSafeInteger(f) {
			return nil, cql2err.New(cql2err.KindPrecisionLoss,
				"integer literal %s exceeds ±(2^53-1) and cannot be represented without precision loss", trimmed)
		}
		return &ir.NumLit{Value: f}, nil
	}
}

func decodeArray(raw json.RawMessage) (ir.Expr, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding array literal")
	}
	out := make([]ir.Expr, len(items))
	for i, item := range items {
		x, err := decodeValue(item)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return &ir.ArrayLit{Items: out}, nil
}

func decodeObject(raw json.RawMessage) (ir.Expr, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding JSON object")
	}
	switch {
	case m["op"] != nil:
		return decodeOp(m)
	case m["property"] != nil:
		var name string
		if err := json.Unmarshal(m["property"], &name); err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding property reference")
		}
		return &ir.Ident{Name: name}, nil
	case m["date"] != nil:
		return decodeDate(m["date"])
	case m["timestamp"] != nil:
		return decodeTimestamp(m["timestamp"])
	case m["interval"] != nil:
		return decodeInterval(m["interval"])
	case m["bbox"] != nil:
		return decodeBBox(m["bbox"])
	case m["type"] != nil:
		g, err := decodeGeometry(m)
		if err != nil {
			return nil, err
		}
		return &ir.SpatialLit{Value: g}, nil
	default:
		return nil, cql2err.New(cql2err.KindSyntax, "unrecognized JSON expression shape: %s", raw)
	}
}

func decodeOp(m map[string]json.RawMessage) (ir.Expr, error) {
	var op string
	if err := json.Unmarshal(m["op"], &op); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding op tag")
	}
	var args []json.RawMessage
	if m["args"] != nil {
		if err := json.Unmarshal(m["args"], &args); err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding args for op %q", op)
		}
	}

	switch op {
	case "and":
		return foldNary(ir.And, op, args)
	case "or":
		return foldNary(ir.Or, op, args)
	case "not":
		if err := requireArity(op, args, 1); err != nil {
			return nil, err
		}
		inner, err := decodeValue(args[0])
		if err != nil {
			return nil, err
		}
		return negate(inner), nil
	case "like":
		return decodeBinary(ir.IsLike, op, args)
	case "between":
		return decodeBetween(args)
	case "in":
		return decodeInList(args)
	case "isNull":
		if err := requireArity(op, args, 1); err != nil {
			return nil, err
		}
		x, err := decodeValue(args[0])
		if err != nil {
			return nil, err
		}
		return &ir.Unary{Op: ir.IsNull, X: x}, nil
	case "casei":
		return decodeCharacterClause(ir.CaseI, args)
	case "accenti":
		return decodeCharacterClause(ir.AccentI, args)
	}

	if irOp, ok := comparisonOps[op]; ok {
		return decodeBinary(irOp, op, args)
	}
	if irOp, ok := arithmeticOps[op]; ok {
		return decodeBinary(irOp, op, args)
	}
	if irOp, ok := spatialOps[op]; ok {
		return decodeBinary(irOp, op, args)
	}
	if irOp, ok := temporalOps[op]; ok {
		return decodeBinary(irOp, op, args)
	}
	if irOp, ok := arrayOps[op]; ok {
		return decodeBinary(irOp, op, args)
	}

	return decodeFunctionRef(op, args)
}

func requireArity(op string, args []json.RawMessage, n int) error {
	if len(args) != n {
		return cql2err.New(cql2err.KindArity, "op %q expects %d argument(s), got %d", op, n, len(args))
	}
	return nil
}

func foldNary(irOp ir.Op, op string, args []json.RawMessage) (ir.Expr, error) {
	if len(args) < 2 {
		return nil, cql2err.New(cql2err.KindArity, "op %q expects at least 2 arguments, got %d", op, len(args))
	}
	x, err := decodeValue(args[0])
	if err != nil {
		return nil, err
	}
	for _, rest := range args[1:] {
		y, err := decodeValue(rest)
		if err != nil {
			return nil, err
		}
		x = &ir.Binary{Op: irOp, LHS: x, RHS: y}
	}
	return x, nil
}

func decodeBinary(irOp ir.Op, op string, args []json.RawMessage) (ir.Expr, error) {
	if err := requireArity(op, args, 2); err != nil {
		return nil, err
	}
	lhs, err := decodeValue(args[0])
	if err != nil {
		return nil, err
	}
	rhs, err := decodeValue(args[1])
	if err != nil {
		return nil, err
	}
	return &ir.Binary{Op: irOp, LHS: lhs, RHS: rhs}, nil
}

func decodeBetween(args []json.RawMessage) (ir.Expr, error) {
	if err := requireArity("between", args, 3); err != nil {
		return nil, err
	}
	x, err := decodeValue(args[0])
	if err != nil {
		return nil, err
	}
	lo, err := decodeValue(args[1])
	if err != nil {
		return nil, err
	}
	hi, err := decodeValue(args[2])
	if err != nil {
		return nil, err
	}
	return &ir.Binary{Op: ir.IsBetween, LHS: x, RHS: &ir.ArrayLit{Items: []ir.Expr{lo, hi}}}, nil
}

func decodeInList(args []json.RawMessage) (ir.Expr, error) {
	if err := requireArity("in", args, 2); err != nil {
		return nil, err
	}
	x, err := decodeValue(args[0])
	if err != nil {
		return nil, err
	}
	list, err := decodeValue(args[1])
	if err != nil {
		return nil, err
	}
	return &ir.Binary{Op: ir.IsInList, LHS: x, RHS: list}, nil
}

// decodeCharacterClause mirrors the text parser's CASEI/ACCENTI handling:
// wrapping a string literal folds the flag into the literal itself rather
// than producing a nested Unary node.
func decodeCharacterClause(op ir.Op, args []json.RawMessage) (ir.Expr, error) {
	name := "casei"
	if op == ir.AccentI {
		name = "accenti"
	}
	if err := requireArity(name, args, 1); err != nil {
		return nil, err
	}
	x, err := decodeValue(args[0])
	if err != nil {
		return nil, err
	}
	if s, ok := x.(*ir.StrLit); ok {
		if op == ir.CaseI {
			return &ir.StrLit{Value: s.Value.AndICase()}, nil
		}
		return &ir.StrLit{Value: s.Value.AndIAccent()}, nil
	}
	return &ir.Unary{Op: op, X: x}, nil
}

func decodeFunctionRef(name string, args []json.RawMessage) (ir.Expr, error) {
	out := make([]ir.Expr, len(args))
	for i, a := range args {
		x, err := decodeValue(a)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return &ir.Call{Name: name, Args: out}, nil
}

// negate reconstructs the canonical negated Op for a NotExpression wrapping
// a predicate that has a dedicated negative form in the text grammar
// (IS NOT NULL, NOT LIKE, NOT BETWEEN, NOT IN). Anything else becomes a
// plain boolean NOT.
func negate(x ir.Expr) ir.Expr {
	switch t := x.(type) {
	case *ir.Unary:
		switch t.Op {
		case ir.IsNull:
			return &ir.Unary{Op: ir.IsNotNull, X: t.X}
		case ir.IsNotNull:
			return &ir.Unary{Op: ir.IsNull, X: t.X}
		}
	case *ir.Binary:
		switch t.Op {
		case ir.IsLike:
			return &ir.Binary{Op: ir.IsNotLike, LHS: t.LHS, RHS: t.RHS}
		case ir.IsNotLike:
			return &ir.Binary{Op: ir.IsLike, LHS: t.LHS, RHS: t.RHS}
		case ir.IsBetween:
			return &ir.Binary{Op: ir.IsNotBetween, LHS: t.LHS, RHS: t.RHS}
		case ir.IsNotBetween:
			return &ir.Binary{Op: ir.IsBetween, LHS: t.LHS, RHS: t.RHS}
		case ir.IsInList:
			return &ir.Binary{Op: ir.IsNotInList, LHS: t.LHS, RHS: t.RHS}
		case ir.IsNotInList:
			return &ir.Binary{Op: ir.IsInList, LHS: t.LHS, RHS: t.RHS}
		}
	}
	return &ir.Unary{Op: ir.Neg, X: x}
}

func decodeDate(raw json.RawMessage) (ir.Expr, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding date literal")
	}
	b, err := value.NewDateBound(s)
	if err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "invalid date literal %q", s)
	}
	return &ir.DateLit{Value: b}, nil
}

func decodeTimestamp(raw json.RawMessage) (ir.Expr, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding timestamp literal")
	}
	b, err := value.NewTimestampBound(s)
	if err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "invalid timestamp literal %q", s)
	}
	return &ir.TimestampLit{Value: b}, nil
}

// decodeInterval accepts the two-element `interval` array. Each limb is
// either the unbounded sentinel `".."`, a bare date/timestamp string (unlike
// top-level instants, interval limbs are not wrapped in a {"date": ...}
// object), or a property/function reference.
func decodeInterval(raw json.RawMessage) (ir.Expr, error) {
	var limbs []json.RawMessage
	if err := json.Unmarshal(raw, &limbs); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding interval")
	}
	if len(limbs) != 2 {
		return nil, cql2err.New(cql2err.KindSyntax, "interval literal must have exactly 2 elements, got %d", len(limbs))
	}
	lo, err := decodeIntervalLimb(limbs[0])
	if err != nil {
		return nil, err
	}
	hi, err := decodeIntervalLimb(limbs[1])
	if err != nil {
		return nil, err
	}
	return &ir.IntervalLit{Lo: lo, Hi: hi}, nil
}

func decodeIntervalLimb(raw json.RawMessage) (ir.Expr, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding interval limb")
		}
		if s == ".." {
			return &ir.UnboundedLit{}, nil
		}
		if b, err := value.NewDateBound(s); err == nil {
			return &ir.DateLit{Value: b}, nil
		}
		b, err := value.NewTimestampBound(s)
		if err != nil {
			return nil, cql2err.New(cql2err.KindSyntax, "interval limb %q is neither a date nor a timestamp", s)
		}
		return &ir.TimestampLit{Value: b}, nil
	}
	return decodeValue(trimmed)
}

func decodeBBox(raw json.RawMessage) (ir.Expr, error) {
	var vals []float64
	if err := json.Unmarshal(raw, &vals); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding bbox")
	}
	g, err := geom.NewBBox(vals, -1)
	if err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "invalid bbox literal")
	}
	return &ir.SpatialLit{Value: g}, nil
}

// decodeGeometry accepts a standard GeoJSON geometry object: Point,
// LineString, Polygon, MultiPoint, MultiLineString, MultiPolygon, or
// GeometryCollection. Coordinates are kept exact (precision -1), the same
// convention pkg/geom's WKT reader uses for text-encoded literals.
func decodeGeometry(m map[string]json.RawMessage) (geom.Geometry, error) {
	var kind string
	if err := json.Unmarshal(m["type"], &kind); err != nil {
		return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding geometry type")
	}

	if kind == "GeometryCollection" {
		var members []json.RawMessage
		if err := json.Unmarshal(m["geometries"], &members); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding geometry collection members")
		}
		items := make([]geom.Geometry, len(members))
		for i, raw := range members {
			var mm map[string]json.RawMessage
			if err := json.Unmarshal(raw, &mm); err != nil {
				return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding geometry collection member")
			}
			g, err := decodeGeometry(mm)
			if err != nil {
				return geom.Geometry{}, err
			}
			items[i] = g
		}
		return geom.NewGeometryCollection(items), nil
	}

	coords := m["coordinates"]
	if coords == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindSyntax, "geometry of type %q is missing coordinates", kind)
	}

	switch kind {
	case "Point":
		var c []float64
		if err := json.Unmarshal(coords, &c); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding Point coordinates")
		}
		return geom.NewPoint(c, -1), nil
	case "LineString":
		var c [][]float64
		if err := json.Unmarshal(coords, &c); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding LineString coordinates")
		}
		return geom.NewLineString(c, -1), nil
	case "Polygon":
		var c [][][]float64
		if err := json.Unmarshal(coords, &c); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding Polygon coordinates")
		}
		return geom.NewPolygon(c, -1), nil
	case "MultiPoint":
		var c [][]float64
		if err := json.Unmarshal(coords, &c); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding MultiPoint coordinates")
		}
		return geom.NewMultiPoint(c, -1), nil
	case "MultiLineString":
		var c [][][]float64
		if err := json.Unmarshal(coords, &c); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding MultiLineString coordinates")
		}
		return geom.NewMultiLineString(c, -1), nil
	case "MultiPolygon":
		var c [][][][]float64
		if err := json.Unmarshal(coords, &c); err != nil {
			return geom.Geometry{}, cql2err.Wrap(cql2err.KindSyntax, err, "decoding MultiPolygon coordinates")
		}
		return geom.NewMultiPolygon(c, -1), nil
	default:
		return geom.Geometry{}, cql2err.New(cql2err.KindSyntax, "unsupported geometry type %q", kind)
	}
}
