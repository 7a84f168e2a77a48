// Package value holds the runtime value domain an evaluated CQL2 filter
// operates over: the Queryable tagged union (Q), its string flavor
// (QString), its temporal limit type (Bound), and the Resource a filter is
// evaluated against.
package value

import (
	"fmt"

	"github.com/geocql/cql2/pkg/geom"
)

// DataType names the concrete variant a Q currently holds.
type DataType int

const (
	DataNull DataType = iota
	DataBool
	DataNum
	DataStr
	DataGeom
	DataDate
	DataTimestamp
	DataInterval
	DataList
)

func (d DataType) String() string {
	switch d {
	case DataNull:
		return "null"
	case DataBool:
		return "bool"
	case DataNum:
		return "number"
	case DataStr:
		return "string"
	case DataGeom:
		return "geometry"
	case DataDate:
		return "date"
	case DataTimestamp:
		return "timestamp"
	case DataInterval:
		return "interval"
	case DataList:
		return "list"
	default:
		return "unknown"
	}
}

// qKind is Q's internal variant discriminant; it is finer than DataType only
// insofar as it distinguishes Instant/Interval from their literal sub-type,
// which Q.LiteralType resolves the way the rest of this module needs.
type qKind int

const (
	qNull qKind = iota
	qBool
	qNum
	qStr
	qGeom
	qInstant
	qInterval
	qList
)

// Q is a Resource property's runtime value: unknown (Null), or one of
// Bool/Num/Str/Geom/Instant/Interval/List.
type Q struct {
	kind     qKind
	b        bool
	n        float64
	s        QString
	g        geom.Geometry
	instant  Bound
	lo, hi   Bound
	elements []Q
}

// Null is the shared unknown-value Queryable.
var Null = Q{kind: qNull}

// MaxSafeInteger is the largest integer magnitude a float64 can represent
// exactly: 2^53 - 1. An integer literal beyond ±MaxSafeInteger loses
// precision the moment it is folded into a Num and must be rejected at
// construction instead.
const MaxSafeInteger = 1<<53 - 1

// IsSafeInteger reports whether n's magnitude is within the range a
// float64 can hold as an exact integer.
func IsSafeInteger(n float64) bool {
	return n >= -MaxSafeInteger && n <= MaxSafeInteger
}

func NewBool(b bool) Q  { return Q{kind: qBool, b: b} }
func NewNum(n float64) Q { return Q{kind: qNum, n: n} }
func NewStr(s QString) Q { return Q{kind: qStr, s: s} }
func NewPlainStr(s string) Q { return Q{kind: qStr, s: PlainString(s)} }
func NewGeom(g geom.Geometry) Q { return Q{kind: qGeom, g: g} }
func NewInstant(b Bound) Q { return Q{kind: qInstant, instant: b} }
func NewInterval(lo, hi Bound) Q { return Q{kind: qInterval, lo: lo, hi: hi} }
func NewList(items []Q) Q { return Q{kind: qList, elements: items} }

// IsNull reports whether q is the Null variant.
func (q Q) IsNull() bool { return q.kind == qNull }

// IsInstant reports whether q holds a single temporal Bound.
func (q Q) IsInstant() bool { return q.kind == qInstant }

// ToBool returns q's boolean value, or an error if q is not a Bool.
func (q Q) ToBool() (bool, error) {
	if q.kind != qBool {
		return false, fmt.Errorf("%s is not a boolean", q)
	}
	return q.b, nil
}

// ToNum returns q's numeric value, or an error if q is not a Num.
func (q Q) ToNum() (float64, error) {
	if q.kind != qNum {
		return 0, fmt.Errorf("%s is not a number", q)
	}
	return q.n, nil
}

// ToStr returns q's string value, or an error if q is not a Str.
func (q Q) ToStr() (QString, error) {
	if q.kind != qStr {
		return QString{}, fmt.Errorf("%s is not a string", q)
	}
	return q.s, nil
}

// ToGeom returns q's geometry value, or an error if q is not a Geom.
func (q Q) ToGeom() (geom.Geometry, error) {
	if q.kind != qGeom {
		return geom.Geometry{}, fmt.Errorf("%s is not a geometry", q)
	}
	return q.g, nil
}

// ToBound returns q's Bound value, or an error if q is not an Instant.
func (q Q) ToBound() (Bound, error) {
	if q.kind != qInstant {
		return Bound{}, fmt.Errorf("%s is not a bounded instant", q)
	}
	return q.instant, nil
}

// ToInterval returns q's pair of Bounds, or an error if q is not an
// Interval.
func (q Q) ToInterval() (Bound, Bound, error) {
	if q.kind != qInterval {
		return Bound{}, Bound{}, fmt.Errorf("%s is not an interval", q)
	}
	return q.lo, q.hi, nil
}

// ToList returns q's elements, or an error if q is not a List.
func (q Q) ToList() ([]Q, error) {
	if q.kind != qList {
		return nil, fmt.Errorf("%s is not a list", q)
	}
	return q.elements, nil
}

// SameType reports whether a and b hold the same variant (ignoring the
// sub-kind distinction LiteralType draws between Date and Timestamp).
func SameType(a, b Q) bool { return a.kind == b.kind }

// LiteralType returns the DataType a function-argument-checker should see
// for q, or false if q carries no single literal type (Null, Interval,
// List, and an unbounded Instant all fall in this bucket).
func (q Q) LiteralType() (DataType, bool) {
	switch q.kind {
	case qBool:
		return DataBool, true
	case qNum:
		return DataNum, true
	case qStr:
		return DataStr, true
	case qGeom:
		return DataGeom, true
	case qInstant:
		switch q.instant.Kind {
		case BoundDate:
			return DataDate, true
		case BoundTimestamp:
			return DataTimestamp, true
		}
	}
	return DataNull, false
}

// String renders q the way the text encoding would display a literal of its
// kind.
func (q Q) String() string {
	switch q.kind {
	case qNull:
		return "Null"
	case qBool:
		return fmt.Sprintf("%t", q.b)
	case qNum:
		return fmt.Sprintf("%v", q.n)
	case qStr:
		return q.s.String()
	case qGeom:
		return q.g.WKT(-1)
	case qInstant:
		return q.instant.String()
	case qInterval:
		return fmt.Sprintf("[%s..%s]", q.lo, q.hi)
	case qList:
		return fmt.Sprintf("%v", q.elements)
	default:
		return "?"
	}
}

// Equal implements CQL2's `=` for two Queryables of matching type. Values of
// differing kinds are never equal; two Nulls are equal, and two geometries
// compare structurally via geom.Geometry.Equal.
func (q Q) Equal(other Q) bool {
	switch {
	case q.kind != other.kind:
		return false
	case q.kind == qBool:
		return q.b == other.b
	case q.kind == qNum:
		return q.n == other.n
	case q.kind == qStr:
		return q.s.Equal(other.s)
	case q.kind == qGeom:
		return q.g.Equal(other.g)
	case q.kind == qInstant:
		return q.instant.Equal(other.instant)
	case q.kind == qInterval:
		return q.lo.Equal(other.lo) && q.hi.Equal(other.hi)
	case q.kind == qList:
		if len(q.elements) != len(other.elements) {
			return false
		}
		for i := range q.elements {
			if !q.elements[i].Equal(other.elements[i]) {
				return false
			}
		}
		return true
	default:
		return true // both Null
	}
}

// Compare orders two Queryables of the same orderable kind (Bool, Num, Str,
// Instant, Interval), returning -1/0/1. ok is false for Null, Geom, List, or
// a type mismatch — CQL2 defines no ordering there.
func (q Q) Compare(other Q) (cmp int, ok bool) {
	if q.kind != other.kind {
		return 0, false
	}
	switch q.kind {
	case qBool:
		return boolCompare(q.b, other.b), true
	case qNum:
		switch {
		case q.n < other.n:
			return -1, true
		case q.n > other.n:
			return 1, true
		default:
			return 0, true
		}
	case qStr:
		return strCompare(q.s.String(), other.s.String()), true
	case qInstant:
		return q.instant.Compare(other.instant), true
	case qInterval:
		if c := q.lo.Compare(other.lo); c != 0 {
			return c, true
		}
		// Matching the original's lower-then-upper tie-break: an unbounded
		// upper limit sorts *after* every bounded one once the lowers tie.
		switch {
		case q.hi.IsUnbounded() && other.hi.IsUnbounded():
			return 0, true
		case q.hi.IsUnbounded():
			return 1, true
		case other.hi.IsUnbounded():
			return -1, true
		default:
			return q.hi.Compare(other.hi), true
		}
	default:
		return 0, false
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func strCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ContainedBy reports whether q appears in list, comparing element-wise
// using each element's equality, after requiring every element share q's
// literal type. An empty list is never matched.
func (q Q) ContainedBy(list []Q) (bool, error) {
	if len(list) == 0 {
		return false, nil
	}
	dt, ok := q.LiteralType()
	if !ok {
		return false, nil
	}
	for _, item := range list {
		idt, iok := item.LiteralType()
		if !iok || idt != dt {
			return false, fmt.Errorf("IN list element %s does not match %s's type", item, q)
		}
	}
	for _, item := range list {
		if q.Equal(item) {
			return true, nil
		}
	}
	return false, nil
}
