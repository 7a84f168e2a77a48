// Package ir is the CQL2 Intermediate Representation: the Expression tree
// produced by pkg/cqltext and pkg/cqljson, consumed by pkg/eval,
// pkg/reduce, and pkg/sqltranslate.
//
// Expr follows the tagged-union-via-interface shape used throughout this
// module's parser packages: a small unexported marker method closes the set
// of concrete node types.
package ir

import (
	"fmt"
	"strings"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
)

// Expr is any node in a CQL2 expression tree.
type Expr interface {
	exprNode()
	String() string
}

// NullLit is the literal NULL.
type NullLit struct{}

// UnboundedLit is the `..` interval-limit literal.
type UnboundedLit struct{}

// BoolLit is a TRUE/FALSE literal.
type BoolLit struct{ Value bool }

// NumLit is a numeric literal.
type NumLit struct{ Value float64 }

// StrLit is a string literal, carrying the CASEI/ACCENTI flags already
// folded in by the parser when those keywords wrap it directly.
type StrLit struct{ Value value.QString }

// DateLit is a date literal (1-day granularity).
type DateLit struct{ Value value.Bound }

// TimestampLit is a timestamp literal (sub-day granularity, UTC).
type TimestampLit struct{ Value value.Bound }

// SpatialLit is a geometry literal.
type SpatialLit struct{ Value geom.Geometry }

// Ident references a Resource property by name.
type Ident struct{ Name string }

// Unary applies a unary Op (Minus, Neg, CaseI, AccentI, IsNull, IsNotNull)
// to X.
type Unary struct {
	Op Op
	X  Expr
}

// Binary applies a binary Op to LHS and RHS — arithmetic, comparison,
// extended-comparison, spatial, temporal, or array.
type Binary struct {
	Op       Op
	LHS, RHS Expr
}

// Call is a function invocation.
type Call struct {
	Name string
	Args []Expr
}

// ArrayLit is a bracketed list literal, `[a, b, c]`.
type ArrayLit struct{ Items []Expr }

// IntervalLit is an `INTERVAL(lo, hi)` or `T_*` two-bound construct.
type IntervalLit struct{ Lo, Hi Expr }

func (*NullLit) exprNode()      {}
func (*UnboundedLit) exprNode() {}
func (*BoolLit) exprNode()      {}
func (*NumLit) exprNode()       {}
func (*StrLit) exprNode()       {}
func (*DateLit) exprNode()      {}
func (*TimestampLit) exprNode() {}
func (*SpatialLit) exprNode()   {}
func (*Ident) exprNode()        {}
func (*Unary) exprNode()        {}
func (*Binary) exprNode()       {}
func (*Call) exprNode()         {}
func (*ArrayLit) exprNode()     {}
func (*IntervalLit) exprNode()  {}

func (n *NullLit) String() string      { return "NULL" }
func (n *UnboundedLit) String() string { return ".." }
func (n *BoolLit) String() string {
	if n.Value {
		return "TRUE"
	}
	return "FALSE"
}
func (n *NumLit) String() string  { return fmt.Sprintf("%v", n.Value) }
func (n *StrLit) String() string  { return "'" + n.Value.String() + "'" }
func (n *DateLit) String() string { return n.Value.String() }
func (n *TimestampLit) String() string { return n.Value.String() }
func (n *SpatialLit) String() string   { return n.Value.WKT(-1) }
func (n *Ident) String() string        { return n.Name }

func (n *Unary) String() string {
	if n.Op.IsNullable() {
		return fmt.Sprintf("%s %s", n.X, n.Op)
	}
	return fmt.Sprintf("%s(%s)", n.Op, n.X)
}

func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.LHS, n.Op, n.RHS)
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (n *ArrayLit) String() string {
	items := make([]string, len(n.Items))
	for i, a := range n.Items {
		items[i] = a.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (n *IntervalLit) String() string {
	return fmt.Sprintf("INTERVAL(%s, %s)", n.Lo, n.Hi)
}

// AsLiteral reports whether n is a pure literal node and, if so, returns its
// runtime value.
func AsLiteral(n Expr) (value.Q, bool) {
	switch t := n.(type) {
	case *NullLit:
		return value.Null, true
	case *UnboundedLit:
		return value.NewInstant(value.UnboundedBound), true
	case *BoolLit:
		return value.NewBool(t.Value), true
	case *NumLit:
		return value.NewNum(t.Value), true
	case *StrLit:
		return value.NewStr(t.Value), true
	case *DateLit:
		return value.NewInstant(t.Value), true
	case *TimestampLit:
		return value.NewInstant(t.Value), true
	case *SpatialLit:
		return value.NewGeom(t.Value), true
	default:
		return value.Q{}, false
	}
}

// AsIdent reports whether n is a bare property reference and, if so,
// returns its name.
func AsIdent(n Expr) (string, bool) {
	if id, ok := n.(*Ident); ok {
		return id.Name, true
	}
	return "", false
}
