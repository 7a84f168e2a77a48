package cqljson

import (
	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
	json "github.com/goccy/go-json"
)

// ParseResource decodes a flat JSON object of property name to value into a
// Resource, reusing the same literal decoding Parse uses for filter bodies
// (so a Resource field can hold a GeoJSON geometry, a {"date": ...} instant,
// or any other literal shape Parse accepts). Every decoded field must reduce
// to a literal; a property/function-reference or operator expression is
// rejected since a Resource holds data, not expressions to evaluate.
func ParseResource(data []byte) (value.Resource, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding resource object")
	}

	r := value.NewResource()
	for name, raw := range fields {
		x, err := decodeValue(raw)
		if err != nil {
			return nil, cql2err.Wrap(cql2err.KindSyntax, err, "decoding resource field %q", name)
		}
		q, err := literalToQ(x)
		if err != nil {
			return nil, cql2err.Wrap(cql2err.KindType, err, "resource field %q", name)
		}
		r[name] = q
	}
	return r, nil
}

func literalToQ(x ir.Expr) (value.Q, error) {
	switch t := x.(type) {
	case *ir.NullLit:
		return value.Q{}, nil
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
		return value.NewGeom(t.Value), nil
	case *ir.IntervalLit:
		lo, err := literalBound(t.Lo)
		if err != nil {
			return value.Q{}, err
		}
		hi, err := literalBound(t.Hi)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewInterval(lo, hi), nil
	case *ir.ArrayLit:
		items := make([]value.Q, len(t.Items))
		for i, item := range t.Items {
			q, err := literalToQ(item)
			if err != nil {
				return value.Q{}, err
			}
			items[i] = q
		}
		return value.NewList(items), nil
	default:
		return value.Q{}, cql2err.New(cql2err.KindType, "value is not a literal (%T)", x)
	}
}

func literalBound(x ir.Expr) (value.Bound, error) {
	switch t := x.(type) {
	case *ir.UnboundedLit:
		return value.Bound{}, nil
	case *ir.DateLit:
		return t.Value, nil
	case *ir.TimestampLit:
		return t.Value, nil
	default:
		return value.Bound{}, cql2err.New(cql2err.KindType, "interval limb is not a date, timestamp, or unbounded sentinel (%T)", x)
	}
}
