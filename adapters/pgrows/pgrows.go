// Package pgrows shapes the rows returned by a pgx query into
// value.Resource values a pkg/eval.Evaluator can run a filter against. It
// is a row producer only: it never parses or evaluates CQL2 itself, and
// pkg/... core code never imports it, preserving the boundary between the
// filter engine and any particular data source.
//
// Geometry columns must be selected as WKT text (e.g. ST_AsText(geom)) so
// this adapter can hand them to pkg/geom.ParseWKT; it does not decode the
// PostGIS EWKB wire format itself.
package pgrows

import (
	"fmt"
	"time"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
	"github.com/jackc/pgx/v5"
)

// BuildResources drains rows into one Resource per row, keyed by column
// name. The caller retains ownership of rows and must Close it.
func BuildResources(rows pgx.Rows) ([]value.Resource, error) {
	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var out []value.Resource
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("pgrows: reading row values: %w", err)
		}

		r := value.NewResource()
		for i, name := range names {
			q, err := qFromAny(vals[i])
			if err != nil {
				return nil, fmt.Errorf("pgrows: column %q: %w", name, err)
			}
			r[name] = q
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgrows: iterating rows: %w", err)
	}
	return out, nil
}

// qFromAny converts one pgx-decoded column value into a Queryable. pgx
// already resolves PostgreSQL wire types into native Go types per the
// column's OID; this only needs to re-tag them into the Queryable union.
func qFromAny(v any) (value.Q, error) {
	switch t := v.(type) {
	case nil:
		return value.Q{}, nil
	case bool:
		return value.NewBool(t), nil
	case int16:
		return value.NewNum(float64(t)), nil
	case int32:
		return value.NewNum(float64(t)), nil
	case int64:
		return value.NewNum(float64(t)), nil
	case float32:
		return value.NewNum(float64(t)), nil
	case float64:
		return value.NewNum(t), nil
	case string:
		return resourceStringOrWKT(t)
	case []byte:
		return resourceStringOrWKT(string(t))
	case time.Time:
		kind := value.BoundTimestamp
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			kind = value.BoundDate
		}
		return value.NewInstant(value.Bound{Kind: kind, When: t.UTC()}), nil
	default:
		return value.Q{}, fmt.Errorf("unsupported column type %T", v)
	}
}

// resourceStringOrWKT treats a string column as a geometry if it parses as
// WKT, otherwise as a plain string. This mirrors how a filter's own text
// grammar distinguishes a quoted string literal from a WKT geometry
// literal: by whether it parses as one.
func resourceStringOrWKT(s string) (value.Q, error) {
	if g, err := geom.ParseWKT(s, -1); err == nil {
		return value.NewGeom(g), nil
	}
	return value.NewPlainStr(s), nil
}
