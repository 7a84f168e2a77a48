// Package duckrows shapes the rows returned by a database/sql query run
// through github.com/marcboeker/go-duckdb into value.Resource values a
// pkg/eval.Evaluator can run a filter against. DuckDB's spatial extension
// can read GeoPackage and Spatialite files directly, so this adapter
// stands in for a dedicated GeoPackage reader: callers query those formats
// through DuckDB and hand the resulting *sql.Rows here.
//
// Like adapters/pgrows, this package only shapes rows; it never parses or
// evaluates CQL2, and pkg/... core code never imports it.
package duckrows

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
)

// BuildResources drains rows into one Resource per row, keyed by column
// name. The caller retains ownership of rows and must Close it.
func BuildResources(rows *sql.Rows) ([]value.Resource, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("duckrows: reading column names: %w", err)
	}

	var out []value.Resource
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("duckrows: scanning row: %w", err)
		}

		r := value.NewResource()
		for i, name := range cols {
			q, err := qFromAny(raw[i])
			if err != nil {
				return nil, fmt.Errorf("duckrows: column %q: %w", name, err)
			}
			r[name] = q
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("duckrows: iterating rows: %w", err)
	}
	return out, nil
}

// qFromAny converts one database/sql-decoded column value into a
// Queryable. DuckDB's driver.Value results come back as one of a small set
// of native Go types; WKT geometry columns (e.g. ST_AsText(geom) in the
// originating query) arrive as strings and are distinguished from plain
// strings by whether they parse as WKT.
func qFromAny(v any) (value.Q, error) {
	switch t := v.(type) {
	case nil:
		return value.Q{}, nil
	case bool:
		return value.NewBool(t), nil
	case int64:
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

func resourceStringOrWKT(s string) (value.Q, error) {
	if g, err := geom.ParseWKT(s, -1); err == nil {
		return value.NewGeom(g), nil
	}
	return value.NewPlainStr(s), nil
}
