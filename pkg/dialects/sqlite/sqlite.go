// Package sqlite provides the dialect.Dialect for Spatialite/GeoPackage
// targets, grounded on the GeoPackage data source's SQL emission: bare
// (unquoted) column references, uppercase custom collation names with no
// COLLATE clause on a plain string, the `'..'` literal as the unbounded
// interval sentinel, and prefix-function rendering for array predicates
// since SQLite has no native array operators.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/geocql/cql2/pkg/dialect"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

const (
	collCI  = "CQL2_CI"
	collAI  = "CQL2_AI"
	collCAI = "CQL2_CI_AI"
)

var reducePrecisionOps = map[ir.Op]bool{
	ir.SWithin:   true,
	ir.SOverlaps: true,
	ir.STouches:  true,
}

// Dialect targets a Spatialite/GeoPackage connection (via go-duckdb's
// spatial extension, which speaks the same GEOS-backed function surface).
var Dialect = &dialect.Dialect{
	Name:          "sqlite",
	QuoteIdent:    func(name string) string { return name },
	StringLiteral: stringLiteral,
	Unbounded:     "'..'",
	ArrayOps:      dialect.ArrayOpPrefix,
	ArraySymbol:   func(op ir.Op) string { return op.String() },
	ReducesPrecision: func(op ir.Op) bool {
		return reducePrecisionOps[op]
	},
	ReducePrecisionFunc: func(operandSQL string, precision int) string {
		return fmt.Sprintf("ST_ReducePrecision(%s, 1E-%d)", operandSQL, precision)
	},
	Power:       func(lhsSQL, rhsSQL string) string { return fmt.Sprintf("POWER(%s, %s)", lhsSQL, rhsSQL) },
	IntDiv:      func(lhsSQL, rhsSQL string) string { return fmt.Sprintf("CAST(%s / %s AS INTEGER)", lhsSQL, rhsSQL) },
	GeomSRID:    geomSRID,
	CollateName: collateName,
}

func collateName(ci, ai bool) string {
	switch {
	case ci && ai:
		return collCAI
	case ci:
		return collCI
	default:
		return collAI
	}
}

func stringLiteral(q value.QString) string {
	escaped := strings.ReplaceAll(q.String(), "'", "''")
	switch {
	case q.IsICase() && q.IsIAccent():
		return fmt.Sprintf("'%s' COLLATE %s", escaped, collCAI)
	case q.IsICase():
		return fmt.Sprintf("'%s' COLLATE %s", escaped, collCI)
	case q.IsIAccent():
		return fmt.Sprintf("'%s' COLLATE %s", escaped, collAI)
	default:
		return fmt.Sprintf("'%s'", escaped)
	}
}

var knownSRIDs = map[string]int{
	"EPSG:4326":  4326,
	"CRS84":      4326,
	"EPSG:3857":  3857,
	"EPSG:27700": 27700,
}

func geomSRID(crsCode string) (int, error) {
	if crsCode == "" {
		return knownSRIDs["CRS84"], nil
	}
	if srid, ok := knownSRIDs[strings.ToUpper(crsCode)]; ok {
		return srid, nil
	}
	return 0, fmt.Errorf("sqlite dialect: no known SRID for CRS %q", crsCode)
}
