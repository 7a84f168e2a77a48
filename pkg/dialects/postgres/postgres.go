// Package postgres provides the dialect.Dialect for a PostGIS-enabled
// PostgreSQL target, grounded on the PostGIS data source's SQL emission:
// double-quoted column references, lowercase ICU collation names (always
// applied, even to a plain unflagged string, via "pg_unicode_fast" so
// Unicode comparisons sort correctly), and native infix array operators
// (@>, <@, &&) since PostgreSQL arrays support them directly.
package postgres

import (
	"fmt"
	"strings"

	"github.com/geocql/cql2/pkg/dialect"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

const (
	collCI      = `"cql2_ci"`
	collAI      = `"cql2_ai"`
	collCAI     = `"cql2_ci_ai"`
	collDefault = `"pg_unicode_fast"`
)

var reducePrecisionOps = map[ir.Op]bool{
	ir.SWithin:   true,
	ir.SOverlaps: true,
	ir.STouches:  true,
}

var arraySymbols = map[ir.Op]string{
	ir.AEquals:      "=",
	ir.AContains:    "@>",
	ir.AContainedBy: "<@",
	ir.AOverlaps:    "&&",
}

// Dialect targets a PostGIS-enabled PostgreSQL connection reached through
// pgx.
var Dialect = &dialect.Dialect{
	Name:          "postgres",
	QuoteIdent:    quoteIdent,
	StringLiteral: stringLiteral,
	// PostgreSQL has no "-infinity date" sentinel shared across date and
	// timestamp comparisons, so the unbounded limit compares against
	// Postgres's own -infinity timestamp, valid in both date and
	// timestamptz contexts.
	Unbounded:   "'-infinity'",
	ArrayOps:    dialect.ArrayOpInfix,
	ArraySymbol: func(op ir.Op) string { return arraySymbols[op] },
	ReducesPrecision: func(op ir.Op) bool {
		return reducePrecisionOps[op]
	},
	ReducePrecisionFunc: func(operandSQL string, precision int) string {
		return fmt.Sprintf("ST_ReducePrecision(%s, 1E-%d)", operandSQL, precision)
	},
	Power:       func(lhsSQL, rhsSQL string) string { return fmt.Sprintf("%s ^ %s", lhsSQL, rhsSQL) },
	IntDiv:      func(lhsSQL, rhsSQL string) string { return fmt.Sprintf("DIV(%s, %s)", lhsSQL, rhsSQL) },
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

func quoteIdent(name string) string {
	if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		return name
	}
	return `"` + name + `"`
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
		return fmt.Sprintf("'%s' COLLATE %s", escaped, collDefault)
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
		return knownSRIDs["EPSG:4326"], nil
	}
	if srid, ok := knownSRIDs[strings.ToUpper(crsCode)]; ok {
		return srid, nil
	}
	return 0, fmt.Errorf("postgres dialect: no known SRID for CRS %q", crsCode)
}
