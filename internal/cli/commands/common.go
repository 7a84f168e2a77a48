package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geocql/cql2/internal/config"
	"github.com/geocql/cql2/pkg/cqljson"
	"github.com/geocql/cql2/pkg/cqltext"
	"github.com/geocql/cql2/pkg/crs"
	"github.com/geocql/cql2/pkg/eval"
	"github.com/geocql/cql2/pkg/geos"
	"github.com/geocql/cql2/pkg/ir"
)

// resolveLang picks the CQL2 encoding a filter file is written in: an
// explicit --lang flag wins, otherwise ".json" files are treated as
// CQL2-JSON and anything else as CQL2 text.
func resolveLang(path, langFlag string) string {
	if langFlag != "" {
		return langFlag
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "text"
}

// parseFilterFile reads and parses a filter file, dispatching on lang.
func parseFilterFile(path, lang string) (ir.Expr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter file: %w", err)
	}

	switch resolveLang(path, lang) {
	case "json":
		return cqljson.Parse(data)
	case "text":
		return cqltext.Parse(string(data))
	default:
		return nil, fmt.Errorf("unrecognized --lang %q, want \"text\" or \"json\"", lang)
	}
}

// newEvalContext builds the evaluation Context this CLI shares across the
// eval and sql subcommands, wiring in the configured CRS and a GEOS-backed
// spatial engine. Callers must Close the returned engine.
func newEvalContext() (*eval.Context, *geos.Engine, error) {
	cfg := config.Get()

	c, err := crs.New(cfg.DefaultCRS)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving CRS %q: %w", cfg.DefaultCRS, err)
	}

	engine, err := geos.New()
	if err != nil {
		return nil, nil, fmt.Errorf("initializing spatial engine: %w", err)
	}

	return eval.NewContext(c, engine), engine, nil
}
