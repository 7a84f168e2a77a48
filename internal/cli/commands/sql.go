package commands

import (
	"fmt"

	"github.com/geocql/cql2/pkg/dialect"
	"github.com/geocql/cql2/pkg/dialects/postgres"
	"github.com/geocql/cql2/pkg/dialects/sqlite"
	"github.com/geocql/cql2/pkg/reduce"
	"github.com/geocql/cql2/pkg/sqltranslate"
	"github.com/spf13/cobra"
)

// SQLOptions holds options for the sql command.
type SQLOptions struct {
	Lang    string
	Dialect string
}

// NewSQLCommand creates the sql command.
func NewSQLCommand() *cobra.Command {
	opts := &SQLOptions{}

	cmd := &cobra.Command{
		Use:   "sql <filter-file>",
		Short: "Translate a CQL2 filter to a SQL WHERE-clause fragment",
		Long: `Parse a CQL2 filter, constant-fold what can be decided statically, and
print the translated WHERE-clause fragment for the requested SQL dialect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Lang, "lang", "", "filter encoding: text|json (default: inferred from extension)")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "sqlite", "target SQL dialect: sqlite|postgres")

	return cmd
}

func resolveDialect(name string) (*dialect.Dialect, error) {
	switch name {
	case "sqlite":
		return sqlite.Dialect, nil
	case "postgres":
		return postgres.Dialect, nil
	default:
		return nil, fmt.Errorf("unrecognized --dialect %q, want \"sqlite\" or \"postgres\"", name)
	}
}

func runSQL(cmd *cobra.Command, filterPath string, opts *SQLOptions) error {
	expr, err := parseFilterFile(filterPath, opts.Lang)
	if err != nil {
		return err
	}

	d, err := resolveDialect(opts.Dialect)
	if err != nil {
		return err
	}

	ctx, engine, err := newEvalContext()
	if err != nil {
		return err
	}
	defer engine.Close()

	reduced, err := reduce.Reduce(expr, ctx)
	if err != nil {
		return fmt.Errorf("reducing filter: %w", err)
	}

	sql, err := sqltranslate.Translate(reduced, d, ctx)
	if err != nil {
		return fmt.Errorf("translating filter: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), sql)
	return nil
}
