package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/geocql/cql2/pkg/cqljson"
	"github.com/geocql/cql2/pkg/eval"
	"github.com/geocql/cql2/pkg/value"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Lang     string
	Resource string
	Dump     bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <filter-file>",
		Short: "Evaluate a CQL2 filter against a resource",
		Long: `Parse a CQL2 filter (text or JSON, detected from the file extension or
--lang) and evaluate it against one resource read from a JSON object,
printing the three-valued outcome: T, F, or N.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Lang, "lang", "", "filter encoding: text|json (default: inferred from extension)")
	cmd.Flags().StringVar(&opts.Resource, "resource", "", "path to a JSON object providing the resource's property values")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "print the resolved resource fields before the outcome")
	_ = cmd.MarkFlagRequired("resource")

	return cmd
}

func runEval(cmd *cobra.Command, filterPath string, opts *EvalOptions) error {
	expr, err := parseFilterFile(filterPath, opts.Lang)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.Resource)
	if err != nil {
		return fmt.Errorf("reading resource file: %w", err)
	}
	resource, err := cqljson.ParseResource(data)
	if err != nil {
		return fmt.Errorf("decoding resource: %w", err)
	}

	ctx, engine, err := newEvalContext()
	if err != nil {
		return err
	}
	defer engine.Close()

	if opts.Dump {
		dumpResource(cmd, resource)
	}

	outcome, err := eval.NewEvaluator(ctx).Evaluate(expr, resource)
	if err != nil {
		return fmt.Errorf("evaluating filter: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), outcome.String())
	return nil
}

func dumpResource(cmd *cobra.Command, resource value.Resource) {
	names := make([]string, 0, len(resource))
	for name := range resource {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Property", "Value"})
	for _, name := range names {
		t.AppendRow(table.Row{name, resource[name].String()})
	}
	t.Render()
}
