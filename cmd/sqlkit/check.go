package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlkit/internal/cli"
	"github.com/pthm/sqlkit/internal/syntaxcheck"
	"github.com/pthm/sqlkit/pkg/render"
)

var checkPrintSQL bool

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check that a query document renders to valid SQL",
	Long: `Render a query document with the MySQL dialect and parse the result with
the TiDB parser. Flags are inserted verbatim, so this catches flags placed
where the grammar does not allow them.`,
	Example: `  # Check a document
  sqlkit check queries/report.yaml

  # Print the checked statement
  sqlkit check --print-sql queries/report.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := loadQuery(cmd, args[0])
		if err != nil {
			return err
		}

		sql, err := syntaxcheck.New(render.WithLogger(logger)).CheckQuery(q)
		if sql == "" && err != nil {
			return cli.DocumentError("rendering query", err)
		}
		if err != nil {
			return cli.SyntaxError(fmt.Sprintf("checking %s", args[0]), err)
		}

		out := cmd.OutOrStdout()
		if resolveBool(checkPrintSQL, cfg.Check.PrintSQL) {
			fmt.Fprintln(out, sql)
		}
		if !quiet {
			fmt.Fprintf(out, "%s: OK\n", args[0])
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkPrintSQL, "print-sql", false, "print the rendered statement")
}
