package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlkit/internal/cli"
	"github.com/pthm/sqlkit/pkg/render"
)

var (
	renderDialect string
	renderPretty  bool
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a query document as SQL",
	Long:  `Build a query from a YAML document and print the SQL for the selected dialect.`,
	Example: `  # Render with the configured dialect
  sqlkit render queries/report.yaml

  # Render for PostgreSQL, one clause per line
  sqlkit render --dialect postgres --pretty queries/report.yaml

  # Read the document from stdin
  cat report.yaml | sqlkit render -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve dialect: flag > render.dialect > dialect
		d, err := cfg.ResolvedDialect(renderDialect)
		if err != nil {
			return cli.ConfigError("resolving dialect", err)
		}

		q, err := loadQuery(cmd, args[0])
		if err != nil {
			return err
		}

		r := render.New(d,
			render.WithPretty(resolveBool(renderPretty, cfg.Render.Pretty)),
			render.WithLogger(logger))
		sql, err := r.RenderQuery(q)
		if err != nil {
			return cli.DocumentError("rendering query", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), sql)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderDialect, "dialect", "", "SQL dialect: "+strings.Join(render.DialectNames(), ", "))
	renderCmd.Flags().BoolVar(&renderPretty, "pretty", false, "put each clause on its own line")
}
