package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/internal/cli"
	"github.com/pthm/sqlkit/internal/querydoc"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     = slog.New(slog.DiscardHandler)

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlkit",
	Short: "Build SQL from query documents",
	Long: `sqlkit - SQL query builder

sqlkit replays YAML query documents onto a fluent query builder and renders
the accumulated sources, joins and positioned flags as SQL for ANSI,
PostgreSQL or MySQL.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = cli.NewLogger(cmd.ErrOrStderr(), verbose, quiet)

		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		logger.Debug("configuration loaded", "path", configPath, "dialect", cfg.Dialect)

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupQuery   = "query"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover sqlkit.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupQuery, Title: "Query:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd.GroupID = groupQuery
	inspectCmd.GroupID = groupQuery
	checkCmd.GroupID = groupQuery
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveBool returns true if any of the provided values is true.
// Used for boolean flags where any true value should win.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}

// loadQuery reads the document at path ("-" for stdin) and replays it onto
// a new query.
func loadQuery(cmd *cobra.Command, path string) (*sqlkit.Query, error) {
	var (
		doc *querydoc.Document
		err error
	)
	if path == "-" {
		var b []byte
		b, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, cli.DocumentError("reading stdin", err)
		}
		doc, err = querydoc.Parse(b)
	} else {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, cli.DocumentError("query document not found: "+path, nil)
		}
		doc, err = querydoc.Load(path)
	}
	if err != nil {
		return nil, cli.DocumentError("loading query document", err)
	}

	q, err := doc.Build()
	if err != nil {
		return nil, cli.DocumentError("building query", err)
	}
	logger.Debug("query document loaded", "path", path)
	return q, nil
}
