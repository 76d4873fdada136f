package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/internal/cli"
	"github.com/pthm/sqlkit/pkg/expr"
)

var (
	inspectFormat  string
	inspectDialect string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show the accumulated clauses of a query document",
	Long: `Build a query from a YAML document, freeze it, and print its sources,
joins (with their flags and conditions) and query flags by position.`,
	Example: `  # Human readable summary
  sqlkit inspect queries/report.yaml

  # Machine readable summary
  sqlkit inspect -o yaml queries/report.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := inspectFormat
		if format == "" {
			format = cfg.Inspect.Format
		}
		d, err := cfg.ResolvedDialect(inspectDialect)
		if err != nil {
			return cli.ConfigError("resolving dialect", err)
		}

		q, err := loadQuery(cmd, args[0])
		if err != nil {
			return err
		}
		md, err := q.Metadata()
		if err != nil {
			return cli.DocumentError("building query", err)
		}
		s := summarize(md, d)

		out := cmd.OutOrStdout()
		switch format {
		case "yaml":
			b, err := yaml.Marshal(s)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(b))
		case "text":
			printSummary(out, s)
		default:
			return cli.GeneralError(fmt.Sprintf("unknown output format %q (available: text, yaml)", format), nil)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "output", "o", "", "output format: text, yaml")
	inspectCmd.Flags().StringVar(&inspectDialect, "dialect", "", "dialect used to quote expressions")
}

// summary is the printable view of frozen metadata.
type summary struct {
	Select  []string      `json:"select,omitempty"`
	Sources []string      `json:"sources"`
	Joins   []joinSummary `json:"joins"`
	Flags   []flagSummary `json:"flags"`
	Where   []string      `json:"where,omitempty"`
	GroupBy []string      `json:"group_by,omitempty"`
	Having  []string      `json:"having,omitempty"`
	OrderBy []string      `json:"order_by,omitempty"`
	Limit   *int          `json:"limit,omitempty"`
	Offset  *int          `json:"offset,omitempty"`
}

type joinSummary struct {
	Kind       string        `json:"kind"`
	Target     string        `json:"target"`
	Flags      []flagSummary `json:"flags,omitempty"`
	Conditions []string      `json:"conditions,omitempty"`
}

type flagSummary struct {
	Position string `json:"position"`
	Text     string `json:"text"`
}

func summarize(md *sqlkit.Metadata, q expr.Quoter) summary {
	sqlOf := func(e expr.Expr) string {
		if e == nil {
			return "<nil>"
		}
		b := expr.NewSQLBuilder(q)
		e.Build(b)
		return b.String()
	}
	sqlList := func(n int, at func(int) expr.Expr) []string {
		var out []string
		for i := 0; i < n; i++ {
			out = append(out, sqlOf(at(i)))
		}
		return out
	}

	s := summary{Sources: []string{}, Joins: []joinSummary{}, Flags: []flagSummary{}}

	proj := md.Projection()
	s.Select = sqlList(len(proj), func(i int) expr.Expr { return proj[i] })
	if md.Distinct() && len(s.Select) > 0 {
		s.Select[0] = "DISTINCT " + s.Select[0]
	}

	for _, src := range md.Sources() {
		switch src := src.(type) {
		case sqlkit.RelationSource:
			s.Sources = append(s.Sources, sqlOf(src.Relation))
		case sqlkit.SubQuerySource:
			s.Sources = append(s.Sources, "("+sqlOf(src.SubQuery)+") "+sqlOf(src.Alias))
		}
	}

	for _, j := range md.Joins() {
		js := joinSummary{Kind: j.Kind.String()}
		switch t := j.Target.(type) {
		case sqlkit.RelationTarget:
			js.Target = sqlOf(t.Relation)
		case sqlkit.ForeignKeyTarget:
			js.Target = sqlOf(t.Relation)
			if t.Relation != nil && t.ForeignKey.Local != nil {
				js.Conditions = append(js.Conditions, sqlOf(t.ForeignKey.On(t.Relation)))
			}
		case sqlkit.SubQueryTarget:
			js.Target = "(" + sqlOf(t.SubQuery) + ") " + sqlOf(t.Alias)
		}
		for _, f := range j.Flags {
			js.Flags = append(js.Flags, flagSummary{Position: f.Position.String(), Text: f.Text})
		}
		for _, p := range j.Predicates {
			js.Conditions = append(js.Conditions, sqlOf(p))
		}
		s.Joins = append(s.Joins, js)
	}

	for _, pos := range md.FlagPositions() {
		for _, f := range md.FlagsAt(pos) {
			var text string
			switch f := f.(type) {
			case sqlkit.LiteralFlag:
				text = f.Text
			case sqlkit.ExprFlag:
				text = sqlOf(f.Expr)
			case sqlkit.PrefixedExprFlag:
				text = f.Prefix + sqlOf(f.Expr)
			}
			s.Flags = append(s.Flags, flagSummary{Position: pos.String(), Text: text})
		}
	}

	where := md.Where()
	s.Where = sqlList(len(where), func(i int) expr.Expr { return where[i] })
	groupBy := md.GroupBy()
	s.GroupBy = sqlList(len(groupBy), func(i int) expr.Expr { return groupBy[i] })
	having := md.Having()
	s.Having = sqlList(len(having), func(i int) expr.Expr { return having[i] })
	orderBy := md.OrderBy()
	s.OrderBy = sqlList(len(orderBy), func(i int) expr.Expr { return orderBy[i] })

	if n, ok := md.Limit(); ok {
		s.Limit = &n
	}
	if n, ok := md.Offset(); ok {
		s.Offset = &n
	}
	return s
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func printSummary(w io.Writer, s summary) {
	section := func(title string, n int) {
		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (%d)", title, n)))
	}
	list := func(items []string) {
		if len(items) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("  (none)"))
			return
		}
		for _, it := range items {
			fmt.Fprintln(w, "  "+it)
		}
	}

	section("Select", len(s.Select))
	list(s.Select)

	section("Sources", len(s.Sources))
	list(s.Sources)

	section("Joins", len(s.Joins))
	if len(s.Joins) == 0 {
		list(nil)
	}
	for i, j := range s.Joins {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, j.Kind, j.Target)
		for _, f := range j.Flags {
			fmt.Fprintf(w, "     %s %s\n", labelStyle.Render(f.Position+":"), f.Text)
		}
		for _, c := range j.Conditions {
			fmt.Fprintf(w, "     %s %s\n", labelStyle.Render("on:"), c)
		}
	}

	section("Flags", len(s.Flags))
	if len(s.Flags) == 0 {
		list(nil)
	}
	for _, f := range s.Flags {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(f.Position+":"), f.Text)
	}

	var modifiers []string
	add := func(label string, items []string) {
		if len(items) > 0 {
			modifiers = append(modifiers, label+" "+strings.Join(items, ", "))
		}
	}
	add("where", s.Where)
	add("group by", s.GroupBy)
	add("having", s.Having)
	add("order by", s.OrderBy)
	if s.Limit != nil {
		modifiers = append(modifiers, "limit "+strconv.Itoa(*s.Limit))
	}
	if s.Offset != nil {
		modifiers = append(modifiers, "offset "+strconv.Itoa(*s.Offset))
	}
	section("Modifiers", len(modifiers))
	list(modifiers)
}
