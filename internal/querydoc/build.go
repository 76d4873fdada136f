package querydoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/pkg/expr"
	"github.com/pthm/sqlkit/pkg/render"
)

var columnRef = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)

// Build replays d onto a fresh query: select, distinct, from, joins (each
// with its flags and then its conditions), flags, where, group by, having,
// order by, limit and offset. Entries within a list keep their order.
//
// Documents that cannot be expressed return ErrInvalidDocument. Usage errors
// of the builder stay recorded on the returned query.
func (d *Document) Build() (*sqlkit.Query, error) {
	q := sqlkit.New()

	sel, err := exprs(d.Select, "select")
	if err != nil {
		return nil, err
	}
	q.Select(sel...)
	if d.Distinct {
		q.Distinct()
	}

	for i, s := range d.From {
		if err := addSource(q, s); err != nil {
			return nil, fmt.Errorf("from[%d]: %w", i, err)
		}
	}

	for i, j := range d.Joins {
		if err := addJoin(q, j); err != nil {
			return nil, fmt.Errorf("joins[%d]: %w", i, err)
		}
	}

	for i, f := range d.Flags {
		if err := addFlag(q, f); err != nil {
			return nil, fmt.Errorf("flags[%d]: %w", i, err)
		}
	}

	where, err := predicates(d.Where, "where")
	if err != nil {
		return nil, err
	}
	q.Where(where...)

	groupBy, err := exprs(d.GroupBy, "group_by")
	if err != nil {
		return nil, err
	}
	q.GroupBy(groupBy...)

	having, err := predicates(d.Having, "having")
	if err != nil {
		return nil, err
	}
	q.Having(having...)

	for i, o := range d.OrderBy {
		e, err := o.Expr.build()
		if err != nil {
			return nil, fmt.Errorf("order_by[%d]: %w", i, err)
		}
		q.OrderBy(expr.Order{Expr: e, Desc: o.Desc})
	}

	if d.Limit != nil {
		q.Limit(*d.Limit)
	}
	if d.Offset != nil {
		q.Offset(*d.Offset)
	}
	return q, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

func (r Relation) table() (expr.Table, error) {
	if r.Table == "" {
		return expr.Table{}, invalid("table is required")
	}
	return expr.Table{Schema: r.Schema, Name: r.Table, Alias: r.Alias}, nil
}

// subQuery returns the statement of a subquery or SQL source. ok is false for
// plain relations.
func (s Source) subQuery() (sq expr.SubQuery, ok bool, err error) {
	switch {
	case s.SubQuery != nil && s.SQL != "":
		return nil, true, invalid("subquery and sql are mutually exclusive")
	case s.SubQuery != nil:
		nested, err := s.SubQuery.Build()
		if err != nil {
			return nil, true, fmt.Errorf("subquery: %w", err)
		}
		sq, err = render.SubQuery(nested)
		return sq, true, err
	case s.SQL != "":
		return expr.RawQuery(s.SQL), true, nil
	}
	return nil, false, nil
}

func addSource(q *sqlkit.Query, s Source) error {
	sq, ok, err := s.subQuery()
	if err != nil {
		return err
	}
	if ok {
		if s.Alias == "" {
			return invalid("subquery source needs an alias")
		}
		q.FromSubQuery(sq, expr.Name(s.Alias))
		return nil
	}
	t, err := s.table()
	if err != nil {
		return err
	}
	q.From(t)
	return nil
}

func addJoin(q *sqlkit.Query, j Join) error {
	kind, err := sqlkit.ParseJoinKind(j.Kind)
	if err != nil {
		return invalid("%v", err)
	}

	target, err := j.target()
	if err != nil {
		return err
	}
	q.AddJoin(kind, target)

	for _, f := range j.Flags {
		pos, err := sqlkit.ParseJoinFlagPosition(f.Position)
		if err != nil {
			return invalid("%v", err)
		}
		q.AddJoinFlagAt(f.Text, pos)
	}

	on, err := predicates(j.On, "on")
	if err != nil {
		return err
	}
	if len(on) > 0 {
		q.On(on...)
	}
	return nil
}

func (j Join) target() (sqlkit.JoinTarget, error) {
	sq, ok, err := j.subQuery()
	if err != nil {
		return nil, err
	}
	if ok {
		if j.ForeignKey != nil {
			return nil, invalid("foreign_key cannot join a subquery")
		}
		if j.Alias == "" {
			return nil, invalid("subquery join needs an alias")
		}
		return sqlkit.SubQueryTarget{SubQuery: sq, Alias: expr.Name(j.Alias)}, nil
	}

	t, err := j.table()
	if err != nil {
		return nil, err
	}
	if j.ForeignKey == nil {
		return sqlkit.RelationTarget{Relation: t}, nil
	}

	local, err := j.ForeignKey.table()
	if err != nil {
		return nil, fmt.Errorf("foreign_key: %w", err)
	}
	if len(j.ForeignKey.Columns) == 0 || len(j.ForeignKey.Columns) != len(j.ForeignKey.RefColumns) {
		return nil, invalid("foreign_key needs matching columns and ref_columns")
	}
	return sqlkit.ForeignKeyTarget{
		ForeignKey: expr.ForeignKey{
			Name:       j.ForeignKey.Name,
			Local:      local,
			Columns:    j.ForeignKey.Columns,
			RefColumns: j.ForeignKey.RefColumns,
		},
		Relation: t,
	}, nil
}

func addFlag(q *sqlkit.Query, f Flag) error {
	pos, err := sqlkit.ParseQueryFlagPosition(f.Position)
	if err != nil {
		return invalid("%v", err)
	}
	if f.Expr == nil {
		if f.Prefix != "" {
			return invalid("prefix requires expr")
		}
		q.AddFlag(pos, f.Text)
		return nil
	}
	if f.Text != "" {
		return invalid("text and expr are mutually exclusive")
	}
	e, err := f.Expr.build()
	if err != nil {
		return err
	}
	if f.Prefix != "" {
		q.AddFlagPrefixed(pos, f.Prefix, e)
	} else {
		q.AddFlagExpr(pos, e)
	}
	return nil
}

func (e Expr) build() (expr.Expr, error) {
	var out expr.Expr
	set := 0
	if e.Column != "" {
		set++
		switch {
		case e.Column == "*":
			out = expr.Star{}
		case columnRef.MatchString(e.Column):
			out = column(e.Column)
		default:
			out = expr.Raw(e.Column)
		}
	}
	if e.Raw != "" {
		set++
		out = expr.Raw(e.Raw)
	}
	if e.Literal != nil {
		set++
		out = expr.Lit(*e.Literal)
	}
	if e.Number != nil {
		set++
		out = expr.Int(*e.Number)
	}
	if set != 1 {
		return nil, invalid("expression needs exactly one of column, raw, literal or number")
	}
	if e.As != "" {
		out = expr.As(out, e.As)
	}
	return out, nil
}

func column(ref string) expr.Col {
	if table, col, ok := strings.Cut(ref, "."); ok {
		return expr.Col{Table: table, Column: col}
	}
	return expr.Col{Column: ref}
}

func exprs(in []Expr, field string) ([]expr.Expr, error) {
	out := make([]expr.Expr, 0, len(in))
	for i, e := range in {
		built, err := e.build()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, built)
	}
	return out, nil
}

var comparisons = map[string]func(l, r expr.Expr) expr.Predicate{
	"=":  func(l, r expr.Expr) expr.Predicate { return expr.Eq{Left: l, Right: r} },
	"<>": func(l, r expr.Expr) expr.Predicate { return expr.Ne{Left: l, Right: r} },
	"!=": func(l, r expr.Expr) expr.Predicate { return expr.Ne{Left: l, Right: r} },
	"<":  func(l, r expr.Expr) expr.Predicate { return expr.Lt{Left: l, Right: r} },
	">":  func(l, r expr.Expr) expr.Predicate { return expr.Gt{Left: l, Right: r} },
	"<=": func(l, r expr.Expr) expr.Predicate { return expr.Lte{Left: l, Right: r} },
	">=": func(l, r expr.Expr) expr.Predicate { return expr.Gte{Left: l, Right: r} },
}

func (p Predicate) build() (expr.Predicate, error) {
	if p.Raw != "" {
		if p.Left != nil || p.Right != nil || p.Op != "" {
			return nil, invalid("raw and left/op/right are mutually exclusive")
		}
		return expr.Raw(p.Raw), nil
	}
	if p.Left == nil || p.Right == nil {
		return nil, invalid("predicate needs raw or left, op and right")
	}
	cmp, ok := comparisons[p.Op]
	if !ok {
		return nil, invalid("unknown operator %q", p.Op)
	}
	l, err := p.Left.build()
	if err != nil {
		return nil, err
	}
	r, err := p.Right.build()
	if err != nil {
		return nil, err
	}
	return cmp(l, r), nil
}

func predicates(in []Predicate, field string) ([]expr.Predicate, error) {
	out := make([]expr.Predicate, 0, len(in))
	for i, p := range in {
		built, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, built)
	}
	return out, nil
}
