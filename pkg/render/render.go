// Package render turns frozen query metadata into SQL text.
//
// It is the reference consumer of sqlkit.Metadata. It walks the registries in
// a fixed order and places every query and join flag at its anchor; it does
// not check that the result is valid for the chosen dialect.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/pkg/expr"
)

// ErrInvalidMetadata is returned when metadata holds a value the renderer
// cannot place, such as a nil relation.
var ErrInvalidMetadata = errors.New("render: invalid metadata")

// Renderer renders metadata for one dialect.
type Renderer struct {
	Dialect Dialect
	// Pretty puts every clause on its own line.
	Pretty bool
	// Logger receives debug output. Nil means silent.
	Logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPretty enables one clause per line.
func WithPretty(pretty bool) Option {
	return func(r *Renderer) { r.Pretty = pretty }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.Logger = l }
}

// New returns a renderer for d. A nil dialect means ANSI.
func New(d Dialect, opts ...Option) *Renderer {
	if d == nil {
		d = ANSI{}
	}
	r := &Renderer{Dialect: d}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderQuery freezes q and renders it. Usage errors recorded on q are
// returned unchanged.
func (r *Renderer) RenderQuery(q *sqlkit.Query) (string, error) {
	md, err := q.Metadata()
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// Render renders md.
func (r *Renderer) Render(md *sqlkit.Metadata) (string, error) {
	if err := validate(md); err != nil {
		return "", err
	}
	sql := r.render(md)
	if r.Logger != nil {
		r.Logger.Debug("rendered query",
			"dialect", r.Dialect.Name(),
			"sources", len(md.Sources()),
			"joins", len(md.Joins()),
			"flags", len(md.Flags()),
			"bytes", len(sql))
	}
	return sql, nil
}

func (r *Renderer) render(md *sqlkit.Metadata) string {
	w := &writer{d: r.Dialect}

	w.flags(md, sqlkit.Start)

	sel := []string{"SELECT"}
	if override := md.FlagsAt(sqlkit.StartOverride); len(override) > 0 {
		sel = sel[:0]
		for _, f := range override {
			sel = append(sel, w.flag(f))
		}
	}
	for _, f := range md.FlagsAt(sqlkit.AfterSelect) {
		sel = append(sel, w.flag(f))
	}
	if md.Distinct() {
		sel = append(sel, "DISTINCT")
	}
	sel = append(sel, w.projection(md.Projection()))
	w.add(strings.Join(sel, " "))
	w.flags(md, sqlkit.AfterProjection)

	if sources := md.Sources(); len(sources) > 0 {
		parts := make([]string, len(sources))
		for i, s := range sources {
			parts[i] = w.source(s)
		}
		w.add("FROM " + strings.Join(parts, ", "))
	}
	for _, j := range md.Joins() {
		w.add(w.join(j))
	}
	w.flags(md, sqlkit.AfterFrom)

	w.flags(md, sqlkit.BeforeFilters)
	if where := md.Where(); len(where) > 0 {
		w.add("WHERE " + w.expr(expr.And(where...)))
	}
	w.flags(md, sqlkit.AfterFilters)

	w.flags(md, sqlkit.BeforeGroupBy)
	if groupBy := md.GroupBy(); len(groupBy) > 0 {
		w.add("GROUP BY " + w.exprList(groupBy))
	}
	w.flags(md, sqlkit.AfterGroupBy)

	w.flags(md, sqlkit.BeforeHaving)
	if having := md.Having(); len(having) > 0 {
		w.add("HAVING " + w.expr(expr.And(having...)))
	}
	w.flags(md, sqlkit.AfterHaving)

	w.flags(md, sqlkit.BeforeOrder)
	if orderBy := md.OrderBy(); len(orderBy) > 0 {
		exprs := make([]expr.Expr, len(orderBy))
		for i, o := range orderBy {
			exprs[i] = o
		}
		w.add("ORDER BY " + w.exprList(exprs))
	}
	w.flags(md, sqlkit.AfterOrder)

	limit, hasLimit := md.Limit()
	offset, hasOffset := md.Offset()
	w.add(r.Dialect.LimitOffset(limit, hasLimit, offset, hasOffset))

	w.flags(md, sqlkit.End)

	sep := " "
	if r.Pretty {
		sep = "\n"
	}
	return strings.Join(w.parts, sep)
}

// writer collects the clauses of one statement.
type writer struct {
	d     Dialect
	parts []string
}

func (w *writer) add(s string) {
	if s != "" {
		w.parts = append(w.parts, s)
	}
}

func (w *writer) expr(e expr.Expr) string {
	b := expr.NewSQLBuilder(w.d)
	e.Build(b)
	return b.String()
}

func (w *writer) exprList(exprs []expr.Expr) string {
	b := expr.NewSQLBuilder(w.d)
	b.WriteExprs(exprs, ", ")
	return b.String()
}

func (w *writer) projection(exprs []expr.Expr) string {
	if len(exprs) == 0 {
		return "*"
	}
	return w.exprList(exprs)
}

func (w *writer) flag(f sqlkit.QueryFlag) string {
	switch f := f.(type) {
	case sqlkit.LiteralFlag:
		return f.Text
	case sqlkit.ExprFlag:
		return w.expr(f.Expr)
	case sqlkit.PrefixedExprFlag:
		return f.Prefix + w.expr(f.Expr)
	}
	return ""
}

func (w *writer) flags(md *sqlkit.Metadata, pos sqlkit.QueryFlagPosition) {
	for _, f := range md.FlagsAt(pos) {
		w.add(w.flag(f))
	}
}

func (w *writer) subQuery(sq expr.SubQuery, alias expr.Path) string {
	s := "(" + w.expr(sq) + ")"
	if alias != nil {
		s += " " + w.expr(alias)
	}
	return s
}

func (w *writer) source(s sqlkit.Source) string {
	switch s := s.(type) {
	case sqlkit.RelationSource:
		return w.expr(s.Relation)
	case sqlkit.SubQuerySource:
		return w.subQuery(s.SubQuery, s.Alias)
	}
	return ""
}

func (w *writer) join(j sqlkit.JoinRecord) string {
	var tokens []string
	joinFlags := func(pos sqlkit.JoinFlagPosition) []string {
		var out []string
		for _, f := range j.Flags {
			if f.Position == pos && f.Text != "" {
				out = append(out, f.Text)
			}
		}
		return out
	}

	tokens = append(tokens, joinFlags(sqlkit.JoinStart)...)
	if override := joinFlags(sqlkit.JoinOverride); len(override) > 0 {
		tokens = append(tokens, override...)
	} else {
		tokens = append(tokens, j.Kind.String())
	}
	tokens = append(tokens, joinFlags(sqlkit.JoinBeforeTarget)...)

	var conds []expr.Predicate
	switch t := j.Target.(type) {
	case sqlkit.RelationTarget:
		tokens = append(tokens, w.expr(t.Relation))
	case sqlkit.ForeignKeyTarget:
		tokens = append(tokens, w.expr(t.Relation))
		conds = append(conds, t.ForeignKey.On(t.Relation))
	case sqlkit.SubQueryTarget:
		tokens = append(tokens, w.subQuery(t.SubQuery, t.Alias))
	}

	tokens = append(tokens, joinFlags(sqlkit.JoinBeforeCondition)...)
	conds = append(conds, j.Predicates...)
	if len(conds) > 0 {
		tokens = append(tokens, "ON "+w.expr(expr.And(conds...)))
	}
	tokens = append(tokens, joinFlags(sqlkit.JoinEnd)...)

	return strings.Join(tokens, " ")
}

// validate rejects nil targets and relations, which would otherwise panic
// halfway through rendering, and flags at positions outside the catalogs,
// which have no anchor.
func validate(md *sqlkit.Metadata) error {
	if md == nil {
		return fmt.Errorf("%w: nil metadata", ErrInvalidMetadata)
	}
	for i, s := range md.Sources() {
		switch s := s.(type) {
		case sqlkit.RelationSource:
			if s.Relation == nil {
				return fmt.Errorf("%w: source %d has no relation", ErrInvalidMetadata, i)
			}
		case sqlkit.SubQuerySource:
			if s.SubQuery == nil {
				return fmt.Errorf("%w: source %d has no subquery", ErrInvalidMetadata, i)
			}
		default:
			return fmt.Errorf("%w: source %d is %T", ErrInvalidMetadata, i, s)
		}
	}
	for _, f := range md.Flags() {
		if !f.Position().Valid() {
			return fmt.Errorf("%w: flag %q at unknown position %s", ErrInvalidMetadata, flagText(f), f.Position())
		}
		switch f := f.(type) {
		case sqlkit.ExprFlag:
			if f.Expr == nil {
				return fmt.Errorf("%w: flag at %s has no expression", ErrInvalidMetadata, f.At)
			}
		case sqlkit.PrefixedExprFlag:
			if f.Expr == nil {
				return fmt.Errorf("%w: flag at %s has no expression", ErrInvalidMetadata, f.At)
			}
		}
	}
	for i, j := range md.Joins() {
		switch t := j.Target.(type) {
		case sqlkit.RelationTarget:
			if t.Relation == nil {
				return fmt.Errorf("%w: join %d has no relation", ErrInvalidMetadata, i)
			}
		case sqlkit.ForeignKeyTarget:
			if t.Relation == nil || t.ForeignKey.Local == nil {
				return fmt.Errorf("%w: join %d has an incomplete foreign key target", ErrInvalidMetadata, i)
			}
		case sqlkit.SubQueryTarget:
			if t.SubQuery == nil {
				return fmt.Errorf("%w: join %d has no subquery", ErrInvalidMetadata, i)
			}
		default:
			return fmt.Errorf("%w: join %d target is %T", ErrInvalidMetadata, i, t)
		}
		for _, f := range j.Flags {
			if !f.Position.Valid() {
				return fmt.Errorf("%w: join %d flag %q at unknown position %s", ErrInvalidMetadata, i, f.Text, f.Position)
			}
		}
	}
	for i, o := range md.OrderBy() {
		if o.Expr == nil {
			return fmt.Errorf("%w: order item %d has no expression", ErrInvalidMetadata, i)
		}
	}
	return nil
}

func flagText(f sqlkit.QueryFlag) string {
	if f, ok := f.(sqlkit.LiteralFlag); ok {
		return f.Text
	}
	return fmt.Sprintf("%T", f)
}
