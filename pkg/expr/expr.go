// Package expr is the expression metamodel consumed by the query builder:
// columns, literals, predicates, relational paths, foreign keys and subqueries.
//
// The builder stores these values without interpreting them. Each one knows
// how to write itself into a SQLBuilder, which is how the renderer turns them
// into dialect-specific text.
package expr

import (
	"strconv"
)

// Expr is the interface that all SQL expression types implement.
type Expr interface {
	Build(b *SQLBuilder)
}

// Predicate is a boolean expression usable in ON, WHERE and HAVING.
type Predicate interface {
	Expr
	predicate()
}

// Path is a named reference: a column, a table alias or a subquery alias.
type Path interface {
	Expr
	PathName() string
}

// Name is a bare identifier path, used for subquery aliases.
type Name string

// Build writes the quoted identifier.
func (n Name) Build(b *SQLBuilder) { b.WriteIdent(string(n)) }

// PathName implements Path.
func (n Name) PathName() string { return string(n) }

// Col represents a table column reference (e.g., e.dept_id).
type Col struct {
	Table  string
	Column string
}

// Build writes the column reference, qualified when Table is set.
func (c Col) Build(b *SQLBuilder) {
	if c.Table != "" {
		b.WriteIdent(c.Table)
		b.Write(".")
	}
	b.WriteIdent(c.Column)
}

// PathName implements Path.
func (c Col) PathName() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}

// Eq returns c = right.
func (c Col) Eq(right Expr) Eq { return Eq{Left: c, Right: right} }

// Ne returns c <> right.
func (c Col) Ne(right Expr) Ne { return Ne{Left: c, Right: right} }

// Asc orders by c ascending.
func (c Col) Asc() Order { return Asc(c) }

// Desc orders by c descending.
func (c Col) Desc() Order { return Desc(c) }

// Lit represents a literal string value (quoted by the dialect).
type Lit string

// Build writes the quoted literal.
func (l Lit) Build(b *SQLBuilder) { b.WriteLiteral(string(l)) }

// Raw is an escape hatch for arbitrary SQL. It satisfies Predicate so raw
// conditions can be passed to On and Where.
type Raw string

// Build writes the raw SQL as-is.
func (r Raw) Build(b *SQLBuilder) { b.Write(string(r)) }

func (Raw) predicate() {}

// Param represents a bind placeholder or named parameter, written verbatim.
type Param string

// Build writes the parameter.
func (p Param) Build(b *SQLBuilder) { b.Write(string(p)) }

// Int represents an integer literal.
type Int int64

// Build writes the integer.
func (i Int) Build(b *SQLBuilder) { b.Write(strconv.FormatInt(int64(i), 10)) }

// Bool represents a boolean literal.
type Bool bool

// Build writes TRUE or FALSE.
func (v Bool) Build(b *SQLBuilder) {
	if v {
		b.Write("TRUE")
		return
	}
	b.Write("FALSE")
}

func (Bool) predicate() {}

// Null represents SQL NULL.
type Null struct{}

// Build writes NULL.
func (Null) Build(b *SQLBuilder) { b.Write("NULL") }

// Star is the * projection.
type Star struct{}

// Build writes *.
func (Star) Build(b *SQLBuilder) { b.Write("*") }

// Func represents a SQL function call.
type Func struct {
	Name string
	Args []Expr
}

// Build writes name(args...).
func (f Func) Build(b *SQLBuilder) {
	b.Write(f.Name)
	b.Write("(")
	b.WriteExprs(f.Args, ", ")
	b.Write(")")
}

// Alias wraps an expression with an alias (expr AS alias).
type Alias struct {
	Expr Expr
	Name string
}

// Build writes the aliased expression.
func (a Alias) Build(b *SQLBuilder) {
	a.Expr.Build(b)
	b.Write(" AS ")
	b.WriteIdent(a.Name)
}

// As is shorthand for Alias{Expr: e, Name: name}.
func As(e Expr, name string) Alias {
	return Alias{Expr: e, Name: name}
}

// Paren wraps an expression in parentheses.
type Paren struct {
	Expr Expr
}

// Build writes (expr).
func (p Paren) Build(b *SQLBuilder) {
	b.Write("(")
	p.Expr.Build(b)
	b.Write(")")
}

// Order is an ORDER BY item.
type Order struct {
	Expr Expr
	Desc bool
}

// Build writes expr ASC|DESC.
func (o Order) Build(b *SQLBuilder) {
	o.Expr.Build(b)
	if o.Desc {
		b.Write(" DESC")
		return
	}
	b.Write(" ASC")
}

// Asc orders by e ascending.
func Asc(e Expr) Order { return Order{Expr: e} }

// Desc orders by e descending.
func Desc(e Expr) Order { return Order{Expr: e, Desc: true} }
