package expr

import "strings"

// Quoter escapes identifiers and string literals for one SQL dialect.
type Quoter interface {
	QuoteIdent(name string) string
	QuoteLiteral(value string) string
}

// SQLBuilder accumulates rendered SQL text. Expressions write themselves into
// it so the surrounding renderer controls identifier and literal quoting.
type SQLBuilder struct {
	sb strings.Builder
	q  Quoter
}

// NewSQLBuilder returns a builder that quotes with q. A nil quoter means ANSI.
func NewSQLBuilder(q Quoter) *SQLBuilder {
	if q == nil {
		q = ANSIQuoter{}
	}
	return &SQLBuilder{q: q}
}

// Quoter returns the quoter in use.
func (b *SQLBuilder) Quoter() Quoter {
	return b.q
}

// Write appends raw SQL text.
func (b *SQLBuilder) Write(s string) {
	b.sb.WriteString(s)
}

// WriteIdent appends a quoted identifier.
func (b *SQLBuilder) WriteIdent(name string) {
	b.sb.WriteString(b.q.QuoteIdent(name))
}

// WriteLiteral appends a quoted string literal.
func (b *SQLBuilder) WriteLiteral(value string) {
	b.sb.WriteString(b.q.QuoteLiteral(value))
}

// WriteExprs appends exprs separated by sep.
func (b *SQLBuilder) WriteExprs(exprs []Expr, sep string) {
	for i, e := range exprs {
		if i > 0 {
			b.sb.WriteString(sep)
		}
		e.Build(b)
	}
}

// Len returns the number of bytes written so far.
func (b *SQLBuilder) Len() int {
	return b.sb.Len()
}

// String returns the accumulated SQL.
func (b *SQLBuilder) String() string {
	return b.sb.String()
}

// ANSIQuoter quotes identifiers with double quotes and literals with single
// quotes, doubling embedded quote characters.
type ANSIQuoter struct{}

// QuoteIdent implements Quoter.
func (ANSIQuoter) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral implements Quoter.
func (ANSIQuoter) QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// SQL renders e with ANSI quoting. Useful in tests and error messages.
func SQL(e Expr) string {
	if e == nil {
		return ""
	}
	b := NewSQLBuilder(nil)
	e.Build(b)
	return b.String()
}
