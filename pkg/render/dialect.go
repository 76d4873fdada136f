package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/pthm/sqlkit/pkg/expr"
)

// Dialect controls quoting and the dialect-specific clauses the renderer
// emits.
type Dialect interface {
	expr.Quoter
	Name() string
	// LimitOffset returns the row-limiting clause, or "" when neither is set.
	LimitOffset(limit int, hasLimit bool, offset int, hasOffset bool) string
}

// ANSI renders standard SQL: double-quoted identifiers and
// OFFSET ... ROWS FETCH FIRST ... ROWS ONLY.
type ANSI struct {
	expr.ANSIQuoter
}

func (ANSI) Name() string { return "ansi" }

func (ANSI) LimitOffset(limit int, hasLimit bool, offset int, hasOffset bool) string {
	var parts []string
	if hasOffset {
		parts = append(parts, "OFFSET "+strconv.Itoa(offset)+" ROWS")
	}
	if hasLimit {
		parts = append(parts, "FETCH FIRST "+strconv.Itoa(limit)+" ROWS ONLY")
	}
	return strings.Join(parts, " ")
}

// Postgres quotes with pgx identifier sanitizing and lib/pq literal quoting.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// QuoteLiteral uses the E'' form for values with backslashes.
func (Postgres) QuoteLiteral(value string) string {
	return strings.TrimLeft(pq.QuoteLiteral(value), " ")
}

func (Postgres) LimitOffset(limit int, hasLimit bool, offset int, hasOffset bool) string {
	var parts []string
	if hasLimit {
		parts = append(parts, "LIMIT "+strconv.Itoa(limit))
	}
	if hasOffset {
		parts = append(parts, "OFFSET "+strconv.Itoa(offset))
	}
	return strings.Join(parts, " ")
}

// MySQL quotes identifiers with backticks and escapes backslashes in literals.
type MySQL struct{}

var mysqlLiteralEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`)

// mysqlMaxRows is the documented way to express OFFSET without LIMIT.
const mysqlMaxRows = "18446744073709551615"

func (MySQL) Name() string { return "mysql" }

func (MySQL) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQL) QuoteLiteral(value string) string {
	return "'" + mysqlLiteralEscaper.Replace(value) + "'"
}

func (MySQL) LimitOffset(limit int, hasLimit bool, offset int, hasOffset bool) string {
	switch {
	case hasLimit && hasOffset:
		return "LIMIT " + strconv.Itoa(limit) + " OFFSET " + strconv.Itoa(offset)
	case hasLimit:
		return "LIMIT " + strconv.Itoa(limit)
	case hasOffset:
		return "LIMIT " + mysqlMaxRows + " OFFSET " + strconv.Itoa(offset)
	}
	return ""
}

var dialects = map[string]Dialect{
	"ansi":     ANSI{},
	"postgres": Postgres{},
	"mysql":    MySQL{},
}

// DialectByName looks up a built-in dialect. "postgresql" and "pg" are
// accepted for postgres.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgresql", "pg":
		name = "postgres"
	case "":
		name = "ansi"
	}
	if d, ok := dialects[strings.ToLower(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown dialect %q (available: %s)", name, strings.Join(DialectNames(), ", "))
}

// DialectNames lists the built-in dialect names, sorted.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for n := range dialects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
