// Package syntaxcheck parses rendered SQL with the TiDB parser to catch flags
// that produce statements MySQL-compatible servers would reject.
package syntaxcheck

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/pkg/render"
)

// ErrSyntax is returned when rendered SQL does not parse as a single SELECT.
var ErrSyntax = errors.New("syntaxcheck: invalid SQL")

// Checker wraps a TiDB parser. The parser is not safe for concurrent use, so
// calls are serialized.
type Checker struct {
	mu sync.Mutex
	p  *parser.Parser
	r  *render.Renderer
}

// New returns a checker that renders with the MySQL dialect.
func New(opts ...render.Option) *Checker {
	return &Checker{
		p: parser.New(),
		r: render.New(render.MySQL{}, opts...),
	}
}

// Check parses sql and reports whether it is exactly one SELECT statement.
func (c *Checker) Check(sql string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, err := c.p.ParseOneStmt(sql, "", "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if _, ok := node.(*ast.SelectStmt); !ok {
		return fmt.Errorf("%w: expected SELECT, got %T", ErrSyntax, node)
	}
	return nil
}

// CheckQuery renders q with the MySQL dialect and checks the result. The
// rendered SQL is returned even when the check fails.
func (c *Checker) CheckQuery(q *sqlkit.Query) (string, error) {
	sql, err := c.r.RenderQuery(q)
	if err != nil {
		return "", err
	}
	return sql, c.Check(sql)
}
