package render

import (
	"fmt"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/pkg/expr"
)

// SubQuery freezes q and returns it as a subquery for another query's FROM
// clause, join target or EXISTS predicate. The nested statement is rendered
// with the dialect of the enclosing renderer.
func SubQuery(q *sqlkit.Query) (expr.SubQuery, error) {
	md, err := q.Metadata()
	if err != nil {
		return nil, fmt.Errorf("subquery: %w", err)
	}
	if err := validate(md); err != nil {
		return nil, fmt.Errorf("subquery: %w", err)
	}
	return expr.SubQueryFunc(func(b *expr.SQLBuilder) {
		d, ok := b.Quoter().(Dialect)
		if !ok {
			d = ANSI{}
		}
		b.Write((&Renderer{Dialect: d}).render(md))
	}), nil
}
