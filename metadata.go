package sqlkit

import "github.com/pthm/sqlkit/pkg/expr"

// Metadata is the frozen structure of a Query as handed to a renderer.
// Accessors return copies; nothing reachable from Metadata aliases the
// builder's state.
type Metadata struct {
	sources []Source
	joins   []JoinRecord
	flags   QueryFlagRegistry

	projection []expr.Expr
	distinct   bool
	where      []expr.Predicate
	groupBy    []expr.Expr
	having     []expr.Predicate
	orderBy    []expr.Order
	limit      int
	offset     int
}

// Sources returns the FROM sources in insertion order.
func (m *Metadata) Sources() []Source {
	return append([]Source(nil), m.sources...)
}

// Joins returns the joins in insertion order, each with its flags and
// predicates in insertion order.
func (m *Metadata) Joins() []JoinRecord {
	out := make([]JoinRecord, len(m.joins))
	for i, j := range m.joins {
		out[i] = j.clone()
	}
	return out
}

// FlagsAt returns the query flags at pos in insertion order.
func (m *Metadata) FlagsAt(pos QueryFlagPosition) []QueryFlag {
	return m.flags.At(pos)
}

// FlagPositions returns the populated flag positions in catalog order.
func (m *Metadata) FlagPositions() []QueryFlagPosition {
	return m.flags.Positions()
}

// Flags returns every query flag in insertion order.
func (m *Metadata) Flags() []QueryFlag {
	return m.flags.All()
}

// Projection returns the SELECT list. Empty means *.
func (m *Metadata) Projection() []expr.Expr {
	return append([]expr.Expr(nil), m.projection...)
}

// Distinct reports whether DISTINCT was requested.
func (m *Metadata) Distinct() bool {
	return m.distinct
}

// Where returns the ANDed WHERE conditions.
func (m *Metadata) Where() []expr.Predicate {
	return append([]expr.Predicate(nil), m.where...)
}

// GroupBy returns the grouping expressions.
func (m *Metadata) GroupBy() []expr.Expr {
	return append([]expr.Expr(nil), m.groupBy...)
}

// Having returns the ANDed HAVING conditions.
func (m *Metadata) Having() []expr.Predicate {
	return append([]expr.Predicate(nil), m.having...)
}

// OrderBy returns the ORDER BY items.
func (m *Metadata) OrderBy() []expr.Order {
	return append([]expr.Order(nil), m.orderBy...)
}

// Limit returns the LIMIT and whether one is set.
func (m *Metadata) Limit() (int, bool) {
	return m.limit, m.limit >= 0
}

// Offset returns the OFFSET and whether one is set.
func (m *Metadata) Offset() (int, bool) {
	return m.offset, m.offset >= 0
}
