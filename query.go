package sqlkit

import (
	"errors"

	"github.com/pthm/sqlkit/pkg/expr"
)

// Query accumulates the structure of one SELECT statement. Every mutator
// mutates the receiver and returns it, so a chain of calls is the same as
// issuing the calls one by one against a single *Query.
//
// Query is not safe for concurrent use.
type Query struct {
	sources SourceRegistry
	joins   JoinRegistry
	flags   QueryFlagRegistry

	projection []expr.Expr
	distinct   bool
	where      []expr.Predicate
	groupBy    []expr.Expr
	having     []expr.Predicate
	orderBy    []expr.Order
	limit      int
	offset     int

	frozen bool
	errs   []error
}

// New returns an empty query with no active join.
func New() *Query {
	return &Query{limit: -1, offset: -1}
}

// Err returns the usage errors recorded so far, joined, or nil.
func (q *Query) Err() error {
	return errors.Join(q.errs...)
}

// Frozen reports whether Metadata has frozen the query.
func (q *Query) Frozen() bool {
	return q.frozen
}

// rejectFrozen records a FrozenError for the public method op and reports
// whether the call must be dropped. Call it directly from the public method.
func (q *Query) rejectFrozen(op string) bool {
	if !q.frozen {
		return false
	}
	file, line := callSite(2)
	q.errs = append(q.errs, &FrozenError{Op: op, File: file, Line: line})
	return true
}

// noActiveJoin records a NoActiveJoinError. Call it directly from the public
// method.
func (q *Query) noActiveJoin(op string) {
	file, line := callSite(2)
	q.errs = append(q.errs, &NoActiveJoinError{Op: op, File: file, Line: line})
}

// =============================================================================
// Sources
// =============================================================================

// From appends relations to the FROM clause.
func (q *Query) From(relations ...expr.RelationalPath) *Query {
	if q.rejectFrozen("From") {
		return q
	}
	for _, r := range relations {
		q.sources.Add(RelationSource{Relation: r})
	}
	return q
}

// FromSubQuery appends an aliased subquery to the FROM clause.
func (q *Query) FromSubQuery(sq expr.SubQuery, alias expr.Path) *Query {
	if q.rejectFrozen("FromSubQuery") {
		return q
	}
	q.sources.Add(SubQuerySource{SubQuery: sq, Alias: alias})
	return q
}

// =============================================================================
// Joins
// =============================================================================

// AddJoin appends a join of the given kind and makes it the active join.
func (q *Query) AddJoin(kind JoinKind, target JoinTarget) *Query {
	if q.rejectFrozen("AddJoin") {
		return q
	}
	q.joins.Add(kind, target)
	return q
}

// Join adds a plain JOIN to relation.
func (q *Query) Join(relation expr.RelationalPath) *Query {
	if q.rejectFrozen("Join") {
		return q
	}
	q.joins.Add(JoinPlain, RelationTarget{Relation: relation})
	return q
}

// JoinFK adds a plain JOIN to relation through fk.
func (q *Query) JoinFK(fk expr.ForeignKey, relation expr.RelationalPath) *Query {
	if q.rejectFrozen("JoinFK") {
		return q
	}
	q.joins.Add(JoinPlain, ForeignKeyTarget{ForeignKey: fk, Relation: relation})
	return q
}

// JoinSubQuery adds a plain JOIN to an aliased subquery.
func (q *Query) JoinSubQuery(sq expr.SubQuery, alias expr.Path) *Query {
	if q.rejectFrozen("JoinSubQuery") {
		return q
	}
	q.joins.Add(JoinPlain, SubQueryTarget{SubQuery: sq, Alias: alias})
	return q
}

// InnerJoin adds an INNER JOIN to relation.
func (q *Query) InnerJoin(relation expr.RelationalPath) *Query {
	if q.rejectFrozen("InnerJoin") {
		return q
	}
	q.joins.Add(JoinInner, RelationTarget{Relation: relation})
	return q
}

// InnerJoinFK adds an INNER JOIN to relation through fk.
func (q *Query) InnerJoinFK(fk expr.ForeignKey, relation expr.RelationalPath) *Query {
	if q.rejectFrozen("InnerJoinFK") {
		return q
	}
	q.joins.Add(JoinInner, ForeignKeyTarget{ForeignKey: fk, Relation: relation})
	return q
}

// InnerJoinSubQuery adds an INNER JOIN to an aliased subquery.
func (q *Query) InnerJoinSubQuery(sq expr.SubQuery, alias expr.Path) *Query {
	if q.rejectFrozen("InnerJoinSubQuery") {
		return q
	}
	q.joins.Add(JoinInner, SubQueryTarget{SubQuery: sq, Alias: alias})
	return q
}

// LeftJoin adds a LEFT JOIN to relation.
func (q *Query) LeftJoin(relation expr.RelationalPath) *Query {
	if q.rejectFrozen("LeftJoin") {
		return q
	}
	q.joins.Add(JoinLeft, RelationTarget{Relation: relation})
	return q
}

// LeftJoinFK adds a LEFT JOIN to relation through fk.
func (q *Query) LeftJoinFK(fk expr.ForeignKey, relation expr.RelationalPath) *Query {
	if q.rejectFrozen("LeftJoinFK") {
		return q
	}
	q.joins.Add(JoinLeft, ForeignKeyTarget{ForeignKey: fk, Relation: relation})
	return q
}

// LeftJoinSubQuery adds a LEFT JOIN to an aliased subquery.
func (q *Query) LeftJoinSubQuery(sq expr.SubQuery, alias expr.Path) *Query {
	if q.rejectFrozen("LeftJoinSubQuery") {
		return q
	}
	q.joins.Add(JoinLeft, SubQueryTarget{SubQuery: sq, Alias: alias})
	return q
}

// RightJoin adds a RIGHT JOIN to relation.
func (q *Query) RightJoin(relation expr.RelationalPath) *Query {
	if q.rejectFrozen("RightJoin") {
		return q
	}
	q.joins.Add(JoinRight, RelationTarget{Relation: relation})
	return q
}

// RightJoinFK adds a RIGHT JOIN to relation through fk.
func (q *Query) RightJoinFK(fk expr.ForeignKey, relation expr.RelationalPath) *Query {
	if q.rejectFrozen("RightJoinFK") {
		return q
	}
	q.joins.Add(JoinRight, ForeignKeyTarget{ForeignKey: fk, Relation: relation})
	return q
}

// RightJoinSubQuery adds a RIGHT JOIN to an aliased subquery.
func (q *Query) RightJoinSubQuery(sq expr.SubQuery, alias expr.Path) *Query {
	if q.rejectFrozen("RightJoinSubQuery") {
		return q
	}
	q.joins.Add(JoinRight, SubQueryTarget{SubQuery: sq, Alias: alias})
	return q
}

// FullJoin adds a FULL JOIN to relation.
func (q *Query) FullJoin(relation expr.RelationalPath) *Query {
	if q.rejectFrozen("FullJoin") {
		return q
	}
	q.joins.Add(JoinFull, RelationTarget{Relation: relation})
	return q
}

// FullJoinFK adds a FULL JOIN to relation through fk.
func (q *Query) FullJoinFK(fk expr.ForeignKey, relation expr.RelationalPath) *Query {
	if q.rejectFrozen("FullJoinFK") {
		return q
	}
	q.joins.Add(JoinFull, ForeignKeyTarget{ForeignKey: fk, Relation: relation})
	return q
}

// FullJoinSubQuery adds a FULL JOIN to an aliased subquery.
func (q *Query) FullJoinSubQuery(sq expr.SubQuery, alias expr.Path) *Query {
	if q.rejectFrozen("FullJoinSubQuery") {
		return q
	}
	q.joins.Add(JoinFull, SubQueryTarget{SubQuery: sq, Alias: alias})
	return q
}

// On adds conditions to the most recently added join. Repeated calls
// accumulate; all conditions of one join are ANDed. Without a join the call
// records a NoActiveJoinError and changes nothing.
func (q *Query) On(conds ...expr.Predicate) *Query {
	if q.rejectFrozen("On") {
		return q
	}
	if err := q.joins.AddPredicate(conds...); err != nil {
		q.noActiveJoin("On")
	}
	return q
}

// AddJoinFlag adds text before the target of the most recently added join.
func (q *Query) AddJoinFlag(text string) *Query {
	if q.rejectFrozen("AddJoinFlag") {
		return q
	}
	if err := q.joins.AddFlag(text, JoinBeforeTarget); err != nil {
		q.noActiveJoin("AddJoinFlag")
	}
	return q
}

// AddJoinFlagAt adds text at pos within the most recently added join.
func (q *Query) AddJoinFlagAt(text string, pos JoinFlagPosition) *Query {
	if q.rejectFrozen("AddJoinFlag") {
		return q
	}
	if err := q.joins.AddFlag(text, pos); err != nil {
		q.noActiveJoin("AddJoinFlag")
	}
	return q
}

// =============================================================================
// Query flags
// =============================================================================

// AddFlag adds literal text at pos.
func (q *Query) AddFlag(pos QueryFlagPosition, text string) *Query {
	if q.rejectFrozen("AddFlag") {
		return q
	}
	q.flags.Add(LiteralFlag{At: pos, Text: text})
	return q
}

// AddFlagExpr adds an expression at pos.
func (q *Query) AddFlagExpr(pos QueryFlagPosition, e expr.Expr) *Query {
	if q.rejectFrozen("AddFlag") {
		return q
	}
	q.flags.Add(ExprFlag{At: pos, Expr: e})
	return q
}

// AddFlagPrefixed adds prefix followed by an expression at pos.
func (q *Query) AddFlagPrefixed(pos QueryFlagPosition, prefix string, e expr.Expr) *Query {
	if q.rejectFrozen("AddFlag") {
		return q
	}
	q.flags.Add(PrefixedExprFlag{At: pos, Prefix: prefix, Expr: e})
	return q
}

// =============================================================================
// Projection, filters and modifiers
// =============================================================================

// Select appends expressions to the projection.
func (q *Query) Select(exprs ...expr.Expr) *Query {
	if q.rejectFrozen("Select") {
		return q
	}
	for _, e := range exprs {
		if e != nil {
			q.projection = append(q.projection, e)
		}
	}
	return q
}

// Distinct enables DISTINCT in the SELECT.
func (q *Query) Distinct() *Query {
	if q.rejectFrozen("Distinct") {
		return q
	}
	q.distinct = true
	return q
}

// Where adds WHERE conditions. All conditions are ANDed.
func (q *Query) Where(conds ...expr.Predicate) *Query {
	if q.rejectFrozen("Where") {
		return q
	}
	q.where = appendPredicates(q.where, conds)
	return q
}

// GroupBy appends grouping expressions.
func (q *Query) GroupBy(exprs ...expr.Expr) *Query {
	if q.rejectFrozen("GroupBy") {
		return q
	}
	for _, e := range exprs {
		if e != nil {
			q.groupBy = append(q.groupBy, e)
		}
	}
	return q
}

// Having adds HAVING conditions. All conditions are ANDed.
func (q *Query) Having(conds ...expr.Predicate) *Query {
	if q.rejectFrozen("Having") {
		return q
	}
	q.having = appendPredicates(q.having, conds)
	return q
}

// OrderBy appends ORDER BY items. Items without an expression are skipped.
func (q *Query) OrderBy(orders ...expr.Order) *Query {
	if q.rejectFrozen("OrderBy") {
		return q
	}
	for _, o := range orders {
		if o.Expr != nil {
			q.orderBy = append(q.orderBy, o)
		}
	}
	return q
}

// Limit sets the LIMIT. A negative n clears it.
func (q *Query) Limit(n int) *Query {
	if q.rejectFrozen("Limit") {
		return q
	}
	q.limit = max(n, -1)
	return q
}

// Offset sets the OFFSET. A negative n clears it.
func (q *Query) Offset(n int) *Query {
	if q.rejectFrozen("Offset") {
		return q
	}
	q.offset = max(n, -1)
	return q
}

func appendPredicates(dst, conds []expr.Predicate) []expr.Predicate {
	for _, c := range conds {
		if c != nil {
			dst = append(dst, c)
		}
	}
	return dst
}

// =============================================================================
// Handoff
// =============================================================================

// Metadata freezes the query and returns a read-only snapshot for a
// renderer. It returns the recorded usage errors instead, leaving the query
// mutable, if any call in the chain failed.
func (q *Query) Metadata() (*Metadata, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	q.frozen = true
	return &Metadata{
		sources:    q.sources.All(),
		joins:      q.joins.All(),
		flags:      q.flags.clone(),
		projection: append([]expr.Expr(nil), q.projection...),
		distinct:   q.distinct,
		where:      append([]expr.Predicate(nil), q.where...),
		groupBy:    append([]expr.Expr(nil), q.groupBy...),
		having:     append([]expr.Predicate(nil), q.having...),
		orderBy:    append([]expr.Order(nil), q.orderBy...),
		limit:      q.limit,
		offset:     q.offset,
	}, nil
}
