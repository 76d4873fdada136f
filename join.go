package sqlkit

import (
	"fmt"

	"github.com/pthm/sqlkit/pkg/expr"
)

// JoinKind selects the join keyword.
type JoinKind int

const (
	JoinPlain JoinKind = iota
	JoinInner
	JoinLeft
	JoinRight
	JoinFull
)

func (k JoinKind) String() string {
	switch k {
	case JoinPlain:
		return "JOIN"
	case JoinInner:
		return "INNER JOIN"
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinFull:
		return "FULL JOIN"
	default:
		return fmt.Sprintf("JoinKind(%d)", int(k))
	}
}

// ParseJoinKind parses plain, inner, left, right or full.
func ParseJoinKind(s string) (JoinKind, error) {
	switch s {
	case "", "plain", "join":
		return JoinPlain, nil
	case "inner":
		return JoinInner, nil
	case "left":
		return JoinLeft, nil
	case "right":
		return JoinRight, nil
	case "full":
		return JoinFull, nil
	}
	return 0, fmt.Errorf("unknown join kind %q", s)
}

// JoinTarget is what a join attaches: RelationTarget, ForeignKeyTarget or
// SubQueryTarget.
type JoinTarget interface {
	joinTarget()
}

// RelationTarget joins a relational path directly.
type RelationTarget struct {
	Relation expr.RelationalPath
}

// ForeignKeyTarget joins Relation through a declared foreign key. The key
// supplies the implicit join condition.
type ForeignKeyTarget struct {
	ForeignKey expr.ForeignKey
	Relation   expr.RelationalPath
}

// SubQueryTarget joins an aliased subquery.
type SubQueryTarget struct {
	SubQuery expr.SubQuery
	Alias    expr.Path
}

func (RelationTarget) joinTarget()   {}
func (ForeignKeyTarget) joinTarget() {}
func (SubQueryTarget) joinTarget()   {}

// JoinFlag is literal text inserted at a position within one join.
type JoinFlag struct {
	Position JoinFlagPosition
	Text     string
}

// JoinRecord is one join with its flags and ON predicates. Predicates are
// conjoined.
type JoinRecord struct {
	Kind       JoinKind
	Target     JoinTarget
	Flags      []JoinFlag
	Predicates []expr.Predicate
}

func (r JoinRecord) clone() JoinRecord {
	out := r
	if r.Flags != nil {
		out.Flags = append([]JoinFlag(nil), r.Flags...)
	}
	if r.Predicates != nil {
		out.Predicates = append([]expr.Predicate(nil), r.Predicates...)
	}
	return out
}

// JoinHandle identifies a record in a JoinRegistry.
type JoinHandle int

// JoinRegistry is the ordered list of joins plus the pointer to the most
// recently added one. Only Add moves the pointer.
type JoinRegistry struct {
	joins   []JoinRecord
	current JoinHandle
	active  bool
}

// Add appends a new empty record and makes it current.
func (r *JoinRegistry) Add(kind JoinKind, target JoinTarget) JoinHandle {
	r.joins = append(r.joins, JoinRecord{Kind: kind, Target: target})
	r.current = JoinHandle(len(r.joins) - 1)
	r.active = true
	return r.current
}

// Current returns the handle of the most recently added join.
func (r *JoinRegistry) Current() (JoinHandle, bool) {
	return r.current, r.active
}

// AddPredicate appends conds to the current join. Nil conditions are skipped.
// It returns ErrNoActiveJoin, without mutating anything, when no join exists.
func (r *JoinRegistry) AddPredicate(conds ...expr.Predicate) error {
	if !r.active {
		return ErrNoActiveJoin
	}
	rec := &r.joins[r.current]
	for _, c := range conds {
		if c != nil {
			rec.Predicates = append(rec.Predicates, c)
		}
	}
	return nil
}

// AddFlag appends a flag to the current join. It returns ErrNoActiveJoin,
// without mutating anything, when no join exists.
func (r *JoinRegistry) AddFlag(text string, pos JoinFlagPosition) error {
	if !r.active {
		return ErrNoActiveJoin
	}
	rec := &r.joins[r.current]
	rec.Flags = append(rec.Flags, JoinFlag{Position: pos, Text: text})
	return nil
}

// Len returns the number of joins.
func (r *JoinRegistry) Len() int {
	return len(r.joins)
}

// Get returns a copy of the record identified by h.
func (r *JoinRegistry) Get(h JoinHandle) (JoinRecord, bool) {
	if h < 0 || int(h) >= len(r.joins) {
		return JoinRecord{}, false
	}
	return r.joins[h].clone(), true
}

// All returns deep copies of the records in insertion order.
func (r *JoinRegistry) All() []JoinRecord {
	if len(r.joins) == 0 {
		return nil
	}
	out := make([]JoinRecord, len(r.joins))
	for i, j := range r.joins {
		out[i] = j.clone()
	}
	return out
}
