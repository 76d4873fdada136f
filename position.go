package sqlkit

import "fmt"

// QueryFlagPosition anchors a query-level flag relative to the clauses of the
// rendered statement. Values are declared in rendering order.
type QueryFlagPosition int

const (
	// Start is before the whole statement.
	Start QueryFlagPosition = iota
	// StartOverride replaces the SELECT keyword.
	StartOverride
	// AfterSelect is after the SELECT keyword, before the projection.
	AfterSelect
	// AfterProjection is after the projection list.
	AfterProjection
	// AfterFrom is after the FROM sources and all joins.
	AfterFrom
	BeforeFilters
	AfterFilters
	BeforeGroupBy
	AfterGroupBy
	BeforeHaving
	AfterHaving
	BeforeOrder
	AfterOrder
	// End is after the whole statement.
	End
)

var queryFlagPositionNames = [...]string{
	Start:           "start",
	StartOverride:   "start_override",
	AfterSelect:     "after_select",
	AfterProjection: "after_projection",
	AfterFrom:       "after_from",
	BeforeFilters:   "before_filters",
	AfterFilters:    "after_filters",
	BeforeGroupBy:   "before_group_by",
	AfterGroupBy:    "after_group_by",
	BeforeHaving:    "before_having",
	AfterHaving:     "after_having",
	BeforeOrder:     "before_order",
	AfterOrder:      "after_order",
	End:             "end",
}

// QueryFlagPositions lists every query-level position in rendering order.
func QueryFlagPositions() []QueryFlagPosition {
	out := make([]QueryFlagPosition, len(queryFlagPositionNames))
	for i := range out {
		out[i] = QueryFlagPosition(i)
	}
	return out
}

func (p QueryFlagPosition) String() string {
	if p.Valid() {
		return queryFlagPositionNames[p]
	}
	return fmt.Sprintf("QueryFlagPosition(%d)", int(p))
}

// Valid reports whether p is a catalog entry.
func (p QueryFlagPosition) Valid() bool {
	return p >= Start && p <= End
}

// ParseQueryFlagPosition parses the snake_case name of a query-level position.
func ParseQueryFlagPosition(s string) (QueryFlagPosition, error) {
	for i, name := range queryFlagPositionNames {
		if name == s {
			return QueryFlagPosition(i), nil
		}
	}
	return 0, fmt.Errorf("unknown query flag position %q", s)
}

// JoinFlagPosition anchors a join flag relative to a single join.
type JoinFlagPosition int

const (
	// JoinBeforeTarget is between the join keyword and the target. It is the
	// zero value and the default for AddJoinFlag.
	JoinBeforeTarget JoinFlagPosition = iota
	// JoinStart is before the join keyword.
	JoinStart
	// JoinOverride replaces the join keyword.
	JoinOverride
	// JoinBeforeCondition is between the target and ON.
	JoinBeforeCondition
	// JoinEnd is after the join condition.
	JoinEnd
)

var joinFlagPositionNames = [...]string{
	JoinBeforeTarget:    "before_target",
	JoinStart:           "start",
	JoinOverride:        "override",
	JoinBeforeCondition: "before_condition",
	JoinEnd:             "end",
}

func (p JoinFlagPosition) String() string {
	if p.Valid() {
		return joinFlagPositionNames[p]
	}
	return fmt.Sprintf("JoinFlagPosition(%d)", int(p))
}

// Valid reports whether p is a catalog entry.
func (p JoinFlagPosition) Valid() bool {
	return p >= JoinBeforeTarget && p <= JoinEnd
}

// ParseJoinFlagPosition parses the snake_case name of a join-level position.
// The empty string yields JoinBeforeTarget.
func ParseJoinFlagPosition(s string) (JoinFlagPosition, error) {
	if s == "" {
		return JoinBeforeTarget, nil
	}
	for i, name := range joinFlagPositionNames {
		if name == s {
			return JoinFlagPosition(i), nil
		}
	}
	return 0, fmt.Errorf("unknown join flag position %q", s)
}
