package sqlkit

import "github.com/pthm/sqlkit/pkg/expr"

// QueryFlag is a statement-level annotation: LiteralFlag, ExprFlag or
// PrefixedExprFlag.
type QueryFlag interface {
	Position() QueryFlagPosition
	queryFlag()
}

// LiteralFlag inserts Text verbatim.
type LiteralFlag struct {
	At   QueryFlagPosition
	Text string
}

// ExprFlag inserts a rendered expression.
type ExprFlag struct {
	At   QueryFlagPosition
	Expr expr.Expr
}

// PrefixedExprFlag inserts Prefix followed by a rendered expression,
// e.g. "LIMIT " + param.
type PrefixedExprFlag struct {
	At     QueryFlagPosition
	Prefix string
	Expr   expr.Expr
}

func (f LiteralFlag) Position() QueryFlagPosition      { return f.At }
func (f ExprFlag) Position() QueryFlagPosition         { return f.At }
func (f PrefixedExprFlag) Position() QueryFlagPosition { return f.At }

func (LiteralFlag) queryFlag()      {}
func (ExprFlag) queryFlag()         {}
func (PrefixedExprFlag) queryFlag() {}

// QueryFlagRegistry stores flags keyed by position. Flags sharing a position
// keep their insertion order; the flat insertion order across positions is
// kept as well.
type QueryFlagRegistry struct {
	byPos map[QueryFlagPosition][]QueryFlag
	all   []QueryFlag
}

// Add appends f under its position.
func (r *QueryFlagRegistry) Add(f QueryFlag) {
	if r.byPos == nil {
		r.byPos = make(map[QueryFlagPosition][]QueryFlag)
	}
	pos := f.Position()
	r.byPos[pos] = append(r.byPos[pos], f)
	r.all = append(r.all, f)
}

// At returns the flags at pos in insertion order.
func (r *QueryFlagRegistry) At(pos QueryFlagPosition) []QueryFlag {
	flags := r.byPos[pos]
	if len(flags) == 0 {
		return nil
	}
	return append([]QueryFlag(nil), flags...)
}

// Has reports whether any flag is stored at pos.
func (r *QueryFlagRegistry) Has(pos QueryFlagPosition) bool {
	return len(r.byPos[pos]) > 0
}

// Positions returns the populated positions in catalog order. Positions
// outside the catalog sort after End.
func (r *QueryFlagRegistry) Positions() []QueryFlagPosition {
	var out []QueryFlagPosition
	for _, p := range QueryFlagPositions() {
		if r.Has(p) {
			out = append(out, p)
		}
	}
	seen := make(map[QueryFlagPosition]bool)
	for _, f := range r.all {
		p := f.Position()
		if !p.Valid() && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// All returns every flag in insertion order.
func (r *QueryFlagRegistry) All() []QueryFlag {
	if len(r.all) == 0 {
		return nil
	}
	return append([]QueryFlag(nil), r.all...)
}

// Len returns the number of flags.
func (r *QueryFlagRegistry) Len() int {
	return len(r.all)
}

func (r *QueryFlagRegistry) clone() QueryFlagRegistry {
	var out QueryFlagRegistry
	for _, f := range r.all {
		out.Add(f)
	}
	return out
}
