package expr

// Comparison operators

func buildBinary(b *SQLBuilder, left Expr, op string, right Expr) {
	left.Build(b)
	b.Write(op)
	right.Build(b)
}

// Eq represents an equality comparison (=).
type Eq struct {
	Left  Expr
	Right Expr
}

func (e Eq) Build(b *SQLBuilder) { buildBinary(b, e.Left, " = ", e.Right) }
func (Eq) predicate()            {}

// Ne represents a not-equal comparison (<>).
type Ne struct {
	Left  Expr
	Right Expr
}

func (n Ne) Build(b *SQLBuilder) { buildBinary(b, n.Left, " <> ", n.Right) }
func (Ne) predicate()            {}

// Lt represents a less-than comparison (<).
type Lt struct {
	Left  Expr
	Right Expr
}

func (l Lt) Build(b *SQLBuilder) { buildBinary(b, l.Left, " < ", l.Right) }
func (Lt) predicate()            {}

// Gt represents a greater-than comparison (>).
type Gt struct {
	Left  Expr
	Right Expr
}

func (g Gt) Build(b *SQLBuilder) { buildBinary(b, g.Left, " > ", g.Right) }
func (Gt) predicate()            {}

// Lte represents a less-than-or-equal comparison (<=).
type Lte struct {
	Left  Expr
	Right Expr
}

func (l Lte) Build(b *SQLBuilder) { buildBinary(b, l.Left, " <= ", l.Right) }
func (Lte) predicate()            {}

// Gte represents a greater-than-or-equal comparison (>=).
type Gte struct {
	Left  Expr
	Right Expr
}

func (g Gte) Build(b *SQLBuilder) { buildBinary(b, g.Left, " >= ", g.Right) }
func (Gte) predicate()            {}

// In represents an IN clause over string values.
type In struct {
	Expr   Expr
	Values []string
}

func (i In) Build(b *SQLBuilder) {
	if len(i.Values) == 0 {
		b.Write("FALSE")
		return
	}
	i.Expr.Build(b)
	b.Write(" IN (")
	for n, v := range i.Values {
		if n > 0 {
			b.Write(", ")
		}
		b.WriteLiteral(v)
	}
	b.Write(")")
}

func (In) predicate() {}

// IsNull represents expr IS NULL.
type IsNull struct {
	Expr Expr
}

func (n IsNull) Build(b *SQLBuilder) {
	n.Expr.Build(b)
	b.Write(" IS NULL")
}

func (IsNull) predicate() {}

// Exists represents EXISTS (subquery).
type Exists struct {
	Query SubQuery
}

func (e Exists) Build(b *SQLBuilder) {
	b.Write("EXISTS (")
	e.Query.Build(b)
	b.Write(")")
}

func (Exists) predicate() {}

// Logical operators

// filterNilPredicates removes nil predicates from the slice.
func filterNilPredicates(preds []Predicate) []Predicate {
	filtered := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// buildJoined renders predicates joined by sep, wrapped in parentheses if more than one.
func buildJoined(b *SQLBuilder, preds []Predicate, sep, emptyVal string) {
	switch len(preds) {
	case 0:
		b.Write(emptyVal)
	case 1:
		preds[0].Build(b)
	default:
		b.Write("(")
		for i, p := range preds {
			if i > 0 {
				b.Write(sep)
			}
			p.Build(b)
		}
		b.Write(")")
	}
}

// AndExpr represents a logical AND of multiple predicates.
type AndExpr struct {
	Preds []Predicate
}

func (a AndExpr) Build(b *SQLBuilder) { buildJoined(b, a.Preds, " AND ", "TRUE") }
func (AndExpr) predicate()            {}

// And creates an AND predicate, skipping nil inputs.
func And(preds ...Predicate) AndExpr {
	return AndExpr{Preds: filterNilPredicates(preds)}
}

// OrExpr represents a logical OR of multiple predicates.
type OrExpr struct {
	Preds []Predicate
}

func (o OrExpr) Build(b *SQLBuilder) { buildJoined(b, o.Preds, " OR ", "FALSE") }
func (OrExpr) predicate()            {}

// Or creates an OR predicate, skipping nil inputs.
func Or(preds ...Predicate) OrExpr {
	return OrExpr{Preds: filterNilPredicates(preds)}
}

// NotExpr represents NOT (predicate).
type NotExpr struct {
	Pred Predicate
}

func (n NotExpr) Build(b *SQLBuilder) {
	b.Write("NOT (")
	n.Pred.Build(b)
	b.Write(")")
}

func (NotExpr) predicate() {}

// Not negates p.
func Not(p Predicate) NotExpr {
	return NotExpr{Pred: p}
}
