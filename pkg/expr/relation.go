package expr

// RelationalPath is a table-like join or from target with an optional alias.
type RelationalPath interface {
	Path
	// TableName returns the (possibly schema-qualified) table name.
	TableName() string
	// TableAlias returns the alias, or "" when the table is used unaliased.
	TableAlias() string
}

// Table is the standard RelationalPath: schema.name AS alias.
type Table struct {
	Schema string
	Name   string
	Alias  string
}

// T creates a table reference.
func T(name string) Table {
	return Table{Name: name}
}

// TableAs creates a table reference with an alias.
func TableAs(name, alias string) Table {
	return Table{Name: name, Alias: alias}
}

// Build writes the table reference with its alias.
func (t Table) Build(b *SQLBuilder) {
	if t.Schema != "" {
		b.WriteIdent(t.Schema)
		b.Write(".")
	}
	b.WriteIdent(t.Name)
	if t.Alias != "" {
		b.Write(" ")
		b.WriteIdent(t.Alias)
	}
}

// PathName returns the name columns are qualified with.
func (t Table) PathName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// TableName implements RelationalPath.
func (t Table) TableName() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// TableAlias implements RelationalPath.
func (t Table) TableAlias() string {
	return t.Alias
}

// Col returns a column of this table qualified by its path name.
func (t Table) Col(name string) Col {
	return Col{Table: t.PathName(), Column: name}
}

// ForeignKey declares a relationship from columns of Local to columns of the
// referenced table. The referenced table is supplied at join time.
type ForeignKey struct {
	Name       string
	Local      RelationalPath
	Columns    []string
	RefColumns []string
}

// On returns the implicit join condition between Local and target:
// local.c1 = target.r1 AND local.c2 = target.r2 ...
func (fk ForeignKey) On(target RelationalPath) Predicate {
	n := min(len(fk.Columns), len(fk.RefColumns))
	preds := make([]Predicate, 0, n)
	for i := 0; i < n; i++ {
		preds = append(preds, Eq{
			Left:  Col{Table: fk.Local.PathName(), Column: fk.Columns[i]},
			Right: Col{Table: target.PathName(), Column: fk.RefColumns[i]},
		})
	}
	return And(preds...)
}

// SubQuery is a statement-shaped expression usable as a from source or join
// target. Build writes the statement without surrounding parentheses.
type SubQuery interface {
	Expr
	subQuery()
}

// RawQuery is a SubQuery given as literal SQL.
type RawQuery string

// Build writes the statement as-is.
func (r RawQuery) Build(b *SQLBuilder) { b.Write(string(r)) }

func (RawQuery) subQuery() {}

// SubQueryFunc adapts a build function into a SubQuery. Renderers use it to
// embed nested queries.
type SubQueryFunc func(b *SQLBuilder)

// Build calls f.
func (f SubQueryFunc) Build(b *SQLBuilder) { f(b) }

func (SubQueryFunc) subQuery() {}
