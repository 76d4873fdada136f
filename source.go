package sqlkit

import "github.com/pthm/sqlkit/pkg/expr"

// Source is a FROM clause entry: RelationSource or SubQuerySource.
type Source interface {
	source()
}

// RelationSource is a named relation in the FROM clause.
type RelationSource struct {
	Relation expr.RelationalPath
}

// SubQuerySource is an aliased subquery in the FROM clause.
type SubQuerySource struct {
	SubQuery expr.SubQuery
	Alias    expr.Path
}

func (RelationSource) source() {}
func (SubQuerySource) source() {}

// SourceRegistry is the ordered list of FROM sources. Duplicates are kept.
type SourceRegistry struct {
	sources []Source
}

// Add appends s.
func (r *SourceRegistry) Add(s Source) {
	r.sources = append(r.sources, s)
}

// Len returns the number of sources.
func (r *SourceRegistry) Len() int {
	return len(r.sources)
}

// All returns the sources in insertion order. The slice is a copy.
func (r *SourceRegistry) All() []Source {
	if len(r.sources) == 0 {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}
