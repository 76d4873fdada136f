// Package querydoc loads YAML query documents and replays them onto a
// sqlkit.Query.
//
// A document describes one SELECT statement:
//
//	select: [e.name, {raw: "count(*)", as: n}]
//	from:
//	  - {table: employee, alias: e}
//	joins:
//	  - kind: left
//	    table: department
//	    alias: d
//	    foreign_key: {table: employee, alias: e, columns: [dept_id], ref_columns: [id]}
//	    on: [d.active = TRUE]
//	    flags:
//	      - {text: "/* j */", position: before_condition}
//	flags:
//	  - {position: end, text: FOR UPDATE}
//	where: [{left: e.name, op: "<>", right: {literal: bob}}]
//	order_by: [{expr: n, desc: true}]
//	limit: 5
//
// Plain strings in expression position are column references ("e.name",
// "name") or "*"; anything else is written verbatim. Plain strings in
// predicate position are always written verbatim.
package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for documents that name an unknown join
// kind or flag position, or leave a required field empty.
var ErrInvalidDocument = errors.New("querydoc: invalid document")

// Document describes one query.
type Document struct {
	Select   []Expr      `yaml:"select,omitempty"`
	Distinct bool        `yaml:"distinct,omitempty"`
	From     []Source    `yaml:"from,omitempty"`
	Joins    []Join      `yaml:"joins,omitempty"`
	Flags    []Flag      `yaml:"flags,omitempty"`
	Where    []Predicate `yaml:"where,omitempty"`
	GroupBy  []Expr      `yaml:"group_by,omitempty"`
	Having   []Predicate `yaml:"having,omitempty"`
	OrderBy  []Order     `yaml:"order_by,omitempty"`
	Limit    *int        `yaml:"limit,omitempty"`
	Offset   *int        `yaml:"offset,omitempty"`
}

// Relation names a table, optionally schema-qualified and aliased.
type Relation struct {
	Schema string `yaml:"schema,omitempty"`
	Table  string `yaml:"table,omitempty"`
	Alias  string `yaml:"alias,omitempty"`
}

// Source is one FROM entry: a relation, a nested document, or raw SQL.
// Subquery and SQL sources require an alias.
type Source struct {
	Relation `yaml:",inline"`
	SubQuery *Document `yaml:"subquery,omitempty"`
	SQL      string    `yaml:"sql,omitempty"`
}

// ForeignKey describes the local side of a foreign key join.
type ForeignKey struct {
	Relation   `yaml:",inline"`
	Name       string   `yaml:"name,omitempty"`
	Columns    []string `yaml:"columns"`
	RefColumns []string `yaml:"ref_columns"`
}

// Join is one join entry. The target is the relation, or the subquery/SQL
// when set. Flags are added before the conditions.
type Join struct {
	Kind       string `yaml:"kind,omitempty"`
	Source     `yaml:",inline"`
	ForeignKey *ForeignKey `yaml:"foreign_key,omitempty"`
	On         []Predicate `yaml:"on,omitempty"`
	Flags      []JoinFlag  `yaml:"flags,omitempty"`
}

// JoinFlag is text placed within a join. Position defaults to
// before_target.
type JoinFlag struct {
	Text     string `yaml:"text"`
	Position string `yaml:"position,omitempty"`
}

// Flag is a query-level flag: literal text, an expression, or a prefix
// followed by an expression.
type Flag struct {
	Position string `yaml:"position"`
	Text     string `yaml:"text,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Expr     *Expr  `yaml:"expr,omitempty"`
}

// Expr is an expression. It unmarshals from a plain string or an object
// with exactly one of column, raw, literal or number.
type Expr struct {
	Column  string  `yaml:"column,omitempty"`
	Raw     string  `yaml:"raw,omitempty"`
	Literal *string `yaml:"literal,omitempty"`
	Number  *int64  `yaml:"number,omitempty"`
	As      string  `yaml:"as,omitempty"`
}

type exprFields Expr

func (e *Expr) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*e = Expr{Column: n.Value}
		return nil
	}
	var f exprFields
	if err := decodeStrict(n, &f); err != nil {
		return err
	}
	*e = Expr(f)
	return nil
}

// Predicate is a condition. It unmarshals from a plain string (raw SQL) or
// an object with either raw or left/op/right.
type Predicate struct {
	Raw   string `yaml:"raw,omitempty"`
	Left  *Expr  `yaml:"left,omitempty"`
	Op    string `yaml:"op,omitempty"`
	Right *Expr  `yaml:"right,omitempty"`
}

type predicateFields Predicate

func (p *Predicate) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*p = Predicate{Raw: n.Value}
		return nil
	}
	var f predicateFields
	if err := decodeStrict(n, &f); err != nil {
		return err
	}
	*p = Predicate(f)
	return nil
}

// Order is an ORDER BY item. It unmarshals from a plain string (ascending)
// or an object with expr and desc.
type Order struct {
	Expr Expr `yaml:"expr"`
	Desc bool `yaml:"desc,omitempty"`
}

type orderFields Order

func (o *Order) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*o = Order{Expr: Expr{Column: n.Value}}
		return nil
	}
	var f orderFields
	if err := decodeStrict(n, &f); err != nil {
		return err
	}
	*o = Order(f)
	return nil
}

// decodeStrict decodes n into v, rejecting unknown fields. Node.Decode
// does not carry the outer decoder's KnownFields setting.
func decodeStrict(n *yaml.Node, v any) error {
	b, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	return newDecoder(bytes.NewReader(b)).Decode(v)
}

func newDecoder(r io.Reader) *yaml.Decoder {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec
}

// Parse decodes a YAML (or JSON) document. Scalars follow YAML 1.2, so keys
// such as on and values such as y or n stay strings.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := newDecoder(bytes.NewReader(data)).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing query document: %w", err)
	}
	return &doc, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
