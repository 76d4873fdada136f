// Package sqlkit accumulates the structure of a relational query through a
// fluent builder: sources, joins with their conditions and flags, and query
// flags anchored at named positions of the statement.
//
// # Module Structure
//
//   - github.com/pthm/sqlkit (core): Query builder, registries, position catalog, errors.
//   - github.com/pthm/sqlkit/pkg/expr: Expression metamodel stored by the builder.
//   - github.com/pthm/sqlkit/pkg/render: Reference renderer with ANSI, PostgreSQL and MySQL dialects.
//
// The core never renders SQL. It records what was asked for, in call order,
// and hands a frozen Metadata snapshot to a renderer.
//
// # Basic Usage
//
//	emp := expr.TableAs("employee", "e")
//	dept := expr.TableAs("department", "d")
//
//	q := sqlkit.New().
//	    From(emp).
//	    InnerJoin(dept).
//	    On(emp.Col("dept_id").Eq(dept.Col("id"))).
//	    AddJoinFlag("USE INDEX (idx1)").
//	    AddFlag(sqlkit.AfterFrom, "/* hint */")
//
//	md, err := q.Metadata()
//
// # Most Recent Join
//
// On and AddJoinFlag always target the join added by the latest join call.
// Calling either before any join is a usage error: the call changes nothing,
// a *NoActiveJoinError naming the call site is recorded, and Err and Metadata
// report it.
//
// # Freezing
//
// Metadata freezes the query. Later mutators record a *FrozenError and leave
// the query unchanged.
//
// # Concurrency
//
// A Query is a short-lived, single-owner value. It performs no locking;
// callers sharing one across goroutines must serialize access.
package sqlkit
