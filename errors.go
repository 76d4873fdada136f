package sqlkit

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Sentinel errors for builder misuse. Fluent methods cannot return errors, so
// the query records them as they happen (see Query.Err) and refuses to hand
// its metadata to a renderer while any are present.
var (
	// ErrNoActiveJoin is returned when On or AddJoinFlag is called before any
	// join has been added to the query.
	ErrNoActiveJoin = errors.New("sqlkit: no active join")

	// ErrFrozen is returned when a mutator is called after Metadata has
	// handed the query to a renderer.
	ErrFrozen = errors.New("sqlkit: query is frozen")
)

// IsNoActiveJoinErr returns true if err is or wraps ErrNoActiveJoin.
func IsNoActiveJoinErr(err error) bool {
	return errors.Is(err, ErrNoActiveJoin)
}

// IsFrozenErr returns true if err is or wraps ErrFrozen.
func IsFrozenErr(err error) bool {
	return errors.Is(err, ErrFrozen)
}

// NoActiveJoinError records the fluent call that targeted a missing join.
type NoActiveJoinError struct {
	Op   string // "On" or "AddJoinFlag"
	File string
	Line int
}

func (e *NoActiveJoinError) Error() string {
	return fmt.Sprintf("sqlkit: %s called at %s:%d with no active join", e.Op, e.File, e.Line)
}

func (e *NoActiveJoinError) Unwrap() error {
	return ErrNoActiveJoin
}

// FrozenError records a mutation attempted after the query was frozen.
type FrozenError struct {
	Op   string
	File string
	Line int
}

func (e *FrozenError) Error() string {
	return fmt.Sprintf("sqlkit: %s called at %s:%d on a frozen query", e.Op, e.File, e.Line)
}

func (e *FrozenError) Unwrap() error {
	return ErrFrozen
}

// callSite reports the file and line skip frames above its caller.
func callSite(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown", 0
	}
	return filepath.Base(file), line
}
