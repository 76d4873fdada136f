package sqlkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pthm/sqlkit"
)

func TestErrorHelpers(t *testing.T) {
	t.Run("IsNoActiveJoinErr", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &sqlkit.NoActiveJoinError{Op: "On", File: "x.go", Line: 3})
		if !sqlkit.IsNoActiveJoinErr(err) {
			t.Error("IsNoActiveJoinErr should return true for a wrapped NoActiveJoinError")
		}
		if sqlkit.IsNoActiveJoinErr(errors.New("other error")) {
			t.Error("IsNoActiveJoinErr should return false for other errors")
		}
	})

	t.Run("IsFrozenErr", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &sqlkit.FrozenError{Op: "From", File: "x.go", Line: 3})
		if !sqlkit.IsFrozenErr(err) {
			t.Error("IsFrozenErr should return true for a wrapped FrozenError")
		}
		if sqlkit.IsFrozenErr(sqlkit.ErrNoActiveJoin) {
			t.Error("IsFrozenErr should return false for ErrNoActiveJoin")
		}
	})
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&sqlkit.NoActiveJoinError{Op: "On", File: "q.go", Line: 12}, "sqlkit: On called at q.go:12 with no active join"},
		{&sqlkit.FrozenError{Op: "AddFlag", File: "q.go", Line: 4}, "sqlkit: AddFlag called at q.go:4 on a frozen query"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
