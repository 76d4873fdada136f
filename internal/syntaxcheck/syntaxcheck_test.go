package syntaxcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/sqlkit"
	"github.com/pthm/sqlkit/pkg/expr"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{"simple select", "SELECT 1", false},
		{"join", "SELECT * FROM `a` INNER JOIN `b` ON `a`.`id` = `b`.`a_id`", false},
		{"trailing garbage", "SELECT * FROM `a` WHERE", true},
		{"not a select", "DELETE FROM `a`", true},
		{"two statements", "SELECT 1; SELECT 2", true},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Check(tt.sql)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSyntax)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckQuery(t *testing.T) {
	emp := expr.TableAs("employee", "e")
	dept := expr.TableAs("department", "d")

	t.Run("flags that parse", func(t *testing.T) {
		q := sqlkit.New().
			Select(emp.Col("id")).
			AddFlag(sqlkit.AfterSelect, "SQL_NO_CACHE").
			From(emp).
			InnerJoin(dept).
			AddJoinFlagAt("USE INDEX (idx_dept)", sqlkit.JoinBeforeCondition).
			On(emp.Col("dept_id").Eq(dept.Col("id"))).
			Where(emp.Col("name").Ne(expr.Lit(`o'brien`))).
			OrderBy(emp.Col("id").Desc()).
			Limit(10).
			AddFlag(sqlkit.End, "FOR UPDATE")

		sql, err := New().CheckQuery(q)
		require.NoError(t, err, sql)
	})

	t.Run("misplaced flag", func(t *testing.T) {
		q := sqlkit.New().
			From(emp).
			AddFlag(sqlkit.AfterSelect, "FOR UPDATE")

		sql, err := New().CheckQuery(q)
		assert.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, sql, "SELECT FOR UPDATE *")
	})

	t.Run("usage error", func(t *testing.T) {
		_, err := New().CheckQuery(sqlkit.New().On(expr.Raw("1 = 1")))
		assert.True(t, sqlkit.IsNoActiveJoinErr(err))
	})
}
