package sqlkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/sqlkit"
)

func TestQueryFlagPosition_RoundTrip(t *testing.T) {
	positions := sqlkit.QueryFlagPositions()
	require.Len(t, positions, 14)
	assert.Equal(t, sqlkit.Start, positions[0])
	assert.Equal(t, sqlkit.End, positions[len(positions)-1])

	for _, p := range positions {
		t.Run(p.String(), func(t *testing.T) {
			got, err := sqlkit.ParseQueryFlagPosition(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}

	_, err := sqlkit.ParseQueryFlagPosition("after_lunch")
	assert.Error(t, err)
	assert.Equal(t, "QueryFlagPosition(99)", sqlkit.QueryFlagPosition(99).String())
}

func TestJoinFlagPosition_Parse(t *testing.T) {
	tests := []struct {
		in   string
		want sqlkit.JoinFlagPosition
	}{
		{"", sqlkit.JoinBeforeTarget},
		{"before_target", sqlkit.JoinBeforeTarget},
		{"start", sqlkit.JoinStart},
		{"override", sqlkit.JoinOverride},
		{"before_condition", sqlkit.JoinBeforeCondition},
		{"end", sqlkit.JoinEnd},
	}
	for _, tt := range tests {
		got, err := sqlkit.ParseJoinFlagPosition(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := sqlkit.ParseJoinFlagPosition("middle")
	assert.Error(t, err)
	assert.False(t, sqlkit.JoinFlagPosition(-1).Valid())
}
