package statuses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]ID{
		"pending":           Pending,
		"RecheckRequested":  RecheckRequested,
		"recheck_requested": RecheckRequested,
		" In Progress ":     InProgress,
		"BANNED":            Banned,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("archived")
	assert.Error(t, err)
}

func TestAllIsOrderedAndComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 9)
	for i, s := range all {
		assert.Equal(t, ID(i+1), s.ID)
		assert.True(t, s.ID.Valid())
	}
	assert.Equal(t, "recheck_requested", RecheckRequested.String())
	assert.False(t, ID(42).Valid())
}
