package issues

import (
	"testing"

	"tastemap/internal/domain/statuses"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to statuses.ID }{
		{statuses.Pending, statuses.InProgress},
		{statuses.Pending, statuses.Resolved},
		{statuses.Pending, statuses.Rejected},
		{statuses.InProgress, statuses.Resolved},
		{statuses.InProgress, statuses.Rejected},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to statuses.ID }{
		{statuses.Pending, statuses.Pending},
		{statuses.InProgress, statuses.Pending},
		{statuses.InProgress, statuses.InProgress},
		{statuses.Resolved, statuses.Rejected},
		{statuses.Resolved, statuses.InProgress},
		{statuses.Rejected, statuses.Resolved},
		{statuses.Pending, statuses.Approved},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(statuses.Resolved))
	assert.True(t, IsTerminal(statuses.Rejected))
	assert.False(t, IsTerminal(statuses.InProgress))
	assert.False(t, IsTerminal(statuses.Pending))
}
