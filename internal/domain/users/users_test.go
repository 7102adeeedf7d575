package users

import (
	"testing"
	"time"

	"tastemap/internal/domain/statuses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeFor(t *testing.T) {
	cases := []struct {
		count int
		want  Badge
	}{
		{0, BadgeNone},
		{1, BadgeBronze},
		{10, BadgeBronze},
		{11, BadgeSilver},
		{25, BadgeSilver},
		{26, BadgeGold},
		{50, BadgeGold},
		{51, BadgeDiamond},
		{400, BadgeDiamond},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BadgeFor(tc.count), "count=%d", tc.count)
	}
}

func TestAccountStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)
	earlier := now.Add(-time.Minute)

	active := &User{StatusID: statuses.Active}
	assert.True(t, active.CanWrite(now))

	suspended := &User{StatusID: statuses.Suspended, SuspendedUntil: &later}
	assert.Equal(t, statuses.Suspended, suspended.AccountStatus(now))
	assert.False(t, suspended.CanWrite(now))

	expired := &User{StatusID: statuses.Suspended, SuspendedUntil: &earlier}
	assert.Equal(t, statuses.Active, expired.AccountStatus(now))
	assert.True(t, expired.CanWrite(now))

	banned := &User{StatusID: statuses.Banned}
	assert.True(t, banned.IsBanned())
	assert.False(t, banned.CanWrite(now))
}

func TestSuspensionEnd(t *testing.T) {
	now := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)

	end, err := SuspensionEnd(now, 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), end)

	for _, days := range []int{0, -3, MaxSuspensionDays + 1} {
		_, err := SuspensionEnd(now, days)
		assert.ErrorIs(t, err, ErrInvalidSuspension, "days=%d", days)
	}
}

func TestPassword(t *testing.T) {
	var p password
	require.NoError(t, p.Set("correct horse"))
	assert.NoError(t, p.Compare("correct horse"))
	assert.Error(t, p.Compare("battery staple"))
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("abc")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("abc"))
	assert.NotEqual(t, a, HashToken("abd"))
}
