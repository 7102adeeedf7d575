package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c, err := New("pepper")
	require.NoError(t, err)

	for _, id := range []int64{1, 42, 987654321} {
		s, err := c.Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(s), minLength)

		got, err := c.Decode(s)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestSaltChangesSlugs(t *testing.T) {
	a, _ := New("one")
	b, _ := New("two")

	sa, _ := a.Encode(7)
	sb, _ := b.Encode(7)
	assert.NotEqual(t, sa, sb)

	_, err := b.Decode(sa)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeGarbage(t *testing.T) {
	c, _ := New("pepper")
	for _, s := range []string{"", "!!!", "0"} {
		_, err := c.Decode(s)
		assert.ErrorIs(t, err, ErrInvalid, s)
	}
}
