package params

import (
	"net/url"
	"testing"

	"tastemap/internal/domain/statuses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query            string
		limit, page, off int
	}{
		{"", DefaultLimit, 1, 0},
		{"page=3&limit=10", 10, 3, 20},
		{"limit=500", MaxLimit, 1, 0},
		{"limit=-1&page=0", DefaultLimit, 1, 0},
		{"limit=abc&page=xyz", DefaultLimit, 1, 0},
	}
	for _, tc := range cases {
		q, _ := url.ParseQuery(tc.query)
		p := ParsePagination(q)
		assert.Equal(t, tc.limit, p.Limit, tc.query)
		assert.Equal(t, tc.page, p.Page, tc.query)
		assert.Equal(t, tc.off, p.Offset, tc.query)
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 10, Page: 2}
	p.ComputeMeta(25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	p = Pagination{Limit: 10, Page: 3}
	p.ComputeMeta(25)
	assert.False(t, p.HasNext)
}

func TestNewPageNeverNil(t *testing.T) {
	page := NewPage[int](nil, Pagination{Limit: 5, Page: 1}, 0)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestOptionalFilters(t *testing.T) {
	q, _ := url.ParseQuery("cuisine=4&min_rating=3.5&bad=-2&status=recheck_requested")

	v, err := OptionalInt64(q, "cuisine")
	require.NoError(t, err)
	assert.Equal(t, int64(4), *v)

	v, err = OptionalInt64(q, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = OptionalInt64(q, "bad")
	assert.Error(t, err)

	f, err := OptionalFloat(q, "min_rating", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, *f)

	_, err = OptionalFloat(q, "min_rating", 4, 5)
	assert.Error(t, err)

	s, err := OptionalStatus(q, statuses.ReviewStatuses()...)
	require.NoError(t, err)
	assert.Equal(t, statuses.RecheckRequested, *s)

	_, err = OptionalStatus(q, statuses.Active)
	assert.Error(t, err)

	q, _ = url.ParseQuery("status=5")
	s, err = OptionalStatus(q, statuses.Approved)
	require.NoError(t, err)
	assert.Equal(t, statuses.Approved, *s)
}
