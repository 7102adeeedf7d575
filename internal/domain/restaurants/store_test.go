package restaurants

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQueryNoFilters(t *testing.T) {
	countQ, listQ, args := buildListQuery(ListFilter{Limit: 20})

	assert.Equal(t, "SELECT COUNT(*) FROM restaurants r", countQ)
	assert.Empty(t, args)
	assert.Contains(t, listQ, "ORDER BY r.name ASC, r.id ASC LIMIT $1 OFFSET $2")
	// the review count subquery has its own WHERE; the outer query has none
	assert.Contains(t, listQ, "FROM restaurants r ORDER BY")
	assert.NotContains(t, listQ, "FROM restaurants r WHERE")
}

func TestBuildListQueryNumbersArguments(t *testing.T) {
	cuisine, amenity := int64(3), int64(8)
	minRating := 4.0

	countQ, listQ, args := buildListQuery(ListFilter{
		Search:    " ramen ",
		CuisineID: &cuisine,
		AmenityID: &amenity,
		MinRating: &minRating,
		Sort:      SortRating,
	})

	if diff := cmp.Diff([]any{"ramen", int64(3), int64(8), 4.0}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, countQ, "r.name ILIKE '%' || $1 || '%'")
	assert.Contains(t, countQ, "rc.cuisine_id = $2")
	assert.Contains(t, countQ, "ra.amenity_id = $3")
	assert.Contains(t, countQ, "r.average_rating >= $4")
	assert.Equal(t, 1, strings.Count(countQ, "WHERE (r.name"))
	assert.Contains(t, listQ, "ORDER BY r.average_rating DESC, r.id DESC LIMIT $5 OFFSET $6")
}

func TestBuildListQueryNewest(t *testing.T) {
	_, listQ, _ := buildListQuery(ListFilter{City: "Lisbon", Sort: SortNewest})
	assert.Contains(t, listQ, "lower(r.city) = lower($1)")
	assert.Contains(t, listQ, "ORDER BY r.created_at DESC")
}

func TestUpdateClauses(t *testing.T) {
	name, level := "Tasca", 3
	sets, args := updateClauses(UpdateInput{Name: &name, PriceLevel: &level})

	assert.Equal(t, []string{"name = $1", "price_level = $2"}, sets)
	assert.Equal(t, []any{"Tasca", 3}, args)

	sets, args = updateClauses(UpdateInput{})
	assert.Empty(t, sets)
	assert.Empty(t, args)
}
