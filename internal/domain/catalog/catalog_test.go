package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindTable(t *testing.T) {
	tbl, err := Cuisines.table()
	require.NoError(t, err)
	assert.Equal(t, "restaurant_cuisines", tbl.link)
	assert.Equal(t, "cuisine_id", tbl.linkCol)

	tbl, err = Amenities.table()
	require.NoError(t, err)
	assert.Equal(t, "amenities", tbl.name)
}

func TestUnknownKindNeverReachesTheDatabase(t *testing.T) {
	// a nil Querier would panic if a query were attempted
	repo := NewRepository(nil)

	_, err := repo.List(context.Background(), Kind("users; DROP TABLE users"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	err = repo.Attach(context.Background(), Kind("dishes"), 1, 1)
	assert.ErrorIs(t, err, ErrUnknownKind)
}
