package main

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedFile(t *testing.T) {
	f, err := os.Open("seed.yaml")
	require.NoError(t, err)
	defer f.Close()

	s, err := loadSeed(f)
	require.NoError(t, err)
	assert.Len(t, s.Roles, 3)
	assert.Contains(t, s.Cuisines, "Portuguese")
	assert.Equal(t, "admin@tastemap.local", s.Admin.Email)
}

func TestLoadSeedRequiresRoles(t *testing.T) {
	_, err := loadSeed(strings.NewReader("roles:\n  - name: user\n  - name: admin\n"))
	assert.ErrorContains(t, err, `"owner"`)
}

func TestPendingMigrations(t *testing.T) {
	files := []string{"0003_reviews_issues.sql", "0001_core.sql", "README", "0002_restaurants.sql"}
	got := pendingMigrations(files, map[string]bool{"0001_core.sql": true})

	want := []string{"0002_restaurants.sql", "0003_reviews_issues.sql"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pendingMigrations() mismatch (-want +got):\n%s", diff)
	}
}
