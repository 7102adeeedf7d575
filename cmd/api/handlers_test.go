package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastemap/internal/domain/restaurants"
	"tastemap/internal/domain/statuses"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDroppedPhotos(t *testing.T) {
	tests := []struct {
		name          string
		before, after []string
		want          []string
	}{
		{"nothing removed", []string{"a", "b"}, []string{"b", "a"}, nil},
		{"one replaced", []string{"a", "b"}, []string{"a", "c"}, []string{"b"}},
		{"all cleared", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"no photos before", nil, []string{"a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, droppedPhotos(tt.before, tt.after)); diff != "" {
				t.Errorf("droppedPhotos() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestParseRestaurantFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/v1/restaurants?q=+tasca+&city=Porto&cuisine_id=3&min_rating=4.5&sort=rating&page=2&limit=10", nil)

	f, p, err := parseRestaurantFilter(r)
	require.NoError(t, err)

	want := restaurants.ListFilter{
		Search:    "tasca",
		City:      "Porto",
		CuisineID: ptr(int64(3)),
		MinRating: ptr(4.5),
		Sort:      restaurants.SortRating,
		Limit:     10,
		Offset:    10,
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, p.Page)
}

func TestParseRestaurantFilterDefaultsAndErrors(t *testing.T) {
	f, _, err := parseRestaurantFilter(httptest.NewRequest(http.MethodGet, "/v1/restaurants", nil))
	require.NoError(t, err)
	assert.Equal(t, restaurants.SortName, f.Sort)
	assert.Nil(t, f.MinRating)

	for _, query := range []string{"sort=popular", "min_rating=6", "cuisine_id=abc", "owner_id=x"} {
		_, _, err := parseRestaurantFilter(httptest.NewRequest(http.MethodGet, "/v1/restaurants?"+query, nil))
		assert.Error(t, err, query)
	}
}

func TestListStatusesHandler(t *testing.T) {
	app := newTestApplication(t)

	rr := httptest.NewRecorder()
	app.listStatusesHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/statuses", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Data []statuses.Status `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, statuses.All(), out.Data)
}
