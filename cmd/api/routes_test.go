package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tastemap/internal/auth"
	"tastemap/internal/domain/accesscontrol"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/domain/storage"
	"tastemap/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	users.Store
	byID map[int64]*users.User
}

func (s stubUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, users.ErrNotFound
}

type stubRoles struct {
	accesscontrol.Store
}

func (stubRoles) RoleNames(context.Context, int64) ([]string, error) {
	return nil, nil
}

func TestSuspendedUserCannotChangeReviews(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	until := now.Add(72 * time.Hour)

	app := newTestApplication(t)
	app.clock = func() time.Time { return now }
	app.store = &storage.Container{
		Users: stubUsers{byID: map[int64]*users.User{
			7: {ID: 7, IsActive: true, StatusID: statuses.Suspended, SuspendedUntil: &until},
		}},
		AccessControl: stubRoles{},
	}
	h := app.mount()

	token, _, err := app.authenticator.GenerateTokens(7, auth.PrivilegeUser)
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/v1/reviews/5"},
		{http.MethodDelete, "/v1/reviews/5"},
		{http.MethodPost, "/v1/reviews/5/recheck"},
		{http.MethodPost, "/v1/restaurants/1/reviews"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			r.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)

			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.Equal(t, "account is suspended", decodeError(t, rr).Message)
		})
	}
}
