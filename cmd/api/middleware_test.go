package main

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tastemap/internal/auth"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthMiddleware(t *testing.T) {
	app := newTestApplication(t)
	h := app.BasicAuthMiddleware()(okHandler)

	basic := func(creds string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"bearer instead", "Bearer abc", http.StatusUnauthorized},
		{"not base64", "Basic !!!", http.StatusUnauthorized},
		{"wrong password", basic("admin:nope"), http.StatusUnauthorized},
		{"no colon", basic("admin"), http.StatusUnauthorized},
		{"valid", basic("admin:s3cret"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := bearerToken(r)
	assert.Error(t, err)
	assert.False(t, hasCredentials(r))

	r.AddCookie(&http.Cookie{Name: accessCookie, Value: "from-cookie"})
	tok, err := bearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", tok)
	assert.True(t, hasCredentials(r))

	// the header wins over the cookie
	r.Header.Set("Authorization", "Bearer from-header")
	tok, err = bearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "from-header", tok)

	r.Header.Set("Authorization", "Token from-header")
	_, err = bearerToken(r)
	assert.ErrorContains(t, err, "malformed")
}

func TestAuthTokenMiddlewareRejectsBadTokens(t *testing.T) {
	app := newTestApplication(t)
	h := app.AuthTokenMiddleware(okHandler)

	other := auth.NewJWTAuthenticator("other-secret", "x", "tastemap", "tastemap", time.Hour, time.Hour)
	foreign, _, err := other.GenerateTokens(1, auth.PrivilegeAdmin)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":         "",
		"garbage":         "Bearer not-a-jwt",
		"wrong signature": "Bearer " + foreign,
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "unauthorized", decodeError(t, rr).Message)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	app := newTestApplication(t)

	var seen auth.Caller
	h := app.OptionalAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getCallerFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/restaurants/1/reviews", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, auth.Caller{}, seen)
	assert.False(t, seen.IsAdmin())

	// a token that was sent must be valid
	r := httptest.NewRequest(http.MethodGet, "/v1/restaurants/1/reviews", nil)
	r.Header.Set("Authorization", "Bearer expired-or-bogus")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApplication(t)
	h := app.RequireAdmin(okHandler)

	tests := []struct {
		name      string
		privilege auth.Privilege
		want      int
	}{
		{"user", auth.PrivilegeUser, http.StatusForbidden},
		{"owner", auth.PrivilegeOwner, http.StatusForbidden},
		{"admin", auth.PrivilegeAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withIdentity(httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil),
				&users.User{ID: 1}, auth.Caller{UserID: 1, Privilege: tt.privilege})
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestRequireWriter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	app := newTestApplication(t)
	app.clock = func() time.Time { return now }
	h := app.RequireWriter(okHandler)

	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Minute)

	tests := []struct {
		name string
		user *users.User
		want int
	}{
		{"active", &users.User{ID: 1, StatusID: statuses.Active}, http.StatusOK},
		{"suspended", &users.User{ID: 1, StatusID: statuses.Suspended, SuspendedUntil: &future}, http.StatusForbidden},
		{"suspension over", &users.User{ID: 1, StatusID: statuses.Suspended, SuspendedUntil: &past}, http.StatusOK},
		{"anonymous", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/restaurants/1/reviews", nil)
			if tt.user != nil {
				r = withIdentity(r, tt.user, auth.Caller{UserID: tt.user.ID})
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

type stubLimiter struct {
	allow      bool
	retryAfter time.Duration
	keys       []string
}

func (s *stubLimiter) Allow(key string) (bool, time.Duration) {
	s.keys = append(s.keys, key)
	return s.allow, s.retryAfter
}

func TestRateLimiterMiddleware(t *testing.T) {
	limiter := &stubLimiter{allow: false, retryAfter: 1500 * time.Millisecond}
	app := newTestApplication(t)
	app.rateLimiter = limiter
	app.config.rateLimiter.Enabled = true

	r := httptest.NewRequest(http.MethodGet, "/v1/restaurants", nil)
	r.RemoteAddr = "203.0.113.9:51234"
	rr := httptest.NewRecorder()
	app.RateLimiterMiddleware(okHandler).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("Retry-After"))
	assert.Equal(t, []string{"203.0.113.9"}, limiter.keys)

	limiter.allow = true
	rr = httptest.NewRecorder()
	app.RateLimiterMiddleware(okHandler).ServeHTTP(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	app := newTestApplication(t)
	app.rateLimiter = limiter

	rr := httptest.NewRecorder()
	app.RateLimiterMiddleware(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, limiter.keys)
}

func TestClientKey(t *testing.T) {
	for addr, want := range map[string]string{
		"198.51.100.4:443": "198.51.100.4",
		"[2001:db8::1]:80": "2001:db8::1",
		"198.51.100.4":     "198.51.100.4",
	} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr
		assert.Equal(t, want, clientKey(r), addr)
	}
}
