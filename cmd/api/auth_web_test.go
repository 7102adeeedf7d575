package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastemap/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiesByName(rr *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rr.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestSetAuthCookies(t *testing.T) {
	app := newTestApplication(t)
	app.config.cookieDomain = "tastemap.example"

	rr := httptest.NewRecorder()
	app.setAuthCookies(rr, "acc", "ref")

	cookies := cookiesByName(rr)
	require.Contains(t, cookies, accessCookie)
	require.Contains(t, cookies, refreshCookie)

	access := cookies[accessCookie]
	assert.Equal(t, "acc", access.Value)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.False(t, access.Secure)
	assert.Equal(t, 3600, access.MaxAge)
	assert.Equal(t, "tastemap.example", access.Domain)

	refresh := cookies[refreshCookie]
	assert.Equal(t, refreshCookiePath, refresh.Path)
	assert.Equal(t, 24*3600, refresh.MaxAge)
}

func TestSecureCookiesInProduction(t *testing.T) {
	app := newTestApplication(t)
	app.config.env = "production"

	rr := httptest.NewRecorder()
	app.setAuthCookies(rr, "acc", "ref")
	for _, c := range rr.Result().Cookies() {
		assert.True(t, c.Secure, c.Name)
	}
}

func TestClearAuthCookies(t *testing.T) {
	app := newTestApplication(t)

	rr := httptest.NewRecorder()
	app.clearAuthCookies(rr)

	cookies := cookiesByName(rr)
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestSessionHandler(t *testing.T) {
	app := newTestApplication(t)

	access, _, err := app.authenticator.GenerateTokens(7, auth.PrivilegeOwner)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/v1/authentication/session", nil)
	r.AddCookie(&http.Cookie{Name: accessCookie, Value: access})
	rr := httptest.NewRecorder()
	app.sessionHandler(rr, r)
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, "7", out.Data.UserID)
	assert.Equal(t, auth.RoleOwner, out.Data.Role)
	assert.Positive(t, out.Data.ExpiresAt)
}

func TestSessionHandlerWithoutCookie(t *testing.T) {
	app := newTestApplication(t)

	rr := httptest.NewRecorder()
	app.sessionHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/authentication/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	r := httptest.NewRequest(http.MethodGet, "/v1/authentication/session", nil)
	r.AddCookie(&http.Cookie{Name: accessCookie, Value: "tampered"})
	rr = httptest.NewRecorder()
	app.sessionHandler(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRefreshCookieHandlerRequiresCookie(t *testing.T) {
	app := newTestApplication(t)

	rr := httptest.NewRecorder()
	app.refreshTokenCookieHandler(rr, httptest.NewRequest(http.MethodPost, "/v1/authentication/web/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// access tokens are signed with a different secret than refresh tokens
	access, _, err := app.authenticator.GenerateTokens(7, auth.PrivilegeUser)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/v1/authentication/web/refresh", nil)
	r.AddCookie(&http.Cookie{Name: refreshCookie, Value: access})
	rr = httptest.NewRecorder()
	app.refreshTokenCookieHandler(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
