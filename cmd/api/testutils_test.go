package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tastemap/internal/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	return &application{
		logger:   zap.NewNop().Sugar(),
		location: time.UTC,
		authenticator: auth.NewJWTAuthenticator(
			"access-secret", "refresh-secret", "tastemap", "tastemap", time.Hour, 24*time.Hour,
		),
		config: config{
			env: "test",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "s3cret"},
				token: tokenConfig{accessTokenExp: time.Hour, refreshTokenExp: 24 * time.Hour},
			},
		},
	}
}

// withURLParams attaches chi route parameters to r.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}
