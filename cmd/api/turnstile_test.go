package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeTurnstile(t *testing.T, body string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "turnstile-secret", r.PostForm.Get("secret"))
		assert.Equal(t, "203.0.113.9", r.PostForm.Get("remoteip"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	prev := turnstileVerifyURL
	turnstileVerifyURL = srv.URL
	t.Cleanup(func() { turnstileVerifyURL = prev })
}

func TestVerifyCaptchaDisabled(t *testing.T) {
	app := newTestApplication(t)
	assert.NoError(t, app.verifyCaptcha(context.Background(), "", ""))
}

func TestVerifyCaptcha(t *testing.T) {
	tests := []struct {
		name     string
		response string
		hostname string
		wantErr  bool
	}{
		{"accepted", `{"success":true,"hostname":"tastemap.example"}`, "tastemap.example", false},
		{"rejected", `{"success":false,"error-codes":["invalid-input-response"]}`, "", true},
		{"wrong host", `{"success":true,"hostname":"evil.example"}`, "tastemap.example", true},
		{"any host", `{"success":true,"hostname":"evil.example"}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeTurnstile(t, tt.response)

			app := newTestApplication(t)
			app.config.turnstile = turnstileConfig{secretKey: "turnstile-secret", expectedHostname: tt.hostname}

			err := app.verifyCaptcha(context.Background(), "token", "203.0.113.9")
			if tt.wantErr {
				assert.ErrorIs(t, err, errCaptchaFailed)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyCaptchaMissingToken(t *testing.T) {
	app := newTestApplication(t)
	app.config.turnstile.secretKey = "turnstile-secret"
	assert.ErrorIs(t, app.verifyCaptcha(context.Background(), "", "203.0.113.9"), errCaptchaFailed)
}
