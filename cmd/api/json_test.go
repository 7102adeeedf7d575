package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"min=18"`
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Ana","age":30}`, false},
		{"unknown field", `{"name":"Ana","nickname":"A"}`, true},
		{"two objects", `{"name":"Ana"}{"name":"Rui"}`, true},
		{"malformed", `{"name":`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var p samplePayload
			err := readJSON(w, r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, samplePayload{Name: "Ana", Age: 30}, p)
		})
	}
}

func TestReadJSONTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", 1_048_576) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var p samplePayload
	assert.Error(t, readJSON(httptest.NewRecorder(), r, &p))
}

func TestReadIDParam(t *testing.T) {
	r := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "reviewID", "42", "bad", "x1", "zero", "0")

	id, err := readIDParam(r, "reviewID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = readIDParam(r, "bad")
	assert.ErrorContains(t, err, `invalid bad "x1"`)

	_, err = readIDParam(r, "zero")
	assert.Error(t, err)

	_, err = readIDParam(r, "missing")
	assert.Error(t, err)
}

func TestValidationMessage(t *testing.T) {
	err := Validate.Struct(samplePayload{Age: 3})
	require.Error(t, err)
	assert.Equal(t, "validation failed: name: required; age: min=18", validationMessage(err))

	assert.Equal(t, "plain", validationMessage(assertErr("plain")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestJSONEnvelopes(t *testing.T) {
	app := newTestApplication(t)

	rr := httptest.NewRecorder()
	require.NoError(t, app.jsonResponse(rr, http.StatusCreated, map[string]int{"id": 7}))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":7}}`, rr.Body.String())

	rr = httptest.NewRecorder()
	require.NoError(t, writeJSONError(rr, http.StatusNotFound, "review not found"))

	var out map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, map[string]any{"success": false, "message": "review not found", "status": float64(404)}, out)
}
