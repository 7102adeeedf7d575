package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastemap/internal/domain/accesscontrol"
	"tastemap/internal/domain/catalog"
	"tastemap/internal/domain/hours"
	"tastemap/internal/domain/images"
	"tastemap/internal/domain/issues"
	"tastemap/internal/domain/restaurants"
	"tastemap/internal/domain/reviews"
	"tastemap/internal/domain/users"
	"tastemap/internal/media"
	"tastemap/internal/slug"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{reviews.ErrValidation, http.StatusBadRequest},
		{reviews.ErrForeignKeyViolation, http.StatusBadRequest},
		{users.ErrInvalidSuspension, http.StatusBadRequest},
		{hours.ErrDuplicateWeekday, http.StatusBadRequest},
		{images.ErrLimitReached, http.StatusBadRequest},
		{media.ErrNotImage, http.StatusBadRequest},
		{media.ErrTooLarge, http.StatusBadRequest},
		{catalog.ErrUnknownKind, http.StatusBadRequest},

		{reviews.ErrForbidden, http.StatusForbidden},
		{errForbidden, http.StatusForbidden},

		{reviews.ErrNotFound, http.StatusNotFound},
		{reviews.ErrRestaurantNotFound, http.StatusNotFound},
		{reviews.ErrAuthorNotFound, http.StatusNotFound},
		{users.ErrNotFound, http.StatusNotFound},
		{restaurants.ErrNotFound, http.StatusNotFound},
		{issues.ErrNotFound, http.StatusNotFound},
		{accesscontrol.ErrRoleNotFound, http.StatusNotFound},
		{slug.ErrInvalid, http.StatusNotFound},

		{reviews.ErrConflict, http.StatusConflict},
		{users.ErrDuplicateEmail, http.StatusConflict},
		{catalog.ErrDuplicateName, http.StatusConflict},
		{issues.ErrInvalidTransition, http.StatusConflict},

		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
			assert.Equal(t, tt.want, errorStatus(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestErrorResponseEnvelope(t *testing.T) {
	app := newTestApplication(t)

	r := httptest.NewRequest(http.MethodGet, "/v1/reviews/9", nil)
	rr := httptest.NewRecorder()
	app.errorResponse(rr, r, fmt.Errorf("get review 9: %w", reviews.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	got := decodeError(t, rr)
	assert.False(t, got.Success)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Contains(t, got.Message, "get review 9")
}

func TestInternalErrorHidesDetails(t *testing.T) {
	app := newTestApplication(t)

	rr := httptest.NewRecorder()
	app.errorResponse(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "the server encountered a problem", decodeError(t, rr).Message)
}
