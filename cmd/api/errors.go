package main

import (
	"errors"
	"net/http"

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
)

var (
	errForbidden      = errors.New("you are not allowed to do that")
	errInvalidWeekday = errors.New("weekday must be 0 (Sunday) to 6")
)

// ErrorResponse is the envelope every failed request returns.
//
//	@name	ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"review not found"`
	Status  int    `json:"status" example:"404"`
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusBadRequest, validationMessage(err))
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusNotFound, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusForbidden, err.Error())
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// errorStatus maps domain errors to HTTP statuses. Unknown errors are 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, reviews.ErrValidation),
		errors.Is(err, reviews.ErrForeignKeyViolation),
		errors.Is(err, users.ErrInvalidSuspension),
		errors.Is(err, restaurants.ErrNoChanges),
		errors.Is(err, restaurants.ErrOwnerNotFound),
		errors.Is(err, hours.ErrDuplicateWeekday),
		errors.Is(err, issues.ErrBadReference),
		errors.Is(err, catalog.ErrUnknownKind),
		errors.Is(err, images.ErrLimitReached),
		errors.Is(err, media.ErrNotImage),
		errors.Is(err, media.ErrTooLarge):
		return http.StatusBadRequest

	case errors.Is(err, errForbidden),
		errors.Is(err, reviews.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, reviews.ErrNotFound),
		errors.Is(err, reviews.ErrRestaurantNotFound),
		errors.Is(err, reviews.ErrAuthorNotFound),
		errors.Is(err, users.ErrNotFound),
		errors.Is(err, restaurants.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, hours.ErrRestaurantNotFound),
		errors.Is(err, images.ErrNotFound),
		errors.Is(err, images.ErrRestaurantNotFound),
		errors.Is(err, issues.ErrNotFound),
		errors.Is(err, accesscontrol.ErrRoleNotFound),
		errors.Is(err, accesscontrol.ErrNotAssigned),
		errors.Is(err, accesscontrol.ErrUserNotFound),
		errors.Is(err, slug.ErrInvalid):
		return http.StatusNotFound

	case errors.Is(err, reviews.ErrConflict),
		errors.Is(err, users.ErrDuplicateEmail),
		errors.Is(err, users.ErrInvalidTransition),
		errors.Is(err, catalog.ErrDuplicateName),
		errors.Is(err, issues.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// errorResponse writes err with the status errorStatus picks for it.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch errorStatus(err) {
	case http.StatusBadRequest:
		app.badRequestResponse(w, r, err)
	case http.StatusForbidden:
		app.forbiddenResponse(w, r, err)
	case http.StatusNotFound:
		app.notFoundResponse(w, r, err)
	case http.StatusConflict:
		app.conflictResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
