package main

import (
	"net/http"
	"strconv"

	"tastemap/internal/domain/hours"

	"github.com/go-chi/chi/v5"
)

// HoursResponse is the weekly schedule and what it means right now.
type HoursResponse struct {
	Days       []hours.Day  `json:"days"`
	OpenStatus hours.Status `json:"open_status"`
	Timezone   string       `json:"timezone"`
}

type ReplaceHoursPayload struct {
	Days []hours.Day `json:"days" validate:"max=7,dive"`
}

// DayPayload is one weekday's hours; the weekday comes from the path.
type DayPayload struct {
	OpenHour    int  `json:"open_hour" validate:"min=0,max=23"`
	OpenMinute  int  `json:"open_minute" validate:"min=0,max=59"`
	CloseHour   int  `json:"close_hour" validate:"min=0,max=23"`
	CloseMinute int  `json:"close_minute" validate:"min=0,max=59"`
	IsClosed    bool `json:"is_closed"`
}

// getHoursHandler godoc
//
//	@Summary		Working hours
//	@Description	Weekly schedule (weekday 0 is Sunday) and the live open status in the service timezone
//	@Tags			hours
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	HoursResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/hours [get]
func (app *application) getHoursHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	// 404 for unknown restaurants rather than an empty week
	if _, err := app.store.Restaurants.OwnerOf(ctx, id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	week, err := app.store.Hours.Get(ctx, id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := HoursResponse{
		Days:       week,
		OpenStatus: hours.Evaluate(week, app.now().In(app.location)),
		Timezone:   app.location.String(),
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// replaceHoursHandler godoc
//
//	@Summary		Replace the weekly schedule
//	@Description	Owner or admin. Weekdays left out are closed.
//	@Tags			hours
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int					true	"Restaurant ID"
//	@Param			payload			body		ReplaceHoursPayload	true	"Schedule"
//	@Success		200				{object}	HoursResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/hours [put]
func (app *application) replaceHoursHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload ReplaceHoursPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := hours.CheckWeek(payload.Days); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.authorizeManager(w, r, id) {
		return
	}

	if err := app.store.Hours.ReplaceWeek(r.Context(), id, payload.Days); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.getHoursHandler(w, r)
}

// upsertDayHandler godoc
//
//	@Summary		Set one weekday
//	@Tags			hours
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int			true	"Restaurant ID"
//	@Param			weekday			path		int			true	"0 (Sunday) to 6"
//	@Param			payload			body		DayPayload	true	"Hours"
//	@Success		200				{object}	HoursResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/hours/{weekday} [put]
func (app *application) upsertDayHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	weekday, err := strconv.Atoi(chi.URLParam(r, "weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		app.badRequestResponse(w, r, errInvalidWeekday)
		return
	}

	var payload DayPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.authorizeManager(w, r, id) {
		return
	}

	day := hours.Day{
		Weekday:     weekday,
		OpenHour:    payload.OpenHour,
		OpenMinute:  payload.OpenMinute,
		CloseHour:   payload.CloseHour,
		CloseMinute: payload.CloseMinute,
		IsClosed:    payload.IsClosed,
	}
	if err := app.store.Hours.UpsertDay(r.Context(), id, day); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.getHoursHandler(w, r)
}
