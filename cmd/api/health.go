package main

import (
	"context"
	"net/http"
	"time"

	"tastemap/internal/domain/statuses"
)

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Description	Reports service status, version and database reachability
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	map[string]string
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":        "ok",
		"env":           app.config.env,
		"version":       version,
		"rating_policy": app.reviews.Policy().String(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	if err := app.store.Ping(ctx); err != nil {
		app.logger.Errorw("health check: database unreachable", "error", err)
		data["status"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if err := app.jsonResponse(w, status, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listStatusesHandler godoc
//
//	@Summary		Status lookup
//	@Description	Every named status shared by accounts, reviews and issues
//	@Tags			ops
//	@Produce		json
//	@Success		200	{array}	statuses.Status
//	@Router			/statuses [get]
func (app *application) listStatusesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, statuses.All()); err != nil {
		app.internalServerError(w, r, err)
	}
}
