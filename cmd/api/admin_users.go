package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"tastemap/internal/domain/statuses"
	"tastemap/internal/domain/users"
	"tastemap/internal/mailer"
	"tastemap/internal/params"
)

// adminListUsersHandler godoc
//
//	@Summary		List users
//	@Description	Paginated user accounts, optionally filtered by account status and a name or email search
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"active, suspended or banned"
//	@Param			q		query		string	false	"Search in name and email"
//	@Param			page	query		int		false	"Page, from 1"
//	@Param			limit	query		int		false	"Page size, at most 50"
//	@Success		200		{object}	params.Page[users.User]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users [get]
func (app *application) adminListUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	status, err := params.OptionalStatus(q, statuses.Active, statuses.Suspended, statuses.Banned)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, total, err := app.store.Users.List(r.Context(), users.ListFilter{
		StatusID: status,
		Search:   strings.TrimSpace(q.Get("q")),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, params.NewPage(list, p, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SuspendUserPayload struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// suspendUserHandler godoc
//
//	@Summary		Suspend a user
//	@Description	Suspends the account for 1 to 365 days. The user can still read but not write.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int					true	"User ID"
//	@Param			payload	body		SuspendUserPayload	true	"Duration"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/suspend [patch]
func (app *application) suspendUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload SuspendUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	until, err := users.SuspensionEnd(app.now(), payload.Days)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.changeAccountStatus(w, r, statuses.Suspended, &until)
}

// banUserHandler godoc
//
//	@Summary		Ban a user
//	@Description	Bans the account permanently. Banned users cannot authenticate.
//	@Tags			admin
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	users.User
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Already banned"
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/ban [patch]
func (app *application) banUserHandler(w http.ResponseWriter, r *http.Request) {
	app.changeAccountStatus(w, r, statuses.Banned, nil)
}

// reactivateUserHandler godoc
//
//	@Summary		Reactivate a user
//	@Description	Lifts a suspension or ban
//	@Tags			admin
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	users.User
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Already active"
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/reactivate [patch]
func (app *application) reactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	app.changeAccountStatus(w, r, statuses.Active, nil)
}

func (app *application) changeAccountStatus(w http.ResponseWriter, r *http.Request, to statuses.ID, until *time.Time) {
	userID, err := readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if userID == getCallerFromContext(r).UserID {
		app.forbiddenResponse(w, r, fmt.Errorf("admins cannot change their own account status"))
		return
	}

	ctx := r.Context()

	target, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	// a suspension may be extended, other states only entered once
	current := target.AccountStatus(app.now())
	if current == to && to != statuses.Suspended {
		app.conflictResponse(w, r, users.ErrInvalidTransition)
		return
	}

	updated, err := app.store.Users.SetAccountStatus(ctx, userID, to, until)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("account status changed", "user_id", userID, "from", current.String(), "to", to.String())

	vars := struct {
		Username string
		Status   string
		Until    string
	}{
		Username: updated.FirstName,
		Status:   to.String(),
	}
	if until != nil {
		vars.Until = until.In(app.location).Format("2 Jan 2006 15:04 MST")
	}
	app.sendMail(mailer.AccountStatusTemplate, updated.FirstName, updated.Email, vars)

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}
