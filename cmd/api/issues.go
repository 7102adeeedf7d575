package main

import (
	"net/http"
	"strings"

	"tastemap/internal/domain/issues"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/mailer"
	"tastemap/internal/params"
)

// createIssueHandler godoc
//
//	@Summary		Report an issue
//	@Description	Reports wrong information, a permanent closure, an inappropriate review or anything else about a restaurant
//	@Tags			issues
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int					true	"Restaurant ID"
//	@Param			payload			body		issues.CreateInput	true	"Issue"
//	@Success		201				{object}	issues.Issue
//	@Failure		400				{object}	ErrorResponse	"Validation failed or the review is not on this restaurant"
//	@Failure		403				{object}	ErrorResponse	"Account suspended"
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/issues [post]
func (app *application) createIssueHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload issues.CreateInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.Description = strings.TrimSpace(payload.Description)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	issue, err := app.store.Issues.Create(r.Context(), getCallerFromContext(r).UserID, restaurantID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, issue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMyIssuesHandler godoc
//
//	@Summary		My reported issues
//	@Tags			issues
//	@Produce		json
//	@Param			status	query		string	false	"pending, in_progress, resolved or rejected"
//	@Param			page	query		int		false	"Page, from 1"
//	@Param			limit	query		int		false	"Page size, at most 50"
//	@Success		200		{object}	params.Page[issues.Issue]
//	@Security		ApiKeyAuth
//	@Router			/users/me/issues [get]
func (app *application) listMyIssuesHandler(w http.ResponseWriter, r *http.Request) {
	reporterID := getCallerFromContext(r).UserID
	app.listIssues(w, r, &reporterID)
}

// adminListIssuesHandler godoc
//
//	@Summary		Issue triage list
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"pending, in_progress, resolved or rejected"
//	@Param			page	query		int		false	"Page, from 1"
//	@Param			limit	query		int		false	"Page size, at most 50"
//	@Success		200		{object}	params.Page[issues.Issue]
//	@Security		ApiKeyAuth
//	@Router			/admin/issues [get]
func (app *application) adminListIssuesHandler(w http.ResponseWriter, r *http.Request) {
	app.listIssues(w, r, nil)
}

func (app *application) listIssues(w http.ResponseWriter, r *http.Request, reporterID *int64) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	status, err := params.OptionalStatus(q, statuses.Pending, statuses.InProgress, statuses.Resolved, statuses.Rejected)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, total, err := app.store.Issues.List(r.Context(), issues.ListFilter{
		StatusID:   status,
		ReporterID: reporterID,
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, params.NewPage(list, p, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// transitionIssueHandler godoc
//
//	@Summary		Move an issue along
//	@Description	Pending to in_progress, resolved or rejected; in_progress to resolved or rejected. Closing an issue mails the reporter.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			issueID	path		int						true	"Issue ID"
//	@Param			payload	body		issues.TransitionInput	true	"Target status and note"
//	@Success		200		{object}	issues.Issue
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Transition not allowed"
//	@Security		ApiKeyAuth
//	@Router			/admin/issues/{issueID} [patch]
func (app *application) transitionIssueHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := readIDParam(r, "issueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload issues.TransitionInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	to, err := statuses.Parse(payload.Status)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	issue, err := app.store.Issues.Transition(ctx, issueID, to, payload.Note)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("issue transitioned", "issue_id", issueID, "status", issue.Status)

	if issues.IsTerminal(issue.StatusID) {
		restaurantName := ""
		if restaurant, err := app.store.Restaurants.GetByID(ctx, issue.RestaurantID); err == nil {
			restaurantName = restaurant.Name
		}

		note := ""
		if issue.AdminNote != nil {
			note = *issue.AdminNote
		}

		vars := struct {
			Username   string
			IssueID    int64
			Restaurant string
			Status     string
			Note       string
		}{
			Username:   issue.ReporterName,
			IssueID:    issue.ID,
			Restaurant: restaurantName,
			Status:     issue.Status,
			Note:       note,
		}
		app.sendMail(mailer.IssueUpdateTemplate, issue.ReporterName, issue.ReporterEmail, vars)
	}

	if err := app.jsonResponse(w, http.StatusOK, issue); err != nil {
		app.internalServerError(w, r, err)
	}
}
