package main

import (
	"fmt"
	"net/http"

	"tastemap/internal/domain/reviews"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/notifications"
	"tastemap/internal/params"
)

// createReviewHandler godoc
//
//	@Summary		Write a review
//	@Description	Creates a pending review and updates the restaurant's average rating
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int						true	"Restaurant ID"
//	@Param			payload			body		reviews.CreateInput		true	"Rating 1-5, comment, up to 3 photo URLs"
//	@Success		201				{object}	reviews.Review
//	@Failure		400				{object}	ErrorResponse	"Validation failed or restaurant does not exist"
//	@Failure		403				{object}	ErrorResponse	"Account suspended"
//	@Failure		409				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload reviews.CreateInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.RestaurantID = restaurantID

	review, err := app.reviews.Create(r.Context(), getCallerFromContext(r), payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.notifyReview(notifications.ReviewReceived, review)

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantReviewsHandler godoc
//
//	@Summary		Reviews of a restaurant
//	@Description	Paginated, newest first. Only admins may filter by status.
//	@Tags			reviews
//	@Produce		json
//	@Param			restaurantID	path		int		true	"Restaurant ID"
//	@Param			status			query		string	false	"pending, approved, rejected or recheck_requested (admin)"
//	@Param			page			query		int		false	"Page, from 1"
//	@Param			limit			query		int		false	"Page size, at most 50"
//	@Success		200				{object}	params.Page[reviews.Review]
//	@Failure		403				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/reviews [get]
func (app *application) listRestaurantReviewsHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	p := params.ParsePagination(q)

	status, err := params.OptionalStatus(q, statuses.ReviewStatuses()...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if status != nil && !getCallerFromContext(r).IsAdmin() {
		app.forbiddenResponse(w, r, fmt.Errorf("only admins can filter reviews by status"))
		return
	}

	ctx := r.Context()

	if _, err := app.store.Restaurants.OwnerOf(ctx, restaurantID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	list, total, err := app.reviews.ListByRestaurant(ctx, restaurantID, reviews.ListFilter{
		StatusID: status,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, params.NewPage(list, p, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getReviewHandler godoc
//
//	@Summary		Get a review
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	reviews.Review
//	@Failure		404			{object}	ErrorResponse
//	@Router			/reviews/{reviewID} [get]
func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviews.Get(r.Context(), reviewID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// editReviewHandler godoc
//
//	@Summary		Edit own review
//	@Description	Changes rating, comment or photos and marks the review edited. Moderation status is kept.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int					true	"Review ID"
//	@Param			payload		body		reviews.EditInput	true	"Fields to change"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse	"Not the author"
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [patch]
func (app *application) editReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload reviews.EditInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	before, err := app.reviews.Get(ctx, reviewID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	review, err := app.reviews.Edit(ctx, getCallerFromContext(r), reviewID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.destroyAssets(droppedPhotos(before.Photos, review.Photos)...)

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// droppedPhotos lists the entries of before missing from after.
func droppedPhotos(before, after []string) []string {
	kept := make(map[string]bool, len(after))
	for _, p := range after {
		kept[p] = true
	}
	var out []string
	for _, p := range before {
		if !kept[p] {
			out = append(out, p)
		}
	}
	return out
}

// deleteReviewHandler godoc
//
//	@Summary		Delete own review
//	@Description	Removes the review and its photos and updates the restaurant's average rating
//	@Tags			reviews
//	@Param			reviewID	path	int	true	"Review ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse	"Not the author, or account suspended"
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	review, err := app.reviews.Get(ctx, reviewID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.reviews.Delete(ctx, getCallerFromContext(r), reviewID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.destroyAssets(review.Photos...)

	w.WriteHeader(http.StatusNoContent)
}

// requestRecheckHandler godoc
//
//	@Summary		Dispute a review
//	@Description	The restaurant's claimed owner asks admins to re-moderate a review
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int						true	"Review ID"
//	@Param			payload		body		reviews.RecheckInput	true	"Explanation"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse	"Not the restaurant owner"
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse	"Recheck already pending"
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID}/recheck [post]
func (app *application) requestRecheckHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload reviews.RecheckInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviews.RequestRecheck(r.Context(), getCallerFromContext(r), reviewID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ModerationPayload struct {
	Action reviews.Action `json:"action" validate:"required,oneof=approve reject"`
}

// moderateReviewHandler godoc
//
//	@Summary		Approve or reject a review
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int					true	"Review ID"
//	@Param			payload		body		ModerationPayload	true	"Decision"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID}/moderation [patch]
func (app *application) moderateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := readIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload ModerationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.reviews.Moderate(r.Context(), getCallerFromContext(r), reviewID, payload.Action)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("review moderated", "review_id", reviewID, "action", payload.Action, "status", review.Status)

	if event, ok := notifications.ModerationEvent(review.StatusID); ok {
		app.notifyReview(event, review)
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// moderationQueueHandler godoc
//
//	@Summary		Moderation queue
//	@Description	Reviews across all restaurants, newest first, optionally by status
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"pending, approved, rejected or recheck_requested"
//	@Param			page	query		int		false	"Page, from 1"
//	@Param			limit	query		int		false	"Page size, at most 50"
//	@Success		200		{object}	params.Page[reviews.Review]
//	@Failure		400		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews [get]
func (app *application) moderationQueueHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	status, err := params.OptionalStatus(q, statuses.ReviewStatuses()...)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, total, err := app.reviews.ListByStatus(r.Context(), reviews.ListFilter{
		StatusID: status,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, params.NewPage(list, p, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}
