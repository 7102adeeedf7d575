package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tastemap/internal/domain/reviews"
	"tastemap/internal/domain/users"
	"tastemap/internal/media"
	"tastemap/internal/params"

	"github.com/google/uuid"
)

// getCurrentUserHandler godoc
//
//	@Summary		Current user
//	@Description	Returns the authenticated user's account
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	users.User
//	@Failure		401	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	user.StatusID = user.AccountStatus(app.now())
	user.Status = user.StatusID.String()

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateUserHandler godoc
//
//	@Summary		Update profile
//	@Description	Updates the caller's first and last name. Omitted fields are unchanged.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		users.UpdateInput	true	"Fields to change"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [patch]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload users.UpdateInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updated, err := app.store.Users.Update(r.Context(), user.ID, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProfilePictureHandler godoc
//
//	@Summary		Update profile picture
//	@Description	Uploads a new profile picture, saves its URL and deletes the previous one from Cloudinary
//	@Tags			users
//	@Accept			mpfd
//	@Produce		json
//	@Param			profile_picture	formData	file	true	"Image, at most 5MB"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me/profile-picture [put]
func (app *application) updateProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(media.MaxImageBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form, file size limit is 5MB"))
		return
	}

	file, header, err := r.FormFile("profile_picture")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to retrieve file: %w", err))
		return
	}
	defer file.Close()

	body, err := media.CheckImage(file, header.Size)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	url, err := app.media.Upload(r.Context(), body, media.FolderAvatars, fmt.Sprintf("%d-%s", user.ID, uuid.NewString()))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	old, err := app.store.Users.SetProfilePicture(r.Context(), user.ID, url)
	if err != nil {
		app.destroyAssets(url)
		app.errorResponse(w, r, err)
		return
	}
	if old != nil {
		app.destroyAssets(*old)
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"profile_picture_url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// destroyAssets removes uploaded images in the background.
func (app *application) destroyAssets(urls ...string) {
	if len(urls) == 0 {
		return
	}
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, u := range urls {
			if err := app.media.Destroy(ctx, u); err != nil && !errors.Is(err, media.ErrBadAssetURL) {
				app.logger.Warnw("could not delete image", "url", u, "error", err)
			}
		}
	})
}

// deleteAccountHandler godoc
//
//	@Summary		Delete account
//	@Description	Deletes the caller's account together with their reviews, issues and favorites. Ratings of affected restaurants are recomputed.
//	@Tags			users
//	@Produce		json
//	@Success		204	{string}	string	"Account deleted"
//	@Failure		409	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/users/me [delete]
func (app *application) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	ctx := r.Context()

	if err := app.reviews.DeleteAuthor(ctx, user.ID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if user.ProfilePictureURL != nil {
		app.destroyAssets(*user.ProfilePictureURL)
	}

	w.WriteHeader(http.StatusNoContent)
}

// getUserProfileHandler godoc
//
//	@Summary		Public profile
//	@Description	Name, avatar, review count and reputation badge of a user
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	users.Profile
//	@Failure		404		{object}	ErrorResponse
//	@Router			/users/{userID}/profile [get]
func (app *application) getUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	profile, err := app.store.Users.Profile(r.Context(), userID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listUserReviewsHandler godoc
//
//	@Summary		Reviews by a user
//	@Description	Paginated reviews written by a user, newest first
//	@Tags			reviews
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Param			page	query		int	false	"Page, from 1"
//	@Param			limit	query		int	false	"Page size, at most 50"
//	@Success		200		{object}	params.Page[reviews.Review]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/users/{userID}/reviews [get]
func (app *application) listUserReviewsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.reviews.ListByUser(r.Context(), userID, reviews.ListFilter{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, params.NewPage(list, p, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}
