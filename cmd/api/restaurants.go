package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tastemap/internal/domain/hours"
	"tastemap/internal/domain/images"
	"tastemap/internal/domain/restaurants"
	"tastemap/internal/params"

	"github.com/go-chi/chi/v5"
)

// RestaurantView is the detail page payload.
type RestaurantView struct {
	*restaurants.Detail
	Slug       string         `json:"slug"`
	Images     []images.Image `json:"images"`
	Hours      []hours.Day    `json:"hours"`
	OpenStatus hours.Status   `json:"open_status"`
}

// authorizeManager writes the error response and returns false unless the
// caller is an admin or the restaurant's claimed owner.
func (app *application) authorizeManager(w http.ResponseWriter, r *http.Request, restaurantID int64) bool {
	ownerID, err := app.store.Restaurants.OwnerOf(r.Context(), restaurantID)
	if err != nil {
		app.errorResponse(w, r, err)
		return false
	}
	if !getCallerFromContext(r).CanManage(ownerID) {
		app.forbiddenResponse(w, r, fmt.Errorf("only the owner or an admin can manage restaurant %d", restaurantID))
		return false
	}
	return true
}

func parseRestaurantFilter(r *http.Request) (restaurants.ListFilter, params.Pagination, error) {
	q := r.URL.Query()
	p := params.ParsePagination(q)
	f := restaurants.ListFilter{
		Search: strings.TrimSpace(q.Get("q")),
		City:   strings.TrimSpace(q.Get("city")),
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	var err error
	if f.CuisineID, err = params.OptionalInt64(q, "cuisine_id"); err != nil {
		return f, p, err
	}
	if f.AmenityID, err = params.OptionalInt64(q, "amenity_id"); err != nil {
		return f, p, err
	}
	if f.OwnerID, err = params.OptionalInt64(q, "owner_id"); err != nil {
		return f, p, err
	}
	if f.MinRating, err = params.OptionalFloat(q, "min_rating", 0, 5); err != nil {
		return f, p, err
	}

	switch s := restaurants.Sort(q.Get("sort")); s {
	case "":
		f.Sort = restaurants.SortName
	case restaurants.SortRating, restaurants.SortNewest, restaurants.SortName:
		f.Sort = s
	default:
		return f, p, fmt.Errorf("sort must be one of rating, newest, name")
	}
	return f, p, nil
}

// listRestaurantsHandler godoc
//
//	@Summary		List restaurants
//	@Description	Paginated restaurants with optional name search, city, cuisine, amenity and minimum rating filters
//	@Tags			restaurants
//	@Produce		json
//	@Param			q			query		string	false	"Name search"
//	@Param			city		query		string	false	"City"
//	@Param			cuisine_id	query		int		false	"Cuisine ID"
//	@Param			amenity_id	query		int		false	"Amenity ID"
//	@Param			owner_id	query		int		false	"Owner user ID"
//	@Param			min_rating	query		number	false	"Minimum average rating, 0 to 5"
//	@Param			sort		query		string	false	"rating, newest or name"
//	@Param			page		query		int		false	"Page, from 1"
//	@Param			limit		query		int		false	"Page size, at most 50"
//	@Success		200			{object}	params.Page[restaurants.Restaurant]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	f, p, err := parseRestaurantFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, total, err := app.store.Restaurants.List(r.Context(), f)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, params.NewPage(list, p, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) restaurantView(ctx context.Context, id int64) (*RestaurantView, error) {
	detail, err := app.store.Restaurants.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	gallery, err := app.store.Images.List(ctx, id)
	if err != nil {
		return nil, err
	}

	week, err := app.store.Hours.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, err := app.slugs.Encode(id)
	if err != nil {
		return nil, err
	}

	if gallery == nil {
		gallery = []images.Image{}
	}
	if week == nil {
		week = []hours.Day{}
	}

	return &RestaurantView{
		Detail:     detail,
		Slug:       slug,
		Images:     gallery,
		Hours:      week,
		OpenStatus: hours.Evaluate(week, app.now().In(app.location)),
	}, nil
}

// getRestaurantHandler godoc
//
//	@Summary		Restaurant detail
//	@Description	Restaurant with cuisines, amenities, gallery, weekly hours, live open status and share slug
//	@Tags			restaurants
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	RestaurantView
//	@Failure		404				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.restaurantView(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantBySlugHandler godoc
//
//	@Summary		Restaurant by share slug
//	@Tags			restaurants
//	@Produce		json
//	@Param			slug	path		string	true	"Share slug"
//	@Success		200		{object}	RestaurantView
//	@Failure		404		{object}	ErrorResponse
//	@Router			/restaurants/s/{slug} [get]
func (app *application) getRestaurantBySlugHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.slugs.Decode(chi.URLParam(r, "slug"))
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	view, err := app.restaurantView(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createRestaurantHandler godoc
//
//	@Summary		Create a restaurant
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		restaurants.CreateInput	true	"Restaurant"
//	@Success		201		{object}	restaurants.Restaurant
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var payload restaurants.CreateInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.store.Restaurants.Create(r.Context(), payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary		Update a restaurant
//	@Description	Owner or admin. Omitted fields are unchanged; the average rating cannot be set.
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int						true	"Restaurant ID"
//	@Param			payload			body		restaurants.UpdateInput	true	"Fields to change"
//	@Success		200				{object}	restaurants.Restaurant
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID} [patch]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload restaurants.UpdateInput
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

	restaurant, err := app.store.Restaurants.Update(r.Context(), id, payload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary		Delete a restaurant
//	@Description	Removes the restaurant with its reviews, hours, images and favorites
//	@Tags			restaurants
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID} [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	gallery, err := app.store.Images.List(ctx, id)
	if err != nil && !errors.Is(err, images.ErrRestaurantNotFound) {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Restaurants.Delete(ctx, id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	urls := make([]string, 0, len(gallery))
	for _, img := range gallery {
		urls = append(urls, img.URL)
	}
	app.destroyAssets(urls...)

	w.WriteHeader(http.StatusNoContent)
}

type SetOwnerPayload struct {
	// OwnerID null releases the claim.
	OwnerID *int64 `json:"owner_id" validate:"omitempty,gt=0"`
}

// setRestaurantOwnerHandler godoc
//
//	@Summary		Set or clear the claimed owner
//	@Description	Assigning an owner grants them the owner role
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		int				true	"Restaurant ID"
//	@Param			payload			body		SetOwnerPayload	true	"Owner"
//	@Success		200				{object}	restaurants.Restaurant
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/restaurants/{restaurantID}/owner [put]
func (app *application) setRestaurantOwnerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload SetOwnerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.store.Restaurants.SetOwner(r.Context(), id, payload.OwnerID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("restaurant owner set", "restaurant_id", id, "owner_id", payload.OwnerID)

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// recomputeRatingHandler godoc
//
//	@Summary		Recompute average rating
//	@Description	Rebuilds the cached average from the review set under the active rating policy
//	@Tags			admin
//	@Produce		json
//	@Param			restaurantID	path		int	true	"Restaurant ID"
//	@Success		200				{object}	map[string]any
//	@Failure		404				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/restaurants/{restaurantID}/rating [post]
func (app *application) recomputeRatingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	avg, err := app.reviews.RecomputeAverage(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"restaurant_id":  id,
		"average_rating": avg,
		"policy":         app.reviews.Policy().String(),
	})
}
