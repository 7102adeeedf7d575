package main

import (
	"net/http"

	"tastemap/internal/domain/restaurants"
)

// addFavoriteHandler godoc
//
//	@Summary		Favorite a restaurant
//	@Description	Idempotent
//	@Tags			favorites
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/favorite [put]
func (app *application) addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Restaurants.AddFavorite(r.Context(), getCallerFromContext(r).UserID, restaurantID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeFavoriteHandler godoc
//
//	@Summary		Unfavorite a restaurant
//	@Tags			favorites
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse	"Not a favorite"
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/favorite [delete]
func (app *application) removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Restaurants.RemoveFavorite(r.Context(), getCallerFromContext(r).UserID, restaurantID); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listFavoritesHandler godoc
//
//	@Summary		My favorite restaurants
//	@Tags			favorites
//	@Produce		json
//	@Success		200	{array}	restaurants.Restaurant
//	@Security		ApiKeyAuth
//	@Router			/users/me/favorites [get]
func (app *application) listFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Restaurants.ListFavorites(r.Context(), getCallerFromContext(r).UserID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if list == nil {
		list = []restaurants.Restaurant{}
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}
