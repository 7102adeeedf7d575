package main

import (
	"net/http"
	"strings"

	"tastemap/internal/domain/catalog"
)

// listCatalogHandler godoc
//
//	@Summary		List amenities or cuisines
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	catalog.Item
//	@Router			/amenities [get]
//	@Router			/cuisines [get]
func (app *application) listCatalogHandler(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := app.store.Catalog.List(r.Context(), kind)
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}
		if items == nil {
			items = []catalog.Item{}
		}

		if err := app.jsonResponse(w, http.StatusOK, items); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}

func (app *application) readCatalogInput(w http.ResponseWriter, r *http.Request) (string, bool) {
	var in catalog.Input
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return "", false
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return "", false
	}
	return in.Name, true
}

// createCatalogHandler godoc
//
//	@Summary		Create an amenity or cuisine
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		catalog.Input	true	"Name"
//	@Success		201		{object}	catalog.Item
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Name taken"
//	@Security		ApiKeyAuth
//	@Router			/amenities [post]
//	@Router			/cuisines [post]
func (app *application) createCatalogHandler(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := app.readCatalogInput(w, r)
		if !ok {
			return
		}

		item, err := app.store.Catalog.Create(r.Context(), kind, name)
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}

		if err := app.jsonResponse(w, http.StatusCreated, item); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}

// renameCatalogHandler godoc
//
//	@Summary		Rename an amenity or cuisine
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			itemID	path		int				true	"Item ID"
//	@Param			payload	body		catalog.Input	true	"Name"
//	@Success		200		{object}	catalog.Item
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/amenities/{itemID} [patch]
//	@Router			/cuisines/{itemID} [patch]
func (app *application) renameCatalogHandler(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := readIDParam(r, "itemID")
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		name, ok := app.readCatalogInput(w, r)
		if !ok {
			return
		}

		item, err := app.store.Catalog.Rename(r.Context(), kind, id, name)
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}

		if err := app.jsonResponse(w, http.StatusOK, item); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}

// deleteCatalogHandler godoc
//
//	@Summary		Delete an amenity or cuisine
//	@Tags			catalog
//	@Param			itemID	path	int	true	"Item ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/amenities/{itemID} [delete]
//	@Router			/cuisines/{itemID} [delete]
func (app *application) deleteCatalogHandler(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := readIDParam(r, "itemID")
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		if err := app.store.Catalog.Delete(r.Context(), kind, id); err != nil {
			app.errorResponse(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// attachCatalogHandler godoc
//
//	@Summary		Tag a restaurant with an amenity or cuisine
//	@Tags			catalog
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Param			itemID			path	int	true	"Item ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/amenities/{itemID} [post]
//	@Router			/restaurants/{restaurantID}/cuisines/{itemID} [post]
func (app *application) attachCatalogHandler(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, itemID, ok := app.readCatalogLink(w, r)
		if !ok {
			return
		}

		if err := app.store.Catalog.Attach(r.Context(), kind, restaurantID, itemID); err != nil {
			app.errorResponse(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// detachCatalogHandler godoc
//
//	@Summary		Remove an amenity or cuisine from a restaurant
//	@Tags			catalog
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Param			itemID			path	int	true	"Item ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/amenities/{itemID} [delete]
//	@Router			/restaurants/{restaurantID}/cuisines/{itemID} [delete]
func (app *application) detachCatalogHandler(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, itemID, ok := app.readCatalogLink(w, r)
		if !ok {
			return
		}

		if err := app.store.Catalog.Detach(r.Context(), kind, restaurantID, itemID); err != nil {
			app.errorResponse(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (app *application) readCatalogLink(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	restaurantID, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return 0, 0, false
	}
	itemID, err := readIDParam(r, "itemID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return 0, 0, false
	}
	if !app.authorizeManager(w, r, restaurantID) {
		return 0, 0, false
	}
	return restaurantID, itemID, true
}
