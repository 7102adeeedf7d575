package main

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"tastemap/internal/domain/images"
	"tastemap/internal/media"

	"github.com/google/uuid"
)

const maxReviewPhotos = 3

// uploadFiles checks and uploads every file under the "images" form field.
// On failure, files already uploaded are destroyed.
func (app *application) uploadFiles(r *http.Request, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := app.uploadFile(r, fh, folder)
		if err != nil {
			app.destroyAssets(urls...)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (app *application) uploadFile(r *http.Request, fh *multipart.FileHeader, folder string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	body, err := media.CheckImage(file, fh.Size)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fh.Filename, err)
	}

	return app.media.Upload(r.Context(), body, folder, uuid.NewString())
}

// parseImageForm reads up to max files from the "images" field.
func (app *application) parseImageForm(w http.ResponseWriter, r *http.Request, max int) ([]*multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(max)*media.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(media.MaxImageBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form, each file may be at most 5MB"))
		return nil, false
	}

	files := r.MultipartForm.File["images"]
	switch {
	case len(files) == 0:
		app.badRequestResponse(w, r, fmt.Errorf("no files under the images field"))
		return nil, false
	case len(files) > max:
		app.badRequestResponse(w, r, fmt.Errorf("at most %d images per request", max))
		return nil, false
	}
	return files, true
}

// uploadReviewImagesHandler godoc
//
//	@Summary		Upload review photos
//	@Description	Uploads up to 3 images (5MB each) and returns their URLs for use in a review
//	@Tags			images
//	@Accept			mpfd
//	@Produce		json
//	@Param			images	formData	file	true	"Image files"
//	@Success		201		{object}	map[string][]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/images [post]
func (app *application) uploadReviewImagesHandler(w http.ResponseWriter, r *http.Request) {
	files, ok := app.parseImageForm(w, r, maxReviewPhotos)
	if !ok {
		return
	}

	urls, err := app.uploadFiles(r, files, media.FolderReviews)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, map[string][]string{"urls": urls}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantImagesHandler godoc
//
//	@Summary		Restaurant gallery
//	@Tags			images
//	@Produce		json
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Success		200				{array}	images.Image
//	@Failure		404				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/images [get]
func (app *application) listRestaurantImagesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	list, err := app.store.Images.List(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	if list == nil {
		list = []images.Image{}
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadRestaurantImagesHandler godoc
//
//	@Summary		Add gallery images
//	@Description	Owner or admin. A restaurant holds at most 10 images.
//	@Tags			images
//	@Accept			mpfd
//	@Produce		json
//	@Param			restaurantID	path		int		true	"Restaurant ID"
//	@Param			images			formData	file	true	"Image files"
//	@Success		201				{array}		images.Image
//	@Failure		400				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/images [post]
func (app *application) uploadRestaurantImagesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.authorizeManager(w, r, id) {
		return
	}

	remaining, err := app.store.Images.Remaining(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	if remaining == 0 {
		app.badRequestResponse(w, r, images.ErrLimitReached)
		return
	}

	files, ok := app.parseImageForm(w, r, remaining)
	if !ok {
		return
	}

	urls, err := app.uploadFiles(r, files, media.FolderRestaurants)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	// the store re-checks the limit under a lock
	added, err := app.store.Images.Add(r.Context(), id, urls)
	if err != nil {
		app.destroyAssets(urls...)
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, added); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantImageHandler godoc
//
//	@Summary		Delete a gallery image
//	@Tags			images
//	@Param			restaurantID	path	int	true	"Restaurant ID"
//	@Param			imageID			path	int	true	"Image ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{restaurantID}/images/{imageID} [delete]
func (app *application) deleteRestaurantImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "restaurantID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	imageID, err := readIDParam(r, "imageID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.authorizeManager(w, r, id) {
		return
	}

	img, err := app.store.Images.Delete(r.Context(), id, imageID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}
	app.destroyAssets(img.URL)

	w.WriteHeader(http.StatusNoContent)
}
