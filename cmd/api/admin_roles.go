package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tastemap/internal/auth"

	"github.com/go-chi/chi/v5"
)

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user owner admin"`
}

// listRolesHandler godoc
//
//	@Summary		List roles
//	@Tags			admin-roles
//	@Produce		json
//	@Success		200	{array}		accesscontrol.Role
//	@Failure		403	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/roles [get]
func (app *application) listRolesHandler(w http.ResponseWriter, r *http.Request) {
	roles, err := app.store.AccessControl.ListRoles(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, roles)
}

// getUserRolesHandler godoc
//
//	@Summary		Roles of a user
//	@Tags			admin-roles
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{array}		accesscontrol.Role
//	@Failure		400		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/roles [get]
func (app *application) getUserRolesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	roles, err := app.store.AccessControl.GetUserRoles(r.Context(), userID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, roles)
}

// assignRoleHandler godoc
//
//	@Summary		Assign a role to a user
//	@Description	Grants a role by name. Granting a role the user already has is a no-op.
//	@Tags			admin-roles
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int					true	"User ID"
//	@Param			body	body		assignRoleRequest	true	"Role"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/roles [post]
func (app *application) assignRoleHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var in assignRoleRequest
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.AccessControl.AssignRole(ctx, userID, in.Role); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.logger.Infow("role assigned", "user_id", userID, "role", in.Role, "by", getCallerFromContext(r).UserID)

	app.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "role assigned",
	})
}

// removeRoleHandler godoc
//
//	@Summary		Remove a role from a user
//	@Tags			admin-roles
//	@Produce		json
//	@Param			userID	path	int		true	"User ID"
//	@Param			role	path	string	true	"Role name"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse	"Admins cannot drop their own admin role"
//	@Failure		404	{object}	ErrorResponse	"Role not assigned"
//	@Security		ApiKeyAuth
//	@Router			/admin/users/{userID}/roles/{role} [delete]
func (app *application) removeRoleHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	role := strings.ToLower(chi.URLParam(r, "role"))

	if role == auth.RoleAdmin && userID == getCallerFromContext(r).UserID {
		app.forbiddenResponse(w, r, fmt.Errorf("admins cannot remove their own admin role"))
		return
	}

	if err := app.store.AccessControl.RemoveRole(ctx, userID, role); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
