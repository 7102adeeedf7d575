package main

import (
	"errors"
	"net/http"
	"strconv"

	"tastemap/internal/auth"
	"tastemap/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
	// refresh cookie is only sent to the authentication routes
	refreshCookiePath = "/v1/authentication"
)

// setAuthCookies sets access + refresh tokens as HttpOnly cookies.
// Web browsers store/send these automatically; JS cannot read them (HttpOnly).
func (app *application) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	secure := app.config.env == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    accessToken,
		Path:     "/",
		Domain:   app.config.cookieDomain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(app.config.auth.token.accessTokenExp.Seconds()),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		Domain:   app.config.cookieDomain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(app.config.auth.token.refreshTokenExp.Seconds()),
	})
}

func (app *application) clearAuthCookies(w http.ResponseWriter) {
	expire := func(name, path string) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			Domain:   app.config.cookieDomain,
			HttpOnly: true,
			Secure:   app.config.env == "production",
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}

	expire(accessCookie, "/")
	expire(refreshCookie, refreshCookiePath)
}

// createTokenCookieHandler godoc
//
//	@Summary		Web login
//	@Description	Same as /authentication/token but sets HttpOnly cookies instead of returning the tokens
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserTokenPayload	true	"User credentials"
//	@Success		200		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"Account banned"
//	@Router			/authentication/web/token [post]
func (app *application) createTokenCookieHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.store.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	if err := user.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}
	if user.IsBanned() {
		app.forbiddenResponse(w, r, errBanned)
		return
	}

	tokens, err := app.issueTokens(r, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setAuthCookies(w, tokens.AccessToken, tokens.RefreshToken)

	// web doesn't need the tokens themselves
	_ = app.jsonResponse(w, http.StatusOK, SessionResponse{
		UserID:    tokens.UserID,
		Role:      tokens.Role,
		ExpiresAt: app.now().Add(app.config.auth.token.accessTokenExp).Unix(),
	})
}

// refreshTokenCookieHandler godoc
//
//	@Summary		Web token refresh
//	@Description	Rotates the token cookies using the refresh_token cookie
//	@Tags			authentication
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Router			/authentication/web/refresh [post]
func (app *application) refreshTokenCookieHandler(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil || c.Value == "" {
		app.unauthorizedErrorResponse(w, r, errors.New("missing refresh token"))
		return
	}

	token, err := app.authenticator.ValidateRefreshToken(c.Value)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, errors.New("invalid refresh token"))
		return
	}

	userID, err := auth.SubjectID(token)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	// Ensure refresh token matches DB (rotation safety)
	saved, err := app.store.Users.GetRefreshToken(r.Context(), userID)
	if err != nil || saved == "" || saved != c.Value {
		app.unauthorizedErrorResponse(w, r, errors.New("refresh token mismatch"))
		return
	}

	tokens, err := app.issueTokens(r, userID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setAuthCookies(w, tokens.AccessToken, tokens.RefreshToken)

	w.WriteHeader(http.StatusNoContent)
}

// logoutCookieHandler godoc
//
//	@Summary		Web logout
//	@Description	Revokes the refresh token and clears the cookies
//	@Tags			authentication
//	@Success		204
//	@Router			/authentication/web/logout [post]
func (app *application) logoutCookieHandler(w http.ResponseWriter, r *http.Request) {
	if user, _, err := app.authenticate(r); err == nil {
		if err := app.store.Users.DeleteRefreshToken(r.Context(), user.ID); err != nil {
			app.logger.Warnw("failed to delete refresh token on logout", "user_id", user.ID, "error", err)
		}
	}

	// Always clear cookies
	app.clearAuthCookies(w)

	w.WriteHeader(http.StatusNoContent)
}

type SessionResponse struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}

// sessionHandler godoc
//
//	@Summary		Get current web session (cookie)
//	@Description	Reads the access_token cookie, validates it and returns session info
//	@Tags			authentication
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/authentication/session [get]
func (app *application) sessionHandler(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(accessCookie)
	if err != nil || c.Value == "" {
		app.unauthorizedErrorResponse(w, r, errors.New("not authorized"))
		return
	}

	tok, err := app.authenticator.ValidateAccessToken(c.Value)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, errors.New("not authorized"))
		return
	}

	userID, err := auth.SubjectID(tok)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	claims, _ := tok.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)

	var expUnix int64
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expUnix = exp.Unix()
	}

	_ = app.jsonResponse(w, http.StatusOK, SessionResponse{
		UserID:    strconv.FormatInt(userID, 10),
		Role:      role,
		ExpiresAt: expUnix,
	})
}
