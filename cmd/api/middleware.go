package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tastemap/internal/auth"
	"tastemap/internal/domain/users"
)

type userKey string

const (
	userCtx   userKey = "user"
	callerCtx userKey = "caller"
)

var errBanned = errors.New("account is banned")

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 || creds[0] != username || creds[1] != pass {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken reads the Authorization header, falling back to the web
// client's access_token cookie.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if c, err := r.Cookie(accessCookie); err == nil && c.Value != "" {
			return c.Value, nil
		}
		return "", fmt.Errorf("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("authorization header is malformed")
	}
	return parts[1], nil
}

func hasCredentials(r *http.Request) bool {
	if r.Header.Get("Authorization") != "" {
		return true
	}
	c, err := r.Cookie(accessCookie)
	return err == nil && c.Value != ""
}

// authenticate resolves the bearer token to a user and the caller identity
// derived from the user's roles.
func (app *application) authenticate(r *http.Request) (*users.User, auth.Caller, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, auth.Caller{}, err
	}

	jwtToken, err := app.authenticator.ValidateAccessToken(token)
	if err != nil {
		return nil, auth.Caller{}, err
	}

	userID, err := auth.SubjectID(jwtToken)
	if err != nil {
		return nil, auth.Caller{}, err
	}

	ctx := r.Context()

	user, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, auth.Caller{}, err
	}
	if !user.IsActive {
		return nil, auth.Caller{}, fmt.Errorf("account is not activated")
	}
	if user.IsBanned() {
		return user, auth.Caller{}, errBanned
	}

	roles, err := app.store.AccessControl.RoleNames(ctx, userID)
	if err != nil {
		return nil, auth.Caller{}, err
	}

	return user, auth.Caller{UserID: user.ID, Privilege: auth.PrivilegeFromRoles(roles)}, nil
}

func withIdentity(r *http.Request, user *users.User, caller auth.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), userCtx, user)
	ctx = context.WithValue(ctx, callerCtx, caller)
	return r.WithContext(ctx)
}

func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, caller, err := app.authenticate(r)
		if err != nil {
			if errors.Is(err, errBanned) {
				app.forbiddenResponse(w, r, err)
				return
			}
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		next.ServeHTTP(w, withIdentity(r, user, caller))
	})
}

// OptionalAuthMiddleware attaches the caller when a valid token is sent and
// lets anonymous requests through untouched.
func (app *application) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hasCredentials(r) {
			next.ServeHTTP(w, r)
			return
		}

		user, caller, err := app.authenticate(r)
		if err != nil {
			if errors.Is(err, errBanned) {
				app.forbiddenResponse(w, r, err)
				return
			}
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		next.ServeHTTP(w, withIdentity(r, user, caller))
	})
}

// RequireAdmin must run after AuthTokenMiddleware.
func (app *application) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !getCallerFromContext(r).IsAdmin() {
			app.forbiddenResponse(w, r, fmt.Errorf("admin privilege required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireWriter rejects users whose suspension is still running.
func (app *application) RequireWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := getUserFromContext(r)
		if user == nil || !user.CanWrite(app.now()) {
			app.forbiddenResponse(w, r, fmt.Errorf("account is suspended"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(clientKey(r)); !allow {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				app.rateLimitExceededResponse(w, r, strconv.Itoa(seconds))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey is the request's remote IP without the port. RealIP has already
// replaced RemoteAddr when a proxy header was present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func getUserFromContext(r *http.Request) *users.User {
	user, _ := r.Context().Value(userCtx).(*users.User)
	return user
}

// getCallerFromContext returns the zero Caller for anonymous requests.
func getCallerFromContext(r *http.Request) auth.Caller {
	caller, _ := r.Context().Value(callerCtx).(auth.Caller)
	return caller
}

func (app *application) now() time.Time {
	if app.clock != nil {
		return app.clock()
	}
	return time.Now()
}
