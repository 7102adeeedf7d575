package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tastemap/docs" //this is required to generate swagger docs
	"tastemap/internal/auth"
	"tastemap/internal/domain/catalog"
	"tastemap/internal/domain/reviews"
	"tastemap/internal/domain/storage"
	"tastemap/internal/mailer"
	"tastemap/internal/media"
	"tastemap/internal/notifications"
	"tastemap/internal/ratelimiter"
	"tastemap/internal/slug"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	reviews       *reviews.Service
	logger        *zap.SugaredLogger
	media         media.Uploader
	mailer        mailer.Client
	notifier      *notifications.Notifier
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	slugs         *slug.Codec
	location      *time.Location
	clock         func() time.Time
	wg            sync.WaitGroup
}

type config struct {
	addr         string
	db           dbConfig
	env          string
	apiURL       string
	mail         mailConfig
	frontendURL  string
	auth         authConfig
	rateLimiter  ratelimiter.Config
	hashidSalt   string
	timezone     string
	ratingPolicy string
	cookieDomain string
	turnstile    turnstileConfig
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	refreshSecret   string
	secret          string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	exp       time.Duration
	resetExp  time.Duration
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL, "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Use(app.RateLimiterMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.apiURL)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Get("/statuses", app.listStatusesHandler)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Put("/activate/{token}", app.activateUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
			r.Post("/forgot-password", app.forgotPasswordHandler)
			r.Post("/reset-password", app.resetPasswordHandler)

			// cookie flavour for the web client
			r.Post("/web/token", app.createTokenCookieHandler)
			r.Post("/web/refresh", app.refreshTokenCookieHandler)
			r.Post("/web/logout", app.logoutCookieHandler)
			r.Get("/session", app.sessionHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userID}/profile", app.getUserProfileHandler)
			r.Get("/{userID}/reviews", app.listUserReviewsHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Get("/me", app.getCurrentUserHandler)
				r.Patch("/me", app.updateUserHandler)
				r.Delete("/me", app.deleteAccountHandler)
				r.Put("/me/profile-picture", app.updateProfilePictureHandler)
				r.Get("/me/favorites", app.listFavoritesHandler)
				r.Get("/me/issues", app.listMyIssuesHandler)
				r.Post("/logout", app.logoutHandler)
			})
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", app.listRestaurantsHandler)
			r.Get("/s/{slug}", app.getRestaurantBySlugHandler)
			r.With(app.AuthTokenMiddleware, app.RequireAdmin).Post("/", app.createRestaurantHandler)

			r.Route("/{restaurantID}", func(r chi.Router) {
				r.Get("/", app.getRestaurantHandler)
				r.Get("/hours", app.getHoursHandler)
				r.Get("/images", app.listRestaurantImagesHandler)
				r.With(app.OptionalAuthMiddleware).Get("/reviews", app.listRestaurantReviewsHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware)

					r.Patch("/", app.updateRestaurantHandler)
					r.With(app.RequireAdmin).Delete("/", app.deleteRestaurantHandler)

					r.Put("/hours", app.replaceHoursHandler)
					r.Put("/hours/{weekday}", app.upsertDayHandler)

					r.Post("/images", app.uploadRestaurantImagesHandler)
					r.Delete("/images/{imageID}", app.deleteRestaurantImageHandler)

					for _, kind := range []catalog.Kind{catalog.Amenities, catalog.Cuisines} {
						r.Post("/"+string(kind)+"/{itemID}", app.attachCatalogHandler(kind))
						r.Delete("/"+string(kind)+"/{itemID}", app.detachCatalogHandler(kind))
					}

					r.Put("/favorite", app.addFavoriteHandler)
					r.Delete("/favorite", app.removeFavoriteHandler)

					r.With(app.RequireWriter).Post("/reviews", app.createReviewHandler)
					r.With(app.RequireWriter).Post("/issues", app.createIssueHandler)
				})
			})
		})

		for _, kind := range []catalog.Kind{catalog.Amenities, catalog.Cuisines} {
			r.Route("/"+string(kind), func(r chi.Router) {
				r.Get("/", app.listCatalogHandler(kind))
				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware, app.RequireAdmin)
					r.Post("/", app.createCatalogHandler(kind))
					r.Patch("/{itemID}", app.renameCatalogHandler(kind))
					r.Delete("/{itemID}", app.deleteCatalogHandler(kind))
				})
			})
		}

		r.Route("/reviews/{reviewID}", func(r chi.Router) {
			r.Get("/", app.getReviewHandler)
			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.With(app.RequireWriter).Patch("/", app.editReviewHandler)
				r.With(app.RequireWriter).Delete("/", app.deleteReviewHandler)
				r.With(app.RequireWriter).Post("/recheck", app.requestRecheckHandler)
			})
		})

		r.With(app.AuthTokenMiddleware, app.RequireWriter).Post("/images", app.uploadReviewImagesHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware, app.RequireAdmin)

			r.Get("/users", app.adminListUsersHandler)
			r.Patch("/users/{userID}/suspend", app.suspendUserHandler)
			r.Patch("/users/{userID}/ban", app.banUserHandler)
			r.Patch("/users/{userID}/reactivate", app.reactivateUserHandler)

			r.Get("/roles", app.listRolesHandler)
			r.Get("/users/{userID}/roles", app.getUserRolesHandler)
			r.Post("/users/{userID}/roles", app.assignRoleHandler)
			r.Delete("/users/{userID}/roles/{role}", app.removeRoleHandler)

			r.Put("/restaurants/{restaurantID}/owner", app.setRestaurantOwnerHandler)
			r.Post("/restaurants/{restaurantID}/rating", app.recomputeRatingHandler)

			r.Get("/reviews", app.moderationQueueHandler)
			r.Patch("/reviews/{reviewID}/moderation", app.moderateReviewHandler)

			r.Get("/issues", app.adminListIssuesHandler)
			r.Patch("/issues/{issueID}", app.transitionIssueHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if err := srv.Shutdown(ctx); err != nil {
			shutdown <- err
			return
		}

		app.logger.Infow("waiting for background tasks", "addr", app.config.addr)
		app.wg.Wait()
		shutdown <- nil
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
