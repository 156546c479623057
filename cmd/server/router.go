package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/gate-api/internal/api"
	apimiddleware "github.com/phrazzld/gate-api/internal/api/middleware"
	"github.com/phrazzld/gate-api/internal/platform/metrics"
	"github.com/phrazzld/gate-api/internal/service/auth"
)

// setupRouter creates the application router with the full request
// pipeline. Stage order matters: the recovery stage is outermost so a
// panic anywhere still produces a well-formed response; correlation
// runs next so every later stage, rejections included, logs with the
// request's correlation id; security headers are stamped before rate
// limiting so even 429 responses carry them.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(apimiddleware.Recover(app.config.Server.Env))
	r.Use(apimiddleware.Correlation(app.logger))
	r.Use(apimiddleware.NewSecurityHeaders(app.config.Security.CORSAllowedOrigin).Handler)
	r.Use(apimiddleware.NewRateLimit(app.limiter, app.config.RateLimit.ExemptPaths).Handler)

	authHandler := api.NewAuthHandler(app.principals, app.authority, auth.NewBcryptVerifier())
	principalHandler := api.NewPrincipalHandler(app.guard)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.guard)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/principals/{id}", principalHandler.Get)
		})
	})

	r.Handle("/metrics", metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if app.db != nil {
			if err := app.db.PingContext(r.Context()); err != nil {
				app.logger.Error("readiness check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	return r
}
