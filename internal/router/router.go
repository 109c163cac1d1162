// Package router sets up all HTTP routes and middleware chains for the
// BrandPress builder. Everything except /login, /health, and static
// assets sits behind the session check.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"brandpress/internal/handlers"
	"brandpress/internal/middleware"
	"brandpress/internal/session"
	"brandpress/web"
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up. uploadsDir is served at /uploads/ for
// locally stored images.
func New(sessionStore *session.Store, app *handlers.App, uploadsDir string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health and diagnostics. No auth, no CSRF.
	r.Get("/health", app.Health)
	r.Get("/debug/db", app.DebugDB)

	// Static assets and local uploads.
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// Everything else carries CSRF protection.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		r.Get("/login", app.LoginPage)
		r.Post("/login", app.LoginSubmit)
		r.Get("/logout", app.Logout)

		// Authenticated builder area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/", app.Home)
			r.Get("/newsletter/{id}", app.NewsletterEditor)
			r.Get("/eblast/{id}", app.EblastEditor)
			r.Get("/preview/{id}", app.PreviewNewsletter)
			r.Get("/preview/eblast/{id}", app.PreviewEblast)

			r.Post("/newsletters/create", app.CreateNewsletterForm)
			r.Post("/eblasts/create", app.CreateEblastForm)

			r.Route("/api", func(r chi.Router) {
				r.Route("/newsletters", func(r chi.Router) {
					r.Post("/", app.CreateNewsletterAPI)
					r.Delete("/{id}", app.DeleteNewsletter)
					r.Post("/{id}/export", app.ExportNewsletter)
					r.Get("/{id}/export/{variant}", app.DownloadExport)
				})

				r.Route("/sections", func(r chi.Router) {
					r.Put("/{id}", app.UpdateSection)
					r.Post("/{id}/toggle", app.ToggleSection)
				})

				r.Route("/eblasts", func(r chi.Router) {
					r.Post("/", app.CreateEblastAPI)
					r.Delete("/{id}", app.DeleteEblast)
					r.Post("/{id}/export", app.ExportEblast)
				})
				r.Put("/eblast_sections/{id}", app.UpdateEblastSection)

				r.Post("/images/upload", app.UploadImage)

				// AI and scraping fan out to external services, so they
				// get a tighter per-IP rate limit.
				r.Group(func(r chi.Router) {
					rl := middleware.NewRateLimiter(20, time.Minute)
					r.Use(rl.Middleware)
					r.Post("/ai/generate", app.GenerateDraft)
					r.Post("/scrape", app.ScrapePage)
				})

				r.Get("/brands/{id}/config", app.BrandConfig)
			})
		})
	})

	return r
}
