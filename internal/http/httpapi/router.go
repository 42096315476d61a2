// Package httpapi assembles the chi router for the showcase API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"showcase/internal/http/handlers"
	"showcase/internal/infra"
	"showcase/internal/middleware"
)

// Options configures router construction.
type Options struct {
	Logger         infra.Logger
	AllowedOrigins []string
	// RateLimiter throttles job creation endpoints; nil disables limiting.
	RateLimiter middleware.LimitStore
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.RateLimiter != nil {
				r.Use(middleware.RateLimit(opts.RateLimiter))
			}
			r.Post("/generate", app.Generate)
			r.Post("/generate-from-inspiration", app.GenerateFromInspiration)
		})

		r.Route("/jobs/{job_id}", func(r chi.Router) {
			r.Get("/status", app.JobStatus)
			r.Get("/manifest", app.JobManifest)
			r.Get("/download", app.DownloadArchive)
			r.Post("/approve-hero", app.ApproveHero)
			r.Post("/reject-hero", app.RejectHero)
			r.Post("/regenerate-hero", app.RegenerateHero)
			r.Post("/regenerate-image", app.RegenerateImage)
		})

		r.Get("/images/{job_id}/{filename}", app.ServeImage)
	})

	return r
}
