package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/project-catalyst/catalyst-api/internal/handler"
	mw "github.com/project-catalyst/catalyst-api/internal/middleware"
)

// New builds the route tree. CORS is restricted to the configured frontend
// origins; everything under /api shares one fixed-window rate limit that
// protects the AI provider quota.
func New(
	allowedOrigins []string,
	aiH *handler.AIHandler,
	subH *handler.SubmissionHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", handler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(30, time.Minute))

		r.Get("/health", handler.Health)
		r.Post("/analyze", aiH.Analyze)
		r.Post("/chat", aiH.Chat)
		r.Post("/submit", subH.Create)
	})

	return r
}
