package routes

import (
	"github.com/go-chi/chi/v5"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/handlers"
	"ephemera/internal/httpserver/mw"
)

func init() { Register(registerStats) }

func registerStats(r chi.Router, d deps.Deps) {
	r.Route("/api/stats", func(r chi.Router) {
		r.Use(mw.Auth(d.JWTSecret, d.Logger))

		r.Get("/", handlers.Stats(d))
		r.Get("/calendar", handlers.Calendar(d))
	})
}
