package routes

import (
	"github.com/go-chi/chi/v5"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/handlers"
	"ephemera/internal/httpserver/mw"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Use(mw.Auth(d.JWTSecret, d.Logger))

		r.Get("/", handlers.ListCategories(d))
		r.Post("/", handlers.CreateCategory(d))
		r.Delete("/{id}", handlers.DeleteCategory(d))
	})
}
