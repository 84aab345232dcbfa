package routes

import (
	"github.com/go-chi/chi/v5"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/handlers"
	"ephemera/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Use(mw.Auth(d.JWTSecret, d.Logger))

		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		r.Post("/bulk", handlers.Bulk(d))
		r.Post("/import", handlers.Import(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", handlers.DeleteBookmark(d))
			r.Post("/favorite", handlers.ToggleFavorite(d))
			r.Put("/tags", handlers.UpdateTags(d))
			r.Post("/click", handlers.RecordClick(d))
		})
	})
}
