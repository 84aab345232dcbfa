package routes

import (
	"github.com/go-chi/chi/v5"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/handlers"
	"ephemera/internal/httpserver/mw"
)

func init() { Register(registerFeed) }

func registerFeed(r chi.Router, d deps.Deps) {
	r.With(mw.Auth(d.JWTSecret, d.Logger)).Get("/api/feed", handlers.Feed(d))
}
