package routes

import (
	"github.com/go-chi/chi/v5"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/handlers"
	"ephemera/internal/httpserver/mw"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.With(mw.Auth(d.JWTSecret, d.Logger)).Delete("/api/session", handlers.TeardownSession(d))
}
