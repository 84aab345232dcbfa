package handlers

import (
	"net/http"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/mw"
)

// TeardownSession drops the owner's in-memory session on sign-out.
// Persisted data is untouched; the next request rebuilds the mirror.
func TeardownSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := mw.OwnerID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		d.Sessions.Teardown(ownerID)
		w.WriteHeader(http.StatusNoContent)
	}
}
