package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ephemera/internal/domain"
	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/mw"
	"ephemera/internal/logger"
	"ephemera/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps collection errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmptyURL):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ownerSession resolves the authenticated owner's session, writing the
// error response itself when that fails.
func ownerSession(w http.ResponseWriter, r *http.Request, d deps.Deps) (*session.Session, bool) {
	ownerID, ok := mw.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}

	sess, err := d.Sessions.Get(r.Context(), ownerID)
	if err != nil {
		d.Logger.Error("session load failed",
			logger.String("owner", ownerID),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load collection")
		return nil, false
	}
	return sess, true
}
