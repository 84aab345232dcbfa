package handlers

import (
	"encoding/json"
	"net/http"

	"ephemera/internal/httpserver/deps"
)

type bulkRequest struct {
	Action     string   `json:"action"` // delete, setTags, setCategory, setFavorite, setArchived
	IDs        []string `json:"ids"`
	Tags       []string `json:"tags,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"`
	Value      bool     `json:"value,omitempty"`
}

type bulkResponse struct {
	OK bool `json:"ok"`
}

// Bulk applies one mutation to a set of bookmarks. Members resolve
// independently; partial failure still returns 200 and the surviving
// listing reflects only the members that went through.
func Bulk(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		var req bulkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		var err error
		switch req.Action {
		case "delete":
			err = sess.BulkDelete(ctx, req.IDs)
		case "setTags":
			err = sess.BulkSetTags(ctx, req.IDs, req.Tags)
		case "setCategory":
			err = sess.BulkSetCategory(ctx, req.IDs, req.CategoryID)
		case "setFavorite":
			err = sess.BulkSetFavorite(ctx, req.IDs, req.Value)
		case "setArchived":
			err = sess.BulkSetArchived(ctx, req.IDs, req.Value)
		default:
			writeError(w, http.StatusBadRequest, "unknown bulk action")
			return
		}

		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bulkResponse{OK: true})
	}
}
