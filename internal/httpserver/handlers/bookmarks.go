package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ephemera/internal/domain"
	"ephemera/internal/httpserver/deps"
	"ephemera/internal/session"
	"ephemera/internal/views"
)

type listResponse struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
	Total     int                `json:"total"`
	Tags      []string           `json:"tags"`
}

// ListBookmarks filters and sorts the owner's collection. All query
// parameters are optional; the default view is every bookmark,
// newest first.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		q := r.URL.Query()
		all := sess.Bookmarks()
		filtered := views.Apply(all, views.Filter{
			Query:      q.Get("q"),
			Tag:        q.Get("tag"),
			CategoryID: q.Get("category"),
			Tab:        views.ParseTab(q.Get("tab")),
			Sort:       views.ParseSort(q.Get("sort")),
		})

		writeJSON(w, http.StatusOK, listResponse{
			Bookmarks: filtered,
			Total:     len(all),
			Tags:      views.AllTags(all),
		})
	}
}

// CreateBookmark adds a bookmark by URL, enriching it with fetched
// page metadata before it is stored.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		var input session.AddBookmarkInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		bookmark, err := sess.AddBookmark(r.Context(), input)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, bookmark)
	}
}

// DeleteBookmark removes one bookmark.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		if err := sess.DeleteBookmark(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleFavorite flips the favorite flag and returns the updated
// record.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		if err := sess.ToggleFavorite(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		respondWithBookmark(w, sess, id)
	}
}

type updateTagsRequest struct {
	Tags       []string `json:"tags"`
	CategoryID string   `json:"categoryId"`
}

// UpdateTags overwrites a bookmark's tag list and category.
func UpdateTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		var req updateTagsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id := chi.URLParam(r, "id")
		if err := sess.UpdateTagsAndCategory(r.Context(), id, req.Tags, req.CategoryID); err != nil {
			writeDomainError(w, err)
			return
		}
		respondWithBookmark(w, sess, id)
	}
}

// RecordClick bumps the click counter. Always succeeds from the
// client's point of view unless the bookmark is unknown or busy.
func RecordClick(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		if err := sess.RecordClick(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondWithBookmark(w http.ResponseWriter, sess *session.Session, id string) {
	for _, b := range sess.Bookmarks() {
		if b.ID == id {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	writeError(w, http.StatusNotFound, "bookmark not found")
}
