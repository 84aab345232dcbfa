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

type categoriesResponse struct {
	Categories []*domain.Category `json:"categories"`
}

// ListCategories returns the owner's categories with bookmark counts
// recomputed from the live collection.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		bookmarks, categories := sess.Snapshot()
		writeJSON(w, http.StatusOK, categoriesResponse{
			Categories: views.CategoryCounts(bookmarks, categories),
		})
	}
}

// CreateCategory adds a custom category at the end of the ordering.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		var input session.AddCategoryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if input.Name == "" {
			writeError(w, http.StatusBadRequest, "category name is required")
			return
		}

		category, err := sess.AddCategory(r.Context(), input)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, category)
	}
}

// DeleteCategory removes a category. Bookmarks keep their category id;
// listings render them as uncategorized from then on.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		if err := sess.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
