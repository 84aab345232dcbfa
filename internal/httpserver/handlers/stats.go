package handlers

import (
	"net/http"
	"time"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/views"
)

// Stats returns the dashboard aggregates, recomputed from the current
// snapshot on every request.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		bookmarks, categories := sess.Snapshot()
		writeJSON(w, http.StatusOK, views.ComputeOverview(bookmarks, categories, timeNow(d)))
	}
}

type calendarResponse struct {
	Weeks [][]int `json:"weeks"`
	Start string  `json:"start"` // first cell's date, RFC 3339
}

// Calendar returns the 52x7 daily-activity grid.
func Calendar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		now := timeNow(d)
		writeJSON(w, http.StatusOK, calendarResponse{
			Weeks: views.Calendar(sess.Bookmarks(), now),
			Start: views.CellDate(now, 0, 0).Format(time.RFC3339),
		})
	}
}

func timeNow(d deps.Deps) time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
