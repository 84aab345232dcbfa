package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/feeds"

	"ephemera/internal/httpserver/deps"
	"ephemera/internal/logger"
)

const defaultFeedSize = 50

// Feed renders the owner's most recent bookmarks as RSS.
func Feed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownerSession(w, r, d)
		if !ok {
			return
		}

		size := d.FeedSize
		if size <= 0 {
			size = defaultFeedSize
		}

		// The session keeps bookmarks newest first.
		bookmarks := sess.Bookmarks()
		if len(bookmarks) > size {
			bookmarks = bookmarks[:size]
		}

		feed := &feeds.Feed{
			Title:       "Bookmarks",
			Link:        &feeds.Link{Href: d.FeedBaseURL},
			Description: "Recently saved bookmarks",
			Created:     timeNow(d),
		}
		for _, b := range bookmarks {
			feed.Items = append(feed.Items, &feeds.Item{
				Title:       b.Title,
				Link:        &feeds.Link{Href: b.URL},
				Description: b.Description,
				Id:          b.ID,
				Created:     time.UnixMilli(b.CreatedAt),
			})
		}

		rss, err := feed.ToRss()
		if err != nil {
			d.Logger.Error("feed rendering failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to render feed")
			return
		}

		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte(rss))
	}
}
