package views

import (
	"sort"
	"strings"

	"ephemera/internal/domain"
)

// Tab narrows a listing to one of the three top-level views.
type Tab string

const (
	TabAll       Tab = "all"
	TabFavorites Tab = "favorites"
	TabArchived  Tab = "archived"
)

// Sort selects one of the four total orderings. All of them are
// stable: ties keep their prior relative order.
type Sort string

const (
	SortNewest      Sort = "newest"
	SortOldest      Sort = "oldest"
	SortTitle       Sort = "title"
	SortMostVisited Sort = "mostVisited"
)

// ParseTab maps a query-string value onto a Tab, defaulting to All.
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(s)) {
	case TabFavorites:
		return TabFavorites
	case TabArchived:
		return TabArchived
	default:
		return TabAll
	}
}

// ParseSort maps a query-string value onto a Sort, defaulting to
// newest-first.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest:
		return SortOldest
	case SortTitle:
		return SortTitle
	case SortMostVisited:
		return SortMostVisited
	default:
		return SortNewest
	}
}

// Filter is the predicate chain plus ordering for a bookmark listing.
// Zero values mean "no constraint".
type Filter struct {
	// Query matches case-insensitively as a substring of the title,
	// the URL or any tag.
	Query string

	// Tag requires exact tag membership.
	Tag string

	// CategoryID narrows to one category.
	CategoryID string

	Tab  Tab
	Sort Sort
}

// Apply filters and sorts a snapshot. The input is never modified; the
// result is a fresh slice sharing the snapshot's records.
func Apply(bookmarks []*domain.Bookmark, f Filter) []*domain.Bookmark {
	query := strings.ToLower(f.Query)

	out := make([]*domain.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if !matchesQuery(b, query) {
			continue
		}
		if f.Tag != "" && !hasTag(b, f.Tag) {
			continue
		}
		if f.CategoryID != "" && b.CategoryID != f.CategoryID {
			continue
		}
		if !matchesTab(b, f.Tab) {
			continue
		}
		out = append(out, b)
	}

	sortBookmarks(out, f.Sort)
	return out
}

func matchesQuery(b *domain.Bookmark, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(b.URL), query) {
		return true
	}
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

func hasTag(b *domain.Bookmark, tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesTab(b *domain.Bookmark, tab Tab) bool {
	switch tab {
	case TabFavorites:
		return b.IsFavorite
	case TabArchived:
		return b.IsArchived
	default:
		return true
	}
}

func sortBookmarks(bookmarks []*domain.Bookmark, by Sort) {
	switch by {
	case SortOldest:
		sort.SliceStable(bookmarks, func(i, j int) bool {
			return bookmarks[i].CreatedAt < bookmarks[j].CreatedAt
		})
	case SortTitle:
		sort.SliceStable(bookmarks, func(i, j int) bool {
			return lessTitle(bookmarks[i].Title, bookmarks[j].Title)
		})
	case SortMostVisited:
		sort.SliceStable(bookmarks, func(i, j int) bool {
			return bookmarks[i].ClickCount > bookmarks[j].ClickCount
		})
	default: // SortNewest
		sort.SliceStable(bookmarks, func(i, j int) bool {
			return bookmarks[i].CreatedAt > bookmarks[j].CreatedAt
		})
	}
}

// lessTitle compares titles case-insensitively, falling back to the
// raw strings so equal-folded titles still order deterministically.
func lessTitle(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// AllTags returns every distinct tag across the snapshot, in
// first-encountered order.
func AllTags(bookmarks []*domain.Bookmark) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, b := range bookmarks {
		for _, t := range b.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}
