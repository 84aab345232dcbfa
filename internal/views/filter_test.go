package views

import (
	"testing"

	"ephemera/internal/domain"
)

func sample() []*domain.Bookmark {
	return []*domain.Bookmark{
		{ID: "1", Title: "Go Blog", URL: "https://go.dev/blog", Tags: []string{"go", "news"}, CategoryID: "work", CreatedAt: 400, ClickCount: 2},
		{ID: "2", Title: "Redis Docs", URL: "https://redis.io/docs", Tags: []string{"redis"}, CategoryID: "work", IsFavorite: true, CreatedAt: 300, ClickCount: 9},
		{ID: "3", Title: "cat pictures", URL: "https://cats.example", Tags: []string{"fun"}, CreatedAt: 200, IsArchived: true, ClickCount: 9},
		{ID: "4", Title: "Another go thing", URL: "https://example.com", Tags: []string{"go"}, CategoryID: "personal", IsFavorite: true, CreatedAt: 100},
	}
}

func ids(bookmarks []*domain.Bookmark) []string {
	out := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no constraints newest first", Filter{}, []string{"1", "2", "3", "4"}},
		{"query matches title case-insensitively", Filter{Query: "GO"}, []string{"1", "4"}},
		{"query matches url", Filter{Query: "redis.io"}, []string{"2"}},
		{"query matches tag", Filter{Query: "fun"}, []string{"3"}},
		{"tag requires exact membership", Filter{Tag: "go"}, []string{"1", "4"}},
		{"tag is not a substring match", Filter{Tag: "g"}, nil},
		{"category filter", Filter{CategoryID: "work"}, []string{"1", "2"}},
		{"favorites tab", Filter{Tab: TabFavorites}, []string{"2", "4"}},
		{"archived tab", Filter{Tab: TabArchived}, []string{"3"}},
		{"oldest first", Filter{Sort: SortOldest}, []string{"4", "3", "2", "1"}},
		{"title ascending", Filter{Sort: SortTitle}, []string{"4", "3", "1", "2"}},
		{"most visited, ties keep newest-first order", Filter{Sort: SortMostVisited}, []string{"2", "3", "1", "4"}},
		{"combined", Filter{Query: "go", Tab: TabFavorites}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(sample(), tt.filter))
			if !equalIDs(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	Apply(in, Filter{Sort: SortOldest})
	if in[0].ID != "1" {
		t.Error("input slice reordered")
	}
}

func TestParseTabAndSortDefaults(t *testing.T) {
	if got := ParseTab("bogus"); got != TabAll {
		t.Errorf("ParseTab(bogus) = %v, want all", got)
	}
	if got := ParseTab("Favorites"); got != TabFavorites {
		t.Errorf("ParseTab(Favorites) = %v, want favorites", got)
	}
	if got := ParseSort(""); got != SortNewest {
		t.Errorf("ParseSort(empty) = %v, want newest", got)
	}
	if got := ParseSort("mostVisited"); got != SortMostVisited {
		t.Errorf("ParseSort(mostVisited) = %v", got)
	}
}

func TestAllTags(t *testing.T) {
	got := AllTags(sample())
	want := []string{"go", "news", "redis", "fun"}
	if !equalIDs(got, want) {
		t.Errorf("AllTags() = %v, want %v", got, want)
	}
}
