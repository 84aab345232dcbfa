package views

import (
	"math"
	"sort"
	"strconv"
	"time"

	"ephemera/internal/domain"
)

const week = 7 * 24 * time.Hour

// TagCount pairs a tag with its frequency across the collection.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// DayCount is one bucket of the rolling last-7-days activity series.
type DayCount struct {
	Name  string `json:"name"` // short weekday, ex: "Mon"
	Count int    `json:"count"`
}

// Slice is one bucket of the category distribution. Percentages
// always sum to exactly 100 when any bucket exists.
type Slice struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// Overview bundles the dashboard aggregates. Recomputed from scratch
// on every call; nothing here is cached.
type Overview struct {
	TotalBookmarks int        `json:"totalBookmarks"`
	UniqueTags     int        `json:"uniqueTags"`
	ThisWeek       int        `json:"thisWeek"`
	LastWeek       int        `json:"lastWeek"`
	ThisMonth      int        `json:"thisMonth"`
	WeeklyGrowth   string     `json:"weeklyGrowth"`
	DailyActivity  []DayCount `json:"dailyActivity"`
	Distribution   []Slice    `json:"distribution"`
	TopTags        []TagCount `json:"topTags"`
}

// CategoryCounts recomputes BookmarkCount for every category from the
// live bookmark collection. The persisted count is never trusted.
func CategoryCounts(bookmarks []*domain.Bookmark, categories []*domain.Category) []*domain.Category {
	counts := make(map[string]int, len(categories))
	for _, b := range bookmarks {
		if b.CategoryID != "" {
			counts[b.CategoryID]++
		}
	}

	out := make([]*domain.Category, len(categories))
	for i, c := range categories {
		cc := c.Clone()
		cc.BookmarkCount = counts[c.ID]
		out[i] = cc
	}
	return out
}

// CategoryCount counts bookmarks referencing one category id.
func CategoryCount(bookmarks []*domain.Bookmark, categoryID string) int {
	n := 0
	for _, b := range bookmarks {
		if b.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// TopTags returns the n most frequent tags, descending by count, ties
// broken by first-encountered order.
func TopTags(bookmarks []*domain.Bookmark, n int) []TagCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, b := range bookmarks {
		for _, t := range b.Tags {
			if _, ok := counts[t]; !ok {
				firstSeen[t] = order
				order++
			}
			counts[t]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for t, c := range counts {
		tags = append(tags, TagCount{Tag: t, Count: c})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return firstSeen[tags[i].Tag] < firstSeen[tags[j].Tag]
	})

	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// UniqueTagCount counts distinct tag strings across the collection.
func UniqueTagCount(bookmarks []*domain.Bookmark) int {
	seen := make(map[string]bool)
	for _, b := range bookmarks {
		for _, t := range b.Tags {
			seen[t] = true
		}
	}
	return len(seen)
}

// WeeklyGrowth renders the week-over-week change as a percentage
// string rounded to the nearest integer. Zero last week with activity
// this week reads "+100"; no activity in either week reads "0".
func WeeklyGrowth(thisWeek, lastWeek int) string {
	if lastWeek == 0 {
		if thisWeek > 0 {
			return "+100"
		}
		return "0"
	}
	growth := float64(thisWeek-lastWeek) / float64(lastWeek) * 100
	return strconv.Itoa(int(math.Round(growth)))
}

// Distribution groups bookmark counts by category (absent category
// goes into an "Uncategorized" bucket), keeps the top 4 by count and
// converts them to integer percentages of their own subtotal. The
// largest bucket absorbs the rounding residue so the output always
// sums to exactly 100. Ids pointing at unloaded categories render as
// "Unknown".
func Distribution(bookmarks []*domain.Bookmark, categories []*domain.Category) []Slice {
	const uncategorized = "Uncategorized"

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, b := range bookmarks {
		key := b.CategoryID
		if key == "" {
			key = uncategorized
		}
		if _, ok := counts[key]; !ok {
			firstSeen[key] = order
			order++
		}
		counts[key]++
	}

	if len(counts) == 0 {
		return []Slice{}
	}

	type bucket struct {
		key   string
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, bucket{key: k, count: c})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return firstSeen[buckets[i].key] < firstSeen[buckets[j].key]
	})
	if len(buckets) > 4 {
		buckets = buckets[:4]
	}

	subtotal := 0
	for _, b := range buckets {
		subtotal += b.count
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]Slice, len(buckets))
	sum := 0
	for i, b := range buckets {
		name := names[b.key]
		if name == "" {
			if b.key == uncategorized {
				name = uncategorized
			} else {
				name = "Unknown"
			}
		}
		pct := int(math.Round(float64(b.count) / float64(subtotal) * 100))
		out[i] = Slice{Name: name, Percent: pct}
		sum += pct
	}

	// The first slice is the largest bucket; it soaks up the residue.
	out[0].Percent += 100 - sum
	return out
}

// ComputeOverview derives every dashboard aggregate from one snapshot.
// Calendar-month and weekday boundaries use now's location.
func ComputeOverview(bookmarks []*domain.Bookmark, categories []*domain.Category, now time.Time) Overview {
	nowMs := now.UnixMilli()
	weekAgo := nowMs - week.Milliseconds()
	twoWeeksAgo := nowMs - 2*week.Milliseconds()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).UnixMilli()

	thisWeek, lastWeek, thisMonth := 0, 0, 0
	for _, b := range bookmarks {
		if b.CreatedAt >= weekAgo {
			thisWeek++
		} else if b.CreatedAt >= twoWeeksAgo {
			lastWeek++
		}
		if b.CreatedAt >= monthStart {
			thisMonth++
		}
	}

	return Overview{
		TotalBookmarks: len(bookmarks),
		UniqueTags:     UniqueTagCount(bookmarks),
		ThisWeek:       thisWeek,
		LastWeek:       lastWeek,
		ThisMonth:      thisMonth,
		WeeklyGrowth:   WeeklyGrowth(thisWeek, lastWeek),
		DailyActivity:  dailyActivity(bookmarks, now),
		Distribution:   Distribution(bookmarks, categories),
		TopTags:        TopTags(bookmarks, 5),
	}
}

// dailyActivity buckets the last 7 rolling 24h windows, oldest first,
// labelled with the weekday the window ends on. The newest window ends
// at now, so a bookmark saved a minute ago lands in the last bucket.
func dailyActivity(bookmarks []*domain.Bookmark, now time.Time) []DayCount {
	nowMs := now.UnixMilli()
	day := (24 * time.Hour).Milliseconds()

	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		end := nowMs - int64(i)*day
		start := end - day
		count := 0
		for _, b := range bookmarks {
			if b.CreatedAt >= start && b.CreatedAt < end {
				count++
			}
		}
		name := time.UnixMilli(end).In(now.Location()).Format("Mon")
		out = append(out, DayCount{Name: name, Count: count})
	}
	return out
}
