package views

import (
	"time"

	"ephemera/internal/domain"
)

const (
	// CalendarWeeks x CalendarDays is the fixed activity grid size.
	CalendarWeeks = 52
	CalendarDays  = 7
)

// calendarAnchor returns local midnight of the grid's first cell:
// exactly 364 days before now, backed up to the preceding Sunday.
// The same rule anchors both counting and per-cell date lookup.
func calendarAnchor(now time.Time) time.Time {
	d := now.AddDate(0, 0, -364)
	d = d.AddDate(0, 0, -int(d.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// CellDate returns the calendar date of one grid cell.
func CellDate(now time.Time, weekIndex, dayIndex int) time.Time {
	return calendarAnchor(now).AddDate(0, 0, weekIndex*CalendarDays+dayIndex)
}

// Calendar builds the 52x7 daily-activity grid ending at the present.
// Each cell counts bookmarks created within that local calendar day.
// Every bookmark in range lands in exactly one cell.
func Calendar(bookmarks []*domain.Bookmark, now time.Time) [][]int {
	anchor := calendarAnchor(now)

	// Day boundaries, computed once. AddDate keeps midnight stable
	// across DST transitions, so boundaries cannot drift.
	bounds := make([]int64, CalendarWeeks*CalendarDays+1)
	for i := range bounds {
		bounds[i] = anchor.AddDate(0, 0, i).UnixMilli()
	}

	counts := make([]int, CalendarWeeks*CalendarDays)
	for _, b := range bookmarks {
		idx := dayIndex(bounds, b.CreatedAt)
		if idx >= 0 {
			counts[idx]++
		}
	}

	grid := make([][]int, CalendarWeeks)
	for w := 0; w < CalendarWeeks; w++ {
		grid[w] = counts[w*CalendarDays : (w+1)*CalendarDays]
	}
	return grid
}

// dayIndex locates ts within the day boundaries via binary search,
// returning -1 for timestamps outside the grid.
func dayIndex(bounds []int64, ts int64) int {
	if ts < bounds[0] || ts >= bounds[len(bounds)-1] {
		return -1
	}
	lo, hi := 0, len(bounds)-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if ts >= bounds[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
