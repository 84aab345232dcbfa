package views

import (
	"testing"
	"time"

	"ephemera/internal/domain"
)

func TestCalendarAnchorIsSundayMidnight(t *testing.T) {
	// Aug 20 2026 is a Thursday; 364 days earlier is Aug 21 2025
	// (Thursday), which backs up to Sunday Aug 17 2025.
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)
	anchor := calendarAnchor(now)

	if anchor.Weekday() != time.Sunday {
		t.Errorf("anchor weekday = %v, want Sunday", anchor.Weekday())
	}
	if anchor.Hour() != 0 || anchor.Minute() != 0 || anchor.Second() != 0 {
		t.Errorf("anchor = %v, want midnight", anchor)
	}
	want := time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC)
	if !anchor.Equal(want) {
		t.Errorf("anchor = %v, want %v", anchor, want)
	}
}

func TestCalendarGridShape(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	grid := Calendar(nil, now)

	if len(grid) != CalendarWeeks {
		t.Fatalf("weeks = %d, want %d", len(grid), CalendarWeeks)
	}
	for w, week := range grid {
		if len(week) != CalendarDays {
			t.Fatalf("week %d has %d days, want %d", w, len(week), CalendarDays)
		}
	}
}

func TestCalendarCountsByLocalDay(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	anchor := calendarAnchor(now)

	bookmarks := []*domain.Bookmark{
		// Two on the first grid day, at its very start and very end.
		{ID: "1", CreatedAt: anchor.UnixMilli()},
		{ID: "2", CreatedAt: anchor.AddDate(0, 0, 1).UnixMilli() - 1},
		// One on day 10 (week 1, day 3).
		{ID: "3", CreatedAt: anchor.AddDate(0, 0, 10).Add(6 * time.Hour).UnixMilli()},
		// Out of range on both sides.
		{ID: "4", CreatedAt: anchor.UnixMilli() - 1},
		{ID: "5", CreatedAt: anchor.AddDate(0, 0, CalendarWeeks*CalendarDays).UnixMilli()},
	}

	grid := Calendar(bookmarks, now)
	if grid[0][0] != 2 {
		t.Errorf("grid[0][0] = %d, want 2", grid[0][0])
	}
	if grid[1][3] != 1 {
		t.Errorf("grid[1][3] = %d, want 1", grid[1][3])
	}

	total := 0
	for _, week := range grid {
		for _, c := range week {
			total += c
		}
	}
	if total != 3 {
		t.Errorf("total counted = %d, want 3; out-of-range entries must be dropped", total)
	}
}

func TestCellDate(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	anchor := calendarAnchor(now)

	if got := CellDate(now, 0, 0); !got.Equal(anchor) {
		t.Errorf("CellDate(0,0) = %v, want %v", got, anchor)
	}
	if got := CellDate(now, 2, 3); !got.Equal(anchor.AddDate(0, 0, 17)) {
		t.Errorf("CellDate(2,3) = %v, want anchor+17d", got)
	}
}
