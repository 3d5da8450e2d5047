// Package core holds the worklog domain model: categories, work items,
// time-window arithmetic and per-category aggregation. Everything here is
// pure and storage-agnostic.
package core

import "time"

// Window is an inclusive [Start, End] range in Unix milliseconds used to
// filter work items for display or aggregation.
type Window struct {
	Start int64
	End   int64
}

// Contains reports whether ts falls inside the window, inclusive on both ends.
func (w Window) Contains(ts int64) bool {
	return ts >= w.Start && ts <= w.End
}

// StartOfDay returns midnight (00:00:00.000) of now's local calendar day
// in Unix milliseconds.
func StartOfDay(now time.Time) int64 {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli()
}

// EndOfDay returns 23:59:59.999 of now's local calendar day in Unix
// milliseconds.
func EndOfDay(now time.Time) int64 {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, now.Location()).UnixMilli()
}

// DayWindow returns the inclusive window covering now's local calendar day.
func DayWindow(now time.Time) Window {
	return Window{Start: StartOfDay(now), End: EndOfDay(now)}
}

// WeekRange returns the window for the week containing now shifted by
// offsetWeeks (offset 0 is the current week). Weeks run Monday 00:00:00.000
// through Sunday 23:59:59.999 in local time, so a Sunday belongs to the week
// that started the preceding Monday. Day arithmetic goes through time.Date,
// which normalizes month and year boundaries.
func WeekRange(offsetWeeks int, now time.Time) Window {
	// time.Weekday has Sunday=0; Monday needs no shift, Sunday shifts back 6.
	daysBack := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		daysBack = 6
	}

	y, m, d := now.Date()
	monday := time.Date(y, m, d-daysBack+offsetWeeks*7, 0, 0, 0, 0, now.Location())
	sy, sm, sd := monday.Date()
	sunday := time.Date(sy, sm, sd+6, 23, 59, 59, 999_000_000, monday.Location())

	return Window{Start: monday.UnixMilli(), End: sunday.UnixMilli()}
}

// FormatDate renders a millisecond timestamp as e.g. "Mon, Jan 2".
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).Format("Mon, Jan 2")
}

// FormatDateTime renders a millisecond timestamp as e.g. "Jan 2, 03:04 PM".
func FormatDateTime(ms int64) string {
	return time.UnixMilli(ms).Format("Jan 2, 03:04 PM")
}
