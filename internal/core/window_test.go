package core

import (
	"testing"
	"time"
)

const dayMillis = int64(86_399_999)

func TestDayWindowSpan(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
	}{
		{
			name: "midday",
			now:  time.Date(2024, 3, 14, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "exactly midnight",
			now:  time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "last millisecond of day",
			now:  time.Date(2024, 3, 14, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name: "new year's eve",
			now:  time.Date(2023, 12, 31, 18, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := StartOfDay(tt.now)
			end := EndOfDay(tt.now)
			nowMs := tt.now.UnixMilli()

			if start > nowMs || nowMs > end {
				t.Errorf("now %d outside [%d, %d]", nowMs, start, end)
			}
			if got := end - start; got != dayMillis {
				t.Errorf("day span = %d ms, want %d", got, dayMillis)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		offset    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "wednesday maps to its monday",
			now:       time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC), // Wed
			offset:    0,
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 17, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:      "monday is its own week start",
			now:       time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			offset:    0,
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 17, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:      "sunday belongs to the preceding monday's week",
			now:       time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC), // Sun
			offset:    0,
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 17, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:      "previous week",
			now:       time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC),
			offset:    -1,
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:      "month boundary rolls over",
			now:       time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC), // Tue
			offset:    0,
			wantStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 7, 23, 59, 59, 999_000_000, time.UTC),
		},
		{
			name:      "year boundary rolls over",
			now:       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), // Wed
			offset:    0,
			wantStart: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 5, 23, 59, 59, 999_000_000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekRange(tt.offset, tt.now)
			if got.Start != tt.wantStart.UnixMilli() {
				t.Errorf("start = %s, want %s",
					time.UnixMilli(got.Start).UTC(), tt.wantStart)
			}
			if got.End != tt.wantEnd.UnixMilli() {
				t.Errorf("end = %s, want %s",
					time.UnixMilli(got.End).UTC(), tt.wantEnd)
			}
		})
	}
}

func TestWeekRangeAlwaysMondayToSunday(t *testing.T) {
	// Walk every day of a month and every nearby offset.
	for day := 1; day <= 31; day++ {
		for offset := -2; offset <= 2; offset++ {
			now := time.Date(2024, 3, day, 13, 45, 0, 0, time.UTC)
			w := WeekRange(offset, now)

			start := time.UnixMilli(w.Start).UTC()
			end := time.UnixMilli(w.End).UTC()
			if start.Weekday() != time.Monday {
				t.Fatalf("day=%d offset=%d: start %s is %s, want Monday",
					day, offset, start, start.Weekday())
			}
			if end.Weekday() != time.Sunday {
				t.Fatalf("day=%d offset=%d: end %s is %s, want Sunday",
					day, offset, end, end.Weekday())
			}
			if got := w.End - w.Start; got != 6*24*3_600_000+dayMillis {
				t.Fatalf("day=%d offset=%d: span = %d ms", day, offset, got)
			}
		}
	}
}

func TestWeekRangeOffsetsAreSevenDaysApart(t *testing.T) {
	now := time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC)
	const week = int64(7 * 24 * 3_600_000)

	for n := -3; n <= 3; n++ {
		cur := WeekRange(n, now)
		next := WeekRange(n+1, now)
		if next.Start-cur.Start != week {
			t.Errorf("offset %d->%d: start delta = %d, want %d",
				n, n+1, next.Start-cur.Start, week)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 100, End: 200}

	for _, tc := range []struct {
		ts   int64
		want bool
	}{
		{99, false},
		{100, true}, // inclusive start
		{150, true},
		{200, true}, // inclusive end
		{201, false},
	} {
		if got := w.Contains(tc.ts); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.ts, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 11, 14, 5, 0, 0, time.Local).UnixMilli()
	if got := FormatDate(ts); got != "Mon, Mar 11" {
		t.Errorf("FormatDate = %q, want %q", got, "Mon, Mar 11")
	}
	if got := FormatDateTime(ts); got != "Mar 11, 02:05 PM" {
		t.Errorf("FormatDateTime = %q, want %q", got, "Mar 11, 02:05 PM")
	}
}
