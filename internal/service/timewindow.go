package service

import (
	"time"
)

// TimeRange is a symbolic window selector resolved against a reference time.
type TimeRange string

const (
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

const dateLayout = "2006-01-02"

// resolveTimeWindow converts a time-range token into an inclusive
// [start, end] interval of YYYY-MM-DD strings anchored at now. The end bound
// is always now's date. An absent or unrecognized token returns ok=false,
// meaning no date bound at all.
//
// now is passed in explicitly so callers (and tests) control the clock.
func resolveTimeWindow(token string, now time.Time) (start, end string, ok bool) {
	var from time.Time
	switch TimeRange(token) {
	case TimeRangeWeek:
		from = startOfWeek(now)
	case TimeRangeMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case TimeRangeYear:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return "", "", false
	}
	return from.Format(dateLayout), now.Format(dateLayout), true
}

// startOfWeek returns the Monday of now's ISO week.
func startOfWeek(now time.Time) time.Time {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -offset)
}

// endOfWeek returns the Sunday of now's ISO week.
func endOfWeek(now time.Time) time.Time {
	return startOfWeek(now).AddDate(0, 0, 6)
}
