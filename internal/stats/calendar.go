package stats

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// dateRange returns every calendar day from start through end inclusive.
func dateRange(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// startOfWeek returns Monday 00:00 of the week containing t, in UTC.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}

// endOfWeek returns the exclusive end of the week containing t: the
// following Monday 00:00 in UTC.
func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 7)
}

// parseSessionTime parses a stored session timestamp. A trailing Z UTC
// marker is normalized so comparisons behave the same for timestamps
// written with and without it.
func parseSessionTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	trimmed := strings.TrimSuffix(s, "Z")
	if t, err := time.Parse("2006-01-02T15:04:05", trimmed); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(dayLayout, trimmed); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// laterDate compares two stored timestamps and returns the later one.
func laterDate(a, b string) string {
	if parseSessionTime(a).Before(parseSessionTime(b)) {
		return b
	}
	return a
}
