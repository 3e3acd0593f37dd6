package item

import (
	"fmt"
	"time"
)

const (
	// LayoutDate is the persisted date format.
	LayoutDate = "2006-01-02"
	// LayoutClock is the persisted time-of-day format.
	LayoutClock = "15:04"
)

// ParseDate parses an ISO calendar date at local midnight.
func ParseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutDate, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("item: invalid date %q: %w", v, err)
	}
	return t, nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(LayoutDate)
}

// ParseClock validates a zero-padded HH:MM clock value.
func ParseClock(v string) (time.Time, error) {
	if len(v) != len(LayoutClock) {
		return time.Time{}, fmt.Errorf("item: invalid time %q: want HH:MM", v)
	}
	t, err := time.Parse(LayoutClock, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("item: invalid time %q: %w", v, err)
	}
	return t, nil
}

// ClockMinutes returns minutes since midnight for an HH:MM value, or -1.
func ClockMinutes(v string) int {
	t, err := ParseClock(v)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// Midnight truncates t to the start of its local day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
