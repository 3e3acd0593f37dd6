package calendar

import (
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

// WeekStart returns local midnight of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	day := item.Midnight(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns the seven days of the Monday-starting week containing t.
func WeekDays(t time.Time) []time.Time {
	start := WeekStart(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekDates is WeekDays formatted as YYYY-MM-DD.
func WeekDates(t time.Time) []string {
	days := WeekDays(t)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = item.FormatDate(d)
	}
	return out
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// MonthDays returns every day of the calendar month containing t.
func MonthDays(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	n := DaysIn(t)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// Window returns the days a view of granularity g anchored at t covers.
func Window(t time.Time, g Granularity) []time.Time {
	switch g {
	case Week:
		return WeekDays(t)
	case Month:
		return MonthDays(t)
	default:
		return []time.Time{item.Midnight(t)}
	}
}

// InWeek reports whether the ISO date falls in the Monday-starting week that
// contains anchor. Malformed dates are never in the window.
func InWeek(date string, anchor time.Time) bool {
	d, err := item.ParseDate(date)
	if err != nil {
		return false
	}
	start := WeekStart(anchor)
	end := start.AddDate(0, 0, 7)
	return !d.Before(start) && d.Before(end)
}

// InWeekItems returns the items dated inside the week containing anchor, in
// store order.
func InWeekItems(items []item.Item, anchor time.Time) []item.Item {
	var out []item.Item
	for _, it := range items {
		if InWeek(it.Date, anchor) {
			out = append(out, it)
		}
	}
	return out
}

// ItemsForDate returns the items whose date equals date and whose category
// passes filter. Untimed items come first in store order, then timed items
// by ascending HH:MM.
func ItemsForDate(items []item.Item, date string, filter category.Filter) []item.Item {
	var out []item.Item
	for _, it := range items {
		if it.Date != date || !filter.Match(it.Category) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasTime() != b.HasTime() {
			return !a.HasTime()
		}
		return clockKey(a.Time) < clockKey(b.Time)
	})
	return out
}

// CountByDate tallies filtered items per ISO date.
func CountByDate(items []item.Item, filter category.Filter) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		if filter.Match(it.Category) {
			counts[it.Date]++
		}
	}
	return counts
}

func clockKey(v string) int {
	if m := item.ClockMinutes(v); m >= 0 {
		return m
	}
	// Unparseable times sort after every valid one.
	return 24 * 60
}
