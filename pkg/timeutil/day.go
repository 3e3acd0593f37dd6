package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

var (
	relativePattern = regexp.MustCompile(`^([+-])(\d+)\s*([a-z]+)$`)
	weekdays        = map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}
)

// ParseDay resolves a user supplied day relative to now and returns local
// midnight of that day. Accepted forms:
//
//	2026-10-19, 2026-10-9   ISO (zero padding optional)
//	10/19                   month/day; a date already past rolls to next year
//	today, tomorrow, yesterday
//	+3d, -1w                offsets in days or weeks
//	mon ... sunday          the next such weekday, today excluded
func ParseDay(input string, now time.Time) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(input))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch v {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if t, err := time.ParseInLocation(layoutISO, v, now.Location()); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(layoutISOShort, v, now.Location()); err == nil {
		t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
		return t, nil
	}

	if m := relativePattern.FindStringSubmatch(v); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day offset %q: %w", input, err)
		}
		if m[1] == "-" {
			n = -n
		}
		base, ok := unitMap[m[3]]
		if !ok || base < 24*time.Hour {
			return time.Time{}, fmt.Errorf("unsupported day offset unit %q", m[3])
		}
		return today.AddDate(0, 0, n*int(base/(24*time.Hour))), nil
	}

	if wd, ok := weekdays[v]; ok {
		delta := (int(wd) - int(today.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return today.AddDate(0, 0, delta), nil
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q (try 2026-10-19, 10/19, tomorrow, +3d or friday)", input)
}
