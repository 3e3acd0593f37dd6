// Package ics converts agenda items to and from iCalendar (RFC 5545).
package ics

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/recur"
)

// PropertyCompleted carries the completion flag, which VEVENT has no
// standard property for.
const PropertyCompleted ical.ComponentProperty = "X-AGENDA-COMPLETED"

const (
	layoutDate     = "20060102"
	layoutFloating = "20060102T150405"
	layoutUTC      = "20060102T150405Z"
)

// ExportOptions tunes Export.
type ExportOptions struct {
	// Now stamps DTSTAMP; zero means time.Now.
	Now time.Time
	// Duration of timed events; zero means one hour.
	Duration time.Duration
}

// Export writes one VEVENT per item. Untimed items become all-day events;
// timed items use floating local times.
func Export(w io.Writer, items []item.Item, opts ExportOptions) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	dur := opts.Duration
	if dur <= 0 {
		dur = time.Hour
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//tableflip.dev//agenda//EN")

	for _, it := range items {
		day, ok := it.Day()
		if !ok {
			return fmt.Errorf("ics: item %s has invalid date %q", it.ID, it.Date)
		}
		ev := cal.AddEvent(it.ID)
		ev.SetDtStampTime(now)
		ev.SetSummary(it.Title)
		if it.Description != "" {
			ev.SetDescription(it.Description)
		}

		if clock, err := item.ParseClock(it.Time); it.HasTime() && err == nil {
			start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
			ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(layoutFloating))
			ev.SetProperty(ical.ComponentPropertyDtEnd, start.Add(dur).Format(layoutFloating))
		} else {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}

		ev.SetProperty(ical.ComponentPropertyCategories, string(it.Category))
		ev.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(priorityToICS(it.Priority)))
		if it.Completed {
			ev.SetProperty(ical.ComponentPropertyStatus, "COMPLETED")
			ev.SetProperty(PropertyCompleted, "TRUE")
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// Imported is one VEVENT converted to item fields.
type Imported struct {
	UID       string
	Fields    item.Fields
	Completed bool
}

// ImportOptions tunes Import.
type ImportOptions struct {
	// Category is used when CATEGORIES names no registry category.
	Category category.ID
	// ExpandLimit caps RRULE expansion; zero selects recur.DefaultLimit.
	// Negative disables expansion and imports only the first occurrence.
	ExpandLimit int
}

// Import parses VEVENTs into item fields. Recurring events are expanded into
// one entry per occurrence. Events without a usable DTSTART are skipped.
func Import(r io.Reader, opts ImportOptions) ([]Imported, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}
	fallback := opts.Category
	if !category.Valid(fallback) {
		fallback = category.Other
	}

	var out []Imported
	for _, ev := range cal.Events() {
		date, clock, err := startOf(ev)
		if err != nil {
			continue
		}
		base := Imported{
			UID: value(ev, ical.ComponentPropertyUniqueId),
			Fields: item.Fields{
				Title:       value(ev, ical.ComponentPropertySummary),
				Description: value(ev, ical.ComponentPropertyDescription),
				Date:        item.FormatDate(date),
				Time:        clock,
				Category:    categoryOf(value(ev, ical.ComponentPropertyCategories), fallback),
				Priority:    priorityFromICS(value(ev, ical.ComponentPropertyPriority)),
			},
			Completed: strings.EqualFold(value(ev, PropertyCompleted), "TRUE") ||
				strings.EqualFold(value(ev, ical.ComponentPropertyStatus), "COMPLETED"),
		}
		if strings.TrimSpace(base.Fields.Title) == "" {
			base.Fields.Title = "(untitled)"
		}

		rule := value(ev, ical.ComponentPropertyRrule)
		if rule == "" || opts.ExpandLimit < 0 {
			out = append(out, base)
			continue
		}
		dates, err := recur.Expand(rule, date, opts.ExpandLimit)
		if err != nil {
			return nil, fmt.Errorf("ics: event %s: %w", base.UID, err)
		}
		for _, d := range dates {
			occ := base
			occ.Fields.Date = d
			out = append(out, occ)
		}
	}
	return out, nil
}

func value(ev *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ev.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// startOf reads DTSTART as a local date and, for timed events, an HH:MM
// clock. UTC times are converted to local time.
func startOf(ev *ical.VEvent) (time.Time, string, error) {
	prop := ev.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return time.Time{}, "", errors.New("ics: missing DTSTART")
	}
	v := strings.TrimSpace(prop.Value)

	loc := time.Local
	if tz, ok := prop.ICalParameters["TZID"]; ok && len(tz) > 0 {
		if l, err := time.LoadLocation(tz[0]); err == nil {
			loc = l
		}
	}

	switch {
	case !strings.Contains(v, "T"):
		d, err := time.ParseInLocation(layoutDate, v, time.Local)
		return d, "", err
	case strings.HasSuffix(v, "Z"):
		t, err := time.Parse(layoutUTC, v)
		if err != nil {
			return time.Time{}, "", err
		}
		t = t.In(time.Local)
		return item.Midnight(t), t.Format(item.LayoutClock), nil
	default:
		t, err := time.ParseInLocation(layoutFloating, v, loc)
		if err != nil {
			return time.Time{}, "", err
		}
		t = t.In(time.Local)
		return item.Midnight(t), t.Format(item.LayoutClock), nil
	}
}

// categoryOf picks the first registry id in a comma separated CATEGORIES
// value.
func categoryOf(raw string, fallback category.ID) category.ID {
	for _, part := range strings.Split(raw, ",") {
		if id, err := category.Parse(part); err == nil {
			return id
		}
	}
	return fallback
}

func priorityToICS(p category.Priority) int {
	switch p {
	case category.High:
		return 1
	case category.Low:
		return 9
	default:
		return 5
	}
}

// priorityFromICS maps 1-4 to high, 5 and undefined (0) to medium, 6-9 to
// low.
func priorityFromICS(raw string) category.Priority {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil || n == 0 || n == 5:
		return category.Medium
	case n < 5:
		return category.High
	default:
		return category.Low
	}
}
