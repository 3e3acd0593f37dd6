// Package calendar holds the date navigator and the day/week/month window
// arithmetic shared by every view of the agenda.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/agenda/pkg/item"
)

// Granularity is the unit a view covers and navigation steps by.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// Granularities lists the supported views in display order.
func Granularities() []Granularity {
	return []Granularity{Day, Week, Month}
}

// ParseGranularity accepts day/week/month and their first letters.
func ParseGranularity(raw string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "d", "day", "":
		return Day, nil
	case "w", "week":
		return Week, nil
	case "m", "month":
		return Month, nil
	}
	return "", fmt.Errorf("unknown view %q (want day, week or month)", raw)
}

// String implements pflag.Value.
func (g *Granularity) String() string {
	if g == nil || *g == "" {
		return string(Day)
	}
	return string(*g)
}

// Set implements pflag.Value.
func (g *Granularity) Set(raw string) error {
	parsed, err := ParseGranularity(raw)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Type implements pflag.Value.
func (g *Granularity) Type() string {
	return "view"
}

// Direction is the sign of a navigation step.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Navigator is an anchor date plus the granularity used to move it. The
// anchor is always local midnight.
type Navigator struct {
	Anchor time.Time
	View   Granularity
}

// NewNavigator returns a day view anchored at the day containing now.
func NewNavigator(now time.Time) Navigator {
	return Navigator{Anchor: item.Midnight(now), View: Day}
}

// Advance moves the anchor by one unit of the current view. Month steps use
// calendar arithmetic, so Jan 31 forward lands in early March.
func (n Navigator) Advance(dir Direction) Navigator {
	step := int(dir)
	switch n.View {
	case Week:
		n.Anchor = n.Anchor.AddDate(0, 0, 7*step)
	case Month:
		n.Anchor = n.Anchor.AddDate(0, step, 0)
	default:
		n.Anchor = n.Anchor.AddDate(0, 0, step)
	}
	return n
}

// JumpToToday moves the anchor to the day containing now, keeping the view.
func (n Navigator) JumpToToday(now time.Time) Navigator {
	n.Anchor = item.Midnight(now)
	return n
}

// SetView changes the granularity without moving the anchor.
func (n Navigator) SetView(g Granularity) Navigator {
	n.View = g
	return n
}

// AnchorDate is the anchor as YYYY-MM-DD.
func (n Navigator) AnchorDate() string {
	return item.FormatDate(n.Anchor)
}

// Window returns the days covered by the current view.
func (n Navigator) Window() []time.Time {
	return Window(n.Anchor, n.View)
}

// Title is a short human heading for the current window.
func (n Navigator) Title() string {
	switch n.View {
	case Week:
		start := WeekStart(n.Anchor)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("Week of %s – %s", start.Format("Mon Jan 2"), end.Format("Mon Jan 2, 2006"))
	case Month:
		return n.Anchor.Format("January 2006")
	default:
		return n.Anchor.Format("Monday, January 2, 2006")
	}
}
