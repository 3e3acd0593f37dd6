package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

// Day prints the heading for date and its items in display order.
func (pp *PrettyPrint) Day(date time.Time, items []item.Item) {
	pp.TitleWithCount(date.Format("Monday, January 2, 2006"), len(items))
	pp.Items(items...)
}

// Week prints one row per day of the Monday-starting week containing anchor.
func (pp *PrettyPrint) Week(anchor, today time.Time, all []item.Item, filter category.Filter) {
	days := calendar.WeekDays(anchor)
	pp.Title(fmt.Sprintf("Week of %s", days[0].Format("January 2, 2006")))

	bold := color.New(color.Bold)
	plain := color.New()
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() - 12)
	tbl.Wrap = true
	for _, d := range days {
		label := plain
		if item.SameDay(d, today) {
			label = bold
		}
		items := calendar.ItemsForDate(all, item.FormatDate(d), filter)
		if len(items) == 0 {
			tbl.AddRow(label.Sprint(d.Format("Mon 02")), faint.Sprint("free"))
			continue
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, pp.short(it))
		}
		tbl.AddRow(label.Sprint(d.Format("Mon 02")), strings.Join(parts, "  "))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) short(it item.Item) string {
	text := it.Title
	if it.HasTime() {
		text = it.Time + " " + text
	}
	attrs := []color.Attribute{}
	if it.Completed {
		attrs = append(attrs, color.Faint, color.CrossedOut)
	}
	return pp.categoryColor(it.Category, attrs...).Sprint("● ") + color.New(attrs...).Sprint(text)
}

const (
	cell      = 6
	gridWidth = 7 * cell
)

// Month prints a Monday-first month grid. Days with items are bold and
// followed by their count; today is underlined.
func (pp *PrettyPrint) Month(anchor, today time.Time, all []item.Item, filter category.Filter) {
	counts := calendar.CountByDate(all, filter)
	days := calendar.MonthDays(anchor)

	count := make([]int, len(days))
	for i, d := range days {
		count[i] = counts[item.FormatDate(d)]
	}
	pp.PrintMonthCount(anchor, today, count)
}

// PrintMonthCount prints the grid for the month of then with count[i]
// items on day i+1.
func (pp *PrettyPrint) PrintMonthCount(then, today time.Time, count []int) {
	w := pp.out()
	tf := color.New(color.Bold)

	m := then.Format("January 2006")
	mid := (gridWidth - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)

	hdr := color.New(color.Faint)
	for _, name := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		_, _ = hdr.Fprintf(w, "%-6s", name)
	}
	_, _ = fmt.Fprintln(w)

	// Pad out the start of the month.
	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location())
	offset := (int(first.Weekday()) + 6) % 7
	_, _ = fmt.Fprint(w, strings.Repeat(" ", cell*offset))

	l1 := color.New(color.Faint)
	l2 := color.New(color.Bold)
	c := color.New(color.FgHiYellow)

	col := offset
	for i := range count {
		day := first.AddDate(0, 0, i)
		printer := l1
		if count[i] > 0 {
			printer = l2
		}
		if item.SameDay(day, today) {
			printer = color.New(color.Bold, color.Underline)
		}
		_, _ = printer.Fprintf(w, "%2d", i+1)
		switch {
		case count[i] > 9:
			_, _ = c.Fprint(w, "+9  ")
		case count[i] > 0:
			_, _ = c.Fprintf(w, "·%d  ", count[i])
		default:
			_, _ = fmt.Fprint(w, "    ")
		}

		col++
		if col == 7 {
			col = 0
			_, _ = fmt.Fprintln(w)
		}
	}
	if col != 0 {
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w)
}

// Navigator prints the view for nav.
func (pp *PrettyPrint) Navigator(nav calendar.Navigator, today time.Time, all []item.Item, filter category.Filter) {
	switch nav.View {
	case calendar.Week:
		pp.Week(nav.Anchor, today, all, filter)
	case calendar.Month:
		pp.Month(nav.Anchor, today, all, filter)
		for _, d := range calendar.MonthDays(nav.Anchor) {
			items := calendar.ItemsForDate(all, item.FormatDate(d), filter)
			if len(items) == 0 {
				continue
			}
			pp.Day(d, items)
		}
	default:
		pp.Day(nav.Anchor, calendar.ItemsForDate(all, nav.AnchorDate(), filter))
	}
	if filter != "" && filter != category.FilterAll {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.out(), "filter: %s\n", category.LabelOf(category.ID(filter), pp.Locale))
	}
}
