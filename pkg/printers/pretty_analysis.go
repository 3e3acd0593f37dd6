package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/category"
)

// Analysis prints the weekly snapshot with a bar per category.
func (pp *PrettyPrint) Analysis(w analysis.Weekly) {
	pp.Title(fmt.Sprintf("Week %s → %s", w.WeekStart, w.WeekEnd))

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Tasks"), fmt.Sprintf("%d/%d done", w.CompletedTasks, w.TotalTasks))
	tbl.AddRow(bold.Sprint("Productivity"), pp.percent(w.ProductivityScore))
	tbl.AddRow(bold.Sprint("Work/life balance"), pp.percent(w.WorkLifeBalance))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	cats := uitable.New()
	cats.Separator = "  "
	for _, c := range category.All() {
		n := w.TimeByCategory[c.ID]
		bar := pp.categoryColor(c.ID).Sprint(strings.Repeat("■", n))
		cats.AddRow(c.LabelFor(pp.Locale), fmt.Sprintf("%2d", n), bar)
	}
	cats.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), cats)
	pp.NewLine()
}

func (pp *PrettyPrint) percent(v int) string {
	attr := color.FgRed
	switch {
	case v >= 75:
		attr = color.FgGreen
	case v >= 40:
		attr = color.FgYellow
	}
	if pp.Dark {
		attr += 60 // bright variant
	}
	return color.New(attr).Sprintf("%3d%%", v)
}

// Suggestions prints each suggestion as a bullet, or noneText.
func (pp *PrettyPrint) Suggestions(list []string, noneText string) {
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), noneText)
		return
	}
	b := color.New(color.FgHiCyan)
	for _, s := range list {
		wrapped := wordwrap.String(s, pp.width()-2)
		lines := strings.Split(wrapped, "\n")
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", b.Sprint("•"), lines[0])
		for _, l := range lines[1:] {
			_, _ = fmt.Fprintf(pp.out(), "  %s\n", l)
		}
	}
}

// Quote prints the daily quote.
func (pp *PrettyPrint) Quote(q string) {
	i := color.New(color.Italic)
	_, _ = i.Fprintf(pp.out(), "“%s”\n", wordwrap.String(q, pp.width()-2))
	pp.NewLine()
}

// Legend prints the category and priority tables.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Label"), bold.Sprint("Colour"))
	for _, c := range category.All() {
		tbl.AddRow(string(c.ID), c.LabelFor(pp.Locale), pp.categoryColor(c.ID).Sprintf("● %s", c.Color))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pri := uitable.New()
	pri.Separator = "  "
	pri.AddRow(bold.Sprint("Marker"), bold.Sprint("Priority"), bold.Sprint("Weight"))
	for _, p := range category.Priorities() {
		pri.AddRow(pp.priorityColor(p.Priority).Sprint(p.Marker), string(p.Priority), fmt.Sprint(p.Weight))
	}
	pri.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), pri)
	pp.NewLine()
}

// Report prints completed items grouped by category.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("Completed %s → %s", r.Since.Format("Jan 2"), r.Until.Format("Jan 2, 2006")), r.Total)
	if r.Total == 0 {
		pp.none()
		return
	}
	for _, sec := range r.Sections {
		_, _ = pp.categoryColor(sec.Category, color.Bold).Fprintln(pp.out(), category.LabelOf(sec.Category, pp.Locale))
		pp.Items(sec.Items...)
	}
}
