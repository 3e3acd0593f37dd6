package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

type PrettyPrint struct {
	ShowID bool
	Dark   bool
	Locale string
	// Width wraps descriptions; zero means 80.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	// UUIDv7 ids are 36 characters.
	spacing = strings.Repeat(" ", len("0199f3c4-1a2b-7c3d-8e4f-5a6b7c8d9e0f  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 80
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Items prints one day's items: check mark, time, priority marker, category
// and title, then the wrapped description.
func (pp *PrettyPrint) Items(items ...item.Item) {
	if len(items) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	for _, it := range items {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), it.ID)
			pad := len(spacing) - len(it.ID)
			if pad < 1 {
				pad = 1
			}
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
		}
		pp.line(it)

		if desc := strings.TrimSpace(it.Description); desc != "" {
			n := 10
			if pp.ShowID {
				n += len(spacing)
			}
			limit := pp.width() - n
			if limit < 20 {
				limit = 20
			}
			wrapped := wordwrap.String(desc, limit)
			_, _ = faint.Fprintln(pp.out(), indent.String(wrapped, uint(n)))
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) line(it item.Item) {
	check := "○"
	title := color.New()
	if it.Completed {
		check = "✓"
		title = color.New(color.Faint, color.CrossedOut)
	}

	when := "  --- "
	if it.HasTime() {
		when = fmt.Sprintf(" %5s", it.Time)
	}

	marker := it.Priority.Info().Marker
	cat := pp.categoryColor(it.Category)
	_, _ = fmt.Fprintf(pp.out(), "%s%s %s %s %s\n",
		check,
		when,
		pp.priorityColor(it.Priority).Sprint(marker),
		title.Sprint(it.Title),
		cat.Sprintf("[%s]", category.LabelOf(it.Category, pp.Locale)),
	)
}

// Item prints a single item with its id, used to confirm mutations.
func (pp *PrettyPrint) Item(verb string, it item.Item) {
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(pp.out(), "%s %s\n", verb, it.ID)
	pp.line(it)
}

// Encoder writes machine readable output when Structured is true.
type Encoder interface {
	Structured() bool
	Write(v any) error
}

// Structured reports whether enc wants machine readable output.
func Structured(enc Encoder) bool {
	return enc != nil && enc.Structured()
}
