package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark       bool
	Background string

	Title    lipgloss.Style
	DayLabel lipgloss.Style
	Today    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Quote    lipgloss.Style
	Error    lipgloss.Style

	Footer   FooterTheme
	Calendar CalendarTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Context lipgloss.Style
}

// CalendarTheme styles the month grid.
type CalendarTheme struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Busy     lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// Default returns the light or dark theme.
func Default(dark bool) Theme {
	bg := "#ffffff"
	fg := "#111827"
	muted := "#6b7280"
	accent := "#2563eb"
	if dark {
		bg = "#111827"
		fg = "#f3f4f6"
		muted = "#9ca3af"
		accent = "#60a5fa"
	}
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(muted))

	return Theme{
		Dark:       dark,
		Background: bg,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		DayLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg)),
		Today:      lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(accent)),
		Muted:      mutedStyle,
		Selected:   lipgloss.NewStyle().Reverse(true),
		Quote:      mutedStyle.Italic(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		Footer: FooterTheme{
			Help:    mutedStyle,
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
			Context: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		},
		Calendar: CalendarTheme{
			Header:   mutedStyle,
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
			Busy:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
	}
}

// Category styles text in a registry colour.
func (t Theme) Category(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Dim blends hex toward the theme background so completed items recede.
func (t Theme) Dim(hex string) string {
	return Blend(hex, t.Background, 0.6)
}

// Blend mixes from toward to in Lab space; amount 0 keeps from. Unparseable
// input is returned unchanged.
func Blend(from, to string, amount float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return from
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendLab(b, amount).Clamped().Hex()
}
