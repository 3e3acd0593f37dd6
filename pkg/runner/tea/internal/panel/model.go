package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Model renders a bordered information panel such as the weekly analysis or
// the suggestion list.
type Model struct {
	title      string
	lines      []string
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

// New returns a panel whose border uses accent.
func New(accent string) Model {
	return Model{
		frameStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
		titleStyle: lipgloss.NewStyle().Bold(true),
		bodyStyle:  lipgloss.NewStyle(),
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// Empty reports whether the panel has nothing to show.
func (m Model) Empty() bool {
	return m.title == "" && len(m.lines) == 0
}

// Title returns the panel heading.
func (m Model) Title() string {
	return m.title
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View(width int) (string, int) {
	if m.Empty() {
		return "", 0
	}
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(line))
	}
	style := m.frameStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	view := style.Render(strings.Join(content, "\n"))
	height := strings.Count(view, "\n") + 1
	return view, height
}
