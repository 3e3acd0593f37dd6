package bottombar

import (
	"strings"

	"tableflip.dev/agenda/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeHelp
)

// Model tracks footer/help/status rendering state.
type Model struct {
	mode       Mode
	helpLine   string
	statusLine string
	context    string
	inputView  string
	prompt     string
	theme      theme.FooterTheme
}

// New returns a footer model styled by t.
func New(t theme.FooterTheme) Model {
	return Model{mode: ModeNormal, theme: t}
}

// SetTheme restyles the footer.
func (m *Model) SetTheme(t theme.FooterTheme) {
	m.theme = t
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	if mode != ModeInsert {
		m.inputView = ""
		m.prompt = ""
	}
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// Status returns the current status message.
func (m Model) Status() string {
	return m.statusLine
}

// SetContext shows the active view and filter.
func (m *Model) SetContext(ctx string) {
	m.context = ctx
}

// SetInput shows the quick-add line in insert mode.
func (m *Model) SetInput(prompt, view string) {
	m.prompt = prompt
	m.inputView = view
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	if m.mode == ModeInsert {
		return 2
	}
	return 1
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	status := m.renderStatusLine()
	if m.mode == ModeInsert {
		return m.prompt + m.inputView + "\n" + status, 2
	}
	return status, 1
}

func (m Model) renderStatusLine() string {
	var segments []string
	if m.context != "" {
		segments = append(segments, m.theme.Context.Render(m.context))
	}
	if m.statusLine != "" {
		segments = append(segments, m.theme.Status.Render(m.statusLine))
	}
	if m.helpLine != "" && m.mode != ModeInsert {
		segments = append(segments, m.theme.Help.Render(m.helpLine))
	}
	if len(segments) == 0 {
		return " "
	}
	return strings.Join(segments, " │ ")
}
