package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/runner/tea/internal/bottombar"
	monthgrid "tableflip.dev/agenda/pkg/runner/tea/internal/calendar"
	"tableflip.dev/agenda/pkg/runner/tea/internal/panel"
	"tableflip.dev/agenda/pkg/runner/tea/internal/theme"
	"tableflip.dev/agenda/pkg/store"
)

// Model states and actions
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionEdit
)

// ddWindow is how quickly the second d of dd must follow the first.
const ddWindow = 600 * time.Millisecond

const helpLine = "d/w/m view · h/l move · t today · f filter · a add · x done · dd delete · ? help · q quit"

const helpText = `Views     d day · w week · m month
Move      h/← previous · l/→ next · t today · j/k select
Items     a add · e/enter edit · x toggle done · dd delete
Insights  A weekly analysis · s suggestions · Q quote
Display   f cycle category filter · T dark mode · r reload · esc close panel
Quick add [HH:MM] [category] [!|?] title   e.g. "18:00 health ! Gym"`

// messages
type watchStartedMsg struct{ ch <-chan store.Event }
type storeChangedMsg struct {
	key string
	ok  bool
}

// Model contains UI state
type Model struct {
	svc    *app.Service
	ctx    context.Context
	mode   mode
	action action
	editID string

	cursor int

	input  textinput.Model
	footer bottombar.Model
	info   panel.Model
	theme  theme.Theme

	changes    <-chan store.Event
	awaitingDD bool
	lastDTime  time.Time
	clock      func() time.Time

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "18:00 health Gym"
	ti.CharLimit = 256
	ti.Prompt = ""

	dark := svc.State().DarkMode
	th := theme.Default(dark)

	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		mode:   modeNormal,
		input:  ti,
		footer: bottombar.New(th.Footer),
		info:   panel.New(accent(dark)),
		theme:  th,
		clock:  time.Now,
	}
	m.footer.SetHelp(helpLine)
	m.syncContext()
	return m
}

func accent(dark bool) string {
	if dark {
		return "#60a5fa"
	}
	return "#2563eb"
}

// Init starts watching the store for changes made by other processes.
func (m Model) Init() tea.Cmd {
	return m.watch()
}

func (m Model) watch() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			// Stores without a directory cannot be watched.
			return nil
		}
		return watchStartedMsg{ch: ch}
	}
}

func waitForChange(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return storeChangedMsg{key: ev.Key, ok: ok}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case watchStartedMsg:
		m.changes = msg.ch
		cmds = append(cmds, waitForChange(msg.ch))
	case storeChangedMsg:
		if !msg.ok {
			m.changes = nil
			break
		}
		if msg.key == "" || msg.key == store.KeyItems {
			if err := m.svc.Reload(m.ctx); err != nil {
				m.footer.SetStatus("ERR: " + err.Error())
			}
			m.clampCursor()
		}
		cmds = append(cmds, waitForChange(m.changes))
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
				m.footer.SetMode(bottombar.ModeNormal)
			}
		case modeInsert:
			cmds = append(cmds, m.updateInsert(msg))
		case modeNormal:
			cmds = append(cmds, m.updateNormal(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateInsert(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.submit(strings.TrimSpace(m.input.Value()))
		m.leaveInsert()
		return nil
	case "esc":
		if m.action == actionEdit {
			m.footer.SetStatus("Edit cancelled")
		} else {
			m.footer.SetStatus("Add cancelled")
		}
		m.leaveInsert()
		return nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.footer.SetInput(m.prompt(), m.input.View())
		return cmd
	}
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key != "d" {
		m.awaitingDD = false
	}

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.mode = modeHelp
		m.footer.SetMode(bottombar.ModeHelp)
	case "esc":
		m.info.Reset()

	// views
	case "d":
		now := m.clock()
		if m.awaitingDD && now.Sub(m.lastDTime) < ddWindow {
			m.awaitingDD = false
			m.deleteSelected()
			return nil
		}
		m.awaitingDD = true
		m.lastDTime = now
		m.setView(calendar.Day)
	case "w":
		m.setView(calendar.Week)
	case "m":
		m.setView(calendar.Month)

	// navigation
	case "h", "left":
		m.navigate(func() (calendar.Navigator, error) { return m.svc.Advance(m.ctx, calendar.Backward) })
	case "l", "right":
		m.navigate(func() (calendar.Navigator, error) { return m.svc.Advance(m.ctx, calendar.Forward) })
	case "t":
		m.navigate(func() (calendar.Navigator, error) { return m.svc.Today(m.ctx) })
	case "f":
		next := m.svc.State().Filter.Next()
		m.navigate(func() (calendar.Navigator, error) { return m.svc.SetFilter(m.ctx, next) })
		m.footer.SetStatus("Filter: " + m.filterLabel(next))
	case "j", "down":
		if m.cursor < len(m.selectable())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.selectable()) - 1
		m.clampCursor()

	// items
	case "x":
		if it, ok := m.selected(); ok {
			updated, err := m.svc.Toggle(m.ctx, it.ID)
			if err != nil {
				m.footer.SetStatus("ERR: " + err.Error())
			} else if updated.Completed {
				m.footer.SetStatus("Done: " + updated.Title)
			} else {
				m.footer.SetStatus("Reopened: " + updated.Title)
			}
		}
	case "a", "o":
		return m.enterInsert(actionAdd, "")
	case "e", "i", "enter":
		if it, ok := m.selected(); ok {
			draft, err := m.svc.BeginEdit(m.ctx, it.ID)
			if err != nil {
				m.footer.SetStatus("ERR: " + err.Error())
				return nil
			}
			m.editID = it.ID
			return m.enterInsert(actionEdit, formatQuickAdd(draft))
		}

	// insights
	case "A":
		m.showAnalysis(m.svc.Analyze(m.ctx))
	case "s":
		m.showSuggestions(m.svc.Suggest(m.ctx))
	case "Q":
		if m.svc.ToggleQuote() {
			m.footer.SetStatus("Quote shown")
		} else {
			m.footer.SetStatus("Quote hidden")
		}
	case "T":
		dark := !m.svc.State().DarkMode
		if err := m.svc.SetDarkMode(m.ctx, dark); err != nil {
			m.footer.SetStatus("ERR: " + err.Error())
			return nil
		}
		m.applyTheme(dark)
	case "r":
		if err := m.svc.Reload(m.ctx); err != nil {
			m.footer.SetStatus("ERR: " + err.Error())
		} else {
			m.footer.SetStatus("Reloaded")
		}
		m.clampCursor()
	}
	return nil
}

func (m *Model) setView(g calendar.Granularity) {
	m.navigate(func() (calendar.Navigator, error) { return m.svc.SetView(m.ctx, g) })
}

func (m *Model) navigate(fn func() (calendar.Navigator, error)) {
	if _, err := fn(); err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
	}
	m.cursor = 0
	m.syncContext()
}

func (m *Model) applyTheme(dark bool) {
	m.theme = theme.Default(dark)
	m.footer.SetTheme(m.theme.Footer)
	title, lines := m.info.Title(), m.infoLines()
	m.info = panel.New(accent(dark))
	if title != "" {
		m.info.SetContent(title, lines)
	}
	if dark {
		m.footer.SetStatus("Dark mode")
	} else {
		m.footer.SetStatus("Light mode")
	}
}

func (m *Model) enterInsert(a action, value string) tea.Cmd {
	m.mode = modeInsert
	m.action = a
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.footer.SetMode(bottombar.ModeInsert)
	cmd := m.input.Focus()
	m.footer.SetInput(m.prompt(), m.input.View())
	return tea.Batch(cmd, textinput.Blink)
}

func (m *Model) leaveInsert() {
	if m.action == actionEdit {
		m.svc.ResetForm(m.ctx)
	}
	m.mode = modeNormal
	m.action = actionNone
	m.editID = ""
	m.input.Reset()
	m.input.Blur()
	m.footer.SetMode(bottombar.ModeNormal)
}

func (m *Model) prompt() string {
	if m.action == actionEdit {
		return "Edit: "
	}
	return "Add: "
}

func (m *Model) submit(input string) {
	if input == "" {
		return
	}
	st := m.svc.State()
	switch m.action {
	case actionAdd:
		fallback := category.Work
		if st.Filter != "" && st.Filter != category.FilterAll {
			fallback = category.ID(st.Filter)
		}
		f, err := parseQuickAdd(input, st.Nav.AnchorDate(), fallback)
		if err != nil {
			m.footer.SetStatus("ERR: " + err.Error())
			return
		}
		it, err := m.svc.Create(m.ctx, f)
		if err != nil {
			m.footer.SetStatus("ERR: " + err.Error())
			return
		}
		m.footer.SetStatus("Added: " + it.Title)
	case actionEdit:
		draft := st.Draft
		f, err := parseQuickAdd(input, draft.Date, draft.Category)
		if err != nil {
			m.footer.SetStatus("ERR: " + err.Error())
			return
		}
		f.Description = draft.Description
		it, err := m.svc.Update(m.ctx, m.editID, f)
		if err != nil {
			m.footer.SetStatus("ERR: " + err.Error())
			return
		}
		m.footer.SetStatus("Edited: " + it.Title)
	}
	m.clampCursor()
}

func (m *Model) deleteSelected() {
	it, ok := m.selected()
	if !ok {
		return
	}
	if _, err := m.svc.Delete(m.ctx, it.ID); err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	m.footer.SetStatus("Deleted: " + it.Title)
	m.clampCursor()
}

func (m *Model) showAnalysis(w analysis.Weekly) {
	m.info.SetContent(fmt.Sprintf("Week %s → %s", w.WeekStart, w.WeekEnd), analysisLines(w, m.svc.Locale()))
}

func analysisLines(w analysis.Weekly, locale string) []string {
	lines := []string{
		fmt.Sprintf("Tasks             %d/%d done", w.CompletedTasks, w.TotalTasks),
		fmt.Sprintf("Productivity      %d%%", w.ProductivityScore),
		fmt.Sprintf("Work/life balance %d%%", w.WorkLifeBalance),
	}
	for _, c := range category.All() {
		if n := w.TimeByCategory[c.ID]; n > 0 {
			lines = append(lines, fmt.Sprintf("  %-15s %d", c.LabelFor(locale), n))
		}
	}
	return lines
}

func (m *Model) showSuggestions(list []string) {
	if len(list) == 0 {
		list = []string{analysis.NoSuggestions(m.svc.Locale())}
	}
	lines := make([]string, 0, len(list))
	for _, s := range list {
		lines = append(lines, "• "+s)
	}
	m.info.SetContent("Suggestions", lines)
}

func (m *Model) infoLines() []string {
	st := m.svc.State()
	switch m.info.Title() {
	case "":
		return nil
	case "Suggestions":
		list := st.Suggestions
		if len(list) == 0 {
			list = []string{analysis.NoSuggestions(m.svc.Locale())}
		}
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, "• "+s)
		}
		return out
	default:
		if st.Analysis == nil {
			return nil
		}
		return analysisLines(*st.Analysis, m.svc.Locale())
	}
}

func (m *Model) syncContext() {
	st := m.svc.State()
	m.footer.SetContext(fmt.Sprintf("%s · %s", st.Nav.View, m.filterLabel(st.Filter)))
}

func (m *Model) filterLabel(f category.Filter) string {
	if f == "" || f == category.FilterAll {
		return "all"
	}
	return category.LabelOf(category.ID(f), m.svc.Locale())
}

// listDays are the days whose items are listed and selectable. The month
// view lists only the anchor day under its grid.
func listDays(st app.State) []time.Time {
	if st.Nav.View == calendar.Month {
		return []time.Time{st.Nav.Anchor}
	}
	return st.Nav.Window()
}

func (m *Model) selectable() []item.Item {
	st := m.svc.State()
	var out []item.Item
	for _, d := range listDays(st) {
		out = append(out, calendar.ItemsForDate(st.Items, item.FormatDate(d), st.Filter)...)
	}
	return out
}

func (m *Model) selected() (item.Item, bool) {
	items := m.selectable()
	if m.cursor < 0 || m.cursor >= len(items) {
		return item.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.selectable())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the navigator window, the optional info panel and the footer.
func (m Model) View() string {
	st := m.svc.State()
	today := m.clock()
	width := m.termWidth
	if width <= 0 {
		width = 80
	}

	var head strings.Builder
	head.WriteString(m.theme.Title.Render(st.Nav.Title()))
	head.WriteString("\n")
	if st.ShowQuote {
		head.WriteString(m.theme.Quote.Render("“" + m.svc.Quote() + "”"))
		head.WriteString("\n")
	}
	head.WriteString("\n")
	if st.Nav.View == calendar.Month {
		head.WriteString(m.renderMonth(st, today))
		head.WriteString("\n\n")
	}

	var lines []string
	cursorLine, idx := 0, 0
	for _, d := range listDays(st) {
		date := item.FormatDate(d)
		label := d.Format("Mon 2 Jan")
		if item.SameDay(d, today) {
			lines = append(lines, m.theme.Today.Render(label))
		} else {
			lines = append(lines, m.theme.DayLabel.Render(label))
		}
		items := calendar.ItemsForDate(st.Items, date, st.Filter)
		if len(items) == 0 {
			lines = append(lines, m.theme.Muted.Render("  nothing planned"))
		}
		for _, it := range items {
			if idx == m.cursor {
				cursorLine = len(lines)
			}
			lines = append(lines, m.renderItem(it, idx == m.cursor, width))
			idx++
		}
	}

	var tail strings.Builder
	if view, _ := m.info.View(width); view != "" {
		tail.WriteString("\n")
		tail.WriteString(view)
		tail.WriteString("\n")
	}
	if m.mode == modeHelp {
		tail.WriteString("\n")
		tail.WriteString(lipgloss.NewStyle().Italic(true).Render(helpText))
		tail.WriteString("\n")
	}
	footer, _ := m.footer.View()
	tail.WriteString("\n")
	tail.WriteString(footer)

	// The day list scrolls to keep the selection visible when it does not fit.
	body := strings.Join(lines, "\n")
	if m.termHeight > 0 {
		room := m.termHeight - strings.Count(head.String(), "\n") - lipgloss.Height(tail.String())
		if room > 0 && len(lines) > room {
			vp := viewport.New(viewport.WithWidth(width), viewport.WithHeight(room))
			vp.SetContent(body)
			if cursorLine >= room {
				vp.SetYOffset(cursorLine - room + 1)
			}
			body = vp.View()
		}
	}

	return head.String() + body + "\n" + tail.String()
}

func (m Model) renderMonth(st app.State, today time.Time) string {
	counts := calendar.CountByDate(st.Items, st.Filter)
	var days []monthgrid.Day
	for _, d := range calendar.MonthDays(st.Nav.Anchor) {
		days = append(days, monthgrid.Day{
			Day:        d.Day(),
			Count:      counts[item.FormatDate(d)],
			IsToday:    item.SameDay(d, today),
			IsSelected: item.SameDay(d, st.Nav.Anchor),
		})
	}
	ct := m.theme.Calendar
	return monthgrid.Render(st.Nav.Anchor, days, monthgrid.Options{
		HeaderStyle:   ct.Header,
		EmptyStyle:    ct.Empty,
		BusyStyle:     ct.Busy,
		TodayStyle:    ct.Today,
		SelectedStyle: ct.Selected,
		ShowHeader:    true,
	})
}

func (m Model) renderItem(it item.Item, selected bool, width int) string {
	check := "○"
	if it.Completed {
		check = "✓"
	}
	when := "all day"
	if it.HasTime() {
		when = it.Time
	}
	marker := it.Priority.Info().Marker
	label := category.LabelOf(it.Category, m.svc.Locale())
	text := fmt.Sprintf("%s %s %-7s %s", marker, check, when, it.Title)
	text = truncate.StringWithTail(text, uint(max(width-len(label)-6, 10)), "…")

	hex := it.Color
	if hex == "" {
		hex = category.ColorOf(it.Category)
	}
	style := lipgloss.NewStyle()
	tag := m.theme.Category(hex)
	if it.Completed {
		dimmed := m.theme.Dim(hex)
		style = style.Foreground(lipgloss.Color(dimmed)).Strikethrough(true)
		tag = m.theme.Category(dimmed)
	}
	line := "  " + style.Render(text) + "  " + tag.Render("["+label+"]")
	if selected {
		return m.theme.Selected.Render(line)
	}
	return line
}
