package teaui

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	monthgrid "tableflip.dev/agenda/pkg/runner/tea/internal/calendar"
	"tableflip.dev/agenda/pkg/runner/tea/internal/theme"
	"tableflip.dev/agenda/pkg/store"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryKV) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *memoryKV) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return v, nil
}

func (m *memoryKV) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), val...)
	return nil
}

func (m *memoryKV) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Monday.
var fixedNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)

func newModel(t *testing.T) (Model, *app.Service) {
	t.Helper()
	ctx := context.Background()
	events, err := store.Open(ctx, &memoryKV{data: map[string][]byte{}}, store.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	counter := 0
	svc, err := app.New(ctx, events, app.Reducer{
		NewID: func() (string, error) {
			counter++
			return "tui-" + strconv.Itoa(counter), nil
		},
		Owner:  "demo-user",
		Locale: "en",
		Now:    func() time.Time { return fixedNow },
	}, app.Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	m := New(svc)
	m.clock = func() time.Time { return fixedNow }
	m.termWidth = 100
	m.termHeight = 40
	return m, svc
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		default:
			msg = tea.KeyPressMsg{Text: k, Code: []rune(k)[0]}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func quickAdd(m Model, line string) Model {
	m = press(m, "a")
	m.input.SetValue(line)
	return press(m, "enter")
}

func TestParseQuickAdd(t *testing.T) {
	tests := []struct {
		in   string
		want item.Fields
	}{
		{"18:00 health ! Gym", item.Fields{Title: "Gym", Date: "2026-10-19", Time: "18:00", Category: category.Health, Priority: category.High}},
		{"Write report", item.Fields{Title: "Write report", Date: "2026-10-19", Category: category.Work, Priority: category.Medium}},
		{"social ? Call Sam", item.Fields{Title: "Call Sam", Date: "2026-10-19", Category: category.Social, Priority: category.Low}},
		{"9:00 standup", item.Fields{Title: "9:00 standup", Date: "2026-10-19", Category: category.Work, Priority: category.Medium}},
	}
	for _, tt := range tests {
		got, err := parseQuickAdd(tt.in, "2026-10-19", category.Work)
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, err := parseQuickAdd("07:00 health", "2026-10-19", category.Work); err == nil {
		t.Fatalf("expected an error without a title")
	}
}

func TestFormatQuickAddRoundTrip(t *testing.T) {
	f := item.Fields{Title: "Gym", Date: "2026-10-19", Time: "18:00", Category: category.Health, Priority: category.High}
	got, err := parseQuickAdd(formatQuickAdd(f), f.Date, category.Work)
	if err != nil {
		t.Fatal(err)
	}
	if got != f {
		t.Fatalf("got %+v, want %+v", got, f)
	}
}

func TestQuickAddCreatesOnAnchorDay(t *testing.T) {
	m, svc := newModel(t)
	m = press(m, "l") // Tuesday
	m = quickAdd(m, "18:00 health ! Gym")

	items := svc.Items(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d (status %q)", len(items), m.footer.Status())
	}
	it := items[0]
	if it.Date != "2026-10-20" || it.Time != "18:00" || it.Category != category.Health || it.Priority != category.High {
		t.Fatalf("unexpected item %+v", it)
	}
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after submit")
	}
}

func TestQuickAddUsesFilterCategory(t *testing.T) {
	m, svc := newModel(t)
	m = press(m, "f", "f") // work, personal
	m = quickAdd(m, "Call mum")

	items := svc.Items(context.Background())
	if len(items) != 1 || items[0].Category != category.Personal {
		t.Fatalf("expected personal item, got %+v", items)
	}
}

func TestEscCancelsAdd(t *testing.T) {
	m, svc := newModel(t)
	m = press(m, "a")
	m.input.SetValue("Never mind")
	m = press(m, "esc")
	if len(svc.Items(context.Background())) != 0 {
		t.Fatalf("expected nothing stored")
	}
	if m.footer.Status() != "Add cancelled" {
		t.Fatalf("unexpected status %q", m.footer.Status())
	}
}

func TestViewKeys(t *testing.T) {
	m, svc := newModel(t)

	m = press(m, "w")
	if svc.State().Nav.View != calendar.Week {
		t.Fatalf("expected week view")
	}
	m = press(m, "l")
	if got := svc.State().Nav.AnchorDate(); got != "2026-10-26" {
		t.Fatalf("expected next week, got %s", got)
	}
	m = press(m, "m", "t")
	if svc.State().Nav.View != calendar.Month || svc.State().Nav.AnchorDate() != "2026-10-19" {
		t.Fatalf("expected month view anchored today, got %+v", svc.State().Nav)
	}
	press(m, "d")
	if svc.State().Nav.View != calendar.Day {
		t.Fatalf("expected day view")
	}
}

func TestToggleAndDoubleDDelete(t *testing.T) {
	m, svc := newModel(t)
	m = quickAdd(m, "08:00 First")
	m = quickAdd(m, "09:00 Second")

	m = press(m, "j", "x")
	second, err := svc.Find(context.Background(), "tui-2")
	if err != nil || !second.Completed {
		t.Fatalf("expected second item completed, got %+v, %v", second, err)
	}

	m = press(m, "k", "d", "d")
	items := svc.Items(context.Background())
	if len(items) != 1 || items[0].ID != "tui-2" {
		t.Fatalf("expected only the second item left, got %+v", items)
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestSingleDDoesNotDelete(t *testing.T) {
	m, svc := newModel(t)
	m = quickAdd(m, "Keep me")
	m = press(m, "d", "j", "d")
	if len(svc.Items(context.Background())) != 1 {
		t.Fatalf("d followed by another key must not delete")
	}
}

func TestEditKeepsDescription(t *testing.T) {
	m, svc := newModel(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, item.Fields{
		Title: "Gym", Description: "legs", Date: "2026-10-19", Time: "18:00",
		Category: category.Health, Priority: category.High,
	}); err != nil {
		t.Fatal(err)
	}

	m = press(m, "e")
	if got := m.input.Value(); got != "18:00 health ! Gym" {
		t.Fatalf("unexpected edit line %q", got)
	}
	m.input.SetValue("19:00 health ! Gym late")
	m = press(m, "enter")

	it, err := svc.Find(ctx, "tui-1")
	if err != nil {
		t.Fatal(err)
	}
	if it.Title != "Gym late" || it.Time != "19:00" || it.Description != "legs" {
		t.Fatalf("unexpected edit %+v", it)
	}
	if svc.State().EditingID != "" {
		t.Fatalf("expected form reset after edit")
	}
}

func TestViewRendersItemsQuoteAndPanels(t *testing.T) {
	m, svc := newModel(t)
	m = quickAdd(m, "07:30 health Run")
	m = quickAdd(m, "Plan week")

	out := m.View()
	for _, want := range []string{"Run", "Plan week", "Mon 19 Oct"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
	if strings.Index(out, "Plan week") > strings.Index(out, "Run") {
		t.Fatalf("all-day items must come before timed items")
	}

	m = press(m, "Q")
	if !strings.Contains(m.View(), svc.Quote()) {
		t.Fatalf("expected quote in view")
	}

	m = press(m, "A")
	if !strings.Contains(m.View(), "Productivity") {
		t.Fatalf("expected analysis panel")
	}
	m = press(m, "esc")
	if strings.Contains(m.View(), "Productivity") {
		t.Fatalf("expected panel closed")
	}

	m = press(m, "w")
	if !strings.Contains(m.View(), "nothing planned") {
		t.Fatalf("expected empty days in week view")
	}
}

func TestDarkModeToggle(t *testing.T) {
	m, svc := newModel(t)
	m = press(m, "T")
	if !svc.State().DarkMode || !m.theme.Dark {
		t.Fatalf("expected dark mode on")
	}
	press(m, "T")
	if svc.State().DarkMode {
		t.Fatalf("expected dark mode off")
	}
}

func TestMonthGrid(t *testing.T) {
	month := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local)
	plain := lipgloss.NewStyle()
	out := monthgrid.Render(month, []monthgrid.Day{{Day: 19, Count: 2}}, monthgrid.Options{
		HeaderStyle: plain, EmptyStyle: plain, BusyStyle: plain, TodayStyle: plain, SelectedStyle: plain,
		ShowHeader: true,
	})
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], " Mo") {
		t.Fatalf("expected Monday-first header, got %q", lines[0])
	}
	// October 2026 starts on a Thursday.
	if !strings.HasPrefix(lines[1], strings.Repeat(" ", 15)+"  1") {
		t.Fatalf("unexpected first week %q", lines[1])
	}
	if !strings.Contains(out, "19·2") {
		t.Fatalf("expected count on the 19th:\n%s", out)
	}
}

func TestBlend(t *testing.T) {
	if got := theme.Blend("#3b82f6", "#ffffff", 0); got != "#3b82f6" {
		t.Fatalf("zero blend changed colour: %s", got)
	}
	if got := theme.Blend("nope", "#ffffff", 0.5); got != "nope" {
		t.Fatalf("invalid input should pass through, got %s", got)
	}
	if dim := theme.Default(true).Dim("#3b82f6"); dim == "#3b82f6" {
		t.Fatalf("expected dimmed colour")
	}
}

func TestLongWeekScrollsToSelection(t *testing.T) {
	m, svc := newModel(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		if _, err := svc.Create(ctx, item.Fields{
			Title: "Task " + strconv.Itoa(i), Date: "2026-10-25", Time: "0" + strconv.Itoa(i+3) + ":00",
			Category: category.Work, Priority: category.Medium,
		}); err != nil {
			t.Fatal(err)
		}
	}
	m = press(m, "w", "G")
	m.termHeight = 12

	out := m.View()
	if !strings.Contains(out, "Task 5") {
		t.Fatalf("expected the selected item in view:\n%s", out)
	}
	if strings.Contains(out, "Mon 19 Oct") {
		t.Fatalf("expected the start of the week scrolled away:\n%s", out)
	}

	m.termHeight = 60
	if !strings.Contains(m.View(), "Mon 19 Oct") {
		t.Fatalf("expected the full week when it fits")
	}
}
