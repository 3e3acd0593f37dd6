package analysis

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)

func mk(date string, c category.ID, p category.Priority, done bool) item.Item {
	it := item.New(date+string(c), "u", item.Fields{Title: "t", Date: date, Category: c, Priority: p})
	it.Completed = done
	return it
}

func TestAnalyzeEmptyWeek(t *testing.T) {
	w := Analyze(nil, monday)
	if w.TotalTasks != 0 || w.CompletedTasks != 0 || w.ProductivityScore != 0 || w.WorkLifeBalance != 100 {
		t.Fatalf("unexpected snapshot %+v", w)
	}
	if len(w.TimeByCategory) != 6 {
		t.Fatalf("expected every category, got %v", w.TimeByCategory)
	}
	for id, n := range w.TimeByCategory {
		if n != 0 {
			t.Fatalf("%s = %d, want 0", id, n)
		}
	}
	if w.WeekStart != "2026-10-19" || w.WeekEnd != "2026-10-25" {
		t.Fatalf("window = %s..%s", w.WeekStart, w.WeekEnd)
	}
}

func TestAnalyzeThreeItems(t *testing.T) {
	items := []item.Item{
		mk("2026-10-19", category.Work, category.Medium, true),
		mk("2026-10-20", category.Work, category.Medium, false),
		mk("2026-10-21", category.Personal, category.Medium, true),
		mk("2026-10-26", category.Work, category.Medium, false), // next week
	}
	w := Analyze(items, time.Date(2026, 10, 23, 12, 0, 0, 0, time.Local))
	if w.TotalTasks != 3 || w.CompletedTasks != 2 {
		t.Fatalf("counts = %d/%d", w.CompletedTasks, w.TotalTasks)
	}
	if w.ProductivityScore != 67 {
		t.Fatalf("productivity = %d, want 67", w.ProductivityScore)
	}
	if w.TimeByCategory[category.Work] != 2 || w.TimeByCategory[category.Personal] != 1 {
		t.Fatalf("categories = %v", w.TimeByCategory)
	}
	if w.WorkLifeBalance != 50 {
		t.Fatalf("balance = %d, want 50", w.WorkLifeBalance)
	}
}

func TestAnalyzeSkipsMalformedDates(t *testing.T) {
	items := []item.Item{{ID: "x", Date: "not-a-date", Category: category.Work}}
	if w := Analyze(items, monday); w.TotalTasks != 0 {
		t.Fatalf("malformed date counted: %+v", w)
	}
}

func TestSuggestSingleHighPriority(t *testing.T) {
	items := []item.Item{mk("2026-10-21", category.Health, category.High, false)}
	got := Suggest(items, monday, "en")
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %q", got)
	}
	if !strings.Contains(got[0], "6 free day") {
		t.Errorf("free-day message = %q", got[0])
	}
	if !strings.Contains(got[1], "1 high-priority") {
		t.Errorf("priority message = %q", got[1])
	}
}

func TestSuggestBalance(t *testing.T) {
	var items []item.Item
	for _, d := range []string{"19", "20", "21", "22", "23", "24", "25"} {
		items = append(items, mk("2026-10-"+d, category.Work, category.Low, false))
	}
	items = append(items, mk("2026-10-22", category.Social, category.Low, false))

	got := Suggest(items, monday, "fr")
	if len(got) != 1 {
		t.Fatalf("expected only the balance message, got %q", got)
	}
	if got[0] != "Pensez à équilibrer votre semaine avec plus d'activités personnelles." {
		t.Fatalf("balance message = %q", got[0])
	}
}

func TestSuggestNone(t *testing.T) {
	var items []item.Item
	for _, d := range []string{"19", "20", "21", "22", "23", "24", "25"} {
		items = append(items, mk("2026-10-"+d, category.Personal, category.High, true))
	}
	if got := Suggest(items, monday, "en"); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %q", got)
	}
	if NoSuggestions("de") != NoSuggestions("en") {
		t.Fatal("unknown locale should fall back to en")
	}
}
