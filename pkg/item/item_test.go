package item

import (
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/category"
)

func TestNewCopiesRegistryColor(t *testing.T) {
	it := New("id-1", "demo-user", Fields{
		Title:    "Standup",
		Date:     "2026-10-19",
		Category: category.Work,
	})
	if it.Color != category.ColorOf(category.Work) {
		t.Fatalf("expected work colour, got %q", it.Color)
	}
	if it.Priority != category.Medium {
		t.Fatalf("expected medium default priority, got %q", it.Priority)
	}
	if it.Completed {
		t.Fatalf("new items must not be completed")
	}
}

func TestApplyKeepsIdentityAndCompletion(t *testing.T) {
	it := New("id-1", "demo-user", Fields{Title: "a", Date: "2026-10-19", Category: category.Work})
	it.Completed = true
	it.Apply(Fields{Title: "b", Date: "2026-10-20", Time: "09:30", Category: category.Health, Priority: category.High})

	if it.ID != "id-1" || !it.Completed || it.UserID != "demo-user" {
		t.Fatalf("identity/completion/owner changed: %+v", it)
	}
	if it.Title != "b" || it.Date != "2026-10-20" || it.Time != "09:30" {
		t.Fatalf("fields not applied: %+v", it)
	}
	if it.Color != category.ColorOf(category.Health) {
		t.Fatalf("colour not recomputed on edit: %q", it.Color)
	}
}

func TestJSONFieldNames(t *testing.T) {
	it := New("1700000000000", "demo-user", Fields{Title: "a", Date: "2026-10-19", Category: category.Social})
	b, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "date", "time", "category", "priority", "color", "completed", "user_id"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing persisted field %q", key)
		}
	}
}

func TestDay(t *testing.T) {
	it := Item{Date: "2026-02-30"}
	if _, ok := it.Day(); ok {
		t.Fatalf("expected invalid calendar date to be rejected")
	}
	it.Date = "2026-10-19"
	d, ok := it.Day()
	if !ok {
		t.Fatalf("expected valid date")
	}
	if d.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %v", d.Weekday())
	}
}

func TestParseClock(t *testing.T) {
	if _, err := ParseClock("09:30"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for out-of-range hour")
	}
}
