package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

func TestExportImportRoundTrip(t *testing.T) {
	timed := item.New("id-1", "u", item.Fields{
		Title:       "Standup",
		Description: "daily sync",
		Date:        "2026-10-19",
		Time:        "09:30",
		Category:    category.Work,
		Priority:    category.High,
	})
	allDay := item.New("id-2", "u", item.Fields{
		Title:    "Birthday",
		Date:     "2026-10-24",
		Category: category.Social,
		Priority: category.Low,
	})
	allDay.Completed = true

	var buf bytes.Buffer
	err := Export(&buf, []item.Item{timed, allDay}, ExportOptions{Now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "UID:id-1", "PRIORITY:1", "PRIORITY:9", "X-AGENDA-COMPLETED:TRUE"} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}

	got, err := Import(strings.NewReader(out), ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}

	first := got[0]
	if first.UID != "id-1" || first.Fields.Title != "Standup" || first.Fields.Date != "2026-10-19" || first.Fields.Time != "09:30" {
		t.Fatalf("timed event = %+v", first)
	}
	if first.Fields.Category != category.Work || first.Fields.Priority != category.High || first.Completed {
		t.Fatalf("timed event metadata = %+v", first)
	}

	second := got[1]
	if second.Fields.Date != "2026-10-24" || second.Fields.Time != "" {
		t.Fatalf("all-day event = %+v", second)
	}
	if second.Fields.Category != category.Social || second.Fields.Priority != category.Low || !second.Completed {
		t.Fatalf("all-day event metadata = %+v", second)
	}
}

const recurring = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:gym\r\n" +
	"DTSTAMP:20261019T080000Z\r\n" +
	"DTSTART;VALUE=DATE:20261019\r\n" +
	"RRULE:FREQ=WEEKLY;COUNT=3\r\n" +
	"SUMMARY:Gym\r\n" +
	"CATEGORIES:Fitness,Health\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nodate\r\n" +
	"DTSTAMP:20261019T080000Z\r\n" +
	"SUMMARY:Broken\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportExpandsRecurrence(t *testing.T) {
	got, err := Import(strings.NewReader(recurring), ImportOptions{Category: category.Personal})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	wantDates := []string{"2026-10-19", "2026-10-26", "2026-11-02"}
	for i, imp := range got {
		if imp.Fields.Date != wantDates[i] {
			t.Errorf("occurrence %d = %s, want %s", i, imp.Fields.Date, wantDates[i])
		}
		if imp.Fields.Category != category.Health {
			t.Errorf("category = %s, want health", imp.Fields.Category)
		}
		if imp.Fields.Priority != category.Medium {
			t.Errorf("priority = %s, want medium", imp.Fields.Priority)
		}
	}

	single, err := Import(strings.NewReader(recurring), ImportOptions{ExpandLimit: -1})
	if err != nil {
		t.Fatal(err)
	}
	if len(single) != 1 {
		t.Fatalf("expected expansion disabled, got %d", len(single))
	}
}

func TestCategoryFallback(t *testing.T) {
	if got := categoryOf("Meetings", category.Personal); got != category.Personal {
		t.Fatalf("got %s", got)
	}
	if got := categoryOf("", ""); got != "" {
		t.Fatalf("got %s", got)
	}
}

func TestPriorityMapping(t *testing.T) {
	cases := map[string]category.Priority{"1": category.High, "4": category.High, "5": category.Medium, "0": category.Medium, "": category.Medium, "9": category.Low}
	for in, want := range cases {
		if got := priorityFromICS(in); got != want {
			t.Errorf("priorityFromICS(%q) = %s, want %s", in, got, want)
		}
	}
}
