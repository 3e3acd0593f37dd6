package recur

import (
	"reflect"
	"testing"
	"time"
)

func TestExpand(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		rule  string
		limit int
		want  []string
	}{
		{
			name: "daily count",
			rule: "FREQ=DAILY;COUNT=3",
			want: []string{"2026-10-19", "2026-10-20", "2026-10-21"},
		},
		{
			name: "weekly on weekdays with prefix",
			rule: "RRULE:FREQ=WEEKLY;BYDAY=MO,WE;COUNT=4",
			want: []string{"2026-10-19", "2026-10-21", "2026-10-26", "2026-10-28"},
		},
		{
			name:  "unbounded is capped",
			rule:  "FREQ=MONTHLY",
			limit: 2,
			want:  []string{"2026-10-19", "2026-11-19"},
		},
		{
			name: "until",
			rule: "FREQ=WEEKLY;UNTIL=20261103T000000Z",
			want: []string{"2026-10-19", "2026-10-26", "2026-11-02"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.rule, start, tt.limit)
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandDefaultLimit(t *testing.T) {
	got, err := Expand("FREQ=DAILY", time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != DefaultLimit {
		t.Fatalf("got %d dates, want %d", len(got), DefaultLimit)
	}
}

func TestExpandErrors(t *testing.T) {
	start := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)
	for _, rule := range []string{"", "FREQ=SOMETIMES", "NOT A RULE"} {
		if _, err := Expand(rule, start, 0); err == nil {
			t.Errorf("expected error for %q", rule)
		}
	}
}
