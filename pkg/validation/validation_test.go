package validation

import (
	"errors"
	"testing"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

func TestFields(t *testing.T) {
	t.Parallel()

	valid := item.Fields{Title: "Gym", Date: "2026-10-19", Category: category.Health}

	tests := []struct {
		name    string
		mutate  func(f *item.Fields)
		wantKey string
	}{
		{"valid", func(f *item.Fields) {}, ""},
		{"valid with time and priority", func(f *item.Fields) { f.Time = "18:15"; f.Priority = category.High }, ""},
		{"empty title", func(f *item.Fields) { f.Title = "" }, "title"},
		{"blank title", func(f *item.Fields) { f.Title = "   " }, "title"},
		{"empty date", func(f *item.Fields) { f.Date = "" }, "date"},
		{"bad date", func(f *item.Fields) { f.Date = "19/10/2026" }, "date"},
		{"missing category", func(f *item.Fields) { f.Category = "" }, "category"},
		{"unknown category", func(f *item.Fields) { f.Category = "chores" }, "category"},
		{"bad time", func(f *item.Fields) { f.Time = "noon" }, "time"},
		{"bad priority", func(f *item.Fields) { f.Priority = "urgent" }, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := valid
			tt.mutate(&f)
			err := Fields(f)
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, ok := fe[tt.wantKey]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantKey, fe)
			}
		})
	}
}
