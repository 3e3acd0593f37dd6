package teaui

import (
	"errors"
	"strings"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

// parseQuickAdd reads "[HH:MM] [category] [!|?] title" into fields on date.
// The category defaults to fallback; "!" marks high priority and "?" low.
func parseQuickAdd(input, date string, fallback category.ID) (item.Fields, error) {
	f := item.Fields{Date: date, Category: fallback, Priority: category.Medium}
	tokens := strings.Fields(input)

	if len(tokens) > 0 {
		if _, err := item.ParseClock(tokens[0]); err == nil {
			f.Time = tokens[0]
			tokens = tokens[1:]
		}
	}
	if len(tokens) > 0 {
		if id, err := category.Parse(tokens[0]); err == nil {
			f.Category = id
			tokens = tokens[1:]
		}
	}
	if len(tokens) > 0 {
		switch tokens[0] {
		case "!":
			f.Priority = category.High
			tokens = tokens[1:]
		case "?":
			f.Priority = category.Low
			tokens = tokens[1:]
		}
	}
	f.Title = strings.Join(tokens, " ")
	if f.Title == "" {
		return f, errors.New("a title is required")
	}
	return f, nil
}

// formatQuickAdd renders f in the form parseQuickAdd reads.
func formatQuickAdd(f item.Fields) string {
	var parts []string
	if f.Time != "" {
		parts = append(parts, f.Time)
	}
	parts = append(parts, string(f.Category))
	switch f.Priority {
	case category.High:
		parts = append(parts, "!")
	case category.Low:
		parts = append(parts, "?")
	}
	parts = append(parts, f.Title)
	return strings.Join(parts, " ")
}
