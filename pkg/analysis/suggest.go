package analysis

import (
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

type messages struct {
	freeDays     string
	highPriority string
	balance      string
	none         string
}

var catalog = map[string]messages{
	"en": {
		freeDays:     "You have %d free day(s) this week. Why not plan some time for yourself?",
		highPriority: "You have %d high-priority task(s) to finish.",
		balance:      "Consider balancing your week with more personal activities.",
		none:         "No suggestions for this week.",
	},
	"fr": {
		freeDays:     "Vous avez %d jour(s) libre(s) cette semaine. Pourquoi ne pas planifier du temps pour vous ?",
		highPriority: "Vous avez %d tâche(s) prioritaire(s) à terminer.",
		balance:      "Pensez à équilibrer votre semaine avec plus d'activités personnelles.",
		none:         "Aucune suggestion pour cette semaine.",
	},
}

func lookup(locale string) messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog["en"]
}

// NoSuggestions is the text shown in place of an empty suggestion list.
func NoSuggestions(locale string) string {
	return lookup(locale).none
}

// Suggest evaluates the free-day, high-priority and balance heuristics over
// the week containing anchor, in that order. Every heuristic that triggers
// contributes one message; none triggering returns an empty list.
func Suggest(items []item.Item, anchor time.Time, locale string) []string {
	msgs := lookup(locale)
	week := calendar.InWeekItems(items, anchor)
	out := []string{}

	busy := make(map[string]bool, len(week))
	for _, it := range week {
		busy[it.Date] = true
	}
	free := 0
	for _, d := range calendar.WeekDates(anchor) {
		if !busy[d] {
			free++
		}
	}
	if free > 0 {
		out = append(out, fmt.Sprintf(msgs.freeDays, free))
	}

	pending := 0
	for _, it := range week {
		if it.Priority == category.High && !it.Completed {
			pending++
		}
	}
	if pending > 0 {
		out = append(out, fmt.Sprintf(msgs.highPriority, pending))
	}

	work, personal := 0, 0
	for _, it := range week {
		switch {
		case it.Category == category.Work:
			work++
		case category.IsPersonal(it.Category):
			personal++
		}
	}
	if work > personal*2 {
		out = append(out, msgs.balance)
	}

	return out
}
