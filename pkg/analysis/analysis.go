// Package analysis derives the weekly statistics and the heuristic
// suggestions from the items of one Monday-starting week.
package analysis

import (
	"math"
	"time"

	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

// Weekly is a snapshot of one week. It is recomputed on demand and never
// stored.
type Weekly struct {
	WeekStart         string              `json:"weekStart" yaml:"weekStart"`
	WeekEnd           string              `json:"weekEnd" yaml:"weekEnd"`
	TotalTasks        int                 `json:"totalTasks" yaml:"totalTasks"`
	CompletedTasks    int                 `json:"completedTasks" yaml:"completedTasks"`
	TimeByCategory    map[category.ID]int `json:"timeByCategory" yaml:"timeByCategory"`
	ProductivityScore int                 `json:"productivityScore" yaml:"productivityScore"`
	WorkLifeBalance   int                 `json:"workLifeBalance" yaml:"workLifeBalance"`
}

// Analyze computes the Weekly snapshot for the week containing anchor. Items
// with a malformed date are ignored.
func Analyze(items []item.Item, anchor time.Time) Weekly {
	start := calendar.WeekStart(anchor)
	w := Weekly{
		WeekStart:      item.FormatDate(start),
		WeekEnd:        item.FormatDate(start.AddDate(0, 0, 6)),
		TimeByCategory: make(map[category.ID]int, len(category.All())),
	}
	for _, id := range category.IDs() {
		w.TimeByCategory[id] = 0
	}

	for _, it := range calendar.InWeekItems(items, anchor) {
		w.TotalTasks++
		if it.Completed {
			w.CompletedTasks++
		}
		if category.Valid(it.Category) {
			w.TimeByCategory[it.Category]++
		}
	}

	if w.TotalTasks > 0 {
		w.ProductivityScore = percent(w.CompletedTasks, w.TotalTasks)
	}

	work := w.TimeByCategory[category.Work]
	if work == 0 {
		// No work at all counts as balanced.
		w.WorkLifeBalance = 100
	} else {
		w.WorkLifeBalance = percent(w.PersonalCount(), work)
	}
	return w
}

// PersonalCount sums the personal, health and social counts.
func (w Weekly) PersonalCount() int {
	n := 0
	for id, count := range w.TimeByCategory {
		if category.IsPersonal(id) {
			n += count
		}
	}
	return n
}

// percent rounds half away from zero.
func percent(num, den int) int {
	return int(math.Round(float64(num) / float64(den) * 100))
}
