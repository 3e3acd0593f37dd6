package app

import (
	"context"
	"time"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

// ReportSection groups completed items of one category.
type ReportSection struct {
	Category category.ID `json:"category" yaml:"category"`
	Items    []item.Item `json:"items" yaml:"items"`
}

// ReportResult lists the items completed in a date range.
type ReportResult struct {
	Since    time.Time       `json:"since" yaml:"since"`
	Until    time.Time       `json:"until" yaml:"until"`
	Sections []ReportSection `json:"sections" yaml:"sections"`
	Total    int             `json:"total" yaml:"total"`
}

// Report returns completed items dated between since and until inclusive,
// grouped by category in registry order.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	from := item.Midnight(since)
	to := item.Midnight(until)

	grouped := make(map[category.ID][]item.Item)
	total := 0
	for _, it := range s.Items(ctx) {
		if !it.Completed {
			continue
		}
		d, ok := it.Day()
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		grouped[it.Category] = append(grouped[it.Category], it)
		total++
	}

	res := ReportResult{Since: since, Until: until, Total: total}
	for _, id := range category.IDs() {
		if items := grouped[id]; len(items) > 0 {
			res.Sections = append(res.Sections, ReportSection{Category: id, Items: items})
		}
	}
	return res, nil
}
