// Package mcp provides the Model Context Protocol server integration for the
// agenda.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/quote"
	"tableflip.dev/agenda/pkg/timeutil"
)

// Service adapts app.Service to the argument shapes used by the MCP tools.
type Service struct {
	App *app.Service
}

// NewService builds a service wrapper around the agenda controller.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListItemsInput filters list_items.
type ListItemsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only items of this category (work, personal, health, social, education, other)"`
	From     string `json:"from,omitempty" jsonschema:"Earliest date, inclusive (YYYY-MM-DD, today, +3d)"`
	To       string `json:"to,omitempty" jsonschema:"Latest date, inclusive (YYYY-MM-DD, today, +3d)"`
	Pending  bool   `json:"pending,omitempty" jsonschema:"Only items that are not completed"`
}

// DateInput selects a day, or the week containing it.
type DateInput struct {
	Date     string `json:"date,omitempty" jsonschema:"Day to use (YYYY-MM-DD, M/D, today, tomorrow, +3d); defaults to today"`
	Category string `json:"category,omitempty" jsonschema:"Only items of this category"`
}

// ItemInput carries the editable fields of an item.
type ItemInput struct {
	Title       string `json:"title,omitempty" jsonschema:"Item title"`
	Description string `json:"description,omitempty" jsonschema:"Free text description"`
	Date        string `json:"date,omitempty" jsonschema:"Day of the item (YYYY-MM-DD, M/D, today, tomorrow, +3d)"`
	Time        string `json:"time,omitempty" jsonschema:"Optional clock time HH:MM"`
	Category    string `json:"category,omitempty" jsonschema:"One of work, personal, health, social, education, other"`
	Priority    string `json:"priority,omitempty" jsonschema:"One of low, medium, high; defaults to medium"`
}

// UpdateItemInput changes an item. Empty fields keep their current value.
type UpdateItemInput struct {
	ID          string `json:"id" jsonschema:"Identifier of the item to update"`
	Title       string `json:"title,omitempty" jsonschema:"New title"`
	Description string `json:"description,omitempty" jsonschema:"New description"`
	Date        string `json:"date,omitempty" jsonschema:"New day (YYYY-MM-DD, M/D, today, tomorrow, +3d)"`
	Time        string `json:"time,omitempty" jsonschema:"New clock time HH:MM"`
	Category    string `json:"category,omitempty" jsonschema:"New category"`
	Priority    string `json:"priority,omitempty" jsonschema:"New priority"`
	ClearTime   bool   `json:"clear_time,omitempty" jsonschema:"Remove the clock time so the item lasts all day"`
}

func (in UpdateItemInput) fields() ItemInput {
	return ItemInput{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Category:    in.Category,
		Priority:    in.Priority,
	}
}

// IDInput names one item.
type IDInput struct {
	ID string `json:"id" jsonschema:"Identifier of the item"`
}

// QuoteInput has no arguments.
type QuoteInput struct{}

// SuggestResult is the payload of the suggest tool.
type SuggestResult struct {
	WeekStart   string   `json:"weekStart"`
	Suggestions []string `json:"suggestions"`
}

// QuoteResult is the payload of the daily_quote tool.
type QuoteResult struct {
	Date  string `json:"date"`
	Quote string `json:"quote"`
}

// ListItems returns every item matching in, in store order.
func (s *Service) ListItems(ctx context.Context, in ListItemsInput) ([]item.Item, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	filter, err := parseFilter(in.Category)
	if err != nil {
		return nil, err
	}
	var from, to time.Time
	if in.From != "" {
		if from, err = s.day(in.From); err != nil {
			return nil, err
		}
	}
	if in.To != "" {
		if to, err = s.day(in.To); err != nil {
			return nil, err
		}
	}

	out := make([]item.Item, 0)
	for _, it := range s.App.Items(ctx) {
		if !filter.Match(it.Category) || (in.Pending && it.Completed) {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			d, ok := it.Day()
			if !ok {
				continue
			}
			if !from.IsZero() && d.Before(from) {
				continue
			}
			if !to.IsZero() && d.After(to) {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

// ItemsForDate returns one day's items, untimed first then by time.
func (s *Service) ItemsForDate(ctx context.Context, in DateInput) ([]item.Item, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d, err := s.day(in.Date)
	if err != nil {
		return nil, err
	}
	filter, err := parseFilter(in.Category)
	if err != nil {
		return nil, err
	}
	items := s.App.ItemsForDate(ctx, item.FormatDate(d), filter)
	if items == nil {
		items = []item.Item{}
	}
	return items, nil
}

// CreateItem adds a new item. Date defaults to today and category to work.
func (s *Service) CreateItem(ctx context.Context, in ItemInput) (item.Item, error) {
	if err := s.ready(); err != nil {
		return item.Item{}, err
	}
	f := item.Fields{Category: category.Work, Priority: category.Medium}
	f, err := s.merge(f, in)
	if err != nil {
		return item.Item{}, err
	}
	if strings.TrimSpace(in.Date) == "" {
		f.Date = item.FormatDate(s.App.Now())
	}
	return s.App.Create(ctx, f)
}

// UpdateItem merges in over the existing fields of the item.
func (s *Service) UpdateItem(ctx context.Context, in UpdateItemInput) (item.Item, error) {
	if err := s.ready(); err != nil {
		return item.Item{}, err
	}
	current, err := s.App.Find(ctx, in.ID)
	if err != nil {
		return item.Item{}, err
	}
	f, err := s.merge(current.Fields(), in.fields())
	if err != nil {
		return item.Item{}, err
	}
	if in.ClearTime {
		f.Time = ""
	}
	return s.App.Update(ctx, in.ID, f)
}

// DeleteItem removes an item and returns it.
func (s *Service) DeleteItem(ctx context.Context, in IDInput) (item.Item, error) {
	if err := s.ready(); err != nil {
		return item.Item{}, err
	}
	return s.App.Delete(ctx, in.ID)
}

// ToggleItem flips the completion of an item.
func (s *Service) ToggleItem(ctx context.Context, in IDInput) (item.Item, error) {
	if err := s.ready(); err != nil {
		return item.Item{}, err
	}
	return s.App.Toggle(ctx, in.ID)
}

// AnalyzeWeek computes the weekly analysis of the week containing in.Date.
func (s *Service) AnalyzeWeek(ctx context.Context, in DateInput) (analysis.Weekly, error) {
	if err := s.ready(); err != nil {
		return analysis.Weekly{}, err
	}
	d, err := s.day(in.Date)
	if err != nil {
		return analysis.Weekly{}, err
	}
	return analysis.Analyze(s.App.Items(ctx), d), nil
}

// Suggest returns the planning suggestions for the week containing in.Date.
func (s *Service) Suggest(ctx context.Context, in DateInput) (SuggestResult, error) {
	if err := s.ready(); err != nil {
		return SuggestResult{}, err
	}
	d, err := s.day(in.Date)
	if err != nil {
		return SuggestResult{}, err
	}
	list := analysis.Suggest(s.App.Items(ctx), d, s.App.Locale())
	if list == nil {
		list = []string{}
	}
	return SuggestResult{
		WeekStart:   item.FormatDate(calendar.WeekStart(d)),
		Suggestions: list,
	}, nil
}

// Quote returns today's motivational quote.
func (s *Service) Quote(_ context.Context) (QuoteResult, error) {
	if err := s.ready(); err != nil {
		return QuoteResult{}, err
	}
	now := s.App.Now()
	return QuoteResult{
		Date:  item.FormatDate(now),
		Quote: quote.ForDay(now, s.App.Locale()),
	}, nil
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errors.New("agenda service is not configured")
	}
	return nil
}

func (s *Service) day(raw string) (time.Time, error) {
	now := s.App.Now()
	if strings.TrimSpace(raw) == "" {
		return item.Midnight(now), nil
	}
	d, err := timeutil.ParseDay(raw, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", app.ErrInvalid, err)
	}
	return d, nil
}

func parseFilter(raw string) (category.Filter, error) {
	f, err := category.ParseFilter(raw)
	if err != nil {
		return f, fmt.Errorf("%w: %v", app.ErrInvalid, err)
	}
	return f, nil
}

// merge overlays the non-empty values of in onto f.
func (s *Service) merge(f item.Fields, in ItemInput) (item.Fields, error) {
	if in.Title != "" {
		f.Title = in.Title
	}
	if in.Description != "" {
		f.Description = in.Description
	}
	if in.Date != "" {
		d, err := s.day(in.Date)
		if err != nil {
			return f, err
		}
		f.Date = item.FormatDate(d)
	}
	if in.Time != "" {
		f.Time = in.Time
	}
	if in.Category != "" {
		f.Category = category.ID(strings.ToLower(strings.TrimSpace(in.Category)))
	}
	if in.Priority != "" {
		f.Priority = category.Priority(strings.ToLower(strings.TrimSpace(in.Priority)))
	}
	return f, nil
}
