// Package app is the agenda controller: pure reducers over State and a
// Service that owns one State and mirrors item changes into the store.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/logger"
	"tableflip.dev/agenda/pkg/quote"
	"tableflip.dev/agenda/pkg/recur"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/validation"
)

// Service provides high-level agenda operations shared by the CLI, the TUI,
// and the MCP and HTTP servers. Calls are serialised; the store is only
// touched while holding the lock.
type Service struct {
	events  *store.Events
	reducer Reducer
	log     *zap.Logger

	mu    sync.Mutex
	state State
}

// Options tunes New.
type Options struct {
	// DarkDefault is used when no dark-mode preference was ever saved.
	DarkDefault bool
	Logger      *zap.Logger
}

// New rehydrates a Service from events, restoring the remembered view state
// and dark-mode preference.
func New(_ context.Context, events *store.Events, r Reducer, opts Options) (*Service, error) {
	if events == nil {
		return nil, errors.New("app: no store configured")
	}
	s := &Service{
		events:  events,
		reducer: r,
		log:     logger.OrNop(opts.Logger),
	}

	st := NewState(r.now())
	st.Items = events.All()

	dark, ok, err := events.DarkMode()
	if err != nil {
		return nil, err
	}
	if !ok {
		dark = opts.DarkDefault
	}
	st.DarkMode = dark

	vs, err := events.ViewState()
	if err != nil {
		s.log.Warn("ignoring unreadable view state", zap.Error(err))
	}
	st = restoreView(st, vs)

	s.state = r.ResetForm(st)
	return s, nil
}

func restoreView(st State, vs store.ViewState) State {
	if d, err := item.ParseDate(vs.Anchor); err == nil {
		st.Nav.Anchor = d
	}
	if vs.View != "" {
		if g, err := calendar.ParseGranularity(vs.View); err == nil {
			st.Nav.View = g
		}
	}
	if f, err := category.ParseFilter(vs.Filter); err == nil {
		st.Filter = f
	}
	return st
}

// Locale is the message language of this service.
func (s *Service) Locale() string {
	return s.reducer.Locale
}

// Owner is the user id stamped on new items.
func (s *Service) Owner() string {
	return s.reducer.Owner
}

// Now is the service clock.
func (s *Service) Now() time.Time {
	return s.reducer.now()
}

// State returns a snapshot of the current state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) snapshot() State {
	st := s.state
	st.Items = make([]item.Item, len(s.state.Items))
	copy(st.Items, s.state.Items)
	st.Suggestions = append([]string(nil), s.state.Suggestions...)
	return st
}

// Items returns every item in store order.
func (s *Service) Items(_ context.Context) []item.Item {
	return s.State().Items
}

// Find returns the item with the given id.
func (s *Service) Find(_ context.Context, id string) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.state.Find(id)
	if !ok {
		return item.Item{}, notFound(id)
	}
	return it, nil
}

// ItemsForDate lists one day's items with the given filter.
func (s *Service) ItemsForDate(_ context.Context, date string, filter category.Filter) []item.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.ItemsForDate(s.state.Items, date, filter)
}

// Watch subscribes to store change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.events.Watch(ctx)
}

// Reload re-reads the items after another process changed the store.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.events.Reload(ctx); err != nil {
		return err
	}
	s.state.Items = s.events.All()
	if s.state.EditingID != "" {
		if _, ok := s.state.Find(s.state.EditingID); !ok {
			s.state = s.reducer.ResetForm(s.state)
		}
	}
	return nil
}

// Create adds a new item.
func (s *Service) Create(_ context.Context, f item.Fields) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, it, err := s.reducer.Create(s.state, f)
	if err != nil {
		return item.Item{}, err
	}
	if err := s.events.Append(it); err != nil {
		return item.Item{}, err
	}
	s.state = next
	s.log.Debug("item created", zap.String("id", it.ID), zap.String("date", it.Date))
	return it, nil
}

// CreateRepeating creates one independent item per occurrence of the RRULE,
// starting on f.Date. limit caps unbounded rules; zero selects the default.
// Items created before a failing write are kept and returned with the error.
func (s *Service) CreateRepeating(ctx context.Context, f item.Fields, rule string, limit int) ([]item.Item, error) {
	if err := validation.Fields(f); err != nil {
		return nil, invalid(err)
	}
	start, err := item.ParseDate(f.Date)
	if err != nil {
		return nil, invalid(err)
	}
	dates, err := recur.Expand(rule, start, limit)
	if err != nil {
		return nil, invalid(err)
	}

	created := make([]item.Item, 0, len(dates))
	for _, d := range dates {
		occurrence := f
		occurrence.Date = d
		it, err := s.Create(ctx, occurrence)
		if err != nil {
			return created, fmt.Errorf("app: create occurrence %s: %w", d, err)
		}
		created = append(created, it)
	}
	return created, nil
}

// Import creates an item for each of fields. Every entry is validated before
// anything is stored; a validation failure stores nothing.
func (s *Service) Import(ctx context.Context, fields []item.Fields) ([]item.Item, error) {
	for i, f := range fields {
		if err := validation.Fields(f); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, f.Title, invalid(err))
		}
	}
	created := make([]item.Item, 0, len(fields))
	for _, f := range fields {
		it, err := s.Create(ctx, f)
		if err != nil {
			return created, err
		}
		created = append(created, it)
	}
	return created, nil
}

// Update replaces the editable fields of item id.
func (s *Service) Update(_ context.Context, id string, f item.Fields) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, it, err := s.reducer.Update(s.state, id, f)
	if err != nil {
		return item.Item{}, err
	}
	if err := s.events.Replace(it); err != nil {
		return item.Item{}, err
	}
	s.state = next
	return it, nil
}

// Delete removes item id and returns it.
func (s *Service) Delete(_ context.Context, id string) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, it, err := s.reducer.Delete(s.state, id)
	if err != nil {
		return item.Item{}, err
	}
	if err := s.events.Remove(id); err != nil {
		return item.Item{}, err
	}
	s.state = next
	return it, nil
}

// Toggle flips the completion of item id.
func (s *Service) Toggle(_ context.Context, id string) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, it, err := s.reducer.ToggleCompletion(s.state, id)
	if err != nil {
		return item.Item{}, err
	}
	if err := s.events.Replace(it); err != nil {
		return item.Item{}, err
	}
	s.state = next
	return it, nil
}

// BeginEdit loads item id into the draft form and returns its fields.
func (s *Service) BeginEdit(_ context.Context, id string) (item.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.reducer.BeginEdit(s.state, id)
	if err != nil {
		return item.Fields{}, err
	}
	s.state = next
	return next.Draft, nil
}

// ResetForm clears the draft form.
func (s *Service) ResetForm(_ context.Context) item.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.ResetForm(s.state)
	return s.state.Draft
}

// navigate applies a navigation reducer and remembers the result.
func (s *Service) navigate(fn func(State) State) (calendar.Navigator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.state)
	vs := store.ViewState{
		Anchor: next.Nav.AnchorDate(),
		View:   string(next.Nav.View),
		Filter: string(next.Filter),
	}
	if err := s.events.SaveViewState(vs); err != nil {
		return s.state.Nav, err
	}
	s.state = next
	return next.Nav, nil
}

// Advance moves the navigator one unit of its view.
func (s *Service) Advance(_ context.Context, dir calendar.Direction) (calendar.Navigator, error) {
	return s.navigate(func(st State) State { return s.reducer.Advance(st, dir) })
}

// Today anchors the navigator on the current day.
func (s *Service) Today(_ context.Context) (calendar.Navigator, error) {
	return s.navigate(s.reducer.JumpToToday)
}

// SetView switches granularity.
func (s *Service) SetView(_ context.Context, g calendar.Granularity) (calendar.Navigator, error) {
	return s.navigate(func(st State) State { return s.reducer.SetView(st, g) })
}

// SetAnchor moves the navigator to date without changing the view.
func (s *Service) SetAnchor(_ context.Context, date time.Time) (calendar.Navigator, error) {
	return s.navigate(func(st State) State {
		st.Nav.Anchor = item.Midnight(date)
		return st
	})
}

// SetFilter restricts listings to one category, or all.
func (s *Service) SetFilter(_ context.Context, f category.Filter) (calendar.Navigator, error) {
	return s.navigate(func(st State) State { return s.reducer.SetFilter(st, f) })
}

// Analyze computes and stores the weekly snapshot for the anchor's week.
func (s *Service) Analyze(_ context.Context) analysis.Weekly {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.Analyze(s.state)
	return *s.state.Analysis
}

// Suggest recomputes the suggestions for the anchor's week.
func (s *Service) Suggest(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.Suggest(s.state)
	return append([]string(nil), s.state.Suggestions...)
}

// Quote returns today's quote in the service locale.
func (s *Service) Quote() string {
	return quote.ForDay(s.reducer.now(), s.reducer.Locale)
}

// ToggleQuote flips the quote visibility and returns the new value.
func (s *Service) ToggleQuote() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.ToggleQuote(s.state)
	return s.state.ShowQuote
}

// SetDarkMode stores the dark-mode preference.
func (s *Service) SetDarkMode(_ context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.events.SetDarkMode(dark); err != nil {
		return err
	}
	s.state = s.reducer.SetDarkMode(s.state, dark)
	return nil
}
