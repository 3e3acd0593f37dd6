package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/validation"
)

var (
	// ErrInvalid wraps validation failures on create and update. The wrapped
	// validation.FieldErrors carries the per-field messages.
	ErrInvalid = errors.New("app: invalid item")
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("app: item not found")
)

// State is everything a session of the agenda knows. Reducers never modify
// the State they are given.
type State struct {
	Items       []item.Item
	Nav         calendar.Navigator
	Filter      category.Filter
	Draft       item.Fields
	EditingID   string
	Suggestions []string
	Analysis    *analysis.Weekly
	ShowQuote   bool
	DarkMode    bool
}

// NewState returns an empty day view anchored at now.
func NewState(now time.Time) State {
	return State{
		Nav:       calendar.NewNavigator(now),
		Filter:    category.FilterAll,
		ShowQuote: true,
	}
}

func (s State) index(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item with the given id.
func (s State) Find(id string) (item.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.Items[i], true
	}
	return item.Item{}, false
}

// ItemsForDate lists the day's items that pass the current filter.
func (s State) ItemsForDate(date string) []item.Item {
	return calendar.ItemsForDate(s.Items, date, s.Filter)
}

func (s State) withItems(items []item.Item) State {
	s.Items = items
	return s
}

// Reducer applies actions to a State. NewID, Owner, Locale and Now are its
// only inputs besides the State itself.
type Reducer struct {
	NewID  func() (string, error)
	Owner  string
	Locale string
	Now    func() time.Time
}

// NewReducer returns a Reducer issuing UUIDv7 ids and reading the wall clock.
func NewReducer(owner, locale string) Reducer {
	return Reducer{
		NewID:  newUUID,
		Owner:  owner,
		Locale: locale,
		Now:    time.Now,
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r Reducer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create validates f and appends a new incomplete item. The draft form and
// editing id are cleared and the suggestions recomputed.
func (r Reducer) Create(s State, f item.Fields) (State, item.Item, error) {
	if err := validation.Fields(f); err != nil {
		return s, item.Item{}, invalid(err)
	}
	newID := r.NewID
	if newID == nil {
		newID = newUUID
	}
	id, err := newID()
	if err != nil {
		return s, item.Item{}, fmt.Errorf("app: allocate id: %w", err)
	}
	it := item.New(id, r.Owner, f)

	items := make([]item.Item, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	next := s.withItems(append(items, it))
	next = r.ResetForm(next)
	next.Suggestions = analysis.Suggest(next.Items, next.Nav.Anchor, r.Locale)
	return next, it, nil
}

// Update validates f and replaces the editable fields of item id. Identity
// and completion are preserved.
func (r Reducer) Update(s State, id string, f item.Fields) (State, item.Item, error) {
	i := s.index(id)
	if i < 0 {
		return s, item.Item{}, notFound(id)
	}
	if err := validation.Fields(f); err != nil {
		return s, item.Item{}, invalid(err)
	}
	items := make([]item.Item, len(s.Items))
	copy(items, s.Items)
	items[i].Apply(f)
	next := r.ResetForm(s.withItems(items))
	return next, items[i], nil
}

// Delete removes item id.
func (r Reducer) Delete(s State, id string) (State, item.Item, error) {
	i := s.index(id)
	if i < 0 {
		return s, item.Item{}, notFound(id)
	}
	removed := s.Items[i]
	items := make([]item.Item, 0, len(s.Items)-1)
	items = append(items, s.Items[:i]...)
	items = append(items, s.Items[i+1:]...)
	next := s.withItems(items)
	if next.EditingID == id {
		next = r.ResetForm(next)
	}
	return next, removed, nil
}

// ToggleCompletion flips the completed flag of item id.
func (r Reducer) ToggleCompletion(s State, id string) (State, item.Item, error) {
	i := s.index(id)
	if i < 0 {
		return s, item.Item{}, notFound(id)
	}
	items := make([]item.Item, len(s.Items))
	copy(items, s.Items)
	items[i].Completed = !items[i].Completed
	return s.withItems(items), items[i], nil
}

// BeginEdit loads item id into the draft form.
func (r Reducer) BeginEdit(s State, id string) (State, error) {
	it, ok := s.Find(id)
	if !ok {
		return s, notFound(id)
	}
	s.Draft = it.Fields()
	s.EditingID = id
	return s, nil
}

// ResetForm clears the draft back to a medium-priority work item on the
// anchor date.
func (r Reducer) ResetForm(s State) State {
	s.Draft = item.Fields{
		Date:     s.Nav.AnchorDate(),
		Category: category.Work,
		Priority: category.Medium,
	}
	s.EditingID = ""
	return s
}

// Advance moves the navigator one unit of its view.
func (r Reducer) Advance(s State, dir calendar.Direction) State {
	s.Nav = s.Nav.Advance(dir)
	return s
}

// JumpToToday anchors the navigator on the current day.
func (r Reducer) JumpToToday(s State) State {
	s.Nav = s.Nav.JumpToToday(r.now())
	return s
}

// SetView switches granularity without moving the anchor.
func (r Reducer) SetView(s State, g calendar.Granularity) State {
	s.Nav = s.Nav.SetView(g)
	return s
}

// SetFilter restricts listings to one category, or all.
func (r Reducer) SetFilter(s State, f category.Filter) State {
	if f == "" {
		f = category.FilterAll
	}
	s.Filter = f
	return s
}

// Analyze stores the weekly snapshot for the anchor's week.
func (r Reducer) Analyze(s State) State {
	w := analysis.Analyze(s.Items, s.Nav.Anchor)
	s.Analysis = &w
	return s
}

// Suggest replaces the suggestion list for the anchor's week.
func (r Reducer) Suggest(s State) State {
	s.Suggestions = analysis.Suggest(s.Items, s.Nav.Anchor, r.Locale)
	return s
}

// ToggleQuote flips the daily quote visibility.
func (r Reducer) ToggleQuote(s State) State {
	s.ShowQuote = !s.ShowQuote
	return s
}

// SetDarkMode records the display preference.
func (r Reducer) SetDarkMode(s State, dark bool) State {
	s.DarkMode = dark
	return s
}
