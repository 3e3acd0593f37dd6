// Package category holds the fixed category and priority registry used to
// classify and decorate agenda items.
package category

import (
	"fmt"
	"strings"
)

// ID identifies a category.
type ID string

const (
	Work      ID = "work"
	Personal  ID = "personal"
	Health    ID = "health"
	Social    ID = "social"
	Education ID = "education"
	Other     ID = "other"
)

// FallbackColor is used when an item references a category the registry does
// not know about.
const FallbackColor = "#6b7280"

// Category carries the display metadata for a category.
type Category struct {
	ID    ID
	Label string // French label.
	Name  string // English label.
	Color string // hex, e.g. "#3b82f6".
}

// LabelFor returns the label for the given locale ("fr" or anything else for
// English).
func (c Category) LabelFor(locale string) string {
	if strings.EqualFold(locale, "fr") {
		return c.Label
	}
	return c.Name
}

func (c Category) String() string {
	return string(c.ID)
}

var categories = []Category{
	{ID: Work, Label: "Travail", Name: "Work", Color: "#3b82f6"},
	{ID: Personal, Label: "Personnel", Name: "Personal", Color: "#22c55e"},
	{ID: Health, Label: "Santé", Name: "Health", Color: "#ef4444"},
	{ID: Social, Label: "Social", Name: "Social", Color: "#a855f7"},
	{ID: Education, Label: "Éducation", Name: "Education", Color: "#eab308"},
	{ID: Other, Label: "Autre", Name: "Other", Color: "#6b7280"},
}

// All returns the registry categories in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IDs returns the category identifiers in display order.
func IDs() []ID {
	ids := make([]ID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// Lookup finds the category for id.
func Lookup(id ID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Valid reports whether id names a registry category.
func Valid(id ID) bool {
	_, ok := Lookup(id)
	return ok
}

// ColorOf returns the registry colour for id, or FallbackColor.
func ColorOf(id ID) string {
	if c, ok := Lookup(id); ok {
		return c.Color
	}
	return FallbackColor
}

// LabelOf returns a display label for id. Unknown ids render as "?".
func LabelOf(id ID, locale string) string {
	if c, ok := Lookup(id); ok {
		return c.LabelFor(locale)
	}
	return "?"
}

// IsPersonal reports whether id counts towards the personal side of the
// work/life balance (personal, health and social).
func IsPersonal(id ID) bool {
	switch id {
	case Personal, Health, Social:
		return true
	}
	return false
}

// Parse converts user input into a registry ID.
func Parse(raw string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	if !Valid(id) {
		return "", fmt.Errorf("category: unknown category %q", raw)
	}
	return id, nil
}

// Filter selects either every category or exactly one.
type Filter string

// FilterAll matches every category.
const FilterAll Filter = "all"

// ParseFilter accepts "all" (or empty) or a registry id.
func ParseFilter(raw string) (Filter, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == string(FilterAll) {
		return FilterAll, nil
	}
	id, err := Parse(v)
	if err != nil {
		return FilterAll, err
	}
	return Filter(id), nil
}

// Match reports whether id passes the filter.
func (f Filter) Match(id ID) bool {
	return f == "" || f == FilterAll || ID(f) == id
}

// Next cycles all -> work -> ... -> other -> all.
func (f Filter) Next() Filter {
	if f == "" || f == FilterAll {
		return Filter(categories[0].ID)
	}
	for i, c := range categories {
		if Filter(c.ID) == f {
			if i+1 < len(categories) {
				return Filter(categories[i+1].ID)
			}
			return FilterAll
		}
	}
	return FilterAll
}

// String implements pflag.Value.
func (f *Filter) String() string {
	if f == nil || *f == "" {
		return string(FilterAll)
	}
	return string(*f)
}

// Set implements pflag.Value.
func (f *Filter) Set(raw string) error {
	parsed, err := ParseFilter(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Filter) Type() string {
	return "category"
}
