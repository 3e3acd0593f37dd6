// Package item defines the agenda item and the editable field set used to
// create or edit one.
package item

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/agenda/pkg/category"
)

// Item is a single schedulable agenda event. The JSON field names are the
// persisted format.
type Item struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Date        string            `json:"date" yaml:"date"`
	Time        string            `json:"time" yaml:"time"`
	Category    category.ID       `json:"category" yaml:"category"`
	Priority    category.Priority `json:"priority" yaml:"priority"`
	Color       string            `json:"color" yaml:"color"`
	Completed   bool              `json:"completed" yaml:"completed"`
	UserID      string            `json:"user_id" yaml:"user_id"`
}

// Fields is the editable part of an item, as captured by the create/edit
// form.
type Fields struct {
	Title       string            `json:"title" yaml:"title" validate:"required"`
	Description string            `json:"description" yaml:"description"`
	Date        string            `json:"date" yaml:"date" validate:"required,isodate"`
	Time        string            `json:"time" yaml:"time" validate:"omitempty,clock"`
	Category    category.ID       `json:"category" yaml:"category" validate:"required,category"`
	Priority    category.Priority `json:"priority" yaml:"priority" validate:"omitempty,priority"`
}

// New builds an item from fields. The colour is copied from the registry at
// this point and is not recomputed later.
func New(id, owner string, f Fields) Item {
	it := Item{ID: id, UserID: owner}
	it.Apply(f)
	return it
}

// Apply replaces every editable field, including the derived colour. ID,
// owner and completion are left alone.
func (it *Item) Apply(f Fields) {
	it.Title = f.Title
	it.Description = f.Description
	it.Date = f.Date
	it.Time = f.Time
	it.Category = f.Category
	it.Priority = f.Priority.OrDefault()
	it.Color = category.ColorOf(f.Category)
}

// Fields returns the editable view of the item.
func (it Item) Fields() Fields {
	return Fields{
		Title:       it.Title,
		Description: it.Description,
		Date:        it.Date,
		Time:        it.Time,
		Category:    it.Category,
		Priority:    it.Priority,
	}
}

// Day parses the item date. ok is false for malformed dates.
func (it Item) Day() (time.Time, bool) {
	d, err := ParseDate(it.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// HasTime reports whether the item is scheduled at a clock time.
func (it Item) HasTime() bool {
	return strings.TrimSpace(it.Time) != ""
}

func (it Item) String() string {
	check := "○"
	if it.Completed {
		check = "✓"
	}
	when := it.Date
	if it.HasTime() {
		when += " " + it.Time
	}
	return fmt.Sprintf("%s %s  %s [%s]", check, when, it.Title, it.Category)
}
