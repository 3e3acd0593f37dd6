package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

// ItemOptions
type ItemOptions struct {
	Title       string
	Description string
	At          string
	Category    string
	Priority    string
	Repeat      string
	Limit       int

	On OnOptions
}

func AddItemArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "",
		"Item title. Defaults to the remaining arguments.")
	cmd.Flags().StringVarP(&o.Description, "desc", "d", "",
		"Free text description.")
	cmd.Flags().StringVar(&o.At, "at", "",
		`Time of day as HH:MM, example: --at=09:30.`)
	cmd.Flags().StringVarP(&o.Category, "category", "c", string(category.Work),
		"Category: work, personal, health, social, education or other.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", string(category.Medium),
		"Priority: low, medium or high.")
	AddOnArgs(cmd, &o.On)
}

func AddRepeatArgs(cmd *cobra.Command, o *ItemOptions) {
	cmd.Flags().StringVar(&o.Repeat, "repeat", "",
		`RFC 5545 recurrence rule, example: --repeat="FREQ=WEEKLY;BYDAY=MO,WE;COUNT=6".`)
	cmd.Flags().IntVar(&o.Limit, "limit", 0,
		"Maximum occurrences for a rule without COUNT or UNTIL (default 366).")
}

// Fields builds the create form from flags and the title arguments.
func (o *ItemOptions) Fields(args []string, now time.Time) (item.Fields, error) {
	on, err := o.On.GetOn(now)
	if err != nil {
		return item.Fields{}, err
	}
	title := o.Title
	if title == "" {
		title = strings.Join(args, " ")
	}
	return item.Fields{
		Title:       strings.TrimSpace(title),
		Description: o.Description,
		Date:        item.FormatDate(on),
		Time:        strings.TrimSpace(o.At),
		Category:    category.ID(strings.ToLower(strings.TrimSpace(o.Category))),
		Priority:    category.Priority(strings.ToLower(strings.TrimSpace(o.Priority))),
	}, nil
}

// Merge overlays the flags the user actually set on base, for edit.
func (o *ItemOptions) Merge(cmd *cobra.Command, base item.Fields, now time.Time) (item.Fields, error) {
	f := base
	flags := cmd.Flags()
	if flags.Changed("title") {
		f.Title = strings.TrimSpace(o.Title)
	}
	if flags.Changed("desc") {
		f.Description = o.Description
	}
	if flags.Changed("at") {
		f.Time = strings.TrimSpace(o.At)
	}
	if flags.Changed("category") {
		f.Category = category.ID(strings.ToLower(strings.TrimSpace(o.Category)))
	}
	if flags.Changed("priority") {
		f.Priority = category.Priority(strings.ToLower(strings.TrimSpace(o.Priority)))
	}
	if o.On.IsSet() {
		on, err := o.On.GetOn(now)
		if err != nil {
			return item.Fields{}, err
		}
		f.Date = item.FormatDate(on)
	}
	return f, nil
}
