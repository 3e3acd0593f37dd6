// Package complete provides the runner logic for toggling item completion.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

// Complete flips the completed flag of an item.
type Complete struct {
	ID      string
	Service *app.Service
	Output  printers.Encoder
}

// Do executes the toggle for the configured item ID and shows its day.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}

	it, err := n.Service.Toggle(ctx, n.ID)
	if err != nil {
		return err
	}
	if printers.Structured(n.Output) {
		return n.Output.Write(it)
	}

	st := n.Service.State()
	pp := printers.PrettyPrint{ShowID: true, Dark: st.DarkMode, Locale: n.Service.Locale()}
	pp.NewLine()
	day, _ := it.Day()
	pp.Day(day, n.Service.ItemsForDate(ctx, it.Date, st.Filter))
	return nil
}
