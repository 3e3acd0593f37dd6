// Package add provides the runner logic for creating agenda items.
package add

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/printers"
)

// Add creates an item, or one item per occurrence when Repeat is set.
type Add struct {
	Fields item.Fields
	Repeat string
	Limit  int

	ShowID  bool
	Service *app.Service
	Output  printers.Encoder
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	var (
		created []item.Item
		err     error
	)
	if n.Repeat != "" {
		created, err = n.Service.CreateRepeating(ctx, n.Fields, n.Repeat, n.Limit)
	} else {
		var it item.Item
		it, err = n.Service.Create(ctx, n.Fields)
		if err == nil {
			created = []item.Item{it}
		}
	}
	if err != nil && len(created) == 0 {
		return err
	}

	if printers.Structured(n.Output) {
		if werr := n.Output.Write(created); werr != nil {
			return werr
		}
		return err
	}

	st := n.Service.State()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Dark: st.DarkMode, Locale: n.Service.Locale()}
	for _, it := range created {
		pp.Item("added", it)
	}
	if len(created) == 1 {
		pp.NewLine()
		day, _ := created[0].Day()
		pp.Day(day, n.Service.ItemsForDate(ctx, created[0].Date, st.Filter))
	}
	return err
}
