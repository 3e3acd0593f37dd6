// Package edit provides the runner logic for changing an existing item.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/printers"
)

// Edit loads item ID into the form, lets Change modify it and saves the
// result.
type Edit struct {
	ID     string
	Change func(item.Fields) (item.Fields, error)

	ShowID  bool
	Service *app.Service
	Output  printers.Encoder
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	draft, err := n.Service.BeginEdit(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.Change != nil {
		draft, err = n.Change(draft)
		if err != nil {
			n.Service.ResetForm(ctx)
			return err
		}
	}
	it, err := n.Service.Update(ctx, n.ID, draft)
	if err != nil {
		n.Service.ResetForm(ctx)
		return err
	}

	if printers.Structured(n.Output) {
		return n.Output.Write(it)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Dark: n.Service.State().DarkMode, Locale: n.Service.Locale()}
	pp.Item("updated", it)
	return nil
}
