// Package remove provides the runner logic for deleting items.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

// Remove deletes item ID. Deletion is immediate and cannot be undone.
type Remove struct {
	ID      string
	Service *app.Service
	Output  printers.Encoder
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	it, err := n.Service.Delete(ctx, n.ID)
	if err != nil {
		return err
	}
	if printers.Structured(n.Output) {
		return n.Output.Write(it)
	}
	pp := printers.PrettyPrint{Dark: n.Service.State().DarkMode, Locale: n.Service.Locale()}
	pp.Item("deleted", it)
	return nil
}
