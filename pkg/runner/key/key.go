// Package key provides CLI helpers to display the category and priority
// legend.
package key

import (
	"context"

	"tableflip.dev/agenda/pkg/printers"
)

// Key prints the registry legend.
type Key struct {
	Dark   bool
	Locale string
}

// Do renders the category and priority tables to stdout.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Dark: k.Dark, Locale: k.Locale}
	pp.NewLine()
	pp.Legend()
	return nil
}
