// Package transfer moves items in and out of the agenda as iCalendar.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/ics"
	"tableflip.dev/agenda/pkg/item"
)

// Export writes items as an .ics calendar to Path, or Out when Path is
// empty or "-".
type Export struct {
	Path   string
	Filter category.Filter
	Out    io.Writer

	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	var items []item.Item
	for _, it := range n.Service.Items(ctx) {
		if n.Filter.Match(it.Category) {
			items = append(items, it)
		}
	}

	if n.Path == "" || n.Path == "-" {
		out := n.Out
		if out == nil {
			out = os.Stdout
		}
		return ics.Export(out, items, ics.ExportOptions{})
	}

	f, err := os.Create(n.Path)
	if err != nil {
		return err
	}
	if err := ics.Export(f, items, ics.ExportOptions{}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "exported %d items to %s\n", len(items), n.Path)
	return nil
}

// Import reads an .ics calendar from Path, or In when Path is "-", and
// creates one item per event occurrence.
type Import struct {
	Path     string
	In       io.Reader
	Category category.ID
	Limit    int
	DryRun   bool
	Out      io.Writer

	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	in := n.In
	if n.Path != "" && n.Path != "-" {
		f, err := os.Open(n.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if in == nil {
		in = os.Stdin
	}

	parsed, err := ics.Import(in, ics.ImportOptions{Category: n.Category, ExpandLimit: n.Limit})
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	if n.DryRun {
		for _, p := range parsed {
			_, _ = fmt.Fprintf(out, "%s %s %s [%s]\n", p.Fields.Date, p.Fields.Time, p.Fields.Title, p.Fields.Category)
		}
		return nil
	}

	fields := make([]item.Fields, len(parsed))
	for i, p := range parsed {
		fields[i] = p.Fields
	}
	created, err := n.Service.Import(ctx, fields)
	if err != nil {
		return err
	}
	for i, it := range created {
		if parsed[i].Completed {
			if _, err := n.Service.Toggle(ctx, it.ID); err != nil {
				return err
			}
		}
	}
	_, _ = fmt.Fprintf(out, "imported %d items\n", len(created))
	return nil
}
