// Package get renders the day, week or month view of the agenda.
package get

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/quote"
)

// Get optionally moves the remembered navigator, then prints its view.
// Unset fields leave the remembered state alone.
type Get struct {
	View   calendar.Granularity
	On     *time.Time
	Step   calendar.Direction
	Today  bool
	Filter category.Filter
	Quote  bool

	ShowID  bool
	Service *app.Service
	Output  printers.Encoder
}

// Window is the structured form of a rendered view.
type Window struct {
	View   calendar.Granularity `json:"view" yaml:"view"`
	Anchor string               `json:"anchor" yaml:"anchor"`
	Filter category.Filter      `json:"filter" yaml:"filter"`
	Days   []Day                `json:"days" yaml:"days"`
}

// Day lists one date's items in display order.
type Day struct {
	Date  string      `json:"date" yaml:"date"`
	Items []item.Item `json:"items" yaml:"items"`
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	if err := n.navigate(ctx); err != nil {
		return err
	}

	st := n.Service.State()
	if printers.Structured(n.Output) {
		w := Window{View: st.Nav.View, Anchor: st.Nav.AnchorDate(), Filter: st.Filter}
		for _, d := range st.Nav.Window() {
			date := item.FormatDate(d)
			w.Days = append(w.Days, Day{Date: date, Items: st.ItemsForDate(date)})
		}
		return n.Output.Write(w)
	}

	now := time.Now()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Dark: st.DarkMode, Locale: n.Service.Locale()}
	pp.NewLine()
	if n.Quote {
		pp.Quote(quote.ForDay(now, n.Service.Locale()))
	}
	pp.Navigator(st.Nav, now, st.Items, st.Filter)
	return nil
}

func (n *Get) navigate(ctx context.Context) error {
	if n.View != "" {
		if _, err := n.Service.SetView(ctx, n.View); err != nil {
			return err
		}
	}
	if n.Filter != "" {
		if _, err := n.Service.SetFilter(ctx, n.Filter); err != nil {
			return err
		}
	}
	switch {
	case n.Today:
		if _, err := n.Service.Today(ctx); err != nil {
			return err
		}
	case n.On != nil:
		if _, err := n.Service.SetAnchor(ctx, *n.On); err != nil {
			return err
		}
	}
	if n.Step != 0 {
		if _, err := n.Service.Advance(ctx, n.Step); err != nil {
			return err
		}
	}
	return nil
}
