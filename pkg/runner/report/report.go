// Package report lists the items completed over a recent window.
package report

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/timeutil"
)

// Report prints items completed in the window ending Until (default now).
type Report struct {
	Window string
	Until  time.Time

	Service *app.Service
	Output  printers.Encoder
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	dur, _, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	until := n.Until
	if until.IsZero() {
		until = time.Now()
	}
	res, err := n.Service.Report(ctx, until.Add(-dur), until)
	if err != nil {
		return err
	}
	if printers.Structured(n.Output) {
		return n.Output.Write(res)
	}
	pp := printers.PrettyPrint{Dark: n.Service.State().DarkMode, Locale: n.Service.Locale()}
	pp.NewLine()
	pp.Report(res)
	return nil
}
