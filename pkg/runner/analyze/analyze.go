// Package analyze provides the weekly analysis, suggestion and quote
// runners.
package analyze

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

// Analyze prints the weekly snapshot for the remembered anchor, followed by
// the suggestions when WithSuggestions is set.
type Analyze struct {
	On              *time.Time
	WithSuggestions bool

	Service *app.Service
	Output  printers.Encoder
}

// Result is the structured output of Analyze.
type Result struct {
	Analysis    analysis.Weekly `json:"analysis" yaml:"analysis"`
	Suggestions []string        `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

func (n *Analyze) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not analyze, no service")
	}
	if n.On != nil {
		if _, err := n.Service.SetAnchor(ctx, *n.On); err != nil {
			return err
		}
	}
	res := Result{Analysis: n.Service.Analyze(ctx)}
	if n.WithSuggestions {
		res.Suggestions = n.Service.Suggest(ctx)
	}

	if printers.Structured(n.Output) {
		return n.Output.Write(res)
	}
	pp := printers.PrettyPrint{Dark: n.Service.State().DarkMode, Locale: n.Service.Locale()}
	pp.NewLine()
	pp.Analysis(res.Analysis)
	if n.WithSuggestions {
		pp.Suggestions(res.Suggestions, analysis.NoSuggestions(n.Service.Locale()))
		pp.NewLine()
	}
	return nil
}

// Suggest prints the heuristic suggestions for the remembered anchor's week.
type Suggest struct {
	On *time.Time

	Service *app.Service
	Output  printers.Encoder
}

func (n *Suggest) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not suggest, no service")
	}
	if n.On != nil {
		if _, err := n.Service.SetAnchor(ctx, *n.On); err != nil {
			return err
		}
	}
	list := n.Service.Suggest(ctx)
	if printers.Structured(n.Output) {
		return n.Output.Write(list)
	}
	pp := printers.PrettyPrint{Dark: n.Service.State().DarkMode, Locale: n.Service.Locale()}
	pp.Suggestions(list, analysis.NoSuggestions(n.Service.Locale()))
	return nil
}

// Quote prints today's quote.
type Quote struct {
	Service *app.Service
	Output  printers.Encoder
}

func (n *Quote) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not quote, no service")
	}
	q := n.Service.Quote()
	if printers.Structured(n.Output) {
		return n.Output.Write(map[string]string{"quote": q})
	}
	pp := printers.PrettyPrint{Dark: n.Service.State().DarkMode}
	pp.Quote(q)
	return nil
}
