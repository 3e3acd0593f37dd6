package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/get"
)

// showFlags are shared by every command that ends by printing the view.
type showFlags struct {
	view  options.ViewOptions
	on    options.OnOptions
	id    options.IDOptions
	out   options.OutputOptions
	quote bool
}

func (f *showFlags) bind(cmd *cobra.Command, withView bool) {
	if withView {
		options.AddViewArgs(cmd, &f.view)
		options.AddOnArgs(cmd, &f.on)
	}
	options.AddFilterArgs(cmd, &f.view)
	options.AddShowIDArgs(cmd, &f.id)
	options.AddOutputArg(cmd, &f.out)
	cmd.Flags().BoolVarP(&f.quote, "quote", "q", false, "Print the quote of the day above the view.")
}

// run opens the agenda, applies g's navigation and prints the result.
func (f *showFlags) run(cmd *cobra.Command, g get.Get) error {
	cmd.SilenceUsage = true
	svc, err := open(cmd)
	if err != nil {
		return f.out.HandleError(err)
	}
	if g.View == "" {
		g.View = f.view.View
	}
	if g.Filter == "" {
		g.Filter = f.view.Filter
	}
	if g.On == nil && f.on.IsSet() {
		on, err := f.on.GetOn(svc.Now())
		if err != nil {
			return f.out.HandleError(err)
		}
		g.On = &on
	}
	g.Quote = f.quote
	g.ShowID = f.id.ShowID
	g.Service = svc
	g.Output = &f.out
	err = g.Do(cmd.Context())
	return f.out.HandleError(err)
}

func addShow(topLevel *cobra.Command) {
	f := &showFlags{}

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "ls"},
		Short:   "Show the remembered day, week or month",
		Example: `
agenda show
agenda show --view week --on 2026-10-19
agenda show -c health --quote
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return f.run(cmd, get.Get{})
		},
	}
	f.bind(cmd, true)
	topLevel.AddCommand(cmd)

	for _, g := range calendar.Granularities() {
		addShowGranularity(topLevel, g)
	}
}

func addShowGranularity(topLevel *cobra.Command, g calendar.Granularity) {
	f := &showFlags{}

	cmd := &cobra.Command{
		Use:   string(g),
		Short: "Switch to the " + string(g) + " view and show it",
		Example: `
agenda ` + string(g) + `
agenda ` + string(g) + ` --on tomorrow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return f.run(cmd, get.Get{View: g})
		},
	}
	f.bind(cmd, false)
	options.AddOnArgs(cmd, &f.on)
	topLevel.AddCommand(cmd)
}

func addNavigation(topLevel *cobra.Command) {
	steps := []struct {
		use   string
		alias string
		short string
		step  calendar.Direction
		today bool
	}{
		{use: "next", alias: "n", short: "Move forward one day, week or month", step: calendar.Forward},
		{use: "prev", alias: "p", short: "Move back one day, week or month", step: calendar.Backward},
		{use: "today", alias: "t", short: "Jump back to today", today: true},
	}
	for _, s := range steps {
		s := s
		f := &showFlags{}
		cmd := &cobra.Command{
			Use:     s.use,
			Aliases: []string{s.alias},
			Short:   s.short,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return f.run(cmd, get.Get{Step: s.step, Today: s.today})
			},
		}
		f.bind(cmd, false)
		topLevel.AddCommand(cmd)
	}

	addView(topLevel)
	addFilter(topLevel)
}

func addView(topLevel *cobra.Command) {
	f := &showFlags{}
	var valid []string
	for _, g := range calendar.Granularities() {
		valid = append(valid, string(g))
	}

	cmd := &cobra.Command{
		Use:       "view <day|week|month>",
		Short:     "Change the remembered view granularity",
		ValidArgs: valid,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := calendar.ParseGranularity(args[0])
			if err != nil {
				return f.out.HandleError(err)
			}
			return f.run(cmd, get.Get{View: g})
		},
	}
	f.bind(cmd, false)
	topLevel.AddCommand(cmd)
}

func addFilter(topLevel *cobra.Command) {
	f := &showFlags{}
	valid := []string{string(category.FilterAll)}
	for _, id := range category.IDs() {
		valid = append(valid, string(id))
	}

	cmd := &cobra.Command{
		Use:       "filter <category|all>",
		Short:     "Only show items of one category",
		ValidArgs: valid,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a category or all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := category.ParseFilter(args[0])
			if err != nil {
				return f.out.HandleError(err)
			}
			return f.run(cmd, get.Get{Filter: filter})
		},
	}
	options.AddShowIDArgs(cmd, &f.id)
	options.AddOutputArg(cmd, &f.out)
	topLevel.AddCommand(cmd)
}

// onFlag resolves an optional --on against the agenda clock.
func onFlag(o *options.OnOptions, now time.Time) (*time.Time, error) {
	if !o.IsSet() {
		return nil, nil
	}
	on, err := o.GetOn(now)
	if err != nil {
		return nil, err
	}
	return &on, nil
}
