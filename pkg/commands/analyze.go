package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/analyze"
)

func addAnalyze(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}
	withSuggestions := false

	cmd := &cobra.Command{
		Use:     "analyze",
		Aliases: []string{"analysis", "stats"},
		Short:   "Weekly productivity and work-life balance",
		Long: `Analyze summarises the Monday to Sunday week around the remembered
anchor date, or around --on, which also moves the anchor.`,
		Example: `
agenda analyze
agenda analyze --on 2026-10-12 --suggest
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			at, err := onFlag(on, svc.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			s := analyze.Analyze{
				On:              at,
				WithSuggestions: withSuggestions,
				Service:         svc,
				Output:          oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVarP(&withSuggestions, "suggest", "s", false, "Also print suggestions for the week.")

	topLevel.AddCommand(cmd)
}

func addSuggest(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggestions for the remembered week",
		Example: `
agenda suggest
agenda suggest --on +7d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			at, err := onFlag(on, svc.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			s := analyze.Suggest{
				On:      at,
				Service: svc,
				Output:  oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addQuote(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the quote of the day",
		Example: `
agenda quote
agenda quote --locale fr
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := analyze.Quote{
				Service: svc,
				Output:  oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
